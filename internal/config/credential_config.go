package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	CredentialStoreFile = "file"
	CredentialStoreBolt = "bolt"
)

type CredentialConfig interface {
	GetCredentialStore() string
	GetCredentialPath() string
	GetCredentialKey() string
}

type Credentials struct{}

var _ CredentialConfig = Credentials{}

func (Credentials) GetCredentialStore() string {
	return strings.ToLower(GetEnv("CREDENTIAL_STORE", CredentialStoreFile))
}

// GetCredentialPath defaults to a file under the user's config directory.
func (c Credentials) GetCredentialPath() string {
	if p := GetEnv("CREDENTIAL_PATH", ""); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	name := "credentials.json"
	if c.GetCredentialStore() == CredentialStoreBolt {
		name = "credentials.db"
	}
	return filepath.Join(dir, "admin-console", name)
}

// GetCredentialKey returns the hex encoded 32 byte key used to seal the file store.
// Empty means the file is written in the clear.
func (Credentials) GetCredentialKey() string {
	return GetEnv("CREDENTIAL_KEY", "")
}
