package credentials

import (
	"fmt"

	"github.com/jrsteele09/go-admin-session/internal/config"
	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
)

// Open returns the store selected by CREDENTIAL_STORE.
func Open(cfg config.CredentialConfig) (ClosableStore, error) {
	switch cfg.GetCredentialStore() {
	case config.CredentialStoreFile:
		return OpenFileStore(cfg.GetCredentialPath(), cfg.GetCredentialKey())
	case config.CredentialStoreBolt:
		return OpenBoltStore(cfg.GetCredentialPath())
	default:
		return nil, fmt.Errorf("credential store %q: %w", cfg.GetCredentialStore(), apperrors.ErrUnsupported)
	}
}
