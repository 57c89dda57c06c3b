package config

import "strings"

type OIDCConfig interface {
	GetOIDCIssuer() string
	GetOIDCClientID() string
	GetOIDCClientSecret() string
	GetOIDCScopes() []string
}

type OIDC struct{}

var _ OIDCConfig = OIDC{}

func (OIDC) GetOIDCIssuer() string {
	return GetEnv("OIDC_ISSUER", "")
}

func (OIDC) GetOIDCClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "admin-console")
}

func (OIDC) GetOIDCClientSecret() string {
	return GetEnv("OIDC_CLIENT_SECRET", "")
}

// GetOIDCScopes returns the space separated OIDC_SCOPES, "openid profile offline_access" by default.
func (OIDC) GetOIDCScopes() []string {
	return strings.Fields(GetEnv("OIDC_SCOPES", "openid profile offline_access"))
}
