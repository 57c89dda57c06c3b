package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	OIDCConfig
	CredentialConfig
	RouteConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type APIConfig interface {
	GetTransport() string
	GetAPIBaseURL() string
	GetAPISuccessCode() string
	GetAPITimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	API
	OIDC
	Credentials
	Routes
}

func New() Config {
	return mainConfig{}
}
