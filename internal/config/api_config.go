package config

import (
	"strings"
	"time"
)

const (
	TransportHTTP = "http"
	TransportOIDC = "oidc"
)

type API struct{}

var _ APIConfig = API{}

// GetTransport selects the backend the session talks to: "http" or "oidc".
func (API) GetTransport() string {
	return strings.ToLower(GetEnv("TRANSPORT", TransportHTTP))
}

// GetAPIBaseURL returns the admin backend root, e.g. "https://admin.example.com/api"
func (API) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv("API_BASE_URL", "http://localhost:9528/proxy-default"), "/")
}

// GetAPISuccessCode is the envelope code the backend uses for success.
func (API) GetAPISuccessCode() string {
	return GetEnv("API_SUCCESS_CODE", "0000")
}

func (API) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv("API_TIMEOUT", "10s"))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}
