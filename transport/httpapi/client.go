// Package httpapi talks to the admin console REST backend. Responses are
// wrapped in a {code, msg, data} envelope; authenticated calls get their
// bearer token from an oauth2.TokenSource.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-admin-session/internal/config"
	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
	"github.com/jrsteele09/go-admin-session/token"
	"github.com/jrsteele09/go-admin-session/transport"
	"github.com/jrsteele09/go-admin-session/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	routeLogin       = "/users/login"
	routeLoginByCode = "/users/loginByCode"
	routeUserInfo    = "/users/getUserInfo"
	routeSendCaptcha = "/auth/send-captcha"

	headerRequestID = "X-Request-Id"

	maxResponseBytes = 1 << 20
)

var (
	_ transport.Transport         = (*Client)(nil)
	_ transport.CodeAuthenticator = (*Client)(nil)
	_ transport.CaptchaSender     = (*Client)(nil)
)

// Client is the REST transport.
type Client struct {
	baseURL     string
	successCode string
	anon        *http.Client // login calls, no bearer token
	authed      *http.Client // calls that need the stored token
	logger      zerolog.Logger
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
// Its Transport is reused under the bearer token transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.anon = hc
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a REST transport. tokens supplies the bearer token for
// authenticated calls.
func New(cfg config.APIConfig, tokens oauth2.TokenSource, options ...ClientOption) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(cfg.GetAPIBaseURL(), "/"),
		successCode: cfg.GetAPISuccessCode(),
		anon:        &http.Client{Timeout: cfg.GetAPITimeout()},
		logger:      log.Logger,
	}

	for _, opt := range options {
		opt(c)
	}

	c.authed = &http.Client{
		Timeout:       c.anon.Timeout,
		CheckRedirect: c.anon.CheckRedirect,
		Jar:           c.anon.Jar,
		Transport: &oauth2.Transport{
			Source: tokens,
			Base:   c.anon.Transport,
		},
	}
	return c
}

type loginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type codeLoginRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

type captchaRequest struct {
	Phone string `json:"phone"`
}

// Authenticate implements transport.Transport. A success envelope without
// data yields a nil pair.
func (c *Client) Authenticate(ctx context.Context, userName, password string) (*token.Pair, error) {
	return call[token.Pair](ctx, c, c.anon, http.MethodPost, routeLogin, loginRequest{UserName: userName, Password: password})
}

// AuthenticateByCode implements transport.CodeAuthenticator.
func (c *Client) AuthenticateByCode(ctx context.Context, phone, code string) (*token.Pair, error) {
	return call[token.Pair](ctx, c, c.anon, http.MethodPost, routeLoginByCode, codeLoginRequest{Phone: phone, Code: code})
}

// FetchProfile implements transport.Transport.
func (c *Client) FetchProfile(ctx context.Context) (*users.UserInfo, error) {
	info, err := call[users.UserInfo](ctx, c, c.authed, http.MethodGet, routeUserInfo, nil)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, apperrors.Wrapf(apperrors.ErrEmptyResponse, "user info")
	}
	return info, nil
}

// SendCaptcha implements transport.CaptchaSender.
func (c *Client) SendCaptcha(ctx context.Context, phone string) error {
	_, err := call[json.RawMessage](ctx, c, c.anon, http.MethodPost, routeSendCaptcha, captchaRequest{Phone: phone})
	return err
}

// envelopeCode accepts both "0000" and 0 style codes.
type envelopeCode string

func (ec *envelopeCode) UnmarshalJSON(b []byte) error {
	var s string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	} else {
		s = string(b)
	}
	*ec = envelopeCode(s)
	return nil
}

type envelope[T any] struct {
	Code envelopeCode `json:"code"`
	Msg  string       `json:"msg"`
	Data *T           `json:"data"`
}

func call[T any](ctx context.Context, c *Client, hc *http.Client, method, route string, body any) (*T, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("[httpapi %s] encoding request: %w", route, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+route, reqBody)
	if err != nil {
		return nil, fmt.Errorf("[httpapi %s] building request: %w", route, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("route", route).Str("request_id", requestID).Msg("api request failed")
		return nil, fmt.Errorf("[httpapi %s] %w", route, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("route", route).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("api request")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("[httpapi %s] reading response: %w", route, err)
	}

	var env envelope[T]
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &transport.APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if decodeErr == nil {
			apiErr.Code = string(env.Code)
			if env.Msg != "" {
				apiErr.Message = env.Msg
			}
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("[httpapi %s] decoding response: %w", route, decodeErr)
	}
	if string(env.Code) != c.successCode {
		return nil, &transport.APIError{Status: resp.StatusCode, Code: string(env.Code), Message: env.Msg}
	}
	return env.Data, nil
}
