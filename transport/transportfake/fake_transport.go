package transportfake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-admin-session/token"
	"github.com/jrsteele09/go-admin-session/transport"
	"github.com/jrsteele09/go-admin-session/users"
)

var (
	_ transport.Transport         = (*FakeTransport)(nil)
	_ transport.CodeAuthenticator = (*FakeTransport)(nil)
	_ transport.CaptchaSender     = (*FakeTransport)(nil)
)

// FakeTransport returns scripted results. Zero values mean "no pair"/"no profile".
type FakeTransport struct {
	lock sync.Mutex

	Pair       *token.Pair
	AuthErr    error
	Profile    *users.UserInfo
	ProfileErr error
	Codes      map[string]string // phone -> valid code, for AuthenticateByCode

	// OnAuthenticate runs inside Authenticate before it returns, letting tests
	// observe the state while the call is in flight.
	OnAuthenticate func()

	AuthCalls    int
	ProfileCalls int
	CaptchaSent  []string // Phones passed to SendCaptcha
}

func NewFakeTransport() *FakeTransport {
	return &FakeTransport{Codes: make(map[string]string)}
}

// Succeed scripts a successful login for profile with tok.
func (f *FakeTransport) Succeed(tok string, profile users.UserInfo) *FakeTransport {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.Pair = &token.Pair{Token: tok, RefreshToken: "refresh-" + tok}
	f.AuthErr = nil
	f.Profile = &profile
	f.ProfileErr = nil
	return f
}

func (f *FakeTransport) Authenticate(_ context.Context, _, _ string) (*token.Pair, error) {
	f.lock.Lock()
	f.AuthCalls++
	hook := f.OnAuthenticate
	pair, err := f.Pair, f.AuthErr
	f.lock.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	if pair == nil {
		return nil, nil
	}
	cp := *pair
	return &cp, nil
}

func (f *FakeTransport) AuthenticateByCode(ctx context.Context, phone, code string) (*token.Pair, error) {
	f.lock.Lock()
	want, ok := f.Codes[phone]
	f.lock.Unlock()

	if !ok || want != code {
		return nil, &transport.APIError{Code: "1002", Message: "invalid verification code"}
	}
	return f.Authenticate(ctx, phone, code)
}

func (f *FakeTransport) FetchProfile(_ context.Context) (*users.UserInfo, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.ProfileCalls++
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	if f.Profile == nil {
		return nil, &transport.APIError{Status: 401, Message: "unauthorized"}
	}
	p := f.Profile.Clone()
	return &p, nil
}

func (f *FakeTransport) SendCaptcha(_ context.Context, phone string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.CaptchaSent = append(f.CaptchaSent, phone)
	return nil
}
