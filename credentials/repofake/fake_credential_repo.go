package repofake

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-admin-session/credentials"
)

var _ credentials.Store = (*FakeCredentialRepo)(nil)

type FakeCredentialRepo struct {
	values map[credentials.Key]string
	writes []credentials.Key
	lock   sync.RWMutex
}

func NewFakeCredentialRepo() *FakeCredentialRepo {
	return &FakeCredentialRepo{
		values: make(map[credentials.Key]string),
	}
}

func (r *FakeCredentialRepo) Set(_ context.Context, key credentials.Key, value string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.values[key] = value
	r.writes = append(r.writes, key)
	return nil
}

func (r *FakeCredentialRepo) Get(_ context.Context, key credentials.Key) (string, bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	v, ok := r.values[key]
	return v, ok, nil
}

func (r *FakeCredentialRepo) Remove(_ context.Context, key credentials.Key) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.values, key)
	return nil
}

// Has reports whether key is stored. Test helper.
func (r *FakeCredentialRepo) Has(key credentials.Key) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()

	_, ok := r.values[key]
	return ok
}

// Writes returns the keys passed to Set, in order. Test helper.
func (r *FakeCredentialRepo) Writes() []credentials.Key {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return append([]credentials.Key(nil), r.writes...)
}
