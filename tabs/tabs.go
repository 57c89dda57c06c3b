package tabs

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/jrsteele09/go-admin-session/credentials"
)

// Tab is an open page in the console.
type Tab struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	RoutePath string `json:"routePath"`
}

// Collaborator is the part of the tab state the session controller drives.
type Collaborator interface {
	// CacheTabs persists the open tabs so they survive a reset.
	CacheTabs(ctx context.Context) error

	// ClearTabs drops every open tab from memory.
	ClearTabs(ctx context.Context) error
}

var _ Collaborator = (*Store)(nil)

// Store keeps open tabs in memory and caches them in the credential store
// under credentials.KeyGlobalTabs.
type Store struct {
	mu    sync.RWMutex
	tabs  []Tab
	cache credentials.Store
}

func NewStore(cache credentials.Store) *Store {
	return &Store{cache: cache}
}

// Restore loads the cached tabs, replacing the open ones. A missing cache
// leaves the store empty.
func (s *Store) Restore(ctx context.Context) error {
	raw, ok, err := s.cache.Get(ctx, credentials.KeyGlobalTabs)
	if err != nil {
		return fmt.Errorf("reading cached tabs: %w", err)
	}

	var restored []Tab
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &restored); err != nil {
			return fmt.Errorf("decoding cached tabs: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tabs = restored
	return nil
}

// Open adds tab, or moves nothing if a tab with the same ID is open.
func (s *Store) Open(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.tabs, func(t Tab) bool { return t.ID == tab.ID }) {
		return
	}
	s.tabs = append(s.tabs, tab)
}

func (s *Store) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tabs = slices.DeleteFunc(s.tabs, func(t Tab) bool { return t.ID == id })
}

func (s *Store) Tabs() []Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.tabs)
}

func (s *Store) CacheTabs(ctx context.Context) error {
	s.mu.RLock()
	data, err := json.Marshal(s.tabs)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding tabs: %w", err)
	}

	if err := s.cache.Set(ctx, credentials.KeyGlobalTabs, string(data)); err != nil {
		return fmt.Errorf("caching tabs: %w", err)
	}
	return nil
}

func (s *Store) ClearTabs(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tabs = nil
	return nil
}
