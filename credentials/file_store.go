package credentials

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/renameio/v2/maybe"
	apperrors "github.com/jrsteele09/go-admin-session/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	credentialFilePerm = 0o600
	credentialDirPerm  = 0o700
)

var _ ClosableStore = (*FileStore)(nil)

// FileStore keeps credentials in a single JSON file that is replaced
// atomically on every write. When a key is configured the file is sealed
// with XChaCha20-Poly1305 and laid out as nonce || ciphertext.
type FileStore struct {
	path   string
	aead   cipher.AEAD
	mu     sync.Mutex
	values map[Key]string
	closed bool
}

// OpenFileStore loads the store at path. hexKey is optional; when set it
// must decode to 32 bytes.
func OpenFileStore(path, hexKey string) (*FileStore, error) {
	fs := &FileStore{
		path:   path,
		values: make(map[Key]string),
	}

	if hexKey != "" {
		key, err := hex.DecodeString(hexKey)
		if err != nil || len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("credential key must be %d hex encoded bytes: %w", chacha20poly1305.KeySize, apperrors.ErrInvalidStoreKey)
		}
		if fs.aead, err = chacha20poly1305.NewX(key); err != nil {
			return nil, fmt.Errorf("creating cipher: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), credentialDirPerm); err != nil {
		return nil, fmt.Errorf("creating credential directory: %w", err)
	}

	if err := fs.load(); err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	if fs.aead != nil {
		if data, err = fs.open(data); err != nil {
			return err
		}
	}

	return json.Unmarshal(data, &fs.values)
}

func (fs *FileStore) open(sealed []byte) ([]byte, error) {
	n := fs.aead.NonceSize()
	if len(sealed) < n+fs.aead.Overhead() {
		return nil, fmt.Errorf("sealed data too short: %d bytes", len(sealed))
	}
	plain, err := fs.aead.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("opening sealed data: %w", err)
	}
	return plain, nil
}

func (fs *FileStore) seal(plain []byte) ([]byte, error) {
	nonce := make([]byte, fs.aead.NonceSize(), fs.aead.NonceSize()+len(plain)+fs.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return fs.aead.Seal(nonce, nonce, plain, nil), nil
}

// persist writes the current values. fs.mu is expected to be locked.
func (fs *FileStore) persist() error {
	data, err := json.Marshal(fs.values)
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}
	if fs.aead != nil {
		if data, err = fs.seal(data); err != nil {
			return err
		}
	}
	if err = maybe.WriteFile(fs.path, data, credentialFilePerm); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	return nil
}

func (fs *FileStore) Set(_ context.Context, key Key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		return apperrors.ErrStoreClosed
	}

	old, had := fs.values[key]
	fs.values[key] = value
	if err := fs.persist(); err != nil {
		if had {
			fs.values[key] = old
		} else {
			delete(fs.values, key)
		}
		return err
	}
	return nil
}

func (fs *FileStore) Get(_ context.Context, key Key) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		return "", false, apperrors.ErrStoreClosed
	}
	v, ok := fs.values[key]
	return v, ok, nil
}

func (fs *FileStore) Remove(_ context.Context, key Key) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		return apperrors.ErrStoreClosed
	}

	old, had := fs.values[key]
	if !had {
		return nil
	}
	delete(fs.values, key)
	if err := fs.persist(); err != nil {
		fs.values[key] = old
		return err
	}
	return nil
}

func (fs *FileStore) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.closed = true
	return nil
}
