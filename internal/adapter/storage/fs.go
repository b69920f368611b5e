package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FSStore keeps statement artifacts on the local filesystem under a root
// directory, keyed the same way an object store would be. Retrieval URLs
// carry an HMAC token with an expiry and are regenerated on every read,
// never persisted.
type FSStore struct {
	root    string
	baseURL string
	secret  []byte
	now     func() time.Time
}

func NewFSStore(root, baseURL string, secret []byte) *FSStore {
	return &FSStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		now:     time.Now,
	}
}

func (s *FSStore) Put(ctx context.Context, key string, data []byte) (string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	// write-then-rename so readers never see a partial document
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("publish artifact: %w", err)
	}

	return s.SignedURL(ctx, key, time.Hour)
}

func (s *FSStore) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if _, err := s.resolve(key); err != nil {
		return "", err
	}
	exp := s.now().Add(ttl).Unix()
	return fmt.Sprintf("%s/%s?expires=%d&token=%s", s.baseURL, key, exp, s.sign(key, exp)), nil
}

// Open returns the artifact bytes after verifying the token and expiry.
func (s *FSStore) Open(_ context.Context, key string, exp int64, token string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	if s.now().Unix() > exp {
		return nil, fmt.Errorf("url expired for %s", key)
	}
	if !hmac.Equal([]byte(token), []byte(s.sign(key, exp))) {
		return nil, fmt.Errorf("invalid token for %s", key)
	}
	return os.ReadFile(path)
}

func (s *FSStore) sign(key string, exp int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%d", key, exp)
	return hex.EncodeToString(mac.Sum(nil))
}

// resolve maps a storage key onto the root, rejecting traversal outside it.
func (s *FSStore) resolve(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}
