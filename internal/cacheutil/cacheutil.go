// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/awsctl/awsctl/internal/log"
)

// DefaultTTL is how long a cached response stays fresh when cache.ttl is not
// configured.
const DefaultTTL = 24 * time.Hour

// Entry represents a cached response on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
	Written    time.Time
}

// Age reports how long ago the entry was written.
func (e *Entry) Age() time.Duration {
	return time.Since(e.Written)
}

// Dir resolves the base cache directory.
// Precedence:
//  1. AWSCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/awsctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("AWSCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "awsctl"), true
	}
	return "", false
}

// Enabled returns true unless AWSCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("AWSCTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// Subdirs returns the directory components that partition responses by
// service, profile and region. Empty components are replaced with "default".
func Subdirs(service, profile, region string) []string {
	clean := func(s string) string {
		s = strings.Map(func(r rune) rune {
			if r == '/' || r == '\\' || r == os.PathSeparator {
				return '_'
			}
			return r
		}, s)
		if s == "" {
			return "default"
		}
		return s
	}
	return []string{clean(service), clean(profile), clean(region)}
}

// EntryPath returns the absolute path where a cache entry would live given
// subdirectory components and the clear-text key. It also returns true if a
// file currently exists at that path.
func EntryPath(subdirs []string, clearKey string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	encoded := encodeKey(clearKey)
	p := filepath.Join(append([]string{base}, append(subdirs, encoded)...)...)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return p, false
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache dir cannot be resolved, it is a no-op.
func Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}

	base, ok := Dir()
	if !ok {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	removed := 0
	if err := filepath.Walk(base, func(path string, info os.FileInfo, walkErr error) error {
		// The base dir may not exist yet, or a file may vanish mid-walk when two
		// processes purge at once.
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}

		if info == nil || info.IsDir() {
			return nil
		}

		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				removed++
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	log.Debugf("cache purged: removed=%d, hours=%d", removed, hours)
	return nil
}

// Read attempts to read a cached entry regardless of its age.
func Read(subdirs []string, clearKey string) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       bytes.TrimSpace(b),
		Written:    info.ModTime(),
	}, true
}

// ReadFresh is Read restricted to entries younger than ttl. A ttl <= 0 means
// entries never go stale.
func ReadFresh(subdirs []string, clearKey string, ttl time.Duration) (*Entry, bool) {
	entry, ok := Read(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	if ttl > 0 && entry.Age() > ttl {
		log.Debugf("cache stale: key=%s, age=%s", clearKey, entry.Age().Round(time.Second))
		return nil, false
	}
	log.Debugf("cache hit: key=%s", clearKey)
	return entry, true
}

// Write stores data for the given key beneath subdirs. Creates directories as needed.
func Write(subdirs []string, clearKey string, data []byte) error {
	if !Enabled() {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}
	dir := filepath.Join(append([]string{base}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	p := filepath.Join(dir, encodeKey(clearKey))
	if err := os.WriteFile(p, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", clearKey)
	return nil
}

// encodeKey returns the hex sha256 of input.
func encodeKey(input string) string {
	h := sha256.New()
	h.Write([]byte(input))
	return hex.EncodeToString(h.Sum(nil))
}
