// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempCache points the cache at a fresh directory and enables it.
func useTempCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AWSCTL_CACHE_DIR", dir)
	t.Setenv("AWSCTL_CACHE", "1")
	return dir
}

func TestDir_WithAWSCTL_CACHE_DIR(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("AWSCTL_CACHE_DIR", customDir)

	result, ok := Dir()

	assert.True(t, ok)
	assert.Equal(t, customDir, result)
}

func TestDir_FallsBackToUserCacheDir(t *testing.T) {
	t.Setenv("AWSCTL_CACHE_DIR", "")

	result, ok := Dir()

	if ok {
		assert.True(t, filepath.IsAbs(result))
		assert.Equal(t, "awsctl", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{"unset", "", true},
		{"1", "1", true},
		{"true", "true", true},
		{"yes", "yes", true},
		{"0", "0", false},
		{"false", "false", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AWSCTL_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestSubdirs(t *testing.T) {
	tests := []struct {
		name    string
		service string
		profile string
		region  string
		want    []string
	}{
		{"all set", "dms", "prod", "eu-west-1", []string{"dms", "prod", "eu-west-1"}},
		{"empty profile", "support", "", "us-east-1", []string{"support", "default", "us-east-1"}},
		{"slashes replaced", "dms", "team/prod", "", []string{"dms", "team_prod", "default"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subdirs(tt.service, tt.profile, tt.region))
		})
	}
}

func TestEntryPath(t *testing.T) {
	tmpDir := useTempCache(t)

	path, exists := EntryPath([]string{"dms", "default"}, "my-key")
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(tmpDir, "dms", "default", encodeKey("my-key")), path)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	_, exists = EntryPath([]string{"dms", "default"}, "my-key")
	assert.True(t, exists)
}

func TestRead_CachingDisabled(t *testing.T) {
	useTempCache(t)
	require.NoError(t, Write([]string{"x"}, "key", []byte("data")))
	t.Setenv("AWSCTL_CACHE", "0")

	entry, found := Read([]string{"x"}, "key")

	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestRead_FileNotFound(t *testing.T) {
	useTempCache(t)

	entry, found := Read([]string{"subdir"}, "nonexistent-key")

	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestRead_TrimsWhitespace(t *testing.T) {
	useTempCache(t)
	require.NoError(t, Write([]string{"data"}, "key", []byte("  \n  {\"a\":1}  \n  ")))

	entry, found := Read([]string{"data"}, "key")

	require.True(t, found)
	assert.Equal(t, []byte(`{"a":1}`), entry.Data)
	assert.Equal(t, "key", entry.Key)
	assert.Equal(t, encodeKey("key"), entry.EncodedKey)
	assert.False(t, entry.Written.IsZero())
}

func TestReadFresh(t *testing.T) {
	useTempCache(t)
	subdirs := Subdirs("support", "", "us-east-1")
	require.NoError(t, Write(subdirs, "describe-services", []byte(`{"Services":[]}`)))

	entry, ok := ReadFresh(subdirs, "describe-services", time.Hour)
	require.True(t, ok)
	assert.Equal(t, `{"Services":[]}`, string(entry.Data))

	past := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(entry.Path, past, past))

	_, ok = ReadFresh(subdirs, "describe-services", time.Hour)
	assert.False(t, ok, "entry older than ttl is stale")

	_, ok = ReadFresh(subdirs, "describe-services", 0)
	assert.True(t, ok, "zero ttl never expires")
}

func TestWrite_CachingDisabled(t *testing.T) {
	tmpDir := useTempCache(t)
	t.Setenv("AWSCTL_CACHE", "false")

	require.NoError(t, Write([]string{"subdir"}, "key", []byte("data")))
	assert.NoDirExists(t, filepath.Join(tmpDir, "subdir"))
}

func TestWrite_FilePermissionsAndOverwrite(t *testing.T) {
	tmpDir := useTempCache(t)

	require.NoError(t, Write(nil, "k", []byte("old")))
	require.NoError(t, Write(nil, "k", []byte("new")))

	p := filepath.Join(tmpDir, encodeKey("k"))
	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	content, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestPurge(t *testing.T) {
	tmpDir := useTempCache(t)

	nested := filepath.Join(tmpDir, "dms", "default", "us-east-1")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	oldPath := filepath.Join(nested, "old")
	recentPath := filepath.Join(tmpDir, "recent")
	require.NoError(t, os.WriteFile(oldPath, []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(recentPath, []byte("recent"), 0o600))

	past := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, past, past))

	require.NoError(t, Purge(0))
	assert.FileExists(t, oldPath, "zero hours disables purge")

	require.NoError(t, Purge(1))
	assert.NoFileExists(t, oldPath)
	assert.FileExists(t, recentPath)
}

func TestPurge_MissingBaseDir(t *testing.T) {
	t.Setenv("AWSCTL_CACHE_DIR", filepath.Join(t.TempDir(), "never-created"))

	assert.NoError(t, Purge(1))
}

func TestEncodeKey(t *testing.T) {
	assert.Equal(t, encodeKey("same"), encodeKey("same"))
	assert.NotEqual(t, encodeKey("one"), encodeKey("two"))

	encoded := encodeKey("key/with\nspecials!")
	assert.Len(t, encoded, 64)
	for _, c := range encoded {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'), "invalid hex character: %c", c)
	}
}
