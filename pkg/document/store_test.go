// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestStore_Expand(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"index.html":        "<html>",
		"src/a.js":          "a",
		"src/nested/b.js":   "b",
		"src/nested/c.ts":   "c",
		"src/nested/d.js/x": "dir named like a file",
	})

	tests := []struct {
		name      string
		pattern   string
		want      []string
		wantError string
	}{
		{
			name:    "literal_path",
			pattern: "index.html",
			want:    []string{"index.html"},
		},
		{
			name:    "doublestar",
			pattern: "src/**/*.js",
			want:    []string{"src/a.js", "src/nested/b.js"},
		},
		{
			name:      "no_match",
			pattern:   "missing.html",
			wantError: `no documents match "missing.html"`,
		},
	}

	store := NewStore(dir, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Expand(context.Background(), tt.pattern)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_ExpandAbsolute(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.js": "a"})

	store := NewStore(t.TempDir(), false)
	got, err := store.Expand(context.Background(), filepath.Join(dir, "*.js"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.js")}, got)
}

func TestStore_ExpandParentRelative(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"index.html":        "<html>",
		"src/a.js":          "a",
		"patches/plan.yaml": "documents: []",
		"patches/enrich.js": "e",
	})

	ctx := context.Background()
	store := NewStore(filepath.Join(dir, "patches"), false)

	got, err := store.Expand(ctx, "../index.html")
	require.NoError(t, err)
	assert.Equal(t, []string{"../index.html"}, got)

	got, err = store.Expand(ctx, "../src/*.js")
	require.NoError(t, err)
	assert.Equal(t, []string{"../src/a.js"}, got)

	content, err := store.Read(ctx, got[0])
	require.NoError(t, err)
	assert.Equal(t, "a", content)
}

func TestStore_Abs(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "patches"), false)

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "relative", path: "../index.html", want: filepath.Join(dir, "index.html")},
		{name: "dot_segments", path: "./a/../b.js", want: filepath.Join(dir, "patches", "b.js")},
		{name: "absolute_cleaned", path: filepath.Join(dir, "x", "..", "index.html"), want: filepath.Join(dir, "index.html")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.Abs(tt.path))
		})
	}
}

func TestStore_ReadWrite(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"app/main.js": "old"})
	require.NoError(t, os.Chmod(filepath.Join(dir, "app", "main.js"), 0600))

	ctx := context.Background()
	store := NewStore(dir, false)

	content, err := store.Read(ctx, "app/main.js")
	require.NoError(t, err)
	assert.Equal(t, "old", content)

	require.NoError(t, store.WriteAtomic(ctx, "app/main.js", "new"))

	content, err = store.Read(ctx, "app/main.js")
	require.NoError(t, err)
	assert.Equal(t, "new", content)

	info, err := os.Stat(filepath.Join(dir, "app", "main.js"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "file mode should be kept")

	entries, err := os.ReadDir(filepath.Join(dir, "app"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp or backup files should remain")

	_, err = store.Read(ctx, "app/missing.js")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading document")
}

func TestStore_BackupRestore(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"index.html": "original"})

	ctx := context.Background()
	store := NewStore(dir, true)

	require.NoError(t, store.WriteAtomic(ctx, "index.html", "patched"))

	backup, err := os.ReadFile(filepath.Join(dir, "index.html"+BackupSuffix))
	require.NoError(t, err)
	assert.Equal(t, "original", string(backup))

	content, err := store.Read(ctx, "index.html")
	require.NoError(t, err)
	assert.Equal(t, "patched", content)

	require.NoError(t, store.Restore(ctx, "index.html"))

	content, err = store.Read(ctx, "index.html")
	require.NoError(t, err)
	assert.Equal(t, "original", content)

	_, err = os.Stat(filepath.Join(dir, "index.html"+BackupSuffix))
	assert.True(t, os.IsNotExist(err), "backup should be removed after restore")

	err = store.Restore(ctx, "index.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup file does not exist")
}

func TestStore_BackupMissingDocument(t *testing.T) {
	store := NewStore(t.TempDir(), true)
	require.NoError(t, store.Backup(context.Background(), "nothing.txt"))
}
