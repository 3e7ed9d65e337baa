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

// Package document reads and writes the files being patched.
package document

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// BackupSuffix is appended to a document's path for its pre-write copy
const BackupSuffix = ".bak"

// 💾 Store reads documents once and writes them back atomically. Relative
// paths are resolved against the store's base directory.
type Store struct {
	baseDir string
	backup  bool
}

// 🏭 NewStore creates a store rooted at baseDir. With backup set, every
// WriteAtomic first copies the existing file to path + BackupSuffix.
func NewStore(baseDir string, backup bool) *Store {
	return &Store{
		baseDir: filepath.Clean(baseDir),
		backup:  backup,
	}
}

// BaseDir returns the directory relative paths resolve against
func (s *Store) BaseDir() string {
	return s.baseDir
}

// 🔒 Abs returns the absolute, cleaned path for path. Relative paths resolve
// against the base directory.
func (s *Store) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(path))
}

// 🔍 Expand resolves a doublestar pattern to the sorted list of regular files
// it matches. A pattern without glob syntax must name an existing file.
// Matches of a relative pattern are returned relative to the base directory,
// so they may start with "../".
func (s *Store) Expand(ctx context.Context, pattern string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	matches, err := doublestar.FilepathGlob(s.Abs(pattern), doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Errorf("expanding %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("no documents match %q in %s", pattern, s.baseDir)
	}

	if !filepath.IsAbs(pattern) {
		for i, m := range matches {
			rel, err := filepath.Rel(s.baseDir, m)
			if err != nil {
				return nil, errors.Errorf("relativizing %s: %w", m, err)
			}
			matches[i] = filepath.ToSlash(rel)
		}
	}

	sort.Strings(matches)
	logger.Debug().Str("pattern", pattern).Strs("matches", matches).Msg("expanded document pattern")
	return matches, nil
}

// Read returns the full content of the document at path
func (s *Store) Read(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(s.Abs(path))
	if err != nil {
		return "", errors.Errorf("reading document: %w", err)
	}
	return string(content), nil
}

// 📝 WriteAtomic replaces the document at path with content by writing a
// temporary file in the same directory and renaming it over the target. The
// existing file's mode is kept.
func (s *Store) WriteAtomic(ctx context.Context, path string, content string) error {
	absPath := s.Abs(path)

	mode := os.FileMode(0644)
	if info, err := os.Stat(absPath); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.Errorf("checking document: %w", err)
	}

	if s.backup {
		if err := s.Backup(ctx, path); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := io.WriteString(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Int("bytes", len(content)).Msg("document written")
	return nil
}

// Backup copies the document at path to path + BackupSuffix. A missing
// document has nothing to back up.
func (s *Store) Backup(ctx context.Context, path string) error {
	absPath := s.Abs(path)

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(absPath, absPath+BackupSuffix); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath+BackupSuffix).Msg("backup written")
	return nil
}

// Restore puts the backup of path back in place and removes it
func (s *Store) Restore(ctx context.Context, path string) error {
	absPath := s.Abs(path)
	backupPath := absPath + BackupSuffix

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return errors.Errorf("backup file does not exist")
	} else if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}

	if err := copyFile(backupPath, absPath); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	if err := os.Remove(backupPath); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("stat source file: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file: %w", err)
	}

	return destination.Close()
}
