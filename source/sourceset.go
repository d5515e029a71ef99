// Package source implements the in-memory, mutable source tree the
// pipeline renders into: SourceSet owns a collection of SourceFiles,
// tracks deletions separately from live files, and flushes both to disk
// in one pass.
package source

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceSet is the in-memory representation of a directory of source
// files for the duration of one pipeline run.
type SourceSet struct {
	rootDir string
	files   map[string]*SourceFile
	deleted map[string]bool

	preReadActions []func(*SourceFile)
}

// New returns an empty SourceSet rooted at rootDir — useful for renderers
// that only create files, or for tests.
func New(rootDir string) *SourceSet {
	return &SourceSet{
		rootDir: rootDir,
		files:   make(map[string]*SourceFile),
		deleted: make(map[string]bool),
	}
}

// FromDirectory walks root recursively, reading every regular file as a
// SourceFile with Changed=false. Symlinks are followed once, resolved on
// the root only; non-regular entries beneath it are ignored.
func FromDirectory(root string) (*SourceSet, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if os.IsNotExist(err) {
			resolved = root
		} else {
			return nil, &ReadError{Path: root, Err: err}
		}
	}

	set := New(resolved)

	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		set.files[rel] = newSourceFile(set, rel, string(data), false)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, &ReadError{Path: root, Err: err}
	}
	return set, nil
}

// File looks up path: exact match first, then a unique suffix match among
// stored paths.
func (s *SourceSet) File(path string) (*SourceFile, error) {
	path = filepath.ToSlash(path)
	if f, ok := s.files[path]; ok {
		return f, nil
	}

	var matches []string
	for stored := range s.files {
		if hasPathSuffix(stored, path) {
			matches = append(matches, stored)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Path: path}
	case 1:
		return s.files[matches[0]], nil
	default:
		sort.Strings(matches)
		return nil, &AmbiguousError{Path: path, Matches: matches}
	}
}

func hasPathSuffix(stored, suffix string) bool {
	if stored == suffix {
		return true
	}
	if !strings.HasSuffix(stored, suffix) {
		return false
	}
	boundary := stored[:len(stored)-len(suffix)]
	return strings.HasSuffix(boundary, "/")
}

// CreateFile inserts a new file marked changed, inheriting any
// prepare_code actions already registered on the set.
func (s *SourceSet) CreateFile(path, code string) *SourceFile {
	path = filepath.ToSlash(path)
	f := newSourceFile(s, path, code, true)
	for _, action := range s.preReadActions {
		f.addPreReadAction(action)
	}
	s.files[path] = f
	delete(s.deleted, path)
	return f
}

// Delete removes path from the live file set and records it for recursive
// removal at Write time. A file created and deleted within the same run
// is never written, but the deletion is still recorded against whatever
// may already exist at that path on disk.
func (s *SourceSet) Delete(path string) error {
	path = filepath.ToSlash(path)
	f, err := s.File(path)
	if err != nil {
		return err
	}
	delete(s.files, f.path)
	s.deleted[f.path] = true
	return nil
}

// Files returns every live file in the set, ordered by path for
// deterministic iteration.
func (s *SourceSet) Files() []*SourceFile {
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	out := make([]*SourceFile, len(paths))
	for i, p := range paths {
		out[i] = s.files[p]
	}
	return out
}

// PrepareCode registers action on every file currently in the set (as a
// per-file pre-read hook firing on that file's first Code() call) and on
// every file created afterward.
func (s *SourceSet) PrepareCode(action func(*SourceFile)) {
	s.preReadActions = append(s.preReadActions, action)
	for _, f := range s.files {
		f.addPreReadAction(action)
	}
}

// Write flushes the set to disk: deletions first (recursively, even for
// directory paths), then every changed file, truncate-create-write.
// Unchanged files are left untouched.
func (s *SourceSet) Write() error {
	if err := os.MkdirAll(s.rootDir, 0o755); err != nil {
		return &WriteError{Path: s.rootDir, Err: err}
	}

	for rel := range s.deleted {
		full := filepath.Join(s.rootDir, filepath.FromSlash(rel))
		if err := os.RemoveAll(full); err != nil {
			return &WriteError{Path: full, Err: err}
		}
	}

	for rel, f := range s.files {
		if !f.changed {
			continue
		}
		full := filepath.Join(s.rootDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return &WriteError{Path: full, Err: err}
		}
		if err := os.WriteFile(full, []byte(f.Code()), 0o644); err != nil {
			return &WriteError{Path: full, Err: err}
		}
	}
	return nil
}
