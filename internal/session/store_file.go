// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const (
	stateDirMode  = 0o700
	stateFileMode = 0o600
)

// FileStore persists the session as one JSON document on disk, so a CLI
// session survives between runs.
//
// Every write replaces the whole document through a temp file and rename, so
// readers see either the old state or the new one.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is created lazily.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (store *FileStore) Path() string { return store.path }

// Get implements [Storage].
func (store *FileStore) Get(_ context.Context, key string) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set implements [Storage].
func (store *FileStore) Set(_ context.Context, key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.read()
	if err != nil {
		return err
	}
	values[key] = value
	return store.write(values)
}

// Delete implements [Storage].
func (store *FileStore) Delete(_ context.Context, keys ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.read()
	if err != nil {
		return err
	}

	changed := false
	for _, key := range keys {
		if _, ok := values[key]; ok {
			delete(values, key)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return store.write(values)
}

func (store *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(store.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: read state file: %w", err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("session: corrupt state file %s: %w", store.path, err)
	}
	return values, nil
}

func (store *FileStore) write(values map[string]string) error {
	dir := filepath.Dir(store.path)
	if err := os.MkdirAll(dir, stateDirMode); err != nil {
		return fmt.Errorf("session: create state dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode state: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("session: create temp file: %w", err)
	}
	tempName := temp.Name()
	defer os.Remove(tempName)

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return fmt.Errorf("session: write temp file: %w", err)
	}
	if err := temp.Chmod(stateFileMode); err != nil {
		temp.Close()
		return fmt.Errorf("session: chmod temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		return fmt.Errorf("session: close temp file: %w", err)
	}
	if err := os.Rename(tempName, store.path); err != nil {
		return fmt.Errorf("session: replace state file: %w", err)
	}
	return nil
}
