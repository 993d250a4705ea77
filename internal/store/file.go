package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/AlexZinkM/wallet-link/internal/model"
)

// fileData is the on-disk layout of a FileStore.
type fileData struct {
	Wallets []model.WalletRecord `json:"wallets"`
}

// FileStore keeps all records in one JSON file, rewritten atomically on every change.
type FileStore struct {
	mu      sync.Mutex
	path    string
	opts    options
	records map[int64]model.WalletRecord
}

// OpenFile loads path if it exists; a missing file is an empty store.
func OpenFile(path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		opts:    newOptions(opts),
		records: make(map[int64]model.WalletRecord),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Skip UTF-8 BOM if present
	if len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF {
		raw = raw[3:]
	}
	if len(raw) == 0 {
		return s, nil
	}

	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet file: %w", err)
	}
	for _, rec := range data.Wallets {
		s.records[rec.UserID] = rec
	}
	return s, nil
}

// Get returns userID's record without secret material.
func (s *FileStore) Get(_ context.Context, userID int64) (model.WalletRecord, error) {
	s.mu.Lock()
	rec, ok := s.records[userID]
	s.mu.Unlock()

	if !ok {
		return model.WalletRecord{}, model.ErrWalletNotFound
	}
	if err := checkPublicKey(rec); err != nil {
		return model.WalletRecord{}, err
	}
	return rec.WithoutSecret(), nil
}

// Save overwrites userID's record.
func (s *FileStore) Save(_ context.Context, userID int64, identity model.WalletIdentity, kind model.ImportKind) (bool, error) {
	rec, err := s.opts.buildRecord(userID, identity, kind)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.records[userID]
	s.records[userID] = rec
	if err := s.flush(); err != nil {
		if existed {
			s.records[userID] = prev
		} else {
			delete(s.records, userID)
		}
		return false, err
	}
	return !existed, nil
}

// Delete removes userID's record and reports whether there was one.
func (s *FileStore) Delete(_ context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.records[userID]
	if !ok {
		return false, nil
	}
	delete(s.records, userID)
	if err := s.flush(); err != nil {
		s.records[userID] = prev
		return false, err
	}
	return true, nil
}

// Reveal returns userID's record with its secret in clear.
func (s *FileStore) Reveal(_ context.Context, userID int64) (model.WalletRecord, error) {
	s.mu.Lock()
	rec, ok := s.records[userID]
	s.mu.Unlock()

	if !ok {
		return model.WalletRecord{}, model.ErrWalletNotFound
	}
	return s.opts.reveal(rec)
}

// List returns all records ordered by user id, without secret material.
func (s *FileStore) List(_ context.Context) ([]model.WalletRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.WalletRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.WithoutSecret())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

// flush must be called with mu held.
func (s *FileStore) flush() error {
	data := fileData{Wallets: make([]model.WalletRecord, 0, len(s.records))}
	for _, rec := range s.records {
		data.Wallets = append(data.Wallets, rec)
	}
	sort.Slice(data.Wallets, func(i, j int) bool {
		return data.Wallets[i].UserID < data.Wallets[j].UserID
	})

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal wallet file: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace wallet file: %w", err)
	}
	return nil
}
