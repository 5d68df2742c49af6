// Package history keeps recent dictation transcripts in a local
// badger store so the UI can show them across restarts.
package history

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/sneakyfree/WindyProUltra/internal/types"
)

// DefaultTTL is how long transcripts are retained.
const DefaultTTL = 30 * 24 * time.Hour

var keyPrefix = []byte("transcript:")

// Store is a transcript history backed by badger.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens (or creates) the history store at path.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logger is too chatty for a desktop app

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	return &Store{db: db, ttl: DefaultTTL}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores text as a new transcript entry and returns it.
func (s *Store) Add(text string) (types.TranscriptEntry, error) {
	entry := types.TranscriptEntry{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: time.Now(),
	}

	val, err := json.Marshal(entry)
	if err != nil {
		return types.TranscriptEntry{}, fmt.Errorf("marshal transcript: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(entryKey(entry), val).WithTTL(s.ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		return types.TranscriptEntry{}, fmt.Errorf("store transcript: %w", err)
	}
	return entry, nil
}

// Recent returns up to n transcripts, newest first.
func (s *Store) Recent(n int) ([]types.TranscriptEntry, error) {
	if n <= 0 {
		return nil, nil
	}

	var entries []types.TranscriptEntry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = keyPrefix

		it := txn.NewIterator(opts)
		defer it.Close()

		// Keys are timestamp-ordered; reverse iteration starts past
		// the end of the prefix range.
		seek := append(append([]byte{}, keyPrefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(keyPrefix) && len(entries) < n; it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var entry types.TranscriptEntry
				if err := json.Unmarshal(val, &entry); err != nil {
					return fmt.Errorf("unmarshal transcript: %w", err)
				}
				entries = append(entries, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}

// entryKey builds a timestamp-sortable key for the entry.
func entryKey(entry types.TranscriptEntry) []byte {
	return fmt.Appendf(nil, "%s%020d:%s", keyPrefix, entry.CreatedAt.UnixNano(), entry.ID)
}
