// Package badgersource loads a dictionary's parent relation from an
// embedded badger store.
package badgersource

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/querykit/dicthier/internal/logging"
	"github.com/querykit/dicthier/pkg/columnar"
	"github.com/querykit/dicthier/pkg/dictionary"
)

// Source streams key→parent pairs stored as 8-byte big-endian uint64 keys
// and values under an optional key prefix.
type Source struct {
	db     *badger.DB
	prefix []byte
}

var _ dictionary.Source = (*Source)(nil)

// New builds a source over the given store. A nil prefix scans the whole
// keyspace.
func New(db *badger.DB, prefix []byte) *Source {
	return &Source{db: db, prefix: prefix}
}

// EncodeKey returns the stored representation of a dictionary key under the
// source's prefix.
func (s *Source) EncodeKey(id columnar.Key) []byte {
	buf := make([]byte, len(s.prefix)+8)
	copy(buf, s.prefix)
	binary.BigEndian.PutUint64(buf[len(s.prefix):], uint64(id))
	return buf
}

// EncodeValue returns the stored representation of a parent key.
func EncodeValue(parent columnar.Key) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(parent))
	return buf
}

// LoadParents implements dictionary.Source.
func (s *Source) LoadParents(ctx context.Context, emit func(id, parent columnar.Key) error) error {
	count := 0
	var callerErr error
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				callerErr = err
				return err
			}

			item := it.Item()
			raw := item.Key()[len(s.prefix):]
			if len(raw) != 8 {
				return fmt.Errorf("malformed dictionary key of %d bytes", len(raw))
			}
			id := columnar.Key(binary.BigEndian.Uint64(raw))

			err := item.Value(func(val []byte) error {
				if len(val) != 8 {
					return fmt.Errorf("malformed parent value of %d bytes", len(val))
				}
				if err := emit(id, columnar.Key(binary.BigEndian.Uint64(val))); err != nil {
					callerErr = err
					return err
				}
				return nil
			})
			if err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		// Errors raised by the caller's emit or a canceled context propagate
		// as-is; only store-level failures are wrapped.
		if callerErr != nil {
			return callerErr
		}
		return dictionary.NewSourceFailureErr(err)
	}

	logging.Ctx(ctx).Debug().Int("pairs", count).Msg("loaded dictionary parents from badger source")
	return nil
}
