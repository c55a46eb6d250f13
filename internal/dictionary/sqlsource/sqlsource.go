// Package sqlsource loads a dictionary's parent relation from a SQL
// database through database/sql.
package sqlsource

import (
	"context"
	"database/sql"

	"github.com/querykit/dicthier/internal/logging"
	"github.com/querykit/dicthier/pkg/columnar"
	"github.com/querykit/dicthier/pkg/dictionary"
)

// Source streams key→parent pairs produced by a single query. The query
// must yield two unsigned integer columns: the key and its parent key, with
// 0 for entries without a parent.
type Source struct {
	db    *sql.DB
	query string
}

var _ dictionary.Source = (*Source)(nil)

// New builds a source over the given handle and row query.
func New(db *sql.DB, query string) *Source {
	return &Source{db: db, query: query}
}

// LoadParents implements dictionary.Source.
func (s *Source) LoadParents(ctx context.Context, emit func(id, parent columnar.Key) error) error {
	rows, err := s.db.QueryContext(ctx, s.query)
	if err != nil {
		return dictionary.NewSourceFailureErr(err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id, parent uint64
		if err := rows.Scan(&id, &parent); err != nil {
			return dictionary.NewSourceFailureErr(err)
		}
		if err := emit(columnar.Key(id), columnar.Key(parent)); err != nil {
			return err
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return dictionary.NewSourceFailureErr(err)
	}

	logging.Ctx(ctx).Debug().Int("pairs", count).Msg("loaded dictionary parents from sql source")
	return nil
}
