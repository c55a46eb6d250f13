package sqlsource

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/querykit/dicthier/internal/dictionary/hashed"
	"github.com/querykit/dicthier/pkg/columnar"
	"github.com/querykit/dicthier/pkg/dictionary"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	_, err = db.Exec(`CREATE TABLE regions (id INTEGER PRIMARY KEY, parent_id INTEGER NOT NULL DEFAULT 0)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO regions (id, parent_id) VALUES (10, 2), (2, 7), (7, 0), (3, 3)`)
	require.NoError(t, err)

	return db
}

const regionQuery = `SELECT id, parent_id FROM regions`

func TestLoadParents(t *testing.T) {
	src := New(newTestDB(t), regionQuery)

	loaded := map[columnar.Key]columnar.Key{}
	err := src.LoadParents(context.Background(), func(id, parent columnar.Key) error {
		loaded[id] = parent
		return nil
	})
	require.NoError(t, err)

	require.Equal(t, map[columnar.Key]columnar.Key{10: 2, 2: 7, 7: 0, 3: 3}, loaded)
}

func TestBuildDictionaryFromSQL(t *testing.T) {
	src := New(newTestDB(t), regionQuery)

	dict, err := hashed.FromSource(context.Background(), src)
	require.NoError(t, err)

	out, err := dict.ToParents(context.Background(), []columnar.Key{10, 2, 7, 3})
	require.NoError(t, err)
	require.Equal(t, []columnar.Key{2, 7, 0, 3}, out)

	isIn, err := dict.IsInConstantConstant(context.Background(), 10, 7)
	require.NoError(t, err)
	require.True(t, isIn)
}

func TestLoadParentsQueryFailure(t *testing.T) {
	src := New(newTestDB(t), `SELECT id FROM no_such_table`)

	err := src.LoadParents(context.Background(), func(columnar.Key, columnar.Key) error { return nil })
	require.Error(t, err)
	require.ErrorAs(t, err, &dictionary.ErrSourceFailure{})
}

func TestLoadParentsEmitAbort(t *testing.T) {
	src := New(newTestDB(t), regionQuery)

	abort := errors.New("enough")
	err := src.LoadParents(context.Background(), func(columnar.Key, columnar.Key) error { return abort })
	require.ErrorIs(t, err, abort)
}

func TestLoadParentsCanceledContext(t *testing.T) {
	src := New(newTestDB(t), regionQuery)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := src.LoadParents(ctx, func(columnar.Key, columnar.Key) error { return nil })
	require.Error(t, err)
}
