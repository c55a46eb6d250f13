package columnar

import (
	"github.com/rs/zerolog"
)

// Ragged is a CSR-style encoding of per-row variable-length key sequences:
// one flat data array plus cumulative end offsets, one offset per row. Row
// i's sequence occupies data[offsets[i-1]:offsets[i]], with offsets[-1]
// taken as 0. Offsets are non-decreasing and the final offset always equals
// len(data).
//
// A Ragged may itself be constant: a single underlying sequence logically
// replicated across every row, produced when a hierarchy expansion runs over
// a constant input column.
type Ragged struct {
	kind    ColumnKind
	data    []Key
	offsets []uint64
	rows    int
}

// NewRagged wraps a flat data array and its per-row end offsets. The result
// takes ownership of both slices.
func NewRagged(data []Key, offsets []uint64) Ragged {
	return Ragged{kind: FullColumn, data: data, offsets: offsets, rows: len(offsets)}
}

// NewConstantRagged builds a constant ragged column: one sequence replicated
// over the given logical row count.
func NewConstantRagged(sequence []Key, rows int) Ragged {
	return Ragged{
		kind:    ConstantValue,
		data:    sequence,
		offsets: []uint64{uint64(len(sequence))},
		rows:    rows,
	}
}

// Kind returns the operand shape of the column.
func (r Ragged) Kind() ColumnKind { return r.kind }

// Rows returns the logical row count.
func (r Ragged) Rows() int { return r.rows }

// Data returns the flat key array. For a constant column this is the single
// underlying sequence, stored once.
func (r Ragged) Data() []Key { return r.data }

// Offsets returns the cumulative per-row end offsets. For a constant column
// there is exactly one offset, covering the single stored sequence.
func (r Ragged) Offsets() []uint64 { return r.offsets }

// Row returns a view of row i's sequence. Callers must not mutate it.
func (r Ragged) Row(i int) []Key {
	if r.kind == ConstantValue {
		return r.data
	}
	var start uint64
	if i > 0 {
		start = r.offsets[i-1]
	}
	return r.data[start:r.offsets[i]]
}

// Contains reports whether key appears in row i's sequence.
func (r Ragged) Contains(i int, key Key) bool {
	for _, k := range r.Row(i) {
		if k == key {
			return true
		}
	}
	return false
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (r Ragged) MarshalZerologObject(e *zerolog.Event) {
	e.Stringer("kind", r.kind).Int("rows", r.rows).Int("flatLen", len(r.data))
}
