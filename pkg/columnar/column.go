package columnar

import (
	"github.com/rs/zerolog"
)

// Key is the surrogate identifier used to address a dictionary entry.
//
// The zero value is reserved: it means "no parent" when returned from a
// parent lookup, and a hierarchy walk must never look it up.
type Key uint64

// RootKey is the reserved identifier terminating every ancestor chain.
const RootKey Key = 0

// ColumnKind distinguishes the two operand shapes a block can hand to a
// dictionary function: a full per-row column, or a single value logically
// repeated across every row.
type ColumnKind int

const (
	// FullColumn holds one value per row.
	FullColumn ColumnKind = iota

	// ConstantValue holds a single value repeated over all rows.
	ConstantValue
)

func (ck ColumnKind) String() string {
	if ck == ConstantValue {
		return "constant"
	}
	return "vector"
}

// KeyColumn is a column of keys in one of the two operand shapes. The shape
// is resolved once, at construction, so downstream code dispatches on Kind
// rather than re-inspecting values.
type KeyColumn struct {
	kind   ColumnKind
	values []Key
	value  Key
	rows   int
}

// NewKeyVector wraps a per-row slice of keys. The column takes ownership of
// the slice; callers must not mutate it afterward.
func NewKeyVector(values []Key) KeyColumn {
	return KeyColumn{kind: FullColumn, values: values, rows: len(values)}
}

// NewKeyConstant builds a constant column of the given logical row count.
func NewKeyConstant(value Key, rows int) KeyColumn {
	return KeyColumn{kind: ConstantValue, value: value, rows: rows}
}

// Kind returns the operand shape of the column.
func (kc KeyColumn) Kind() ColumnKind { return kc.kind }

// Rows returns the logical row count of the column.
func (kc KeyColumn) Rows() int { return kc.rows }

// IsConstant is shorthand for Kind() == ConstantValue.
func (kc KeyColumn) IsConstant() bool { return kc.kind == ConstantValue }

// Values returns the backing slice of a FullColumn. For a ConstantValue
// column it returns nil; use Constant instead.
func (kc KeyColumn) Values() []Key { return kc.values }

// Constant returns the repeated value of a ConstantValue column. For a
// FullColumn it returns RootKey; use Values instead.
func (kc KeyColumn) Constant() Key { return kc.value }

// At returns the key at logical row i, regardless of shape.
func (kc KeyColumn) At(i int) Key {
	if kc.kind == ConstantValue {
		return kc.value
	}
	return kc.values[i]
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (kc KeyColumn) MarshalZerologObject(e *zerolog.Event) {
	e.Stringer("kind", kc.kind).Int("rows", kc.rows)
	if kc.kind == ConstantValue {
		e.Uint64("value", uint64(kc.value))
	}
}

// BoolColumn is a column of booleans in one of the two operand shapes. It is
// the result type of ancestry tests: vector inputs produce a FullColumn,
// constant×constant inputs produce a ConstantValue broadcast.
type BoolColumn struct {
	kind   ColumnKind
	values []bool
	value  bool
	rows   int
}

// NewBoolVector wraps a per-row slice of booleans.
func NewBoolVector(values []bool) BoolColumn {
	return BoolColumn{kind: FullColumn, values: values, rows: len(values)}
}

// NewBoolConstant builds a constant boolean column of the given row count.
func NewBoolConstant(value bool, rows int) BoolColumn {
	return BoolColumn{kind: ConstantValue, value: value, rows: rows}
}

// Kind returns the operand shape of the column.
func (bc BoolColumn) Kind() ColumnKind { return bc.kind }

// Rows returns the logical row count of the column.
func (bc BoolColumn) Rows() int { return bc.rows }

// Values returns the backing slice of a FullColumn, or nil for a constant.
func (bc BoolColumn) Values() []bool { return bc.values }

// Constant returns the repeated value of a ConstantValue column.
func (bc BoolColumn) Constant() bool { return bc.value }

// At returns the boolean at logical row i, regardless of shape.
func (bc BoolColumn) At(i int) bool {
	if bc.kind == ConstantValue {
		return bc.value
	}
	return bc.values[i]
}
