package columnar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyColumnShapes(t *testing.T) {
	vec := NewKeyVector([]Key{7, 8, 9})
	require.Equal(t, FullColumn, vec.Kind())
	require.False(t, vec.IsConstant())
	require.Equal(t, 3, vec.Rows())
	require.Equal(t, Key(8), vec.At(1))

	constant := NewKeyConstant(5, 100)
	require.Equal(t, ConstantValue, constant.Kind())
	require.True(t, constant.IsConstant())
	require.Equal(t, 100, constant.Rows())
	require.Equal(t, Key(5), constant.At(0))
	require.Equal(t, Key(5), constant.At(99))
	require.Equal(t, Key(5), constant.Constant())
}

func TestRaggedRows(t *testing.T) {
	// Three rows of lengths 2, 0 and 3.
	r := NewRagged([]Key{1, 2, 9, 8, 7}, []uint64{2, 2, 5})

	require.Equal(t, 3, r.Rows())
	require.Equal(t, []Key{1, 2}, r.Row(0))
	require.Empty(t, r.Row(1))
	require.Equal(t, []Key{9, 8, 7}, r.Row(2))

	require.True(t, r.Contains(0, 2))
	require.False(t, r.Contains(1, 2))
	require.True(t, r.Contains(2, 7))
}

func TestConstantRagged(t *testing.T) {
	r := NewConstantRagged([]Key{4, 2, 1}, 50)

	require.Equal(t, ConstantValue, r.Kind())
	require.Equal(t, 50, r.Rows())
	require.Equal(t, []uint64{3}, r.Offsets())
	for _, i := range []int{0, 25, 49} {
		require.Equal(t, []Key{4, 2, 1}, r.Row(i))
		require.True(t, r.Contains(i, 2))
		require.False(t, r.Contains(i, 3))
	}
}

func TestBoolColumnShapes(t *testing.T) {
	vec := NewBoolVector([]bool{true, false})
	require.Equal(t, FullColumn, vec.Kind())
	require.Equal(t, 2, vec.Rows())
	require.True(t, vec.At(0))
	require.False(t, vec.At(1))

	constant := NewBoolConstant(true, 7)
	require.Equal(t, ConstantValue, constant.Kind())
	require.Equal(t, 7, constant.Rows())
	require.True(t, constant.At(6))
	require.True(t, constant.Constant())
}
