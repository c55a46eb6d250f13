package hierarchy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/querykit/dicthier/pkg/columnar"
)

var testParents = map[columnar.Key]columnar.Key{
	// 1 ← 2 ← 4, 1 ← 3, and a detached 6 ↔ 7 cycle.
	2: 1, 3: 1, 4: 2, 6: 7, 7: 6,
}

func TestIsAncestorShapeDispatch(t *testing.T) {
	children := []columnar.Key{4, 3, 6}
	ancestors := []columnar.Key{1, 2, 7}

	tcs := []struct {
		name     string
		child    columnar.KeyColumn
		ancestor columnar.KeyColumn
		expected columnar.BoolColumn
		calls    func(f *fakeBackend) int
	}{
		{
			"vector vector",
			columnar.NewKeyVector(children),
			columnar.NewKeyVector(ancestors),
			columnar.NewBoolVector([]bool{true, false, true}),
			func(f *fakeBackend) int { return f.vvCalls },
		},
		{
			"vector constant",
			columnar.NewKeyVector(children),
			columnar.NewKeyConstant(1, 3),
			columnar.NewBoolVector([]bool{true, true, false}),
			func(f *fakeBackend) int { return f.vcCalls },
		},
		{
			"constant vector",
			columnar.NewKeyConstant(4, 3),
			columnar.NewKeyVector(ancestors),
			columnar.NewBoolVector([]bool{true, true, false}),
			func(f *fakeBackend) int { return f.cvCalls },
		},
		{
			"constant constant",
			columnar.NewKeyConstant(4, 3),
			columnar.NewKeyConstant(1, 3),
			columnar.NewBoolConstant(true, 3),
			func(f *fakeBackend) int { return f.ccCalls },
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			backend := &fakeBackend{parents: testParents}
			result, err := NewTester(backend).IsAncestor(context.Background(), tc.child, tc.ancestor)
			require.NoError(t, err)

			require.Equal(t, tc.expected.Kind(), result.Kind())
			require.Equal(t, tc.expected.Rows(), result.Rows())
			for i := 0; i < result.Rows(); i++ {
				require.Equal(t, tc.expected.At(i), result.At(i), "row %d", i)
			}
			require.Equal(t, 1, tc.calls(backend), "wrong backend primitive invoked")
		})
	}
}

func TestIsAncestorRowCountMismatch(t *testing.T) {
	backend := &fakeBackend{parents: testParents}
	_, err := NewTester(backend).IsAncestor(
		context.Background(),
		columnar.NewKeyVector([]columnar.Key{1, 2}),
		columnar.NewKeyVector([]columnar.Key{1}),
	)

	require.Error(t, err)
	require.ErrorAs(t, err, &ErrShapeMismatch{})
	require.Zero(t, backend.vvCalls)
}

func TestIsAncestorNoHierarchy(t *testing.T) {
	backend := &fakeBackend{noHierarchy: true}
	_, err := NewTester(backend).IsAncestor(
		context.Background(),
		columnar.NewKeyConstant(1, 1),
		columnar.NewKeyConstant(2, 1),
	)

	require.Error(t, err)
	require.ErrorAs(t, err, &ErrNoHierarchy{})
	require.Zero(t, backend.ccCalls)
}

// TestIsAncestorAgreesWithExpand checks that the tester's answers match
// membership in the chains the expander computes, over every key pair of a
// hierarchy that includes cycles.
func TestIsAncestorAgreesWithExpand(t *testing.T) {
	keys := []columnar.Key{0, 1, 2, 3, 4, 5, 6, 7}

	backend := &fakeBackend{parents: testParents}
	expander := NewExpander(backend)
	tester := NewTester(backend)

	for _, child := range keys {
		chains, err := expander.Expand(context.Background(), []columnar.Key{child})
		require.NoError(t, err)

		for _, ancestor := range keys {
			result, err := tester.IsAncestor(
				context.Background(),
				columnar.NewKeyConstant(child, 1),
				columnar.NewKeyConstant(ancestor, 1),
			)
			require.NoError(t, err)

			expected := ancestor != columnar.RootKey && chains.Contains(0, ancestor)
			require.Equal(t, expected, result.Constant(), "child=%d ancestor=%d", child, ancestor)
		}
	}
}
