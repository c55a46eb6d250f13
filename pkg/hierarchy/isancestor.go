package hierarchy

import (
	"context"

	"github.com/querykit/dicthier/internal/logging"
	"github.com/querykit/dicthier/pkg/columnar"
	"github.com/querykit/dicthier/pkg/dictionary"
)

// NewTester returns a Tester reading the given dictionary backend.
func NewTester(dict dictionary.Hierarchy) *Tester {
	return &Tester{dict: dict}
}

// Tester answers "is key A a descendant of key B" over paired operands. It
// holds no traversal logic of its own: it resolves the operand shapes once
// and dispatches to the matching batched backend primitive. Its results
// agree with the Expander: IsAncestor(c, a) is true iff a appears in the
// chain Expand would produce for c.
type Tester struct {
	dict dictionary.Hierarchy
}

// IsAncestor tests, row-aligned, whether ancestor appears in child's
// ancestor chain. The result is a full column whenever either operand is a
// full column, and a constant broadcast when both operands are constants.
// Two full-column operands must agree on row count.
func (t *Tester) IsAncestor(ctx context.Context, child, ancestor columnar.KeyColumn) (columnar.BoolColumn, error) {
	if !t.dict.HasHierarchy() {
		return columnar.BoolColumn{}, NewNoHierarchyErr()
	}

	logging.Ctx(ctx).Trace().Object("child", child).Object("ancestor", ancestor).Send()

	switch {
	case !child.IsConstant() && !ancestor.IsConstant():
		if child.Rows() != ancestor.Rows() {
			return columnar.BoolColumn{}, NewShapeMismatchErr(child.Rows(), ancestor.Rows())
		}
		out, err := t.dict.IsInVectorVector(ctx, child.Values(), ancestor.Values())
		if err != nil {
			return columnar.BoolColumn{}, NewLookupFailureErr(err)
		}
		return columnar.NewBoolVector(out), nil

	case !child.IsConstant() && ancestor.IsConstant():
		out, err := t.dict.IsInVectorConstant(ctx, child.Values(), ancestor.Constant())
		if err != nil {
			return columnar.BoolColumn{}, NewLookupFailureErr(err)
		}
		return columnar.NewBoolVector(out), nil

	case child.IsConstant() && !ancestor.IsConstant():
		out, err := t.dict.IsInConstantVector(ctx, child.Constant(), ancestor.Values())
		if err != nil {
			return columnar.BoolColumn{}, NewLookupFailureErr(err)
		}
		return columnar.NewBoolVector(out), nil

	default:
		res, err := t.dict.IsInConstantConstant(ctx, child.Constant(), ancestor.Constant())
		if err != nil {
			return columnar.BoolColumn{}, NewLookupFailureErr(err)
		}
		return columnar.NewBoolConstant(res, child.Rows()), nil
	}
}
