package constant_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sourcelang/slc/internal/constant"
	"github.com/sourcelang/slc/internal/types"
)

// TestUnsignedCompareUsesUnsignedView guards against comparing the
// Value.I sign-extended view of a u64 past math.MaxInt64: 5 must
// compare less than MaxUint64 even though int64(MaxUint64) is -1.
func TestUnsignedCompareUsesUnsignedView(t *testing.T) {
	small := constant.Uint(types.KindU64, 5)
	big := constant.Uint(types.KindU64, math.MaxUint64)

	assert.Equal(t, -1, constant.CompareOrder(small, big))
	assert.Equal(t, 1, constant.CompareOrder(big, small))
	assert.Equal(t, 0, constant.CompareOrder(big, big))

	assert.False(t, constant.CompareEq(small, big).B)
	assert.True(t, constant.CompareEq(big, big).B)
	assert.True(t, constant.CompareNeq(small, big).B)
}

func TestSignedCompareStillUsesSignedView(t *testing.T) {
	neg := constant.Int(types.KindI64, -1)
	pos := constant.Int(types.KindI64, 5)

	assert.Equal(t, -1, constant.CompareOrder(neg, pos))
	assert.Equal(t, 1, constant.CompareOrder(pos, neg))
	assert.False(t, constant.CompareEq(neg, pos).B)
}

func TestFloatCompareUnaffectedByUnsignedBranch(t *testing.T) {
	lo := constant.Float(types.KindF64, 1.5)
	hi := constant.Float(types.KindF64, 2.5)

	assert.Equal(t, -1, constant.CompareOrder(lo, hi))
	assert.True(t, constant.CompareNeq(lo, hi).B)
}
