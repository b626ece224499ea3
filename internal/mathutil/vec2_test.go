package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2(t *testing.T) {
	a, b := Vec2{3, -2}, Vec2{0.5, 4}

	assert.Equal(t, Vec2{3.5, 2}, a.Add(b))
	assert.Equal(t, Vec2{2.5, -6}, a.Sub(b))
	assert.Equal(t, Vec2{6, -4}, a.Scale(2))
	assert.Equal(t, Vec2{1.5, -8}, a.Mul(b))
	assert.Equal(t, 13.0, a.Cross(b))

	x, y := Vec2{2.5, -1.4}.Round()
	assert.Equal(t, 3, x)
	assert.Equal(t, -1, y)

	assert.Equal(t, Vec2{0, 4}, Vec2{-1, 9}.Clamp(Vec2{0, 0}, Vec2{4, 4}))
}
