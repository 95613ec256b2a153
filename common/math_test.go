package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(0), Lerp(0, 10, 0))
	assert.Equal(t, float32(5), Lerp(0, 10, 0.5))
	assert.Equal(t, float32(10), Lerp(0, 10, 1))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, float32(0), Clamp01(-2))
	assert.Equal(t, float32(0.25), Clamp01(0.25))
	assert.Equal(t, float32(1), Clamp01(3))
}
