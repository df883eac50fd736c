package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@petly.dev", NormalizeEmail("  Ana@Petly.DEV "))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 20, ClampLimit(0, 20, 100))
	assert.Equal(t, 100, ClampLimit(500, 20, 100))
	assert.Equal(t, 5, ClampLimit(5, 20, 100))
}
