package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPEN(t *testing.T) {
	assert.Equal(t, "S/. 123.45", FormatPEN(12345))
	assert.Equal(t, "S/. 0.00", FormatPEN(0))
	assert.Equal(t, "S/. 0.05", FormatPEN(5))
	assert.Equal(t, "S/. 1500.00", FormatPEN(150000))
	assert.Equal(t, "-S/. 20.00", FormatPEN(-2000))
}
