package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSKU(t *testing.T) {
	assert.Equal(t, "USBC100", NormalizeSKU(" usb c-100 "))
	assert.Equal(t, "ABC123", NormalizeSKU("abc123"))
	assert.Equal(t, "", NormalizeSKU("   "))
	assert.Equal(t, "X9", NormalizeSKU("x-9"))
}
