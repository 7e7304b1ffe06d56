package services

import (
	"testing"

	"github.com/condovia/condovia-api/internal/money"
	"github.com/stretchr/testify/assert"
)

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		amount   string
		expected string
	}{
		{"0", "CERO LEMPIRAS CON 00/100"},
		{"15000", "QUINCE MIL LEMPIRAS CON 00/100"},
		{"1500.50", "MIL QUINIENTOS LEMPIRAS CON 50/100"},
		{"121", "CIENTO VEINTIUNO LEMPIRAS CON 00/100"},
		{"1000000", "UN MILLÓN LEMPIRAS CON 00/100"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AmountToWords(money.MustFromString(tt.amount)), tt.amount)
	}
}
