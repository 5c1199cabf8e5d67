package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		want     string
	}{
		{"zero", 0, "USD", "$0.00"},
		{"whole dollars", 2000, "USD", "$20.00"},
		{"with cents", 1999, "USD", "$19.99"},
		{"single cent", 1, "USD", "$0.01"},
		{"thousands grouping", 123456, "USD", "$1,234.56"},
		{"millions", 100000000, "USD", "$1,000,000.00"},
		{"negative", -1050, "USD", "-$10.50"},
		{"euro", 2000, "EUR", "€20.00"},
		{"unknown code", 2000, "SEK", "SEK 20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.currency))
		})
	}
}

func TestNew(t *testing.T) {
	m := New(1000, "USD")
	assert.EqualValues(t, 1000, m.Amount)
	assert.Equal(t, "$10.00", m.Formatted)
}
