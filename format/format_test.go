package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := map[int]string{
		0:         "0",
		999:       "999",
		1_000:     "1,000",
		10_000:    "10,000",
		50_000:    "50,000",
		100_000:   "100,000",
		1_234_567: "1,234,567",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatCurrency(in))
	}
}

func TestFormatCurrencyDouble(t *testing.T) {
	assert.Equal(t, "1,500", FormatCurrencyDouble(1_500.5))
	assert.Equal(t, "11,500", FormatCurrencyDouble(11_500.99))
	assert.Equal(t, "10,000", FormatCurrencyDouble(10_000.0))
	assert.Equal(t, "1,234", FormatCurrencyDouble(1_234.4))
}

func TestFormatDate(t *testing.T) {
	d := time.Unix(1_700_000_000, 0).UTC()
	assert.Equal(t, "Nov 14, 2023", FormatDate(d))
}
