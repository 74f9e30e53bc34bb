package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEntryNumber(t *testing.T) {
	assert.Equal(t, "VT-2025-0001", FormatEntryNumber("VT", 2025, 1))
	assert.Equal(t, "OD-2024-0042", FormatEntryNumber("OD", 2024, 42))
	assert.Equal(t, "BQ-2025-12345", FormatEntryNumber("BQ", 2025, 12345))
}

func TestParseEntryNumber(t *testing.T) {
	code, year, seq, err := ParseEntryNumber("VT-2025-0007")
	require.NoError(t, err)
	assert.Equal(t, "VT", code)
	assert.Equal(t, 2025, year)
	assert.Equal(t, int64(7), seq)

	code, year, seq, err = ParseEntryNumber(FormatEntryNumber("AC", 2026, 10001))
	require.NoError(t, err)
	assert.Equal(t, "AC", code)
	assert.Equal(t, 2026, year)
	assert.Equal(t, int64(10001), seq)
}

func TestParseEntryNumberRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "VT-2025", "-2025-0001", "VT-XXXX-0001", "VT-2025-abc", "VT-2025-0000"} {
		_, _, _, err := ParseEntryNumber(input)
		assert.Error(t, err, input)
	}
}
