package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatEntryNumber returns an entry number like "VT-2025-0001".
func FormatEntryNumber(journalCode string, fiscalYear int, sequence int64) string {
	return fmt.Sprintf("%s-%04d-%04d", journalCode, fiscalYear, sequence)
}

// ParseEntryNumber parses "VT-2025-0001" into its journal code, fiscal year and sequence.
func ParseEntryNumber(number string) (journalCode string, fiscalYear int, sequence int64, err error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] == "" {
		return "", 0, 0, fmt.Errorf("invalid entry number format: %q", number)
	}

	fiscalYear, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid fiscal year in entry number %q: %w", number, err)
	}

	sequence, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("invalid sequence in entry number %q: %w", number, err)
	}
	if sequence < 1 {
		return "", 0, 0, fmt.Errorf("invalid sequence in entry number %q: must be positive", number)
	}

	return parts[0], fiscalYear, sequence, nil
}
