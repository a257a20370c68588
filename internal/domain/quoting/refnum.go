package quoting

import (
	"fmt"
	"strings"
	"unicode"
)

const referenceNumberPrefix = "QT-"

// FormatReferenceNumber derives the customer-facing reference for a quote:
// QT-{year}{id zero-padded to at least 4 digits}. The quote id is the
// committed primary key, so the value can only be computed after insert.
func FormatReferenceNumber(year int, quoteID uint64) string {
	return fmt.Sprintf("%s%d%04d", referenceNumberPrefix, year, quoteID)
}

// ParseReferenceNumber checks the QT-YYYY#### shape without recovering the
// quote id; the suffix padding makes year/id boundaries ambiguous for large
// ids, so lookups always go through storage.
func ParseReferenceNumber(ref string) error {
	trimmed := strings.TrimSpace(ref)
	if !strings.HasPrefix(trimmed, referenceNumberPrefix) {
		return fmt.Errorf("%w: %q", ErrInvalidReferenceNumber, ref)
	}

	digits := strings.TrimPrefix(trimmed, referenceNumberPrefix)
	// Four year digits plus at least four sequence digits.
	if len(digits) < 8 {
		return fmt.Errorf("%w: %q", ErrInvalidReferenceNumber, ref)
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%w: %q", ErrInvalidReferenceNumber, ref)
		}
	}
	return nil
}
