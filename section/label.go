package section

import (
	"fmt"

	"github.com/odysseytools/gff/errs"
)

// ValidateLabel checks that a field label fits the fixed-width label table.
//
// Labels are at most 16 bytes and must not be empty. The limit is a byte
// limit, not a rune limit.
//
// Returns:
//   - error: ErrEmptyLabel or ErrLabelTooLong
func ValidateLabel(label string) error {
	if label == "" {
		return errs.ErrEmptyLabel
	}
	if len(label) > MaxLabelLen {
		return fmt.Errorf("%w: %q is %d bytes", errs.ErrLabelTooLong, label, len(label))
	}

	return nil
}

// ValidateResRef checks that a resource reference fits its 1-byte-length,
// 16-byte-max wire layout. Empty resource references are allowed.
//
// Returns:
//   - error: ErrResRefTooLong
func ValidateResRef(resref string) error {
	if len(resref) > MaxResRefLen {
		return fmt.Errorf("%w: %q is %d bytes", errs.ErrResRefTooLong, resref, len(resref))
	}

	return nil
}

// ParseLabel decodes one 16-byte label table entry, stripping the trailing
// null padding.
//
// Parameters:
//   - data: Byte slice containing the entry (must be exactly 16 bytes)
//
// Returns:
//   - string: Decoded label
//   - error: ErrTruncated if data is not 16 bytes
func ParseLabel(data []byte) (string, error) {
	if len(data) != LabelSize {
		return "", errs.ErrTruncated
	}

	end := LabelSize
	for end > 0 && data[end-1] == 0 {
		end--
	}

	return string(data[:end]), nil
}

// AppendLabel appends one 16-byte null-padded label table entry to dst.
//
// Returns:
//   - []byte: dst with the entry appended
//   - error: ErrEmptyLabel or ErrLabelTooLong
func AppendLabel(dst []byte, label string) ([]byte, error) {
	if err := ValidateLabel(label); err != nil {
		return dst, err
	}

	dst = append(dst, label...)
	for i := len(label); i < LabelSize; i++ {
		dst = append(dst, 0)
	}

	return dst, nil
}
