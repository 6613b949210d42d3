package section

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odysseytools/gff/errs"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		wantErr error
	}{
		{"short label", "Tag", nil},
		{"exactly 16 bytes", strings.Repeat("a", 16), nil},
		{"17 bytes", strings.Repeat("a", 17), errs.ErrLabelTooLong},
		{"empty", "", errs.ErrEmptyLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.label)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateResRef(t *testing.T) {
	require.NoError(t, ValidateResRef(""))
	require.NoError(t, ValidateResRef("n_minsc"))
	require.NoError(t, ValidateResRef(strings.Repeat("r", 16)))
	require.ErrorIs(t, ValidateResRef(strings.Repeat("r", 17)), errs.ErrResRefTooLong)
}

func TestLabelRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		label string
	}{
		{"short", "Tag"},
		{"exactly 16 bytes", strings.Repeat("x", 16)},
		{"single byte", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := AppendLabel(nil, tt.label)
			require.NoError(t, err)
			require.Len(t, data, LabelSize)

			got, err := ParseLabel(data)
			require.NoError(t, err)
			assert.Equal(t, tt.label, got)
		})
	}
}

func TestAppendLabelPadsWithNulls(t *testing.T) {
	data, err := AppendLabel(nil, "Tag")
	require.NoError(t, err)

	assert.Equal(t, []byte("Tag"), data[0:3])
	for i := 3; i < LabelSize; i++ {
		assert.Zero(t, data[i])
	}
}

func TestAppendLabelTooLong(t *testing.T) {
	_, err := AppendLabel(nil, strings.Repeat("a", 17))
	require.ErrorIs(t, err, errs.ErrLabelTooLong)
}

func TestParseLabelTruncated(t *testing.T) {
	_, err := ParseLabel(make([]byte, LabelSize-1))
	require.ErrorIs(t, err, errs.ErrTruncated)
}
