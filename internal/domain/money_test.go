package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount_BankersRounding(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"round down at even digit", "1.00005", "1.0000"},
		{"round up at odd digit", "1.00015", "1.0002"},
		{"exact already at precision", "42.1234", "42.1234"},
		{"trailing zero padding", "7", "7.0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.FormatFixed())
		})
	}
}

func TestParseAmount_RejectsNegative(t *testing.T) {
	_, err := ParseAmount("-5.00")
	assert.ErrorIs(t, err, ErrMoneyNegative)
}

func TestParseAmount_RejectsMalformed(t *testing.T) {
	_, err := ParseAmount("not-a-number")
	assert.Error(t, err)
}

func TestParseSigned_AllowsNegative(t *testing.T) {
	m, err := ParseSigned("-3.5")
	require.NoError(t, err)
	assert.True(t, m.IsNegative())
}

func TestCheckedAdd(t *testing.T) {
	a, _ := ParseAmount("10.5")
	b, _ := ParseAmount("2.25")
	sum, err := CheckedAdd(a, b)
	require.NoError(t, err)
	assert.Equal(t, "12.7500", sum.FormatFixed())
}

func TestCheckedSub_AllowsNegativeResult(t *testing.T) {
	a, _ := ParseAmount("1.0")
	b, _ := ParseAmount("5.0")
	diff, err := CheckedSub(a, b)
	require.NoError(t, err)
	assert.True(t, diff.IsNegative())
	assert.Equal(t, "-4.0000", diff.FormatFixed())
}

func TestCheckedAdd_Overflow(t *testing.T) {
	// scaleLimit is (1<<62)*10^-4 ~= 4.61e14; summing two values just above
	// half that comfortably exceeds it.
	big, _ := ParseSigned("300000000000000")
	_, err := CheckedAdd(big, big)
	assert.ErrorIs(t, err, ErrMoneyOverflow)
}

func TestMoney_LessThanAndEqual(t *testing.T) {
	a, _ := ParseAmount("1.0")
	b, _ := ParseAmount("2.0")
	assert.True(t, a.LessThan(b))
	assert.False(t, a.Equal(b))
	c, _ := ParseAmount("1.0")
	assert.True(t, a.Equal(c))
}
