package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// precision is the number of fractional digits Money carries. Rounding at
// the I/O boundary (parsing and formatting) always targets this precision;
// internal arithmetic never rounds.
const precision int32 = 4

// scaleLimit bounds Money to the range a signed 64-bit value scaled to
// 4dp can represent — comfortably more than any realistic account, per
// spec.md §9 ("Monetary type"). CheckedAdd/CheckedSub reject results
// outside this range rather than letting Money grow unbounded.
var scaleLimit = decimal.New(1<<62, -precision)

var (
	// ErrMoneyOverflow is returned by checked arithmetic when a result would
	// exceed Money's representable range.
	ErrMoneyOverflow = errors.New("money: result out of range")
	// ErrMoneyParse is returned when a decimal string cannot be parsed as Money.
	ErrMoneyParse = errors.New("money: invalid decimal string")
	// ErrMoneyNegative is returned when a negative value is parsed in a
	// context that forbids it (deposit/withdrawal amounts on input).
	ErrMoneyNegative = errors.New("money: value must not be negative")
)

// Money is a signed decimal carrying exactly 4 fractional digits of
// precision internally. It deliberately does not implement fmt.Stringer:
// the only sanctioned way to render one is FormatFixed, so that a stray
// %v/%s in a log statement can't leak an exact client balance. Use
// Money.Decimal() when a caller genuinely needs the underlying value (tests
// only).
type Money struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Money{d: decimal.Zero}

// ParseAmount parses a decimal string for a deposit/withdrawal amount. It
// applies bankers' rounding to 4dp (spec.md §4.1, §6) and rejects a
// malformed or negative decimal. Zero (including a value that rounds to
// zero) is accepted; callers check amount > 0 themselves.
func ParseAmount(s string) (Money, error) {
	m, err := ParseSigned(s)
	if err != nil {
		return Zero, err
	}
	if m.d.IsNegative() {
		return Zero, ErrMoneyNegative
	}
	return m, nil
}

// ParseSigned parses a decimal string allowing negative values, applying
// the same 4dp bankers' rounding. Used for contexts where sign is
// validated by the caller rather than by parsing (none in this engine
// today, but kept distinct from ParseAmount so the positivity check stays
// explicit at call sites).
func ParseSigned(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %s", ErrMoneyParse, err)
	}
	return Money{d: d.RoundBank(precision)}, nil
}

// FormatFixed renders the amount with exactly 4 fractional digits,
// trailing zeros preserved, per spec.md §6.
func (m Money) FormatFixed() string {
	return m.d.StringFixedBank(precision)
}

// IsNegative reports whether the value is strictly below zero.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsPositive reports whether the value is strictly above zero.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.d.LessThan(other.d)
}

// Equal reports exact equality.
func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

// CheckedAdd returns m + other, or ErrMoneyOverflow if the result would
// fall outside Money's representable range.
func CheckedAdd(m, other Money) (Money, error) {
	sum := m.d.Add(other.d)
	if sum.GreaterThan(scaleLimit) || sum.LessThan(scaleLimit.Neg()) {
		return Zero, ErrMoneyOverflow
	}
	return Money{d: sum}, nil
}

// CheckedSub returns m - other, or ErrMoneyOverflow if the result would
// fall outside Money's representable range. Unlike ordinary withdrawal
// semantics (which reject a negative result before calling this), CheckedSub
// itself permits negative results — e.g. a dispute of a deposit whose funds
// were already withdrawn (spec.md §4.3) — and only rejects true overflow.
func CheckedSub(m, other Money) (Money, error) {
	diff := m.d.Sub(other.d)
	if diff.GreaterThan(scaleLimit) || diff.LessThan(scaleLimit.Neg()) {
		return Zero, ErrMoneyOverflow
	}
	return Money{d: diff}, nil
}

// Decimal exposes the underlying decimal.Decimal for test assertions only.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}
