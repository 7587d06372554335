package core

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// MustFeeRate parses a fee rate constant. It panics on malformed input, so it
// is only meant for package-level constants.
func MustFeeRate(s string) *apd.Decimal {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("invalid fee rate %q: %v", s, err))
	}
	if d.Negative {
		panic(fmt.Sprintf("negative fee rate %q", s))
	}
	return d
}

// QuantityIncludingFee returns quantity * (1 + fee).
func QuantityIncludingFee(quantity, fee *apd.Decimal) (*apd.Decimal, error) {
	var factor, out apd.Decimal
	if _, err := apd.BaseContext.Add(&factor, apd.New(1, 0), fee); err != nil {
		return nil, fmt.Errorf("fee factor: %w", err)
	}
	if _, err := apd.BaseContext.Mul(&out, quantity, &factor); err != nil {
		return nil, fmt.Errorf("apply fee: %w", err)
	}
	return &out, nil
}
