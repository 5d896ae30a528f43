// internal/marketplace/convert.go
package marketplace

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizePrice strips a free-text feed price down to its integer rouble
// part: everything from the first '.' on is dropped (cents, currency text),
// then every non-ASCII-digit is removed from what is left.
//
//	"5'990.00 руб." -> "5990"
//
// A string without digits normalizes to "".
func NormalizePrice(price string) string {
	whole, _, _ := strings.Cut(price, ".")
	var b strings.Builder
	b.Grow(len(whole))
	for i := 0; i < len(whole); i++ {
		if c := whole[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ParsePrice normalizes and converts to an integer. A price that normalizes
// to the empty string is an error rather than a silent zero: pushing a
// 0-rouble price to a live marketplace is worse than aborting the pass.
func ParsePrice(price string) (int, error) {
	n := NormalizePrice(price)
	if n == "" {
		return 0, fmt.Errorf("price %q has no digits", price)
	}
	v, err := strconv.Atoi(n)
	if err != nil {
		return 0, fmt.Errorf("price %q: %w", price, err)
	}
	return v, nil
}

// Sentinel quantities in the feed. ">10" means "plenty" and is reported as
// 100; "1" is the supplier's way of flagging a display sample and is
// reported as 0.
const (
	qtyPlenty = ">10"
	qtySample = "1"
)

// ResolveCount maps a feed quantity string to the stock count submitted to
// the marketplaces. Non-sentinel values must parse as integers.
func ResolveCount(quantity string) (int, error) {
	switch quantity {
	case qtyPlenty:
		return 100, nil
	case qtySample:
		return 0, nil
	}
	n, err := strconv.Atoi(quantity)
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", quantity, err)
	}
	return n, nil
}
