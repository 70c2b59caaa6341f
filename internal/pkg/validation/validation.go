package validation

import (
	"strings"
	"unicode/utf8"
)

// MaxBuyerNameLength bounds the free-text display name stored on each ledger entry.
const MaxBuyerNameLength = 120

// BuyerName trims surrounding whitespace from a buyer display name. ok is
// false when nothing is left or the name is longer than MaxBuyerNameLength.
func BuyerName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxBuyerNameLength {
		return "", false
	}
	return name, true
}
