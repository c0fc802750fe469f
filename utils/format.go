package utils

import (
	"strconv"
	"strings"
)

var bengaliDigits = [10]rune{'০', '১', '২', '৩', '৪', '৫', '৬', '৭', '৮', '৯'}

// ToBengaliDigits replaces ASCII digits with Bengali numerals and leaves
// every other character untouched.
func ToBengaliDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(bengaliDigits[r-'0'])
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatTaka renders an amount of whole Taka with the currency symbol,
// Bengali numerals and Bangladeshi digit grouping (1,50,000 style).
func FormatTaka(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "৳" + ToBengaliDigits(groupTaka(strconv.Itoa(amount)))
}

// groupTaka inserts lakh-style separators: the last three digits form one
// group, every group above it holds two.
func groupTaka(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	groups := []string{tail}
	for len(head) > 2 {
		groups = append(groups, head[len(head)-2:])
		head = head[:len(head)-2]
	}
	groups = append(groups, head)
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return strings.Join(groups, ",")
}
