package utils

import "strings"

// Flat delivery fees in whole Taka.
const (
	DeliveryFeeInsideDhaka  = 80
	DeliveryFeeOutsideDhaka = 150
)

// Area tags attached to orders.
const (
	AreaInsideDhaka  = "inside_dhaka"
	AreaOutsideDhaka = "outside_dhaka"
	AreaUnknown      = "outside"
)

var dhakaAreas = []string{
	"dhaka", "ঢাকা", "dhanmondi", "gulshan", "banani", "baridhara", "mirpur",
	"uttara", "mohammadpur", "bashundhara", "badda", "motijheel", "farmgate",
	"tejgaon", "khilgaon", "rampura", "malibagh", "mohakhali", "shyamoli",
	"mugda", "jatrabari", "demra", "savar", "keraniganj",
}

// DeliveryQuote classifies an address and returns the flat delivery fee with
// the matching area tag. The address is scanned case-insensitively for any
// known Dhaka-area name. This is the only place the fee rule lives.
func DeliveryQuote(address string) (int, string) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return DeliveryFeeOutsideDhaka, AreaUnknown
	}
	lowered := strings.ToLower(trimmed)
	for _, area := range dhakaAreas {
		if strings.Contains(lowered, area) {
			return DeliveryFeeInsideDhaka, AreaInsideDhaka
		}
	}
	return DeliveryFeeOutsideDhaka, AreaOutsideDhaka
}

// AreaLabel returns the Bengali display label for an area tag.
func AreaLabel(area string) string {
	if area == AreaInsideDhaka {
		return "ঢাকার ভিতরে"
	}
	return "ঢাকার বাইরে"
}
