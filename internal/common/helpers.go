package common

import (
	"fmt"
	"strconv"
)

const (
	SOLDecimals = 9 // SOL has 9 decimals (lamports)

	lamportsPerSOL = 1_000_000_000
	solscanAccount = "https://solscan.io/account/"
)

// LamportsToSOL converts lamports to SOL string without float precision loss
func LamportsToSOL(lamports uint64) string {
	return formatWithDecimals(lamports, SOLDecimals)
}

// LamportsToUSD values lamports at priceUSD per SOL, two decimals.
// Float is used for display only.
func LamportsToUSD(lamports uint64, priceUSD float64) string {
	sol := float64(lamports) / lamportsPerSOL
	return fmt.Sprintf("%.2f", sol*priceUSD)
}

// ShortAddress keeps n characters on each side: "EHqm...Zy7o".
func ShortAddress(address string, n int) string {
	if n <= 0 || len(address) <= 2*n {
		return address
	}
	return address[:n] + "..." + address[len(address)-n:]
}

// SolscanAccountURL links to the explorer page of address.
func SolscanAccountURL(address string) string {
	return solscanAccount + address
}

// FormatCompactUSD renders 1234567 as "$1.2M", 8400 as "$8.4K", 950 as "$950".
func FormatCompactUSD(v float64) string {
	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.1fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}
