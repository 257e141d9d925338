package common

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	EtherDecimals = 18 // wei per ether = 10^18
)

var errEmptyAmount = errors.New("empty string")

// WeiToEther converts wei to an ether string without float precision loss.
// Trailing zeros of the fraction are dropped but one digit is always kept: 10^18 → "1.0"
func WeiToEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	return formatWithDecimals(wei, EtherDecimals)
}

// EtherToWei converts an ether string ("1.5", "0.000001") to wei without float precision loss
func EtherToWei(ether string) (*big.Int, error) {
	return parseWithDecimals(ether, EtherDecimals)
}

// ParseBaseUnits parses an integer amount already expressed in base units.
// Accepts decimal ("1000") and hex ("0x3e8") notation, like a BigNumberish string.
func ParseBaseUnits(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errEmptyAmount
	}

	n := new(big.Int)
	var ok bool
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		_, ok = n.SetString(s[2:], 16)
	} else {
		_, ok = n.SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("invalid BigNumberish string: %q", s)
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("value out of range: %s", s)
	}
	return n, nil
}

// FormatFiat multiplies an ether amount by a fiat rate for display (2 decimals).
// Uses float: display only, never feed the result back into a transaction.
func FormatFiat(ether, rate string) (string, error) {
	etherFloat, err := strconv.ParseFloat(ether, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse amount '%s': %w", ether, err)
	}
	rateFloat, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse rate '%s': %w", rate, err)
	}
	return fmt.Sprintf("%.2f", etherFloat*rateFloat), nil
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(2500000000000000000, 18) = "2.5"
func formatWithDecimals(value *big.Int, decimals int) string {
	negative := value.Sign() < 0
	s := new(big.Int).Abs(value).String()

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	pos := len(s) - decimals
	whole, frac := s[:pos], strings.TrimRight(s[pos:], "0")
	if frac == "" {
		frac = "0"
	}

	if negative {
		whole = "-" + whole
	}
	return whole + "." + frac
}

// parseWithDecimals converts decimal string to integer by removing decimal point
// Example: parseWithDecimals("2.5", 18) = 2500000000000000000
func parseWithDecimals(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errEmptyAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	if whole == "" {
		whole = "0"
	}

	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}

	// Extra precision is only accepted when it is all zeros
	if len(frac) > decimals {
		if strings.Trim(frac[decimals:], "0") != "" {
			return nil, fmt.Errorf("too many decimals: max %d", decimals)
		}
		frac = frac[:decimals]
	}
	frac += strings.Repeat("0", decimals-len(frac))

	for _, r := range whole + frac {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("invalid decimal format")
		}
	}

	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal format")
	}
	return n, nil
}
