package entities

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Currency identifies a supported deposit currency
type Currency string

const (
	CurrencyBTC       Currency = "BTC"
	CurrencyETH       Currency = "ETH"
	CurrencyUSDTERC20 Currency = "USDT-ERC20"
	CurrencyUSDTTRC20 Currency = "USDT-TRC20"
)

// SupportedCurrencies lists every currency deposits can be made in
var SupportedCurrencies = []Currency{
	CurrencyBTC,
	CurrencyETH,
	CurrencyUSDTERC20,
	CurrencyUSDTTRC20,
}

// IsValid reports whether the currency is supported
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyBTC, CurrencyETH, CurrencyUSDTERC20, CurrencyUSDTTRC20:
		return true
	}
	return false
}

// Precision returns the number of decimal places crypto amounts are
// rounded to for this currency: 8 for BTC, 6 for ETH and USDT classes.
func (c Currency) Precision() int32 {
	if c == CurrencyBTC {
		return 8
	}
	return 6
}

// UnitScale returns the divisor converting the chain's smallest unit
// (satoshi, wei, token base unit) to the display unit.
func (c Currency) UnitScale() decimal.Decimal {
	switch c {
	case CurrencyBTC:
		return decimal.New(1, 8) // satoshis
	case CurrencyETH:
		return decimal.New(1, 18) // wei
	default:
		return decimal.New(1, 6) // USDT base units
	}
}

// ConfirmationThreshold returns the confirmation count at which a
// matched deposit is considered final. TronGrid only reports a
// confirmed flag, so TRC20 finalizes at 1.
func (c Currency) ConfirmationThreshold() int {
	if c == CurrencyUSDTTRC20 {
		return 1
	}
	return 6
}

// PriceID returns the price-feed identifier for the currency
func (c Currency) PriceID() string {
	switch c {
	case CurrencyBTC:
		return "bitcoin"
	case CurrencyETH:
		return "ethereum"
	default:
		return "tether"
	}
}

var (
	btcAddressPattern  = regexp.MustCompile(`^(bc1[a-z0-9]{25,62}|[13][a-km-zA-HJ-NP-Z1-9]{25,34})$`)
	evmAddressPattern  = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	tronAddressPattern = regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`)
)

// ValidAddress reports whether addr is plausibly an address on the
// currency's chain. Format-level only; no checksum verification.
func (c Currency) ValidAddress(addr string) bool {
	switch c {
	case CurrencyBTC:
		return btcAddressPattern.MatchString(addr)
	case CurrencyETH, CurrencyUSDTERC20:
		return evmAddressPattern.MatchString(addr)
	case CurrencyUSDTTRC20:
		return tronAddressPattern.MatchString(addr)
	}
	return false
}
