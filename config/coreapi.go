package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// defaultUsdPygRate is the display-only estimate used when a collection or
// expense carries no fx_rate_to_pyg. It must NEVER be used for owner
// statements or any financial document; those always carry an exact rate.
//
// Override via env: USD_PYG_FALLBACK_RATE
const defaultUsdPygRate = 7300

// CoreApiBaseURL is where the core records API lives (units, leases, tasks,
// collections, ...). Env: CORE_API_BASE_URL
func CoreApiBaseURL() string {
	v := strings.TrimSpace(os.Getenv("CORE_API_BASE_URL"))
	if v == "" {
		return "http://localhost:4000/api"
	}
	return strings.TrimRight(v, "/")
}

// CoreApiListLimit caps every scoped list request. Env: CORE_API_LIST_LIMIT
func CoreApiListLimit() int {
	if v := strings.TrimSpace(os.Getenv("CORE_API_LIST_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 200
}

func FallbackUsdPygRate() decimal.Decimal {
	if v := strings.TrimSpace(os.Getenv("USD_PYG_FALLBACK_RATE")); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && d.IsPositive() {
			return d
		}
	}
	return decimal.NewFromInt(defaultUsdPygRate)
}
