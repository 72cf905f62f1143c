package config

import (
	"os"
	"strings"
)

// OverviewCacheEnabled gates the Redis cache in front of the property
// overview builder.
//
// Set via env:
// - ENABLE_OVERVIEW_CACHE=true
func OverviewCacheEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("ENABLE_OVERVIEW_CACHE")))
	return v == "1" || v == "true" || v == "yes" || v == "y"
}

// OverviewExportEnabled gates the XLSX export endpoint (some deployments
// keep the API read-only JSON).
//
// Set via env:
// - ENABLE_OVERVIEW_EXPORT=true (default on)
func OverviewExportEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("ENABLE_OVERVIEW_EXPORT")))
	if v == "" {
		return true
	}
	return v == "1" || v == "true" || v == "yes" || v == "y"
}
