package reports

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bsm/redislock"
	"github.com/rossostudios/puerta-abierta-sub004/config"
	"github.com/rossostudios/puerta-abierta-sub004/utils"
)

func overviewCacheTTL() time.Duration {
	// Env: OVERVIEW_CACHE_TTL_SECONDS (default 120s)
	ttl := 120
	if v := strings.TrimSpace(os.Getenv("OVERVIEW_CACHE_TTL_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = n
		}
	}
	return time.Duration(ttl) * time.Second
}

func overviewCacheKey(orgId string, propertyId string, locale string) string {
	return fmt.Sprintf("overview:%s:%s:%s", orgId, propertyId, locale)
}

// CachedPropertyOverview wraps the builder with the Redis cache. The lock
// is a best-effort guard against rebuild stampedes on hot properties; when
// it cannot be obtained (or Redis is absent) we just build.
func CachedPropertyOverview(ctx context.Context, orgId string, propertyId string, locale string, build func() *PropertyOverviewData) *PropertyOverviewData {
	if !config.OverviewCacheEnabled() {
		return build()
	}

	key := overviewCacheKey(orgId, propertyId, locale)

	var cached PropertyOverviewData
	if found, err := config.GetRedisObject(key, &cached); err == nil && found {
		return &cached
	} else if err != nil {
		config.LogError(config.GetLogger(), "reports", "CachedPropertyOverview", "cache get", key, err)
	}

	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, key+":lock", 10*time.Second, nil)
		if err == nil {
			defer lock.Release(ctx)
			// Another request may have filled the cache while we waited.
			if found, err := config.GetRedisObject(key, &cached); err == nil && found {
				return &cached
			}
		} else if err != redislock.ErrNotObtained {
			config.LogError(config.GetLogger(), "reports", "CachedPropertyOverview", "cache lock", key, err)
		}
	}

	data := build()
	if err := config.SetRedisObject(key, data, overviewCacheTTL()); err != nil {
		config.LogError(config.GetLogger(), "reports", "CachedPropertyOverview", "cache set", key, err)
	}
	return data
}

func logSlowOverview(ctx context.Context, started time.Time, propertyId string) {
	d := time.Since(started)
	if d < 500*time.Millisecond {
		return
	}
	org, _ := utils.GetOrgIdFromContext(ctx)
	cid, _ := utils.GetCorrelationIdFromContext(ctx)
	config.GetLogger().WithField("module", "reports").
		Warnf("slow_overview ms=%d org_id=%s property_id=%s correlation_id=%s", d.Milliseconds(), org, propertyId, cid)
}

// TimedPropertyOverview is CachedPropertyOverview plus slow-build logging.
func TimedPropertyOverview(ctx context.Context, orgId string, propertyId string, locale string, build func() *PropertyOverviewData) *PropertyOverviewData {
	started := time.Now()
	defer logSlowOverview(ctx, started, propertyId)
	return CachedPropertyOverview(ctx, orgId, propertyId, locale, build)
}
