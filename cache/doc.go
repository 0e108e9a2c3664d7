// Package cache keeps the last good value returned by a dependency so that
// degraded calls can serve stale-but-valid data instead of failing outright.
//
// LastGood is the core type. Wrap a primary operation to record its
// successes, and use Fallback as the fallback path of a degrader:
//
//	store := cache.NewLastGood[[]Product](cache.LastGoodConfig{MaxStale: time.Hour})
//
//	result, err := resilience.WithDegradation(ctx,
//	    resilience.DegraderConfig{Name: "product-search"},
//	    store.Wrap("search:analgesics", searchProducts),
//	    store.Fallback("search:analgesics"),
//	)
//
// Concurrent calls through Wrap with the same key are coalesced into a
// single upstream call.
package cache
