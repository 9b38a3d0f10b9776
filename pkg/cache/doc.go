// Package cache provides a generic in-memory LRU cache with TTL and a
// stampede-safe GetOrSet helper.
//
// The view engine keeps parsed templates here so each layout file is read
// and parsed once, even when many requests ask for it at the same moment:
//
//	tmpl, err := cache.GetOrSet(ctx, c, "layouts/Template/default/Main",
//	    func(ctx context.Context) (*template.Template, time.Duration, error) {
//	        t, err := parse(ctx)
//	        return t, 0, err
//	    })
//
// TTL semantics for Set: positive expires after the duration, zero uses the
// default TTL (one hour unless [WithDefaultTTL] says otherwise), negative
// never expires.
//
// Sentinel errors: [ErrNotFound] for a miss or expired key, [ErrClosed]
// for writes after Close.
package cache
