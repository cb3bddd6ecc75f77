package cosmic

import (
	"context"
	"fmt"
	"time"
)

// Store memoizes computed query payloads. It is strictly an optimization:
// a nil Store, a miss, or a store failure all fall through to a fresh
// computation. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// cacheKey derives the memoization key for a query. Instants are rounded
// to the minute and coordinates to 0.01 degrees so near-identical queries
// share an entry.
func cacheKey(queryType string, at time.Time, loc *GeoCoordinate) string {
	key := queryType + ":" + at.UTC().Truncate(time.Minute).Format("2006-01-02T15:04")
	if loc != nil {
		key += fmt.Sprintf(":%.2f,%.2f", loc.Latitude, loc.Longitude)
	}
	return key
}
