package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestRedisClient starts a miniredis server that lives for the test.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

// seedSales writes raw sales hash fields the way the aggregation service does.
func seedSales(t *testing.T, mr *miniredis.Miniredis, pointOfSaleID string, fields map[string]string) {
	t.Helper()
	for field, value := range fields {
		mr.HSet("sales:"+pointOfSaleID, field, value)
	}
}
