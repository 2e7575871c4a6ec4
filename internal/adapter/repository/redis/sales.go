package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/iho/gotill/internal/domain"
)

// Hash fields written by the sales aggregation service.
const (
	salesFieldCash   = "cash"
	salesFieldCard   = "card"
	salesFieldOnline = "online"
)

// SalesReader implements usecase.SalesAggregator over the sales:<pos>
// hashes maintained by the sales aggregation service.
type SalesReader struct {
	client redis.Cmdable
	prefix string
}

// NewSalesReader creates a new SalesReader.
func NewSalesReader(client redis.Cmdable) *SalesReader {
	return &SalesReader{client: client, prefix: "sales:"}
}

// CumulativeSales returns the running totals of a point of sale. Missing
// fields count as zero.
func (r *SalesReader) CumulativeSales(ctx context.Context, pointOfSaleID string) (domain.SalesTotals, error) {
	fields, err := r.client.HGetAll(ctx, r.prefix+pointOfSaleID).Result()
	if err != nil {
		return domain.SalesTotals{}, fmt.Errorf("read sales for %s: %w", pointOfSaleID, err)
	}

	totals := domain.SalesTotals{Cash: decimal.Zero, Card: decimal.Zero, Online: decimal.Zero}
	for field, dst := range map[string]*decimal.Decimal{
		salesFieldCash:   &totals.Cash,
		salesFieldCard:   &totals.Card,
		salesFieldOnline: &totals.Online,
	} {
		raw, ok := fields[field]
		if !ok || raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.SalesTotals{}, fmt.Errorf("sales %s.%s: %w", pointOfSaleID, field, err)
		}
		*dst = v
	}

	return totals, nil
}

// SetCumulativeSales overwrites the totals of a point of sale. It stands in
// for the sales aggregation service in development setups.
func (r *SalesReader) SetCumulativeSales(ctx context.Context, pointOfSaleID string, totals domain.SalesTotals) error {
	return r.client.HSet(ctx, r.prefix+pointOfSaleID,
		salesFieldCash, totals.Cash.StringFixed(2),
		salesFieldCard, totals.Card.StringFixed(2),
		salesFieldOnline, totals.Online.StringFixed(2),
	).Err()
}
