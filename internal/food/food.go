// Package food estimates the caloric density of a named product through
// a chain of best-effort lookups with a documented default.
package food

import (
	"context"

	"github.com/m3rciful/fitbot/core/logger"
	"log/slog"
)

// DefaultKcalPer100g is used when no upstream can answer. The fallback
// is a valid result, not an error.
const DefaultKcalPer100g = 50

// Lookup resolves a product name to kcal per 100 g.
type Lookup interface {
	KcalPer100g(ctx context.Context, product string) (int, error)
}

// Chain tries lookups in order and falls back to DefaultKcalPer100g
// when every upstream fails. Chain itself never returns an error.
type Chain struct {
	lookups []Lookup
}

// NewChain builds a chain over the given lookups.
func NewChain(lookups ...Lookup) *Chain {
	return &Chain{lookups: lookups}
}

// KcalPer100g returns the first successful estimate or the default.
func (c *Chain) KcalPer100g(ctx context.Context, product string) (int, error) {
	for _, l := range c.lookups {
		kcal, err := l.KcalPer100g(ctx, product)
		if err == nil && kcal > 0 {
			return kcal, nil
		}
		if err != nil {
			logger.L.LogAttrs(ctx, slog.LevelDebug, "food.lookup.miss",
				slog.String("component", "food"),
				slog.String("product", logger.SanitizeLimit(product, 64)),
				slog.String("err", err.Error()),
			)
		}
	}
	logger.L.LogAttrs(ctx, slog.LevelInfo, "food.lookup.fallback",
		slog.String("component", "food"),
		slog.String("product", logger.SanitizeLimit(product, 64)),
		slog.Int("kcal_per_100g", DefaultKcalPer100g),
	)
	return DefaultKcalPer100g, nil
}
