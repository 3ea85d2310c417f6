package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ProductCode is the sequence backing generated product codes.
const ProductCode = "product_code"

const codePrefix = "PROD-"

type Generator struct {
	DB *gorm.DB
}

// Next increments the named counter and returns the new value formatted as
// a code, e.g. PROD-007. The counter is created on first use. The whole
// step is a single upsert so no two callers can observe the same value.
func (g *Generator) Next(ctx context.Context, name string) (string, error) {
	value, err := g.NextValue(ctx, name)
	if err != nil {
		return "", err
	}
	return Format(value), nil
}

func (g *Generator) NextValue(ctx context.Context, name string) (int64, error) {
	var value int64
	err := g.DB.WithContext(ctx).Raw(
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		 RETURNING value`, name).Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("sequence %q: %w", name, err)
	}
	return value, nil
}

// Format zero-pads to three digits; larger values widen naturally.
func Format(value int64) string {
	return fmt.Sprintf("%s%03d", codePrefix, value)
}
