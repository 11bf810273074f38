package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
)

// DiscountRepository реализует domain.DiscountRepository
type DiscountRepository struct {
	db DBTX
}

var _ domain.DiscountRepository = (*DiscountRepository)(nil)

// NewDiscountRepository создает новый DiscountRepository
func NewDiscountRepository(db DBTX) *DiscountRepository {
	return &DiscountRepository{db: db}
}

// GetDiscounts возвращает все скидки в порядке создания.
// Неактивные и просроченные скидки тоже возвращаются: их отсеивает движок.
func (r *DiscountRepository) GetDiscounts(ctx context.Context) ([]domain.Discount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, type, value::text, conditions, free_gift_product_refs,
			min_amount::text, max_discount::text, valid_from, valid_to, valid_days, active, created_at
		 FROM discounts
		 ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get discounts: %w", err)
	}
	defer rows.Close()

	var discounts []domain.Discount
	for rows.Next() {
		var (
			d                    domain.Discount
			discountType, value  string
			conditions           []byte
			minAmount, maxAmount *string
			validFrom, validTo   *time.Time
			validDays            []int32
		)
		err := rows.Scan(&d.ID, &d.Name, &d.Description, &discountType, &value, &conditions,
			&d.FreeGiftProductRefs, &minAmount, &maxAmount, &validFrom, &validTo, &validDays,
			&d.Active, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan discount: %w", err)
		}

		d.Type = domain.DiscountType(discountType)
		if d.Value, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("repository: discount %s: %w: value %q", d.ID, ErrMalformedRow, value)
		}
		if d.MinAmount, err = parseDecimalText(minAmount); err != nil {
			return nil, fmt.Errorf("discount %s: %w", d.ID, err)
		}
		if d.MaxDiscount, err = parseDecimalText(maxAmount); err != nil {
			return nil, fmt.Errorf("discount %s: %w", d.ID, err)
		}
		if d.Conditions, err = decodeConditions(conditions); err != nil {
			return nil, fmt.Errorf("repository: discount %s: %w", d.ID, err)
		}
		d.ValidFrom = validFrom
		d.ValidTo = validTo
		for _, day := range validDays {
			d.ValidDays = append(d.ValidDays, int(day))
		}

		discounts = append(discounts, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating discounts: %w", err)
	}

	return discounts, nil
}

// decodeConditions разбирает JSONB с условиями. Числа сохраняются как json.Number,
// чтобы не терять точность до приведения в evaluator.
func decodeConditions(raw []byte) ([]domain.DiscountCondition, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var conditions []domain.DiscountCondition
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&conditions); err != nil {
		return nil, fmt.Errorf("%w: conditions: %v", ErrMalformedRow, err)
	}
	return conditions, nil
}
