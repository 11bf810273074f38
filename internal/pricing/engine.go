// Package pricing рассчитывает итог корзины: скидки на строки, скидки из
// системы управления, налог и подарки.
package pricing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/avc/pos-pricing/internal/metrics"
	"github.com/avc/pos-pricing/internal/utils/template"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultBOGOGroupSize - сколько единиц нужно купить для одной бесплатной
const DefaultBOGOGroupSize = 2

var hundred = decimal.NewFromInt(100)

// errMalformedDiscount - скидка настроена некорректно и пропускается
var errMalformedDiscount = errors.New("malformed discount")

// PricingContext - набор скидок и момент расчета
type PricingContext struct {
	Discounts []domain.Discount
	At        time.Time // Нулевое значение - текущее время движка
}

// Engine рассчитывает корзину. Не хранит состояния между вызовами.
type Engine struct {
	evaluator      *Evaluator
	baseCurrency   string
	defaultTaxRate decimal.Decimal
	location       *time.Location
	now            func() time.Time
	metrics        *metrics.Metrics
	logger         *zap.Logger
}

// Option настраивает Engine
type Option func(*Engine)

// WithClock задает источник текущего времени
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithMetrics задает метрики
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLocation задает часовой пояс магазина для проверки дней недели
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.location = loc
		}
	}
}

// WithDefaultTaxRate задает ставку налога в процентах для корзин без своей ставки
func WithDefaultTaxRate(rate decimal.Decimal) Option {
	return func(e *Engine) { e.defaultTaxRate = rate }
}

// WithBaseCurrency задает валюту корзин, в которых валюта не указана
func WithBaseCurrency(code string) Option {
	return func(e *Engine) { e.baseCurrency = domain.NormalizeCode(code) }
}

// WithEvaluator задает evaluator условий
func WithEvaluator(ev *Evaluator) Option {
	return func(e *Engine) {
		if ev != nil {
			e.evaluator = ev
		}
	}
}

// NewEngine создает движок расчета
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		evaluator: NewEvaluator(nil),
		location:  time.UTC,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = metrics.NewUnregistered()
	}
	return e
}

// Price рассчитывает корзину целиком. Повторный вызов с теми же данными
// дает тот же результат. Ошибка возвращается только для некорректной корзины.
func (e *Engine) Price(cart domain.Cart, pctx PricingContext) (*domain.PricedCartSnapshot, error) {
	at := pctx.At
	if at.IsZero() {
		at = e.now()
	}

	snapshot, err := e.priceLines(cart)
	if err != nil {
		e.metrics.PricingRequests.WithLabelValues("invalid_cart").Inc()
		return nil, err
	}
	snapshot.PricedAt = at

	taxRate := e.defaultTaxRate
	if cart.TaxRate != nil {
		taxRate = *cart.TaxRate
	}
	if taxRate.IsNegative() {
		e.metrics.PricingRequests.WithLabelValues("invalid_cart").Inc()
		return nil, domain.NewInvalidCartError("negative tax rate %s", taxRate)
	}

	cctx := CartContext{
		Subtotal: snapshot.Subtotal,
		Lines:    snapshot.Lines,
		Customer: cart.Customer,
		Payment:  cart.Payment,
	}
	gross := domain.NewMoney(snapshot.Subtotal, snapshot.Currency)
	netMoney, err := gross.Sub(domain.NewMoney(snapshot.LineDiscountAmount, snapshot.Currency))
	if err != nil {
		e.metrics.PricingRequests.WithLabelValues("invalid_cart").Inc()
		return nil, domain.NewInvalidCartError("%v", err)
	}
	net := netMoney.Amount
	remaining := net

	for _, d := range orderDiscounts(pctx.Discounts) {
		if !e.isApplicable(d, at) {
			continue
		}

		result, err := e.applyDiscount(d, cctx, net, remaining)
		if err != nil {
			e.skip(d, err)
			continue
		}
		if result == nil {
			continue
		}

		remaining = remaining.Sub(result.amount)
		snapshot.DiscountAmount = snapshot.DiscountAmount.Add(result.amount)
		snapshot.FreeGifts = append(snapshot.FreeGifts, result.gifts...)
		snapshot.AppliedDiscounts = append(snapshot.AppliedDiscounts, e.appliedRecord(d, result))
		e.metrics.DiscountsApplied.WithLabelValues(string(d.Type)).Inc()
	}

	taxable := remaining
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	snapshot.TaxRate = taxRate
	snapshot.TaxAmount = taxable.Mul(taxRate).Div(hundred)
	snapshot.Total = taxable.Add(snapshot.TaxAmount)
	if snapshot.Total.IsNegative() {
		snapshot.Total = decimal.Zero
	}

	e.metrics.PricingRequests.WithLabelValues("ok").Inc()
	return snapshot, nil
}

// priceLines проверяет строки и считает их суммы с учетом скидок на строку
func (e *Engine) priceLines(cart domain.Cart) (*domain.PricedCartSnapshot, error) {
	if len(cart.Lines) == 0 {
		return nil, domain.NewInvalidCartError("cart has no lines")
	}

	currency := domain.NormalizeCode(cart.Currency)
	if currency == "" {
		currency = e.baseCurrency
	}

	subtotal := domain.ZeroMoney(currency)
	lineDiscounts := decimal.Zero
	lines := make([]domain.CartLine, len(cart.Lines))

	for i, line := range cart.Lines {
		if strings.TrimSpace(line.ProductRef) == "" {
			return nil, domain.NewInvalidLineError(i, "missing product reference")
		}
		if line.UnitPrice.IsNegative() {
			return nil, domain.NewInvalidLineError(i, "negative unit price %s", line.UnitPrice)
		}

		var gross decimal.Decimal
		if line.IsWeighted() {
			if !line.Weight.IsPositive() {
				return nil, domain.NewInvalidLineError(i, "weight must be positive, got %s", line.Weight)
			}
			gross = line.UnitPrice.Mul(*line.Weight)
		} else {
			if line.Quantity <= 0 {
				return nil, domain.NewInvalidLineError(i, "quantity must be positive, got %d", line.Quantity)
			}
			gross = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		}

		lineCurrency := domain.NormalizeCode(line.Currency)
		if lineCurrency == "" {
			lineCurrency = currency
		}
		next, err := subtotal.Add(domain.NewMoney(gross, lineCurrency))
		if err != nil {
			return nil, domain.NewInvalidLineError(i, "%v", err)
		}
		subtotal = next

		discount, err := lineDiscount(line, gross)
		if err != nil {
			return nil, domain.NewInvalidLineError(i, "%v", err)
		}
		lineDiscounts = lineDiscounts.Add(discount)

		line.Currency = lineCurrency
		line.ComputedSubtotal = gross.Sub(discount)
		lines[i] = line
	}

	return &domain.PricedCartSnapshot{
		Currency:           currency,
		Subtotal:           subtotal.Amount,
		LineDiscountAmount: lineDiscounts,
		DiscountAmount:     decimal.Zero,
		TaxAmount:          decimal.Zero,
		Total:              decimal.Zero,
		Lines:              lines,
		AppliedDiscounts:   []domain.AppliedDiscount{},
		FreeGifts:          []domain.CartLine{},
	}, nil
}

// lineDiscount считает скидку на строку, не больше суммы строки.
// Без указанного типа ненулевая скидка считается фиксированной.
func lineDiscount(line domain.CartLine, gross decimal.Decimal) (decimal.Decimal, error) {
	if line.LineDiscount.IsNegative() {
		return decimal.Zero, errors.New("negative line discount")
	}
	if line.LineDiscount.IsZero() {
		return decimal.Zero, nil
	}

	var amount decimal.Decimal
	switch line.LineDiscountType {
	case domain.LineDiscountPercentage:
		amount = gross.Mul(line.LineDiscount).Div(hundred)
	case domain.LineDiscountFixed, domain.LineDiscountNone:
		amount = line.LineDiscount
	default:
		return decimal.Zero, fmt.Errorf("unknown line discount type %q", line.LineDiscountType)
	}
	return decimal.Min(amount, gross), nil
}

// orderDiscounts возвращает скидки в порядке создания.
// При равном CreatedAt сохраняется порядок входного списка.
func orderDiscounts(discounts []domain.Discount) []domain.Discount {
	ordered := append([]domain.Discount(nil), discounts...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})
	return ordered
}

// isApplicable проверяет активность, период действия и день недели
func (e *Engine) isApplicable(d domain.Discount, at time.Time) bool {
	if !d.Active {
		return false
	}
	if d.ValidFrom != nil && at.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidTo != nil && at.After(*d.ValidTo) {
		return false
	}
	if len(d.ValidDays) == 0 {
		return true
	}

	weekday := int(at.In(e.location).Weekday())
	for _, day := range d.ValidDays {
		if day == weekday {
			return true
		}
	}
	return false
}

type discountResult struct {
	amount decimal.Decimal
	gifts  []domain.CartLine
}

// applyDiscount считает вклад скидки. nil без ошибки - скидка не сработала.
func (e *Engine) applyDiscount(d domain.Discount, cctx CartContext, net, remaining decimal.Decimal) (*discountResult, error) {
	ok, err := e.evaluator.AllMatch(d.Conditions, cctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if d.MinAmount != nil && cctx.Subtotal.LessThan(*d.MinAmount) {
		return nil, nil
	}

	var amount decimal.Decimal
	switch d.Type {
	case domain.DiscountTypePercentage:
		if d.Value.IsNegative() {
			return nil, malformed("negative percentage %s", d.Value)
		}
		amount = net.Mul(d.Value).Div(hundred)
		if d.MaxDiscount != nil {
			amount = decimal.Min(amount, *d.MaxDiscount)
		}

	case domain.DiscountTypeFixed:
		if d.Value.IsNegative() {
			return nil, malformed("negative fixed amount %s", d.Value)
		}
		amount = d.Value

	case domain.DiscountTypeBOGO:
		amount, err = e.bogoAmount(d, cctx)
		if err != nil {
			return nil, err
		}

	case domain.DiscountTypeFreeGift:
		return e.freeGifts(d, cctx)

	default:
		return nil, malformed("unknown discount type %q", d.Type)
	}

	amount = decimal.Min(amount, remaining)
	if !amount.IsPositive() {
		return nil, nil
	}
	return &discountResult{amount: amount}, nil
}

// bogoAmount: за каждые N совпавших штучных единиц одна самая дешевая бесплатна
func (e *Engine) bogoAmount(d domain.Discount, cctx CartContext) (decimal.Decimal, error) {
	var cond *domain.DiscountCondition
	for i := range d.Conditions {
		if d.Conditions[i].Type == domain.ConditionSpecificProducts {
			cond = &d.Conditions[i]
			break
		}
	}
	if cond == nil {
		return decimal.Zero, malformed("bogo requires a specific_products condition")
	}

	groupSize := DefaultBOGOGroupSize
	if cond.MinQuantity != nil {
		groupSize = *cond.MinQuantity
	}
	if groupSize < 1 {
		return decimal.Zero, malformed("bogo group size must be at least 1")
	}

	match, err := e.evaluator.Evaluate(*cond, cctx)
	if err != nil {
		return decimal.Zero, err
	}

	units := append([]UnitGroup(nil), match.Units...)
	total := 0
	for _, g := range units {
		total += g.Quantity
	}
	free := total / groupSize

	sort.SliceStable(units, func(i, j int) bool {
		return units[i].UnitPrice.LessThan(units[j].UnitPrice)
	})

	amount := decimal.Zero
	for _, g := range units {
		if free == 0 {
			break
		}
		n := min(free, g.Quantity)
		amount = amount.Add(g.UnitPrice.Mul(decimal.NewFromInt(int64(n))))
		free -= n
	}
	return amount, nil
}

func (e *Engine) freeGifts(d domain.Discount, cctx CartContext) (*discountResult, error) {
	refs := make([]string, 0, len(d.FreeGiftProductRefs))
	for _, ref := range d.FreeGiftProductRefs {
		if ref = strings.TrimSpace(ref); ref != "" {
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return nil, malformed("free_gift without product references")
	}

	currency := ""
	if len(cctx.Lines) > 0 {
		currency = cctx.Lines[0].Currency
	}

	gifts := make([]domain.CartLine, 0, len(refs))
	for _, ref := range refs {
		gifts = append(gifts, domain.CartLine{
			ProductRef:       ref,
			UnitPrice:        decimal.Zero,
			Quantity:         1,
			Currency:         currency,
			LineDiscount:     decimal.Zero,
			ComputedSubtotal: decimal.Zero,
		})
	}
	return &discountResult{amount: decimal.Zero, gifts: gifts}, nil
}

func (e *Engine) appliedRecord(d domain.Discount, result *discountResult) domain.AppliedDiscount {
	applied := domain.AppliedDiscount{
		DiscountID: d.ID,
		Name:       d.Name,
		Type:       d.Type,
		Amount:     result.amount,
	}
	for _, gift := range result.gifts {
		applied.FreeGifts = append(applied.FreeGifts, gift.ProductRef)
	}
	if d.Description != "" {
		applied.Description = template.Interpolate(d.Description, map[string]string{
			"name":   d.Name,
			"value":  d.Value.String(),
			"type":   string(d.Type),
			"amount": result.amount.StringFixed(2),
		})
	}
	return applied
}

// skip записывает в лог и метрики пропущенную скидку
func (e *Engine) skip(d domain.Discount, err error) {
	reason := "malformed"
	var condErr *domain.ConditionEvaluationError
	if errors.As(err, &condErr) {
		reason = "condition"
	}
	e.metrics.DiscountsSkipped.WithLabelValues(reason).Inc()
	e.logger.Warn("Discount skipped",
		zap.String("discount_id", d.ID),
		zap.String("type", string(d.Type)),
		zap.String("reason", reason),
		zap.Error(err),
	)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errMalformedDiscount, fmt.Sprintf(format, args...))
}
