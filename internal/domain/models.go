package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SymbolPosition определяет, где выводится символ валюты
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// RateSource представляет источник курса валют
type RateSource string

const (
	RateSourceAPI      RateSource = "api"
	RateSourceManual   RateSource = "manual"
	RateSourceFallback RateSource = "fallback"
)

// Valid сообщает, известен ли источник курса
func (s RateSource) Valid() bool {
	switch s {
	case RateSourceAPI, RateSourceManual, RateSourceFallback:
		return true
	}
	return false
}

// CurrencyDefinition описывает настроенную в магазине валюту
type CurrencyDefinition struct {
	Code           string         `json:"code" toml:"code"`
	Name           string         `json:"name" toml:"name"`
	Symbol         string         `json:"symbol" toml:"symbol"`
	SymbolPosition SymbolPosition `json:"symbol_position" toml:"symbol_position"`
	DecimalPlaces  int32          `json:"decimal_places" toml:"decimal_places"`
	IsActive       bool           `json:"is_active" toml:"is_active"`
	IsBaseCurrency bool           `json:"is_base_currency" toml:"is_base_currency"`
}

// ExchangeRate представляет курс для пары валют на интервале действия.
// EffectiveTo == nil означает активный курс.
type ExchangeRate struct {
	ID               uuid.UUID       `json:"id"`
	BaseCurrency     string          `json:"base_currency"`
	TargetCurrency   string          `json:"target_currency"`
	Rate             decimal.Decimal `json:"rate"`
	Source           RateSource      `json:"source"`
	IsManualOverride bool            `json:"is_manual_override"`
	EffectiveFrom    time.Time       `json:"effective_from"`
	EffectiveTo      *time.Time      `json:"effective_to,omitempty"`
}

// IsActive сообщает, действует ли курс в данный момент
func (r *ExchangeRate) IsActive() bool {
	return r.EffectiveTo == nil
}

// ExchangeRateHistoryEntry - неизменяемая запись об изменении курса
type ExchangeRateHistoryEntry struct {
	ID               uuid.UUID        `json:"id"`
	BaseCurrency     string           `json:"base_currency"`
	TargetCurrency   string           `json:"target_currency"`
	Rate             decimal.Decimal  `json:"rate"`
	PreviousRate     *decimal.Decimal `json:"previous_rate,omitempty"`
	ChangePercentage *decimal.Decimal `json:"change_percentage,omitempty"`
	Source           RateSource       `json:"source"`
	IsManualOverride bool             `json:"is_manual_override"`
	RecordedAt       time.Time        `json:"recorded_at"`
}

// Conversion - результат пересчета суммы из одной валюты в другую
type Conversion struct {
	OriginalAmount  decimal.Decimal `json:"original_amount"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
	FromCurrency    string          `json:"from_currency"`
	ToCurrency      string          `json:"to_currency"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	Timestamp       time.Time       `json:"timestamp"`
}

// ConversionRequest - элемент пакетного пересчета
type ConversionRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
}

// LineDiscountType представляет тип скидки на строку чека
type LineDiscountType string

const (
	LineDiscountNone       LineDiscountType = ""
	LineDiscountPercentage LineDiscountType = "percentage"
	LineDiscountFixed      LineDiscountType = "fixed"
)

// CartLine представляет строку корзины. Цена указана в базовой валюте.
// Для весового товара заполняется Weight, а UnitPrice - цена за единицу веса.
type CartLine struct {
	ProductRef       string           `json:"product_ref"`
	Name             string           `json:"name,omitempty"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	Quantity         int              `json:"quantity,omitempty"`
	Weight           *decimal.Decimal `json:"weight,omitempty"`
	Currency         string           `json:"currency,omitempty"`
	LineDiscount     decimal.Decimal  `json:"line_discount"`
	LineDiscountType LineDiscountType `json:"line_discount_type,omitempty"`
	ComputedSubtotal decimal.Decimal  `json:"computed_subtotal"`
}

// IsWeighted сообщает, продается ли товар на вес
func (l *CartLine) IsWeighted() bool {
	return l.Weight != nil
}

// Customer представляет покупателя
type Customer struct {
	ID   string `json:"id"`
	Tier string `json:"tier,omitempty"`
}

// Payment содержит сведения об оплате
type Payment struct {
	Method   string `json:"method,omitempty"`
	CardType string `json:"card_type,omitempty"`
	BankName string `json:"bank_name,omitempty"`
}

// Cart представляет снимок корзины на кассе
type Cart struct {
	ID       string           `json:"id,omitempty"`
	Currency string           `json:"currency,omitempty"`
	Lines    []CartLine       `json:"lines"`
	Customer *Customer        `json:"customer,omitempty"`
	Payment  *Payment         `json:"payment,omitempty"`
	TaxRate  *decimal.Decimal `json:"tax_rate,omitempty"` // Процент, например 8.75
}

// DiscountType представляет тип скидки
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
	DiscountTypeBOGO       DiscountType = "bogo"
	DiscountTypeFreeGift   DiscountType = "free_gift"
)

// ConditionType представляет тип условия скидки
type ConditionType string

const (
	ConditionMinAmount        ConditionType = "min_amount"
	ConditionSpecificProducts ConditionType = "specific_products"
	ConditionPaymentMethod    ConditionType = "payment_method"
	ConditionCustomerTier     ConditionType = "customer_tier"
	ConditionCardType         ConditionType = "card_type"
	ConditionBankName         ConditionType = "bank_name"
)

// ConditionOperator представляет оператор сравнения в условии
type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorGreaterThan ConditionOperator = "greater_than"
	OperatorLessThan    ConditionOperator = "less_than"
	OperatorInArray     ConditionOperator = "in_array"
)

// DiscountCondition - одно условие применения скидки.
// Value хранится как есть (число, строка или список), приведение выполняет evaluator.
type DiscountCondition struct {
	Type        ConditionType     `json:"type" toml:"type"`
	Value       any               `json:"value" toml:"value"`
	Operator    ConditionOperator `json:"operator,omitempty" toml:"operator"`
	MinQuantity *int              `json:"min_quantity,omitempty" toml:"min_quantity"`
}

// Discount описывает скидку, настроенную в системе управления
type Discount struct {
	ID                  string              `json:"id" toml:"id"`
	Name                string              `json:"name" toml:"name"`
	Description         string              `json:"description,omitempty" toml:"description"`
	Type                DiscountType        `json:"type" toml:"type"`
	Value               decimal.Decimal     `json:"value" toml:"value"`
	Conditions          []DiscountCondition `json:"conditions,omitempty" toml:"conditions"`
	FreeGiftProductRefs []string            `json:"free_gift_product_refs,omitempty" toml:"free_gift_product_refs"`
	MinAmount           *decimal.Decimal    `json:"min_amount,omitempty" toml:"min_amount"`
	MaxDiscount         *decimal.Decimal    `json:"max_discount,omitempty" toml:"max_discount"`
	ValidFrom           *time.Time          `json:"valid_from,omitempty" toml:"valid_from"`
	ValidTo             *time.Time          `json:"valid_to,omitempty" toml:"valid_to"`
	ValidDays           []int               `json:"valid_days,omitempty" toml:"valid_days"`
	Active              bool                `json:"active" toml:"active"`
	CreatedAt           time.Time           `json:"created_at" toml:"created_at"`
}

// AppliedDiscount - запись о сработавшей скидке для чека и аудита
type AppliedDiscount struct {
	DiscountID  string          `json:"discount_id"`
	Name        string          `json:"name"`
	Type        DiscountType    `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	FreeGifts   []string        `json:"free_gifts,omitempty"`
}

// PricedCartSnapshot - результат расчета корзины.
// Всегда пересчитывается целиком, частичные изменения не допускаются.
type PricedCartSnapshot struct {
	Currency           string            `json:"currency"`
	Subtotal           decimal.Decimal   `json:"subtotal"`
	LineDiscountAmount decimal.Decimal   `json:"line_discount_amount"`
	DiscountAmount     decimal.Decimal   `json:"discount_amount"`
	TaxRate            decimal.Decimal   `json:"tax_rate"`
	TaxAmount          decimal.Decimal   `json:"tax_amount"`
	Total              decimal.Decimal   `json:"total"`
	Lines              []CartLine        `json:"lines"`
	AppliedDiscounts   []AppliedDiscount `json:"applied_discounts"`
	FreeGifts          []CartLine        `json:"free_gifts"`
	PricedAt           time.Time         `json:"priced_at"`
}

// Round возвращает копию снимка с суммами, округленными до places знаков
func (s *PricedCartSnapshot) Round(places int32) *PricedCartSnapshot {
	rounded := *s
	rounded.Subtotal = s.Subtotal.Round(places)
	rounded.LineDiscountAmount = s.LineDiscountAmount.Round(places)
	rounded.DiscountAmount = s.DiscountAmount.Round(places)
	rounded.TaxAmount = s.TaxAmount.Round(places)

	// Итог пересчитывается из округленных слагаемых, чтобы чек сходился
	rounded.Total = rounded.Subtotal.
		Sub(rounded.LineDiscountAmount).
		Sub(rounded.DiscountAmount).
		Add(rounded.TaxAmount)
	if rounded.Total.IsNegative() {
		rounded.Total = decimal.Zero
	}

	rounded.Lines = make([]CartLine, len(s.Lines))
	for i, line := range s.Lines {
		line.ComputedSubtotal = line.ComputedSubtotal.Round(places)
		rounded.Lines[i] = line
	}

	rounded.AppliedDiscounts = make([]AppliedDiscount, len(s.AppliedDiscounts))
	for i, applied := range s.AppliedDiscounts {
		applied.Amount = applied.Amount.Round(places)
		rounded.AppliedDiscounts[i] = applied
	}

	rounded.FreeGifts = append([]CartLine(nil), s.FreeGifts...)
	return &rounded
}
