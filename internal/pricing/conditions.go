package pricing

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avc/pos-pricing/internal/domain"
	"github.com/shopspring/decimal"
)

// CartContext - данные корзины, по которым проверяются условия скидок.
// Subtotal - сумма до применения каких-либо скидок.
type CartContext struct {
	Subtotal decimal.Decimal
	Lines    []domain.CartLine
	Customer *domain.Customer
	Payment  *domain.Payment
}

// UnitGroup - несколько одинаковых по цене штучных единиц товара
type UnitGroup struct {
	ProductRef string
	UnitPrice  decimal.Decimal
	Quantity   int
}

// ConditionMatch - результат проверки условия.
// Для specific_products заполняются количество и группы совпавших единиц.
type ConditionMatch struct {
	Matched         bool
	MatchedQuantity int
	Units           []UnitGroup
}

// DefaultTierRanks - порядок уровней покупателей для greater_than / less_than
var DefaultTierRanks = map[string]int{
	"regular":  0,
	"bronze":   1,
	"silver":   2,
	"gold":     3,
	"platinum": 4,
	"vip":      5,
}

// Evaluator проверяет условия скидок. Не имеет побочных эффектов.
type Evaluator struct {
	tierRanks map[string]int
}

// NewEvaluator создает evaluator. tierRanks == nil - используется DefaultTierRanks.
func NewEvaluator(tierRanks map[string]int) *Evaluator {
	if tierRanks == nil {
		tierRanks = DefaultTierRanks
	}
	ranks := make(map[string]int, len(tierRanks))
	for tier, rank := range tierRanks {
		ranks[strings.ToLower(strings.TrimSpace(tier))] = rank
	}
	return &Evaluator{tierRanks: ranks}
}

// Matches сообщает, выполняется ли условие для корзины
func (e *Evaluator) Matches(cond domain.DiscountCondition, cctx CartContext) (bool, error) {
	match, err := e.Evaluate(cond, cctx)
	if err != nil {
		return false, err
	}
	return match.Matched, nil
}

// AllMatch проверяет, что выполняются все условия (логическое И).
// Пустой список условий выполняется всегда.
func (e *Evaluator) AllMatch(conds []domain.DiscountCondition, cctx CartContext) (bool, error) {
	for _, cond := range conds {
		ok, err := e.Matches(cond, cctx)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Evaluate проверяет условие и возвращает метаданные совпадения
func (e *Evaluator) Evaluate(cond domain.DiscountCondition, cctx CartContext) (ConditionMatch, error) {
	switch cond.Type {
	case domain.ConditionMinAmount:
		return e.evalMinAmount(cond, cctx)
	case domain.ConditionSpecificProducts:
		return e.evalSpecificProducts(cond, cctx)
	case domain.ConditionPaymentMethod:
		return e.evalField(cond, paymentField(cctx.Payment, func(p *domain.Payment) string { return p.Method }))
	case domain.ConditionCardType:
		return e.evalField(cond, paymentField(cctx.Payment, func(p *domain.Payment) string { return p.CardType }))
	case domain.ConditionBankName:
		return e.evalField(cond, paymentField(cctx.Payment, func(p *domain.Payment) string { return p.BankName }))
	case domain.ConditionCustomerTier:
		tier := ""
		if cctx.Customer != nil {
			tier = cctx.Customer.Tier
		}
		return e.evalField(cond, tier)
	default:
		return ConditionMatch{}, conditionError(cond, "unknown condition type")
	}
}

func (e *Evaluator) evalMinAmount(cond domain.DiscountCondition, cctx CartContext) (ConditionMatch, error) {
	threshold, err := toDecimal(cond.Value)
	if err != nil {
		return ConditionMatch{}, conditionError(cond, err.Error())
	}

	var matched bool
	switch cond.Operator {
	case "":
		matched = cctx.Subtotal.GreaterThanOrEqual(threshold)
	case domain.OperatorGreaterThan:
		matched = cctx.Subtotal.GreaterThan(threshold)
	case domain.OperatorLessThan:
		matched = cctx.Subtotal.LessThan(threshold)
	case domain.OperatorEquals:
		matched = cctx.Subtotal.Equal(threshold)
	default:
		return ConditionMatch{}, conditionError(cond, "operator not supported for amounts")
	}

	return ConditionMatch{Matched: matched}, nil
}

func (e *Evaluator) evalSpecificProducts(cond domain.DiscountCondition, cctx CartContext) (ConditionMatch, error) {
	refs, err := toStringSlice(cond.Value)
	if err != nil {
		return ConditionMatch{}, conditionError(cond, err.Error())
	}
	if len(refs) == 0 {
		return ConditionMatch{}, conditionError(cond, "empty product list")
	}

	minQuantity := 1
	if cond.MinQuantity != nil {
		if *cond.MinQuantity < 1 {
			return ConditionMatch{}, conditionError(cond, "min_quantity must be at least 1")
		}
		minQuantity = *cond.MinQuantity
	}

	wanted := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		wanted[ref] = struct{}{}
	}

	match := ConditionMatch{}
	for _, line := range cctx.Lines {
		if _, ok := wanted[line.ProductRef]; !ok {
			continue
		}
		// Весовая позиция считается одной единицей и не участвует в bogo
		if line.IsWeighted() {
			match.MatchedQuantity++
			continue
		}
		match.MatchedQuantity += line.Quantity
		match.Units = append(match.Units, UnitGroup{
			ProductRef: line.ProductRef,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
		})
	}

	match.Matched = match.MatchedQuantity >= minQuantity
	return match, nil
}

// evalField сравнивает строковое поле корзины со значением условия.
// Отсутствующее поле никогда не совпадает.
func (e *Evaluator) evalField(cond domain.DiscountCondition, field string) (ConditionMatch, error) {
	field = strings.TrimSpace(field)

	op := cond.Operator
	if op == "" {
		op = domain.OperatorEquals
		if isList(cond.Value) {
			op = domain.OperatorInArray
		}
	}

	switch op {
	case domain.OperatorEquals:
		expected, err := toString(cond.Value)
		if err != nil {
			return ConditionMatch{}, conditionError(cond, err.Error())
		}
		return ConditionMatch{Matched: field != "" && strings.EqualFold(field, expected)}, nil

	case domain.OperatorInArray:
		values, err := toStringSlice(cond.Value)
		if err != nil {
			return ConditionMatch{}, conditionError(cond, err.Error())
		}
		if field == "" {
			return ConditionMatch{}, nil
		}
		for _, v := range values {
			if strings.EqualFold(field, v) {
				return ConditionMatch{Matched: true}, nil
			}
		}
		return ConditionMatch{}, nil

	case domain.OperatorGreaterThan, domain.OperatorLessThan:
		expected, err := toString(cond.Value)
		if err != nil {
			return ConditionMatch{}, conditionError(cond, err.Error())
		}
		if field == "" {
			return ConditionMatch{}, nil
		}
		cmp, err := e.compareOrdered(cond.Type, field, expected)
		if err != nil {
			return ConditionMatch{}, conditionError(cond, err.Error())
		}
		if op == domain.OperatorGreaterThan {
			return ConditionMatch{Matched: cmp > 0}, nil
		}
		return ConditionMatch{Matched: cmp < 0}, nil

	default:
		return ConditionMatch{}, conditionError(cond, "unknown operator")
	}
}

// compareOrdered сравнивает значения как числа, а для уровней покупателя - по рангу
func (e *Evaluator) compareOrdered(condType domain.ConditionType, actual, expected string) (int, error) {
	a, errA := decimal.NewFromString(actual)
	b, errB := decimal.NewFromString(expected)
	if errA == nil && errB == nil {
		return a.Cmp(b), nil
	}

	if condType == domain.ConditionCustomerTier {
		rankA, okA := e.tierRanks[strings.ToLower(actual)]
		rankB, okB := e.tierRanks[strings.ToLower(expected)]
		if !okB {
			return 0, fmt.Errorf("unknown tier %q", expected)
		}
		if !okA {
			// Неизвестный уровень покупателя ниже любого известного
			rankA = -1
		}
		switch {
		case rankA > rankB:
			return 1, nil
		case rankA < rankB:
			return -1, nil
		default:
			return 0, nil
		}
	}

	return 0, fmt.Errorf("values %q and %q are not ordered", actual, expected)
}

func paymentField(p *domain.Payment, get func(*domain.Payment) string) string {
	if p == nil {
		return ""
	}
	return get(p)
}

func conditionError(cond domain.DiscountCondition, reason string) *domain.ConditionEvaluationError {
	return &domain.ConditionEvaluationError{
		Condition: cond.Type,
		Operator:  cond.Operator,
		Reason:    reason,
	}
}

// toDecimal приводит значение условия к числу.
// Значения приходят из JSON, TOML или кода, поэтому типы разные.
func toDecimal(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, nil
	case *decimal.Decimal:
		if val == nil {
			return decimal.Decimal{}, fmt.Errorf("missing numeric value")
		}
		return *val, nil
	case float64:
		return decimal.NewFromFloat(val), nil
	case float32:
		return decimal.NewFromFloat32(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case json.Number:
		return decimal.NewFromString(val.String())
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("value %q is not a number", val)
		}
		return d, nil
	case nil:
		return decimal.Decimal{}, fmt.Errorf("missing numeric value")
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported numeric value of type %T", v)
	}
}

func toString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val), nil
	case nil:
		return "", fmt.Errorf("missing value")
	case bool:
		return "", fmt.Errorf("unsupported value of type %T", v)
	default:
		if isList(v) {
			return "", fmt.Errorf("list value requires in_array operator")
		}
		d, err := toDecimal(v)
		if err != nil {
			return "", err
		}
		return d.String(), nil
	}
}

// toStringSlice приводит значение к списку строк.
// Строка разбивается по запятым: "visa, mastercard".
func toStringSlice(v any) ([]string, error) {
	var raw []string
	switch val := v.(type) {
	case []string:
		raw = val
	case []any:
		raw = make([]string, 0, len(val))
		for _, item := range val {
			s, err := toString(item)
			if err != nil {
				return nil, err
			}
			raw = append(raw, s)
		}
	case string:
		raw = strings.Split(val, ",")
	case nil:
		return nil, fmt.Errorf("missing list value")
	default:
		s, err := toString(v)
		if err != nil {
			return nil, err
		}
		raw = []string{s}
	}

	result := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			result = append(result, s)
		}
	}
	return result, nil
}

func isList(v any) bool {
	switch v.(type) {
	case []string, []any:
		return true
	}
	return false
}
