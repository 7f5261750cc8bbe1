package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	priceMax         = decimal.NewFromInt(1000)
	billingAmountMax = decimal.NewFromInt(10000)
)

// Price is a decimal between 0 and 1000.
type Price struct {
	value decimal.Decimal
}

func NewPrice(d decimal.Decimal) (Price, error) {
	if d.IsNegative() || d.GreaterThan(priceMax) {
		return Price{}, NewValidationError("Price must be between 0 and 1000")
	}
	return Price{value: d}, nil
}

// ZeroPrice is the price of free goods or services.
func ZeroPrice() Price { return Price{value: decimal.Zero} }

func (p Price) Value() decimal.Decimal { return p.value }
func (p Price) String() string         { return p.value.StringFixed(2) }

// Multiply scales the price by qty and re-checks the result as a Price.
func (p Price) Multiply(qty decimal.Decimal) (Price, error) {
	return NewPrice(p.value.Mul(qty))
}

// BillingAmount is a decimal between 0 and 10000.
type BillingAmount struct {
	value decimal.Decimal
}

func NewBillingAmount(d decimal.Decimal) (BillingAmount, error) {
	if d.IsNegative() || d.GreaterThan(billingAmountMax) {
		return BillingAmount{}, NewValidationError("BillingAmount must be between 0 and 10000")
	}
	return BillingAmount{value: d}, nil
}

func (a BillingAmount) Value() decimal.Decimal { return a.value }
func (a BillingAmount) String() string         { return a.value.StringFixed(2) }

// SumPrices totals prices into a BillingAmount. An empty list sums to zero;
// a total above the bound is an error, never clamped.
func SumPrices(prices []Price) (BillingAmount, error) {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(p.value)
	}
	return NewBillingAmount(total)
}

// PromotionCode is a string of 3 to 10 characters.
type PromotionCode struct {
	value string
}

func NewPromotionCode(s string) (PromotionCode, error) {
	n := utf8.RuneCountInString(s)
	if n < 3 || n > 10 {
		return PromotionCode{}, NewValidationError("PromotionCode must be between 3 and 10 characters in length")
	}
	return PromotionCode{value: s}, nil
}

func (c PromotionCode) String() string { return c.value }

// PricingMethod is either StandardPricing or PromotionPricing.
type PricingMethod interface {
	isPricingMethod()
}

type StandardPricing struct{}

type PromotionPricing struct {
	Code PromotionCode
}

func (StandardPricing) isPricingMethod()  {}
func (PromotionPricing) isPricingMethod() {}

// NewPricingMethod selects standard pricing for a blank code and promotion
// pricing otherwise.
func NewPricingMethod(promotionCode string) (PricingMethod, error) {
	if strings.TrimSpace(promotionCode) == "" {
		return StandardPricing{}, nil
	}
	code, err := NewPromotionCode(promotionCode)
	if err != nil {
		return nil, err
	}
	return PromotionPricing{Code: code}, nil
}
