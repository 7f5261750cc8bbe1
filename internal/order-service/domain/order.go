package domain

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// OrderID is a non-empty string of at most 10 characters.
type OrderID struct {
	value string
}

func NewOrderID(s string) (OrderID, error) {
	if s == "" || utf8.RuneCountInString(s) > 10 {
		return OrderID{}, NewValidationError("OrderId must be a non-empty string < 10 chars")
	}
	return OrderID{value: s}, nil
}

func (id OrderID) String() string { return id.value }

// OrderLineID is a non-empty string of at most 10 characters.
type OrderLineID struct {
	value string
}

func NewOrderLineID(s string) (OrderLineID, error) {
	if s == "" || utf8.RuneCountInString(s) > 10 {
		return OrderLineID{}, NewValidationError("OrderLineId must be a non-empty string < 10 chars")
	}
	return OrderLineID{value: s}, nil
}

func (id OrderLineID) String() string { return id.value }

// ProductCode is either a WidgetCode or a GizmoCode.
type ProductCode interface {
	String() string
	isProductCode()
}

// WidgetCode is "W" followed by four digits.
type WidgetCode struct {
	value string
}

func (c WidgetCode) String() string { return c.value }
func (WidgetCode) isProductCode()   {}

// GizmoCode is "G" followed by three digits.
type GizmoCode struct {
	value string
}

func (c GizmoCode) String() string { return c.value }
func (GizmoCode) isProductCode()   {}

var (
	widgetPattern = regexp.MustCompile(`^W\d{4}$`)
	gizmoPattern  = regexp.MustCompile(`^G\d{3}$`)
)

// NewProductCode dispatches on the code prefix. Every mismatch yields the same
// "format not recognized" message.
func NewProductCode(code string) (ProductCode, error) {
	switch {
	case code == "":
		return nil, NewValidationError("ProductCode must not be null or empty")
	case strings.HasPrefix(code, "W") && widgetPattern.MatchString(code):
		return WidgetCode{value: code}, nil
	case strings.HasPrefix(code, "G") && gizmoPattern.MatchString(code):
		return GizmoCode{value: code}, nil
	}
	return nil, NewValidationError("ProductCode format not recognized '%s'", code)
}

// OrderQuantity is either a UnitQuantity or a KilogramQuantity.
type OrderQuantity interface {
	// Value is the magnitude used when pricing a line.
	Value() decimal.Decimal
	isOrderQuantity()
}

// UnitQuantity is an integer between 1 and 1000.
type UnitQuantity struct {
	value int
}

func NewUnitQuantity(n int) (UnitQuantity, error) {
	if n < 1 || n > 1000 {
		return UnitQuantity{}, NewValidationError("UnitQuantity must be an integer between 1 and 1000")
	}
	return UnitQuantity{value: n}, nil
}

func (q UnitQuantity) Int() int               { return q.value }
func (q UnitQuantity) Value() decimal.Decimal { return decimal.NewFromInt(int64(q.value)) }
func (UnitQuantity) isOrderQuantity()         {}

var (
	kilogramMin = decimal.RequireFromString("0.05")
	kilogramMax = decimal.RequireFromString("100.00")
)

// KilogramQuantity is a weight between 0.05 and 100.00.
type KilogramQuantity struct {
	value decimal.Decimal
}

func NewKilogramQuantity(d decimal.Decimal) (KilogramQuantity, error) {
	if d.LessThan(kilogramMin) || d.GreaterThan(kilogramMax) {
		return KilogramQuantity{}, NewValidationError("KilogramQuantity must be between 0.05 and 100.00")
	}
	return KilogramQuantity{value: d}, nil
}

func (q KilogramQuantity) Value() decimal.Decimal { return q.value }
func (KilogramQuantity) isOrderQuantity()         {}

// NewOrderQuantity interprets a raw quantity according to the product kind:
// widgets are counted in floored units, gizmos weighed in kilograms as given.
func NewOrderQuantity(code ProductCode, qty float64) (OrderQuantity, error) {
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return nil, NewValidationError("Quantity must be a finite number")
	}
	switch code.(type) {
	case WidgetCode:
		floored := math.Floor(qty)
		if floored < 1 || floored > 1000 {
			return nil, NewValidationError("UnitQuantity must be an integer between 1 and 1000")
		}
		q, err := NewUnitQuantity(int(floored))
		if err != nil {
			return nil, err
		}
		return q, nil
	case GizmoCode:
		q, err := NewKilogramQuantity(decimal.NewFromFloat(qty))
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	return nil, NewValidationError("Unknown product code")
}
