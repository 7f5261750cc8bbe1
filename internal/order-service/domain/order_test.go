package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderID(t *testing.T) {
	id, err := NewOrderID("ORD-001")
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", id.String())

	for _, s := range []string{"", strings.Repeat("x", 11)} {
		_, err := NewOrderID(s)
		assert.Error(t, err)
	}

	_, err = NewOrderLineID("LINE-01")
	assert.NoError(t, err)
	_, err = NewOrderLineID("")
	assert.EqualError(t, err, "OrderLineId must be a non-empty string < 10 chars")
}

func TestNewProductCode(t *testing.T) {
	code, err := NewProductCode("W1234")
	require.NoError(t, err)
	assert.IsType(t, WidgetCode{}, code)
	assert.Equal(t, "W1234", code.String())

	code, err = NewProductCode("G123")
	require.NoError(t, err)
	assert.IsType(t, GizmoCode{}, code)

	_, err = NewProductCode("")
	assert.EqualError(t, err, "ProductCode must not be null or empty")

	for _, s := range []string{"W123", "G1234", "X999", "w1234", "W12a4"} {
		_, err := NewProductCode(s)
		require.Error(t, err, s)
		assert.Equal(t, "ProductCode format not recognized '"+s+"'", err.Error())
	}
}

func TestNewOrderQuantity(t *testing.T) {
	widget, _ := NewProductCode("W1234")
	gizmo, _ := NewProductCode("G123")

	t.Run("widget quantity is floored", func(t *testing.T) {
		q, err := NewOrderQuantity(widget, 10.7)
		require.NoError(t, err)
		unit, ok := q.(UnitQuantity)
		require.True(t, ok)
		assert.Equal(t, 10, unit.Int())
	})

	t.Run("gizmo quantity is not rounded", func(t *testing.T) {
		q, err := NewOrderQuantity(gizmo, 5.5)
		require.NoError(t, err)
		kg, ok := q.(KilogramQuantity)
		require.True(t, ok)
		assert.True(t, kg.Value().Equal(decimal.RequireFromString("5.5")))
	})

	tests := []struct {
		name string
		code ProductCode
		qty  float64
		ok   bool
	}{
		{"unit lower bound", widget, 1, true},
		{"unit upper bound", widget, 1000, true},
		{"unit floors below one", widget, 0.9, false},
		{"unit above bound", widget, 1001, false},
		{"unit fraction under upper bound", widget, 1000.9, true},
		{"kilogram lower bound", gizmo, 0.05, true},
		{"kilogram upper bound", gizmo, 100, true},
		{"kilogram under bound", gizmo, 0.04, false},
		{"kilogram above bound", gizmo, 100.01, false},
		{"negative", gizmo, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrderQuantity(tt.code, tt.qty)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
