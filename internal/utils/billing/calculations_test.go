package billing_test

import (
	"testing"

	"github.com/hourstack/time_billing_app/internal/core/domain"
	"github.com/hourstack/time_billing_app/internal/utils/billing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineAmount(t *testing.T) {
	got := billing.LineAmount(decimal.NewFromInt(8), decimal.NewFromInt(50))
	assert.True(t, decimal.NewFromInt(400).Equal(got))
}

func TestSubtotal_ComposesThreeSources(t *testing.T) {
	lines := []domain.InvoiceLine{{Amount: decimal.NewFromInt(400)}}
	manual := []domain.InvoiceManualLine{{LineTotal: decimal.NewFromInt(100)}}
	fees := []domain.InvoiceFee{{FeeTotal: decimal.NewFromInt(50)}}

	got := billing.Subtotal(lines, manual, fees)
	assert.True(t, decimal.NewFromInt(550).Equal(got))
}

func TestSubtotal_Empty(t *testing.T) {
	got := billing.Subtotal(nil, nil, nil)
	assert.True(t, got.IsZero())
}

func TestComposeTotal(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		discount int64
		want     int64
	}{
		{name: "plain discount", subtotal: 550, discount: 25, want: 525},
		{name: "zero discount", subtotal: 400, discount: 0, want: 400},
		{name: "discount equals subtotal", subtotal: 100, discount: 100, want: 0},
		{name: "discount above subtotal clamps to zero", subtotal: 100, discount: 150, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.ComposeTotal(decimal.NewFromInt(tt.subtotal), decimal.NewFromInt(tt.discount))
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), got.String())
		})
	}
}

func TestFeeTotal(t *testing.T) {
	got := billing.FeeTotal(decimal.NewFromInt(2), decimal.NewFromFloat(25.5))
	assert.True(t, decimal.NewFromInt(51).Equal(got))
}
