package billing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculator_ExampleInvoice(t *testing.T) {
	items := []LineItem{
		{Description: "Consultation", Quantity: 2, Price: 75},
		{Description: "Vaccination", Quantity: 1, Price: 45},
	}
	c := NewCalculator(DefaultTaxRate)

	if got := Subtotal(items); !almostEqual(got, 195) {
		t.Fatalf("expected subtotal 195, got %v", got)
	}
	if got := c.Tax(items); !almostEqual(got, 15.6) {
		t.Fatalf("expected tax 15.6, got %v", got)
	}
	if got := c.Total(items); !almostEqual(got, 210.6) {
		t.Fatalf("expected total 210.6, got %v", got)
	}

	tot := c.Compute(items)
	if !almostEqual(tot.Total, tot.Subtotal+tot.Tax) {
		t.Fatalf("total must equal subtotal+tax, got %#v", tot)
	}
}

func TestCalculator_NoClamping(t *testing.T) {
	items := []LineItem{
		{Quantity: -1, Price: 10},
		{Quantity: 0, Price: 99},
		{Quantity: 3, Price: 10},
	}
	if got := Subtotal(items); !almostEqual(got, 20) {
		t.Fatalf("expected subtotal 20, got %v", got)
	}
}

func TestCalculator_EmptyItems(t *testing.T) {
	tot := NewCalculator(DefaultTaxRate).Compute(nil)
	if tot.Subtotal != 0 || tot.Tax != 0 || tot.Total != 0 {
		t.Fatalf("expected zero totals, got %#v", tot)
	}
}

func TestCalculator_CustomRate(t *testing.T) {
	items := []LineItem{{Quantity: 1, Price: 100}}
	tot := NewCalculator(0.21).Compute(items)
	if !almostEqual(tot.Tax, 21) || !almostEqual(tot.Total, 121) {
		t.Fatalf("unexpected totals for 21%%: %#v", tot)
	}
}

func TestDisplay_RoundsOnlyAtBoundary(t *testing.T) {
	// 3 x 0.1 arrastra error binario; la salida igual debe ser 0.30
	items := []LineItem{{Quantity: 3, Price: 0.1}}
	sub := Subtotal(items)
	if Display(sub) != "0.30" {
		t.Fatalf("expected 0.30, got %s", Display(sub))
	}
	if Round2(210.6049) != 210.6 {
		t.Fatalf("unexpected Round2 result")
	}
}
