package cli

import (
	"strings"
	"testing"

	"household/internal/domain"
)

func TestRenderSuggestions(t *testing.T) {
	out := RenderSuggestions([]string{
		"Low inventory alert. Checking prices for restocking:",
		"Eggs: Price lookup is unavailable right now.",
		"Eco tip: Buy discounted veggies from local markets to reduce waste.",
	})
	for _, want := range []string{" 1.", " 3.", "Eggs: Price lookup is unavailable right now."} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Fatalf("expected 3 lines, got %d", n)
	}
}

func TestRenderForecast(t *testing.T) {
	if out := RenderForecast("water", domain.NoData()); !strings.Contains(out, "No data available") {
		t.Fatalf("unexpected output %q", out)
	}
	if out := RenderForecast("energy", domain.Usage(12.5)); !strings.Contains(out, "12.50") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderTable(t *testing.T) {
	if RenderTable(Table{}) != "" {
		t.Fatal("empty table should render nothing")
	}
	out := RenderTable(Table{
		Headers: []string{"Name", "Qty"},
		Rows:    [][]string{{"Milk", "2"}, {"Batteries", "8"}},
	})
	if !strings.Contains(out, "Batteries") || strings.Count(out, "\n") != 6 {
		t.Fatalf("unexpected table:\n%s", out)
	}
}
