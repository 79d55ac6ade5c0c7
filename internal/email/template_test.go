package email

import (
	"strings"
	"testing"
	"time"

	"github.com/tariffsnap/tariffsnap-backend/internal/report"
)

var testNow = time.Date(2026, time.March, 14, 15, 9, 0, 0, time.UTC)

func TestRenderReport_OneTableRowPerInputRow(t *testing.T) {
	rows := []report.Row{
		{"Product": "Bamboo Cutlery", "Old Cost": "4.50", "Tariff%": "25", "New Cost": "5.63", "Action": "PRICE UP"},
		{"Product": "Steel Tongs", "Old Cost": "2.00", "Tariff%": "50", "New Cost": "3.00", "Action": "KILL"},
		{"Product": "Oak Board", "Old Cost": "9.00", "Tariff%": "5", "New Cost": "9.45", "Action": "KEEP"},
	}

	html, err := renderReport("Acme Kitchen", rows, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// One header row plus one row per product.
	if got := strings.Count(html, "<tr>"); got != 4 {
		t.Errorf("expected 4 <tr> elements, got %d", got)
	}
	for _, product := range []string{"Bamboo Cutlery", "Steel Tongs", "Oak Board"} {
		if !strings.Contains(html, product) {
			t.Errorf("missing product %q", product)
		}
	}
}

func TestRenderReport_ActionClasses(t *testing.T) {
	rows := []report.Row{
		{"Product": "A", "Action": "kill it"},
		{"Product": "B", "Action": "Price Up"},
		{"Product": "C", "Action": "KEEP"},
	}

	html, err := renderReport("", rows, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		`<td class="action-kill">kill it</td>`,
		`<td class="action-price">Price Up</td>`,
		`<td class="action-keep">KEEP</td>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderReport_MissingCellsRenderPlaceholder(t *testing.T) {
	rows := []report.Row{{"Product": "Mystery Item"}}

	html, err := renderReport("Acme", rows, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "$N/A") {
		t.Error("expected N/A placeholder for missing cost cells")
	}
	// N/A contains neither KILL, PRICE nor KEEP — the cell stays unstyled.
	if !strings.Contains(html, `<td class="">N/A</td>`) {
		t.Error("expected unstyled Action cell for missing action")
	}
}

func TestRenderReport_StoreNameFallback(t *testing.T) {
	html, err := renderReport("  ", nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "<strong>your store</strong>") {
		t.Error("expected generic greeting when store name is blank")
	}
}

func TestRenderReport_EscapesSheetContent(t *testing.T) {
	rows := []report.Row{{"Product": `<script>alert("x")</script>`, "Action": "KEEP"}}

	html, err := renderReport("Acme", rows, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Error("sheet content must be HTML-escaped")
	}
}

func TestRenderReport_GeneratedAtFooter(t *testing.T) {
	html, err := renderReport("Acme", nil, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "March 14, 2026 at 03:09 PM") {
		t.Error("expected generated-on timestamp in footer")
	}

	// Single-digit day and hour are zero-padded.
	padded := time.Date(2026, time.March, 4, 9, 5, 0, 0, time.UTC)
	html, err = renderReport("Acme", nil, padded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(html, "March 04, 2026 at 09:05 AM") {
		t.Error("expected zero-padded day and hour in footer")
	}
}
