package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/tariffsnap/tariffsnap-backend/internal/report"
)

// reportSubject is fixed — the offer is a single product.
const reportSubject = "Your TariffSnap Tariff Impact Report is Ready! 🎯"

// reportRow is the typed view of one table row. Cells are pre-resolved with
// the N/A placeholder so the template stays presentation-only.
type reportRow struct {
	Product     string
	OldCost     string
	Tariff      string
	NewCost     string
	Action      string
	ActionClass string
}

type reportData struct {
	StoreName   string
	Rows        []reportRow
	GeneratedAt string
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        h2 { color: #2563eb; border-bottom: 3px solid #2563eb; padding-bottom: 10px; }
        h3 { color: #1e40af; margin-top: 30px; }
        table { border-collapse: collapse; width: 100%; margin: 20px 0; }
        th { background-color: #2563eb; color: white; padding: 12px; text-align: left; }
        td { padding: 10px; border: 1px solid #ddd; }
        tr:nth-child(even) { background-color: #f3f4f6; }
        .action-kill { color: #dc2626; font-weight: bold; }
        .action-price { color: #f59e0b; font-weight: bold; }
        .action-keep { color: #16a34a; font-weight: bold; }
        .info-box { background-color: #f3f4f6; padding: 20px; border-radius: 8px; margin: 30px 0; }
        .highlight-box { background-color: #eff6ff; padding: 20px; border-left: 4px solid #2563eb; margin: 30px 0; }
        .savings-box { background-color: #fef3c7; padding: 20px; border-radius: 8px; margin: 30px 0; }
    </style>
</head>
<body>
    <h2>Your TariffSnap Tariff Impact Report 🎯</h2>

    <p>Hi there,</p>

    <p>Thanks for using TariffSnap! Here's your complete tariff impact analysis for <strong>{{.StoreName}}</strong>.</p>

    <h3>📊 Your Results:</h3>

    <table>
        <thead>
            <tr>
                <th>Product</th>
                <th>Old Cost</th>
                <th>Tariff %</th>
                <th>New Cost</th>
                <th>Action</th>
            </tr>
        </thead>
        <tbody>
{{- range .Rows}}
            <tr>
                <td>{{.Product}}</td>
                <td>${{.OldCost}}</td>
                <td>{{.Tariff}}%</td>
                <td>${{.NewCost}}</td>
                <td class="{{.ActionClass}}">{{.Action}}</td>
            </tr>
{{- end}}
        </tbody>
    </table>

    <div class="info-box">
        <h3>🎯 What These Actions Mean:</h3>

        <p><strong class="action-kill">🔴 KILL:</strong> Discontinue these products - margins too thin after tariffs</p>

        <p><strong class="action-price">🟡 PRICE UP:</strong> Increase prices to maintain profitability</p>

        <p><strong class="action-keep">🟢 KEEP:</strong> No action needed - margins still healthy</p>
    </div>

    <div class="highlight-box">
        <h3>💡 Next Steps:</h3>

        <ol>
            <li>Review each product's recommended action</li>
            <li>Calculate your potential savings by discontinuing "KILL" products</li>
            <li>Adjust pricing for "PRICE UP" products to maintain margins</li>
            <li>Focus marketing budget on "KEEP" products with healthy margins</li>
        </ol>
    </div>

    <div class="savings-box">
        <p style="margin: 0; font-size: 16px;">
            <strong>💰 Estimated Annual Savings:</strong> Based on our analysis, stores like yours typically save <strong>$6,000+</strong> per year by implementing these recommendations.
        </p>
    </div>

    <hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">

    <p style="font-size: 14px; color: #666;">
        <strong>Questions?</strong> Reply to this email and we'll help you interpret your results.
    </p>

    <p style="font-size: 14px; color: #666;">
        Best regards,<br>
        <strong>The TariffSnap Team</strong>
    </p>

    <div style="margin-top: 40px; padding-top: 20px; border-top: 1px solid #ddd; font-size: 12px; color: #999; text-align: center;">
        <p>TariffSnap - Tariff Impact Analysis for E-commerce Sellers</p>
        <p>This report was generated on {{.GeneratedAt}}</p>
    </div>
</body>
</html>`))

// renderReport produces the report HTML for the given rows. The store name
// falls back to a generic greeting when the payment had no description.
func renderReport(storeName string, rows []report.Row, now time.Time) (string, error) {
	if strings.TrimSpace(storeName) == "" {
		storeName = "your store"
	}

	data := reportData{
		StoreName:   storeName,
		Rows:        make([]reportRow, 0, len(rows)),
		GeneratedAt: now.Format("January 02, 2006 at 03:04 PM"),
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, reportRow{
			Product:     row.Get("Product"),
			OldCost:     row.Get("Old Cost"),
			Tariff:      row.Get("Tariff%"),
			NewCost:     row.Get("New Cost"),
			Action:      row.Get("Action"),
			ActionClass: report.ActionClass(row.Get("Action")),
		})
	}

	var b strings.Builder
	if err := reportTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("email: render report: %w", err)
	}
	return b.String(), nil
}
