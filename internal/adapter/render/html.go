package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"lending-portal/internal/domain/loan"
	"lending-portal/internal/usecase/billing"
)

const statementHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #1e293b;
      background: #ffffff;
    }
    .statement {
      max-width: 820px;
      margin: 0 auto;
    }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #0f4c81;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .meta {
      text-align: right;
      font-size: 14px;
    }
    .meta .label {
      color: #64748b;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e2e8f0;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #64748b;
    }
    .summary {
      margin-bottom: 24px;
      padding: 12px 16px;
      background: #f8fafc;
      border: 1px solid #e2e8f0;
      font-size: 14px;
    }
    .summary h2 {
      margin: 0 0 8px;
      font-size: 12px;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      color: #64748b;
    }
    .summary-row {
      display: flex;
      justify-content: space-between;
      padding: 2px 0;
    }
    .prorated {
      font-size: 12px;
      color: #64748b;
      font-style: italic;
    }
    .totals {
      margin-top: 12px;
      display: flex;
      justify-content: flex-end;
      font-size: 16px;
    }
    .totals strong {
      margin-left: 12px;
    }
    .ytd {
      margin-top: 8px;
      display: flex;
      justify-content: flex-end;
      font-size: 14px;
      color: #334155;
    }
    .ytd strong {
      margin-left: 12px;
    }
  </style>
</head>
<body>
  <div class="statement">
    <div class="header">
      <div>
        <div><strong>{{.EntityName}}</strong></div>
        <div>{{.Title}}</div>
      </div>
      <div class="meta">
        <div class="label">Statement Date</div>
        <div><strong>{{.StatementDate}}</strong></div>
        <div class="label">Billing Period</div>
        <div>{{.PeriodLine}}</div>
      </div>
    </div>

    {{if .Invested}}
    <div class="summary">
      <h2>Account Summary</h2>
      <div class="summary-row"><span>Total Amount Invested</span><strong>{{.Invested}}</strong></div>
      <div class="summary-row"><span>Monthly Interest Earned</span><strong>{{.Total}}</strong></div>
    </div>
    {{end}}

    <table>
      <thead>
        <tr>
          {{range .Columns}}<th>{{.}}</th>{{end}}
        </tr>
      </thead>
      <tbody>
        {{range .Rows}}
        <tr>
          {{range .Cells}}<td>{{.}}</td>{{end}}
        </tr>
        {{if .Note}}
        <tr>
          <td colspan="{{len $.Columns}}" class="prorated">{{.Note}}</td>
        </tr>
        {{end}}
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <span>{{.TotalLabel}}</span>
      <strong>{{.Total}}</strong>
    </div>
    {{if .YTD}}
    <div class="ytd">
      <span>Year to Date Interest</span>
      <strong>{{.YTD}}</strong>
    </div>
    {{end}}
  </div>
</body>
</html>
`

type row struct {
	Cells []string
	Note  string
}

type statementView struct {
	Title         string
	EntityName    string
	StatementDate string
	PeriodLine    string
	Columns       []string
	Rows          []row
	Invested      string
	TotalLabel    string
	Total         string
	YTD           string
}

// HTMLRenderer renders one entity's statement to a standalone HTML document.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("statement").Parse(statementHTMLTemplate)),
	}
}

func (r *HTMLRenderer) Render(_ context.Context, st *billing.Statement) ([]byte, error) {
	view := buildView(st)
	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("execute statement template: %w", err)
	}
	return buf.Bytes(), nil
}

func buildView(st *billing.Statement) statementView {
	v := statementView{
		EntityName:    st.EntityName,
		StatementDate: billing.FormatStatementDate(st.InvoiceDate),
		PeriodLine: fmt.Sprintf("%s - %s",
			formatDay(st.Covered.Start), formatDay(st.Covered.End)),
		Total: billing.FormatUSD(st.TotalBilled),
	}

	switch st.Role {
	case loan.RoleInvestor:
		v.Title = "Promissory Note Statement"
		v.TotalLabel = "Total Interest Earned"
		v.Columns = []string{"Fund Date", "Loan Amount", "Interest Rate", "Interest Earned"}
		for _, ln := range st.Lines {
			v.Rows = append(v.Rows, row{
				Cells: []string{
					formatFundDate(ln.FundDate),
					billing.FormatUSD(ln.Principal),
					formatRate(ln.Rate),
					billing.FormatUSD(ln.BilledAmount),
				},
				Note: prorationNote(ln),
			})
		}
	case loan.RoleCapInvestor:
		v.Title = "Capital Investor Statement"
		v.TotalLabel = "Total Interest Earned"
		v.Columns = []string{"Property Address", "Loan Amount", "Fund Date", "Interest Rate", "Interest Earned"}
		for _, ln := range st.Lines {
			v.Rows = append(v.Rows, row{
				Cells: []string{
					ln.Address,
					billing.FormatUSD(ln.Principal),
					formatFundDate(ln.FundDate),
					formatRate(ln.Rate),
					billing.FormatUSD(ln.BilledAmount),
				},
				Note: prorationNote(ln),
			})
		}
	default:
		v.Title = "Monthly Interest Invoice"
		v.TotalLabel = "Total Interest Due"
		v.Columns = []string{"Property Address", "Loan Amount", "Interest Rate", "Monthly Interest"}
		for _, ln := range st.Lines {
			v.Rows = append(v.Rows, row{
				Cells: []string{
					ln.Address,
					billing.FormatUSD(ln.Principal),
					formatRate(ln.Rate),
					billing.FormatUSD(ln.BilledAmount),
				},
				Note: prorationNote(ln),
			})
		}
	}

	// clients have no capital position or accrual to report
	if st.Role != loan.RoleClient {
		v.Invested = billing.FormatUSD(st.TotalInvested)
		if st.YearToDate > 0 {
			v.YTD = billing.FormatUSD(st.YearToDate)
		}
	}
	return v
}

func prorationNote(ln billing.Line) string {
	if !ln.IsProrated {
		return ""
	}
	return fmt.Sprintf("Prorated %d out of %d days", ln.DaysInPeriod, ln.TotalDaysInMonth)
}

func formatDay(d time.Time) string {
	return d.Format("January 2, 2006")
}

func formatFundDate(d *time.Time) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	return d.Format("January 2, 2006")
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}
