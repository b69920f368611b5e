package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lending-portal/internal/domain/loan"
	"lending-portal/internal/domain/settings"
)

// ApplyPlaceholders substitutes {{key}} tokens. Unknown tokens are left
// intact so a typo in a stored template is visible, not silently blank.
func ApplyPlaceholders(s string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// FormatUSD renders a dollar amount with thousands separators, two decimals.
func FormatUSD(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "$" + b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatStatementDate renders the invoice date the way statements do:
// "January 1 2026" without a comma, suitable for file names after
// underscore substitution.
func FormatStatementDate(d time.Time) string {
	return fmt.Sprintf("%s %d %d", d.Month().String(), d.Day(), d.Year())
}

// TemplateData builds the placeholder map for one entity's statement email.
func TemplateData(entityName string, role loan.Role, invoiceDate time.Time, totalAmount float64) map[string]string {
	amountLabel := "Total Interest Earned"
	if role == loan.RoleClient {
		amountLabel = "Total Interest Due"
	}
	return map[string]string{
		"businessName":  entityName,
		"month":         invoiceDate.Month().String(),
		"year":          fmt.Sprintf("%d", invoiceDate.Year()),
		"formattedDate": fmt.Sprintf("%s %d", invoiceDate.Month().String(), invoiceDate.Year()),
		"totalAmount":   FormatUSD(totalAmount),
		"amountLabel":   amountLabel,
	}
}

func templateNameFor(role loan.Role) string {
	switch role {
	case loan.RoleInvestor:
		return settings.TemplateInvoiceInvestor
	case loan.RoleCapInvestor:
		return settings.TemplateInvoiceCapInvestor
	default:
		return settings.TemplateInvoiceClient
	}
}

// FileName builds the statement artifact name:
// Business_Month_D_YYYY.html with path-hostile characters replaced.
func FileName(entityName string, invoiceDate time.Time) string {
	clean := sanitizeName(entityName)
	date := strings.ReplaceAll(FormatStatementDate(invoiceDate), " ", "_")
	return clean + "_" + date + ".html"
}

// StorageKey places the artifact under a per-role, per-entity prefix.
func StorageKey(role loan.Role, entityName, fileName string) string {
	folder := map[loan.Role]string{
		loan.RoleClient:      "clients",
		loan.RoleInvestor:    "investors",
		loan.RoleCapInvestor: "capinvestors",
	}[role]
	if folder == "" {
		folder = string(role)
	}
	return "invoices/" + folder + "/" + sanitizeName(entityName) + "/" + fileName
}

func sanitizeName(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return r.Replace(name)
}
