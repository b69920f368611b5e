package billing

import (
	"context"
	"fmt"
	"html"
	"strings"

	"lending-portal/internal/domain/settings"
)

// invoiceEmail is a composed statement email, ready for the transport.
type invoiceEmail struct {
	Subject string
	Text    string
	HTML    string
}

// buildInvoiceEmail fills the stored role template with this entity's data.
func (u *Usecase) buildInvoiceEmail(ctx context.Context, st *Statement) (*invoiceEmail, error) {
	tpl, err := u.settings.ActiveTemplate(ctx, templateNameFor(st.Role))
	if err != nil {
		return nil, fmt.Errorf("load email template for role %s: %w", st.Role, err)
	}

	data := TemplateData(st.EntityName, st.Role, st.InvoiceDate, st.TotalBilled)

	parts := []string{
		ApplyPlaceholders(tpl.Greeting, data),
		ApplyPlaceholders(tpl.Body, data),
		ApplyPlaceholders(tpl.Closing, data),
		ApplyPlaceholders(tpl.Signature, data),
	}
	text := strings.Join(nonEmpty(parts), "\n\n")

	var b strings.Builder
	b.WriteString("<html><body style=\"font-family: Arial, sans-serif; color: #1e293b;\">")
	for _, p := range nonEmpty(parts) {
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(p), "\n", "<br>"))
		b.WriteString("</p>")
	}
	b.WriteString("</body></html>")

	return &invoiceEmail{
		Subject: ApplyPlaceholders(tpl.Subject, data),
		Text:    text,
		HTML:    b.String(),
	}, nil
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// summaryRecipients resolves the management address list from settings,
// falling back to the hardcoded defaults when the setting is unset or the
// store is unreachable.
func (u *Usecase) summaryRecipients(ctx context.Context) []string {
	fallback := []string{
		"todd@coastalprivatelending.com",
		"ashley@coastalprivatelending.com",
		"operations@coastalprivatelending.com",
	}

	raw, err := u.settings.Get(ctx, settings.SettingSummaryEmails)
	if err != nil {
		return fallback
	}
	var out []string
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

var summaryRoleOrder = []struct {
	Heading string
	Match   func(role string) bool
}{
	{"Clients / Borrowers", func(r string) bool { return r == "client" || r == "borrower" }},
	{"Promissory Investors", func(r string) bool { return r == "promissory" }},
	{"Cap Investors", func(r string) bool { return r == "capinvestor" }},
}

// buildSummaryReport composes the cross-entity run report: every successful
// recipient grouped by role class.
func buildSummaryReport(recipients []Recipient, data map[string]string) (subject, text, htmlBody string) {
	date := data["formattedDate"]
	subject = "Invoice Generation Report - " + date

	var tb, hb strings.Builder
	hb.WriteString("<html><body style=\"font-family: Arial, sans-serif; color: #1e293b;\">")
	hb.WriteString("<h1>Monthly Invoice Report</h1><p>" + html.EscapeString(date) + "</p>")
	tb.WriteString("Monthly Invoice Report - " + date + "\n")

	for _, group := range summaryRoleOrder {
		var rows []Recipient
		for _, r := range recipients {
			if group.Match(r.Role) {
				rows = append(rows, r)
			}
		}

		heading := fmt.Sprintf("%s (%d)", group.Heading, len(rows))
		tb.WriteString("\n" + heading + "\n")
		hb.WriteString("<h2>" + html.EscapeString(heading) + "</h2>")

		if len(rows) == 0 {
			tb.WriteString("  No invoices sent\n")
			hb.WriteString("<p>No invoices sent</p>")
			continue
		}
		hb.WriteString("<table cellpadding=\"6\" style=\"border-collapse: collapse;\">" +
			"<tr><th align=\"left\">Business Name</th><th align=\"left\">Name</th><th align=\"left\">Email</th></tr>")
		for _, r := range rows {
			name := strings.TrimSpace(r.FirstName + " " + r.LastName)
			tb.WriteString(fmt.Sprintf("  %s | %s | %s\n", r.BusinessName, name, r.Email))
			hb.WriteString("<tr><td>" + html.EscapeString(r.BusinessName) + "</td><td>" +
				html.EscapeString(name) + "</td><td>" + html.EscapeString(r.Email) + "</td></tr>")
		}
		hb.WriteString("</table>")
	}

	total := fmt.Sprintf("Total Invoices Sent: %d", len(recipients))
	tb.WriteString("\n" + total + "\n")
	hb.WriteString("<p><strong>" + html.EscapeString(total) + "</strong></p></body></html>")

	return subject, tb.String(), hb.String()
}
