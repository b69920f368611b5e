package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"lending-portal/internal/usecase/billing"
)

// SMTPMailer sends statement emails over plain SMTP with AUTH PLAIN.
type SMTPMailer struct {
	addr     string // host:port
	host     string
	username string
	password string
	from     string
	fromName string
	replyTo  string
}

func NewSMTPMailer(addr, host, username, password, from, fromName, replyTo string) *SMTPMailer {
	return &SMTPMailer{
		addr:     addr,
		host:     host,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
		replyTo:  replyTo,
	}
}

func (s *SMTPMailer) Send(_ context.Context, m billing.Message) (string, error) {
	msgID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.host)
	raw := s.compose(msgID, m)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(s.addr, auth, s.from, []string{m.To}, raw); err != nil {
		return "", fmt.Errorf("smtp send to %s: %w", m.To, err)
	}
	return msgID, nil
}

// compose builds a multipart/mixed message: a multipart/alternative body
// (text then html) plus an optional base64 attachment.
func (s *SMTPMailer) compose(msgID string, m billing.Message) []byte {
	mixed := "mixed_" + uuid.NewString()
	alt := "alt_" + uuid.NewString()

	var b strings.Builder
	b.WriteString("Message-ID: " + msgID + "\r\n")
	b.WriteString("Date: " + time.Now().UTC().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("From: " + formatAddress(s.fromName, s.from) + "\r\n")
	b.WriteString("To: " + formatAddress(m.ToName, m.To) + "\r\n")
	if s.replyTo != "" {
		b.WriteString("Reply-To: " + s.replyTo + "\r\n")
	}
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", m.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/mixed; boundary=\"" + mixed + "\"\r\n")
	b.WriteString("\r\n")

	b.WriteString("--" + mixed + "\r\n")
	b.WriteString("Content-Type: multipart/alternative; boundary=\"" + alt + "\"\r\n\r\n")

	b.WriteString("--" + alt + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(m.Text + "\r\n")

	if m.HTML != "" {
		b.WriteString("--" + alt + "\r\n")
		b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
		b.WriteString(m.HTML + "\r\n")
	}
	b.WriteString("--" + alt + "--\r\n")

	if m.Attachment != nil {
		b.WriteString("--" + mixed + "\r\n")
		b.WriteString("Content-Type: " + m.Attachment.ContentType + "; name=\"" + m.Attachment.Filename + "\"\r\n")
		b.WriteString("Content-Disposition: attachment; filename=\"" + m.Attachment.Filename + "\"\r\n")
		b.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
		b.WriteString(wrap76(base64.StdEncoding.EncodeToString(m.Attachment.Data)))
		b.WriteString("\r\n")
	}
	b.WriteString("--" + mixed + "--\r\n")

	return []byte(b.String())
}

func formatAddress(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), email)
}

// wrap76 folds base64 output to the RFC 2045 line limit.
func wrap76(s string) string {
	var b strings.Builder
	for len(s) > 76 {
		b.WriteString(s[:76] + "\r\n")
		s = s[76:]
	}
	b.WriteString(s)
	return b.String()
}
