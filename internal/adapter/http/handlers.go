package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"lending-portal/internal/domain/invoice"
	"lending-portal/internal/domain/loan"
	"lending-portal/internal/domain/settings"
	"lending-portal/internal/usecase/billing"
)

// Runner triggers one invoice generation cycle.
type Runner interface {
	Run(ctx context.Context) (*billing.RunStats, error)
}

// ArtifactOpener serves stored statement bytes after verifying the signed
// token. The filesystem store implements it.
type ArtifactOpener interface {
	Open(ctx context.Context, key string, exp int64, token string) ([]byte, error)
}

const downloadTTL = 15 * time.Minute

type Handler struct {
	runner   Runner
	invoices invoice.Repository
	settings settings.Repository
	store    billing.ArtifactStore
	opener   ArtifactOpener
}

func NewHandler(runner Runner, invoices invoice.Repository, sets settings.Repository, store billing.ArtifactStore, opener ArtifactOpener) *Handler {
	return &Handler{runner: runner, invoices: invoices, settings: sets, store: store, opener: opener}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/api/invoices/generate", h.GenerateInvoices)
	e.GET("/api/invoices", h.ListInvoices)
	e.GET("/api/invoices/my", h.ListMyInvoices)
	e.GET("/api/settings/invoice-summary-emails", h.GetSummaryEmails)
	e.PUT("/api/settings/invoice-summary-emails", h.PutSummaryEmails)
	if h.opener != nil {
		e.GET("/files/*", h.DownloadArtifact)
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (h *Handler) GenerateInvoices(c echo.Context) error {
	stats, err := h.runner.Run(c.Request().Context())
	if err != nil {
		if errors.Is(err, billing.ErrRunInProgress) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "invoice generation already in progress"})
		}
		log.Printf("http: generate invoices: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "invoice generation failed to start"})
	}
	return c.JSON(http.StatusOK, stats)
}

// invoiceDTO decorates a ledger header with a short-lived download URL. The
// URL is regenerated on every read and never stored.
type invoiceDTO struct {
	ID           uint64     `json:"id"`
	BusinessName string     `json:"business_name"`
	Role         loan.Role  `json:"role"`
	InvoiceDate  string     `json:"invoice_date"`
	FileName     string     `json:"file_name"`
	TotalAmount  float64    `json:"total_amount"`
	RecordCount  int        `json:"record_count"`
	EmailSent    bool       `json:"email_sent"`
	EmailSentAt  *time.Time `json:"email_sent_at,omitempty"`
	DownloadURL  string     `json:"download_url,omitempty"`
}

func (h *Handler) toDTO(ctx context.Context, inv *invoice.Invoice) invoiceDTO {
	dto := invoiceDTO{
		ID:           inv.ID,
		BusinessName: inv.BusinessName,
		Role:         inv.Role,
		InvoiceDate:  inv.InvoiceDate.Format("2006-01-02"),
		FileName:     inv.FileName,
		TotalAmount:  inv.TotalAmount,
		RecordCount:  inv.RecordCount,
		EmailSent:    inv.EmailSent,
		EmailSentAt:  inv.EmailSentAt,
	}
	if inv.StorageKey != "" {
		url, err := h.store.SignedURL(ctx, inv.StorageKey, downloadTTL)
		if err != nil {
			log.Printf("http: sign url for %s: %v", inv.StorageKey, err)
		} else {
			dto.DownloadURL = url
		}
	}
	return dto
}

func (h *Handler) ListInvoices(c echo.Context) error {
	ctx := c.Request().Context()
	rows, err := h.invoices.ListAll(ctx)
	if err != nil {
		log.Printf("http: list invoices: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list invoices"})
	}
	out := make([]invoiceDTO, 0, len(rows))
	for _, inv := range rows {
		out = append(out, h.toDTO(ctx, inv))
	}
	return c.JSON(http.StatusOK, out)
}

type myInvoicesReq struct {
	BusinessName string `query:"business_name" validate:"required"`
	Role         string `query:"role"          validate:"required,invoicerole"`
}

func (h *Handler) ListMyInvoices(c echo.Context) error {
	var req myInvoicesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	ctx := c.Request().Context()
	rows, err := h.invoices.ListByEntity(ctx, req.BusinessName, loan.Role(req.Role))
	if err != nil {
		log.Printf("http: list invoices for %q: %v", req.BusinessName, err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list invoices"})
	}
	out := make([]invoiceDTO, 0, len(rows))
	for _, inv := range rows {
		out = append(out, h.toDTO(ctx, inv))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetSummaryEmails(c echo.Context) error {
	raw, err := h.settings.Get(c.Request().Context(), settings.SettingSummaryEmails)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, map[string]any{"emails": []string{}})
		}
		log.Printf("http: get summary emails: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not read setting"})
	}
	var emails []string
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			emails = append(emails, addr)
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"emails": emails})
}

type summaryEmailsReq struct {
	Emails string `json:"emails" validate:"required,emaillist"`
}

func (h *Handler) PutSummaryEmails(c echo.Context) error {
	var req summaryEmailsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	if err := h.settings.Set(c.Request().Context(), settings.SettingSummaryEmails, req.Emails); err != nil {
		log.Printf("http: set summary emails: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not save setting"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DownloadArtifact(c echo.Context) error {
	key := c.Param("*")
	exp, err := strconv.ParseInt(c.QueryParam("expires"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid expires param"})
	}

	data, err := h.opener.Open(c.Request().Context(), key, exp, c.QueryParam("token"))
	if err != nil {
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "artifact unavailable"})
	}
	return c.Blob(http.StatusOK, "text/html; charset=utf-8", data)
}
