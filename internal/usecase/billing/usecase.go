package billing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"lending-portal/internal/domain/invoice"
	"lending-portal/internal/domain/loan"
	"lending-portal/internal/domain/settings"
	"lending-portal/internal/domain/uow"
	"lending-portal/internal/domain/user"
	"lending-portal/pkg/id"
)

// ErrRunInProgress means another generation run holds the period lock.
var ErrRunInProgress = errors.New("invoice generation already in progress")

// Renderer turns an aggregated statement into document bytes. Pure function
// of its inputs.
type Renderer interface {
	Render(ctx context.Context, st *Statement) ([]byte, error)
}

// ArtifactStore persists rendered statements and hands out short-lived
// retrieval URLs (regenerated per read, never persisted).
type ArtifactStore interface {
	Put(ctx context.Context, key string, data []byte) (url string, err error)
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	To         string
	ToName     string
	Subject    string
	Text       string
	HTML       string
	Attachment *Attachment
}

// Mailer is the delivery transport. Send returns the transport's opaque
// message id.
type Mailer interface {
	Send(ctx context.Context, m Message) (string, error)
}

// RunLock guards against overlapping generation runs for the same period.
type RunLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type Deps struct {
	Funded       loan.FundedRepository
	Promissory   loan.PromissoryRepository
	CapInvestors loan.CapInvestorRepository
	Invoices     invoice.Repository
	Users        user.Repository
	Settings     settings.Repository
	UoW          uow.UnitOfWork

	Renderer Renderer
	Store    ArtifactStore
	// Mailer may be nil (deliveries disabled): the cycle still renders,
	// stores and commits, and every entity records a no-email outcome.
	Mailer Mailer
	Lock   RunLock

	LockTTL  time.Duration
	Location *time.Location
	Now      func() time.Time
}

type Usecase struct {
	funded     loan.FundedRepository
	promissory loan.PromissoryRepository
	capinv     loan.CapInvestorRepository
	invoices   invoice.Repository
	users      user.Repository
	settings   settings.Repository
	uow        uow.UnitOfWork

	renderer Renderer
	store    ArtifactStore
	mailer   Mailer
	lock     RunLock

	lockTTL time.Duration
	loc     *time.Location
	now     func() time.Time
}

func NewUsecase(d Deps) *Usecase {
	u := &Usecase{
		funded:     d.Funded,
		promissory: d.Promissory,
		capinv:     d.CapInvestors,
		invoices:   d.Invoices,
		users:      d.Users,
		settings:   d.Settings,
		uow:        d.UoW,
		renderer:   d.Renderer,
		store:      d.Store,
		mailer:     d.Mailer,
		lock:       d.Lock,
		lockTTL:    d.LockTTL,
		loc:        d.Location,
		now:        d.Now,
	}
	if u.lockTTL <= 0 {
		u.lockTTL = 30 * time.Minute
	}
	if u.loc == nil {
		u.loc = time.UTC
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

// Run executes one full generation cycle: all three role classes
// sequentially, then the management summary report. Partial failure is
// reported in the returned stats, never as an error; only missing run-level
// preconditions (or a held lock) abort.
func (u *Usecase) Run(ctx context.Context) (*RunStats, error) {
	invoiceDate := InvoiceDateFor(u.now(), u.loc)
	rc := &runContext{
		runID:       id.NewID32(),
		invoiceDate: invoiceDate,
		covered:     CoveredPeriod(invoiceDate),
	}
	rc.stats.RunID = rc.runID
	rc.stats.InvoiceDate = invoiceDate

	if u.lock != nil {
		key := "invoice_run:" + invoiceDate.Format("2006-01")
		ok, err := u.lock.Acquire(ctx, key, u.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire run lock: %w", err)
		}
		if !ok {
			return nil, ErrRunInProgress
		}
		defer func() {
			if err := u.lock.Release(context.Background(), key); err != nil {
				log.Printf("billing: release run lock: %v", err)
			}
		}()
	}

	log.Printf("billing: run %s started, invoice date %s", rc.runID, invoiceDate.Format("2006-01-02"))

	u.runRole(ctx, rc, loan.RoleClient, &rc.stats.Clients)
	u.runRole(ctx, rc, loan.RoleInvestor, &rc.stats.Investors)
	u.runRole(ctx, rc, loan.RoleCapInvestor, &rc.stats.CapInvestors)

	u.sendSummary(ctx, rc)

	log.Printf("billing: run %s done: %d processed, %d failed, %d emails sent",
		rc.runID, rc.stats.TotalProcessed(), rc.stats.TotalFailed(), rc.stats.TotalEmailsSent())
	return &rc.stats, nil
}

func (u *Usecase) runRole(ctx context.Context, rc *runContext, role loan.Role, stats *RoleStats) {
	names, err := u.entityNames(ctx, role)
	if err != nil {
		log.Printf("billing: enumerate %s entities: %v", role, err)
		stats.Failed++
		return
	}
	log.Printf("billing: processing %d %s entities", len(names), role)

	for _, name := range names {
		res := u.processEntity(ctx, rc, role, name)
		switch {
		case errors.Is(res.err, ErrNoRecords):
			log.Printf("billing: %s %q: no_records, skipped", role, name)
			stats.Skipped++
		case res.err != nil:
			log.Printf("billing: %s %q failed: %v", role, name, res.err)
			stats.Failed++
		default:
			stats.Processed++
			if res.attempted == 0 {
				stats.NoEmail++
			}
			stats.EmailsSent += res.sent
			stats.EmailsFailed += res.failed
			rc.recipients = append(rc.recipients, res.recipients...)
		}
	}
}

type entityResult struct {
	recipients []Recipient
	attempted  int
	sent       int
	failed     int
	err        error
}

// processEntity runs aggregate -> render -> store -> commit -> deliver for
// one entity. Any error is returned, not raised; the caller isolates it so
// the rest of the run continues.
func (u *Usecase) processEntity(ctx context.Context, rc *runContext, role loan.Role, name string) entityResult {
	loans, err := u.fetchBillables(ctx, role, name, rc.covered.Start)
	if err != nil {
		return entityResult{err: fmt.Errorf("fetch loans: %w", err)}
	}

	st, err := BuildStatement(name, role, loans, rc.invoiceDate)
	if err != nil {
		return entityResult{err: err}
	}

	doc, err := u.renderer.Render(ctx, st)
	if err != nil {
		return entityResult{err: fmt.Errorf("render statement: %w", err)}
	}

	fileName := FileName(name, rc.invoiceDate)
	key := StorageKey(role, name, fileName)
	url, err := u.store.Put(ctx, key, doc)
	if err != nil {
		return entityResult{err: fmt.Errorf("store statement: %w", err)}
	}

	invoiceID, err := u.commit(ctx, rc, st, fileName, key, url)
	if err != nil {
		return entityResult{err: fmt.Errorf("commit ledger: %w", err)}
	}
	log.Printf("billing: %s %q: %d records, %s", role, name, len(st.Lines), FormatUSD(st.TotalBilled))

	return u.deliver(ctx, rc, st, invoiceID, fileName, doc)
}

// commit writes the invoice header, replaces its line items and stamps
// first-month loans inside one transaction.
func (u *Usecase) commit(ctx context.Context, rc *runContext, st *Statement, fileName, key, url string) (uint64, error) {
	var invoiceID uint64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv := &invoice.Invoice{
			BusinessName: st.EntityName,
			Role:         st.Role,
			InvoiceDate:  rc.invoiceDate,
			FileName:     fileName,
			StorageKey:   key,
			StorageURL:   url,
			TotalAmount:  st.TotalBilled,
			RecordCount:  len(st.Lines),
		}
		if err := r.Invoices.Upsert(ctx, inv); err != nil {
			return err
		}

		items := make([]*invoice.LineItem, 0, len(st.Lines))
		for _, ln := range st.Lines {
			items = append(items, &invoice.LineItem{
				ID:               uuid.NewString(),
				InvoiceID:        inv.ID,
				LoanTable:        ln.LoanTable,
				LoanID:           ln.LoanKey,
				LoanIdentifier:   ln.Label,
				OriginalAmount:   ln.OriginalAmount,
				ProratedAmount:   ln.BilledAmount,
				IsProrated:       ln.IsProrated,
				ProrationType:    ln.ProrationType,
				PeriodStartDate:  ln.PeriodStart,
				PeriodEndDate:    ln.PeriodEnd,
				DaysInPeriod:     ln.DaysInPeriod,
				TotalDaysInMonth: ln.TotalDaysInMonth,
			})
		}
		if err := r.Invoices.ReplaceLineItems(ctx, inv.ID, items); err != nil {
			return err
		}

		stampAt := u.now().UTC()
		for table, ids := range st.FirstMonthKeys {
			var err error
			switch table {
			case loan.TableFunded:
				err = r.Funded.StampFirstInvoice(ctx, ids, stampAt)
			case loan.TablePromissory:
				err = r.Promissory.StampFirstInvoice(ctx, ids, stampAt)
			case loan.TableCapInvestor:
				err = r.CapInvestors.StampFirstInvoice(ctx, ids, stampAt)
			}
			if err != nil {
				return err
			}
		}

		invoiceID = inv.ID
		return nil
	})
	return invoiceID, err
}

// deliver fans the statement out to every matching recipient independently
// and writes the outcome back on the header. Per-recipient failures never
// fail the entity.
func (u *Usecase) deliver(ctx context.Context, rc *runContext, st *Statement, invoiceID uint64, fileName string, doc []byte) entityResult {
	if u.mailer == nil {
		log.Printf("billing: delivery disabled, skipping email for %q", st.EntityName)
		return entityResult{}
	}

	recipients, err := u.users.ActiveRecipients(ctx, st.EntityName, st.Role)
	if err != nil {
		return entityResult{err: fmt.Errorf("recipient lookup: %w", err)}
	}
	if len(recipients) == 0 {
		log.Printf("billing: no recipients for %s %q", st.Role, st.EntityName)
		return entityResult{}
	}

	res := entityResult{attempted: len(recipients)}

	email, err := u.buildInvoiceEmail(ctx, st)
	if err != nil {
		// All deliveries fail together; the entity itself stays committed.
		log.Printf("billing: compose email for %q: %v", st.EntityName, err)
		res.failed = len(recipients)
		u.writeOutcome(ctx, invoiceID, res, nil, nil)
		return res
	}

	var delivered []string
	var firstSentAt *time.Time
	for _, r := range recipients {
		m := Message{
			To:      r.Email,
			ToName:  strings.TrimSpace(r.FirstName + " " + r.LastName),
			Subject: email.Subject,
			Text:    email.Text,
			HTML:    email.HTML,
			Attachment: &Attachment{
				Filename:    fileName,
				ContentType: "text/html",
				Data:        doc,
			},
		}
		msgID, err := u.mailer.Send(ctx, m)
		if err != nil {
			log.Printf("billing: send to %s failed: %v", r.Email, err)
			res.failed++
			continue
		}
		log.Printf("billing: sent to %s (%s)", r.Email, msgID)
		res.sent++
		delivered = append(delivered, r.Email)
		if firstSentAt == nil {
			at := u.now().UTC()
			firstSentAt = &at
		}
		res.recipients = append(res.recipients, Recipient{
			Email:        r.Email,
			FirstName:    r.FirstName,
			LastName:     r.LastName,
			BusinessName: r.BusinessName,
			Role:         r.Role,
		})
	}

	u.writeOutcome(ctx, invoiceID, res, delivered, firstSentAt)
	return res
}

func (u *Usecase) writeOutcome(ctx context.Context, invoiceID uint64, res entityResult, delivered []string, sentAt *time.Time) {
	out := invoice.DeliveryOutcome{
		Sent:       res.sent > 0,
		SentAt:     sentAt,
		Recipients: strings.Join(delivered, ", "),
	}
	if res.failed > 0 {
		out.ErrSummary = fmt.Sprintf("%d failed", res.failed)
	}
	if err := u.invoices.UpdateDeliveryOutcome(ctx, invoiceID, out); err != nil {
		log.Printf("billing: update delivery outcome for invoice %d: %v", invoiceID, err)
	}
}

// sendSummary mails the cross-entity report to management. Failures are
// logged only: by now every invoice is already committed and delivered.
func (u *Usecase) sendSummary(ctx context.Context, rc *runContext) {
	if len(rc.recipients) == 0 {
		log.Printf("billing: no invoices delivered, skipping summary report")
		return
	}
	if u.mailer == nil {
		return
	}

	data := map[string]string{
		"formattedDate": FormatStatementDate(rc.invoiceDate),
	}
	subject, text, htmlBody := buildSummaryReport(rc.recipients, data)

	for _, addr := range u.summaryRecipients(ctx) {
		if _, err := u.mailer.Send(ctx, Message{To: addr, Subject: subject, Text: text, HTML: htmlBody}); err != nil {
			log.Printf("billing: summary report to %s failed: %v", addr, err)
			continue
		}
		rc.stats.SummarySent = true
	}
}

func (u *Usecase) entityNames(ctx context.Context, role loan.Role) ([]string, error) {
	switch role {
	case loan.RoleInvestor:
		return u.promissory.DistinctInvestorNames(ctx)
	case loan.RoleCapInvestor:
		return u.capinv.DistinctInvestorNames(ctx)
	default:
		return u.funded.DistinctBusinessNames(ctx)
	}
}

func (u *Usecase) fetchBillables(ctx context.Context, role loan.Role, name string, periodStart time.Time) ([]loan.Billable, error) {
	switch role {
	case loan.RoleInvestor:
		rows, err := u.promissory.ListActiveByInvestor(ctx, name, periodStart)
		if err != nil {
			return nil, err
		}
		out := make([]loan.Billable, len(rows))
		for i, r := range rows {
			out[i] = r.AsBillable()
		}
		return out, nil
	case loan.RoleCapInvestor:
		rows, err := u.capinv.ListActiveByInvestor(ctx, name, periodStart)
		if err != nil {
			return nil, err
		}
		out := make([]loan.Billable, len(rows))
		for i, r := range rows {
			out[i] = r.AsBillable()
		}
		return out, nil
	default:
		rows, err := u.funded.ListByBusiness(ctx, name)
		if err != nil {
			return nil, err
		}
		out := make([]loan.Billable, len(rows))
		for i, r := range rows {
			out[i] = r.AsBillable()
		}
		return out, nil
	}
}
