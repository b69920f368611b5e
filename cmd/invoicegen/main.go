package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"lending-portal/internal/adapter/mail"
	"lending-portal/internal/adapter/render"
	"lending-portal/internal/adapter/repository/mysql"
	"lending-portal/internal/adapter/storage"
	"lending-portal/internal/config"
	"lending-portal/internal/infrastructure/cache"
	"lending-portal/internal/infrastructure/db"
	"lending-portal/internal/infrastructure/lock"
	"lending-portal/internal/usecase/billing"
)

// invoicegen is the scheduled entrypoint: one generation cycle, then exit.
// A non-zero exit means at least one entity failed and the run should be
// inspected before the period's lock TTL lapses.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	loc, err := time.LoadLocation(cfg.InvoiceTimezone)
	if err != nil {
		log.Fatalf("timezone %q: %v", cfg.InvoiceTimezone, err)
	}

	var mailer billing.Mailer
	if cfg.MailEnabled {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr(), cfg.SMTPHost,
			cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.MailFromName, cfg.MailReplyTo)
	} else {
		log.Println("mail disabled, generating without delivery")
	}

	uc := billing.NewUsecase(billing.Deps{
		Funded:       mysql.NewFundedRepository(gdb),
		Promissory:   mysql.NewPromissoryRepository(gdb),
		CapInvestors: mysql.NewCapInvestorRepository(gdb),
		Invoices:     mysql.NewInvoiceRepository(gdb),
		Users:        mysql.NewUserRepository(gdb),
		Settings:     mysql.NewSettingsRepository(gdb),
		UoW:          mysql.NewGormUoW(gdb),
		Renderer:     render.NewHTMLRenderer(),
		Store:        storage.NewFSStore(cfg.StorageDir, cfg.PublicBaseURL, []byte(cfg.ArtifactSecret)),
		Mailer:       mailer,
		Lock:         lock.NewRedisRunLock(rdb),
		LockTTL:      time.Duration(cfg.RunLockTTLSecs) * time.Second,
		Location:     loc,
	})

	stats, err := uc.Run(context.Background())
	if err != nil {
		if errors.Is(err, billing.ErrRunInProgress) {
			log.Println("another run holds the period lock, nothing to do")
			os.Exit(1)
		}
		log.Fatalf("run: %v", err)
	}

	log.Printf("run %s: %d processed, %d failed, %d emails sent",
		stats.RunID, stats.TotalProcessed(), stats.TotalFailed(), stats.TotalEmailsSent())
	if stats.TotalFailed() > 0 {
		os.Exit(1)
	}
}
