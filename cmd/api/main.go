package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "lending-portal/internal/adapter/http"
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

	store := storage.NewFSStore(cfg.StorageDir, cfg.PublicBaseURL, []byte(cfg.ArtifactSecret))

	var mailer billing.Mailer
	if cfg.MailEnabled {
		mailer = mail.NewSMTPMailer(cfg.SMTPAddr(), cfg.SMTPHost,
			cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.MailFromName, cfg.MailReplyTo)
	} else {
		log.Println("mail disabled, invoices will be generated without delivery")
	}

	invoices := mysql.NewInvoiceRepository(gdb)
	sets := mysql.NewSettingsRepository(gdb)

	uc := billing.NewUsecase(billing.Deps{
		Funded:       mysql.NewFundedRepository(gdb),
		Promissory:   mysql.NewPromissoryRepository(gdb),
		CapInvestors: mysql.NewCapInvestorRepository(gdb),
		Invoices:     invoices,
		Users:        mysql.NewUserRepository(gdb),
		Settings:     sets,
		UoW:          mysql.NewGormUoW(gdb),
		Renderer:     render.NewHTMLRenderer(),
		Store:        store,
		Mailer:       mailer,
		Lock:         lock.NewRedisRunLock(rdb),
		LockTTL:      time.Duration(cfg.RunLockTTLSecs) * time.Second,
		Location:     loc,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger(), middleware.Recover())
	e.Validator = httpadp.NewValidator()

	h := httpadp.NewHandler(uc, invoices, sets, store, store)
	h.Register(e)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
