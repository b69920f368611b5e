package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	// Invoice artifacts are written under this directory, keyed the same way
	// the download endpoints resolve them.
	StorageDir string
	// PublicBaseURL prefixes signed download links handed to the portal.
	PublicBaseURL string
	// ArtifactSecret signs download tokens; links die with the secret.
	ArtifactSecret string

	// Reference timezone for picking the run's invoice date (1st of month).
	InvoiceTimezone string

	MailEnabled  bool
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	MailFrom     string
	MailFromName string
	MailReplyTo  string

	RunLockTTLSecs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "lending"),
		MySQLUser: getenv("MYSQL_USER", "lending"),
		MySQLPass: getenv("MYSQL_PASS", "lending"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),

		StorageDir:      getenv("INVOICE_STORAGE_DIR", "/var/lib/lending/invoices"),
		PublicBaseURL:   getenv("PUBLIC_BASE_URL", "http://localhost:8080/files"),
		ArtifactSecret:  getenv("ARTIFACT_URL_SECRET", ""),
		InvoiceTimezone: getenv("INVOICE_TIMEZONE", "America/New_York"),

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUser:     getenv("SMTP_USER", ""),
		SMTPPass:     getenv("SMTP_PASS", ""),
		MailFrom:     getenv("MAIL_FROM", ""),
		MailFromName: getenv("MAIL_FROM_NAME", "Coastal Private Lending"),
		MailReplyTo:  getenv("MAIL_REPLY_TO", ""),

		RunLockTTLSecs: 1800,
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("RUN_LOCK_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RunLockTTLSecs = n
		}
	}
	c.MailEnabled = strings.EqualFold(getenv("MAIL_ENABLED", "true"), "true")
	return c
}

// Validate covers the run-level preconditions: anything missing here aborts
// a generation run before any entity is touched.
func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.StorageDir == "" {
		return errors.New("missing INVOICE_STORAGE_DIR")
	}
	if c.ArtifactSecret == "" {
		return errors.New("missing ARTIFACT_URL_SECRET")
	}
	if c.MailEnabled {
		if c.SMTPHost == "" || c.SMTPUser == "" || c.SMTPPass == "" {
			return errors.New("mail enabled but missing SMTP config (SMTP_HOST/USER/PASS)")
		}
		if c.MailFrom == "" {
			return errors.New("mail enabled but missing MAIL_FROM")
		}
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME/DATE scanning into time.Time
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) SMTPAddr() string { return net.JoinHostPort(c.SMTPHost, c.SMTPPort) }
