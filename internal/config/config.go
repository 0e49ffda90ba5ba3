package config

import (
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Delivery modes
const (
	DeliverySimulated = "simulated"
	DeliveryEmail     = "email"
	DeliveryWhatsApp  = "whatsapp"
	DeliveryAll       = "all"
)

// Theme is the shared colour table used by every page and dashboard panel.
// It is passed by value so renderers cannot mutate it.
type Theme struct {
	Primary   string
	Secondary string
	Accent    string
	Surface   string
	Text      string
	Muted     string
}

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// colourOr returns value when it is a #rgb or #rrggbb colour and fallback
// otherwise. Theme colours are written into inline styles.
func colourOr(value, fallback string) string {
	value = strings.TrimSpace(value)
	if !hexColour.MatchString(value) {
		if value != "" {
			log.Printf("Ignoring invalid theme colour %q, using %s", value, fallback)
		}
		return fallback
	}
	return value
}

// DefaultTheme returns the brand palette
func DefaultTheme() Theme {
	return Theme{
		Primary:   "#1e3a8a",
		Secondary: "#0f766e",
		Accent:    "#f59e0b",
		Surface:   "#f8fafc",
		Text:      "#0f172a",
		Muted:     "#64748b",
	}
}

type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
}

type WahaConfig struct {
	BaseURL    string
	APIKey     string
	NotifyChat string
}

// Config holds everything the binaries read from the environment
type Config struct {
	Port   string
	Env    string
	AppURL string

	LogLevel string

	DeliveryMode            string
	SimulatedDelay          time.Duration
	SimulateDeliveryFailure bool
	SMTP                    SMTPConfig
	Waha                    WahaConfig

	AgencyInquiryTo  string
	InsurerInquiryTo string
	SalesInquiryTo   string

	RedisURL           string
	LeadRateLimit      int
	SessionIdleTimeout time.Duration
	SessionMaxVisitors int

	Theme Theme
}

// IsProduction reports whether APP_ENV is production
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env (if present) and the process environment
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	theme := DefaultTheme()
	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_URL", "http://localhost:8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DELIVERY_MODE", DeliverySimulated)
	v.SetDefault("SIMULATED_DELAY", 1500*time.Millisecond)
	v.SetDefault("SIMULATE_DELIVERY_FAILURE", false)
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("WAHA_BASE_URL", "http://waha:3000")
	v.SetDefault("AGENCY_INQUIRY_TO", "partners@agentcrm.in")
	v.SetDefault("INSURER_INQUIRY_TO", "partners@agentcrm.in")
	v.SetDefault("SALES_INQUIRY_TO", "sales@agentcrm.in")
	v.SetDefault("LEAD_RATE_LIMIT", 10)
	v.SetDefault("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	v.SetDefault("SESSION_MAX_VISITORS", 10000)
	v.SetDefault("THEME_PRIMARY", theme.Primary)
	v.SetDefault("THEME_ACCENT", theme.Accent)
	return v
}

// FromViper builds a Config from an already populated viper instance
func FromViper(v *viper.Viper) Config {
	theme := DefaultTheme()
	theme.Primary = colourOr(v.GetString("THEME_PRIMARY"), theme.Primary)
	theme.Accent = colourOr(v.GetString("THEME_ACCENT"), theme.Accent)

	return Config{
		Port:     v.GetString("PORT"),
		Env:      v.GetString("APP_ENV"),
		AppURL:   v.GetString("APP_URL"),
		LogLevel: v.GetString("LOG_LEVEL"),

		DeliveryMode:            strings.ToLower(v.GetString("DELIVERY_MODE")),
		SimulatedDelay:          v.GetDuration("SIMULATED_DELAY"),
		SimulateDeliveryFailure: v.GetBool("SIMULATE_DELIVERY_FAILURE"),
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetString("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("EMAIL_FROM"),
		},
		Waha: WahaConfig{
			BaseURL:    v.GetString("WAHA_BASE_URL"),
			APIKey:     v.GetString("WAHA_API_KEY"),
			NotifyChat: v.GetString("WAHA_NOTIFY_CHAT"),
		},

		AgencyInquiryTo:  v.GetString("AGENCY_INQUIRY_TO"),
		InsurerInquiryTo: v.GetString("INSURER_INQUIRY_TO"),
		SalesInquiryTo:   v.GetString("SALES_INQUIRY_TO"),

		RedisURL:           v.GetString("REDIS_URL"),
		LeadRateLimit:      v.GetInt("LEAD_RATE_LIMIT"),
		SessionIdleTimeout: v.GetDuration("SESSION_IDLE_TIMEOUT"),
		SessionMaxVisitors: v.GetInt("SESSION_MAX_VISITORS"),

		Theme: theme,
	}
}

// Defaults returns the configuration used when nothing is set
func Defaults() Config {
	return FromViper(newViper())
}
