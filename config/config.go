package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Campaign describes the pre-approved offer and the recipient the dialer
// connected us to. In production these come from the campaign system per
// call; the env-based defaults serve staging and the simulator.
type Campaign struct {
	CustomerName   string
	FatherName     string
	BirthDate      string // YYYY-MM-DD
	ApprovedAmount float64
	MaxTermMonths  int
	AccountSuffix  string // last digits of the disbursement account
}

// Config holds all server configuration
type Config struct {
	Port            int
	RedisURL        string
	RedisPassword   string
	MaxSessions     int
	SessionTimeout  time.Duration
	AllowedOrigins  []string
	KeepAlivePeriod time.Duration
	GeminiAPIKey    string // optional; keyword classifier is used when empty
	GeminiModel     string
	DispatchURL     string // optional; dispatches are logged when empty
	DispatchToken   string
	CallLogPath     string
	Campaign        Campaign
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	config := &Config{
		Port:            8080,
		RedisURL:        "localhost:6379",
		RedisPassword:   "",
		MaxSessions:     100,
		SessionTimeout:  30 * time.Minute,
		AllowedOrigins:  []string{"*"},
		KeepAlivePeriod: 30 * time.Second,
		GeminiModel:     "models/gemini-2.5-flash",
		CallLogPath:     "calls.db",
		Campaign: Campaign{
			CustomerName:   "Azər Həsənzadə",
			FatherName:     "Anar",
			BirthDate:      "2001-07-12",
			ApprovedAmount: 50000,
			MaxTermMonths:  36,
			AccountSuffix:  "8214",
		},
	}

	// Optional: GEMINI_API_KEY (falls back to the keyword classifier)
	config.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.GeminiModel = model
	}

	// Optional: PORT
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		config.Port = p
	}

	// Optional: REDIS_URL
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		config.RedisURL = redisURL
	}

	// Optional: REDIS_PASSWORD
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.RedisPassword = redisPassword
	}

	// Optional: MAX_SESSIONS
	if maxSessions := os.Getenv("MAX_SESSIONS"); maxSessions != "" {
		m, err := strconv.Atoi(maxSessions)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_SESSIONS: %w", err)
		}
		config.MaxSessions = m
	}

	// Optional: SESSION_TIMEOUT (in minutes)
	if timeout := os.Getenv("SESSION_TIMEOUT"); timeout != "" {
		t, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TIMEOUT: %w", err)
		}
		config.SessionTimeout = time.Duration(t) * time.Minute
	}

	// Optional: ALLOWED_ORIGINS (comma-separated)
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	// Optional: KEEPALIVE_PERIOD (in seconds)
	if keepalive := os.Getenv("KEEPALIVE_PERIOD"); keepalive != "" {
		k, err := strconv.Atoi(keepalive)
		if err != nil {
			return nil, fmt.Errorf("invalid KEEPALIVE_PERIOD: %w", err)
		}
		config.KeepAlivePeriod = time.Duration(k) * time.Second
	}

	// Optional: DISPATCH_URL and DISPATCH_TOKEN
	if dispatchURL := os.Getenv("DISPATCH_URL"); dispatchURL != "" {
		config.DispatchURL = dispatchURL
	}
	if dispatchToken := os.Getenv("DISPATCH_TOKEN"); dispatchToken != "" {
		config.DispatchToken = dispatchToken
	}

	// Optional: CALL_LOG_PATH (set to an empty string to disable the log)
	if callLogPath, ok := os.LookupEnv("CALL_LOG_PATH"); ok {
		config.CallLogPath = callLogPath
	}

	// Campaign overrides
	if name := os.Getenv("CAMPAIGN_CUSTOMER_NAME"); name != "" {
		config.Campaign.CustomerName = name
	}
	if father := os.Getenv("CAMPAIGN_FATHER_NAME"); father != "" {
		config.Campaign.FatherName = father
	}
	if birth := os.Getenv("CAMPAIGN_BIRTH_DATE"); birth != "" {
		if _, err := time.Parse("2006-01-02", birth); err != nil {
			return nil, fmt.Errorf("invalid CAMPAIGN_BIRTH_DATE: %w", err)
		}
		config.Campaign.BirthDate = birth
	}
	if amount := os.Getenv("CAMPAIGN_APPROVED_AMOUNT"); amount != "" {
		a, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid CAMPAIGN_APPROVED_AMOUNT: %w", err)
		}
		config.Campaign.ApprovedAmount = a
	}
	if maxTerm := os.Getenv("CAMPAIGN_MAX_TERM_MONTHS"); maxTerm != "" {
		m, err := strconv.Atoi(maxTerm)
		if err != nil {
			return nil, fmt.Errorf("invalid CAMPAIGN_MAX_TERM_MONTHS: %w", err)
		}
		config.Campaign.MaxTermMonths = m
	}
	if suffix := os.Getenv("CAMPAIGN_ACCOUNT_SUFFIX"); suffix != "" {
		config.Campaign.AccountSuffix = suffix
	}

	return config, nil
}
