package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string // "development" skips real SMS dispatch and echoes the OTP

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	JWTSecret string
	JWTExpiry time.Duration

	QoreIDBaseURL      string
	QoreIDTokenURL     string
	QoreIDClientID     string
	QoreIDClientSecret string

	SMSProvider    string // "termii" | "sns"
	TermiiBaseURL  string
	TermiiAPIKey   string
	TermiiSenderID string
	SNSRegion      string

	// PhoneCountryCode is the dialing prefix prepended to normalized
	// subscriber numbers. A stored phone key is always this prefix
	// followed by ten digits.
	PhoneCountryCode string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	Admins        string
	Programmes    string
	FormFields    string
	Registrations string
	Responses     string
	ProgramInfo   string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Admins:        getEnv("DYNAMO_TABLE_ADMINS", "admins"),
			Programmes:    getEnv("DYNAMO_TABLE_PROGRAMMES", "programmes"),
			FormFields:    getEnv("DYNAMO_TABLE_FORM_FIELDS", "form_fields"),
			Registrations: getEnv("DYNAMO_TABLE_REGISTRATIONS", "registrations"),
			Responses:     getEnv("DYNAMO_TABLE_RESPONSES", "responses"),
			ProgramInfo:   getEnv("DYNAMO_TABLE_PROGRAM_INFO", "program_info"),
		},

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		QoreIDBaseURL:      getEnv("QOREID_BASE_URL", "https://api.qoreid.com/v1/ng/identities"),
		QoreIDTokenURL:     getEnv("QOREID_TOKEN_URL", "https://api.qoreid.com/token"),
		QoreIDClientID:     getEnv("QOREID_CLIENT_ID", ""),
		QoreIDClientSecret: getEnv("QOREID_SECRET_KEY", ""),

		SMSProvider:    getEnv("SMS_PROVIDER", "termii"),
		TermiiBaseURL:  getEnv("TERMII_BASE_URL", "https://v3.api.termii.com"),
		TermiiAPIKey:   getEnv("TERMII_API_KEY", ""),
		TermiiSenderID: getEnv("TERMII_SENDER_ID", ""),
		SNSRegion:      getEnv("SNS_REGION", "us-east-1"),

		PhoneCountryCode: getEnv("PHONE_COUNTRY_CODE", "234"),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

// IsDevelopment reports whether the app runs in the environment-gated dev
// mode where generated OTPs are returned to the caller instead of dispatched.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
