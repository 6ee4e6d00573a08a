package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the booking service
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Kafka     KafkaConfig
	Email     EmailConfig
	Waitlist  WaitlistConfig

	LogLevel       string
	MetricsEnabled bool
	SwaggerEnabled bool
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis settings. Redis backs the discount cache,
// the waitlist sweep lock and the rate limiter.
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	CacheTTL time.Duration
}

// JWTConfig holds the secret used to verify bearer tokens issued by the auth service
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled                 bool          `json:"enabled"`
	WindowDuration          time.Duration `json:"window_duration"`
	DefaultRequests         int           `json:"default_requests"`
	PublicRequests          int           `json:"public_requests"`
	BookingRequests         int           `json:"booking_requests"`
	BookingCriticalRequests int           `json:"booking_critical_requests"`
	WaitlistRequests        int           `json:"waitlist_requests"`
	OrganizerRequests       int           `json:"organizer_requests"`
	HealthRequests          int           `json:"health_requests"`
	WhitelistedIPs          []string      `json:"whitelisted_ips"`
}

// KafkaConfig controls delivery of seats-released messages.
// When Enabled is false an in-process dispatcher is used instead.
type KafkaConfig struct {
	Enabled       bool
	Brokers       []string
	ReleasesTopic string
	GroupID       string
	RetryMax      int
	Timeout       time.Duration
	QueueSize     int
}

// EmailConfig holds SMTP settings for waitlist notices
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	Timeout      time.Duration
}

// WaitlistConfig tunes the notification sweep
type WaitlistConfig struct {
	SweepLockTTL  time.Duration
	NotifyBaseURL string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "nexusems"),
			User:            getEnv("DB_USER", "nexusems"),
			Password:        getEnv("DB_PASSWORD", "nexusems"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},

		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			CacheTTL: getDurationEnv("REDIS_CACHE_TTL", 10*time.Minute),
		},

		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "change-me"),
			ExpiresIn: getDurationEnvSeconds("JWT_EXPIRES_IN", 12*time.Hour),
		},

		RateLimit: RateLimitConfig{
			Enabled:                 getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:          getDurationEnv("RATE_LIMIT_WINDOW_DURATION", time.Minute),
			DefaultRequests:         getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:          getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 120),
			BookingRequests:         getIntEnv("RATE_LIMIT_BOOKING_REQUESTS", 30),
			BookingCriticalRequests: getIntEnv("RATE_LIMIT_BOOKING_CRITICAL_REQUESTS", 10),
			WaitlistRequests:        getIntEnv("RATE_LIMIT_WAITLIST_REQUESTS", 20),
			OrganizerRequests:       getIntEnv("RATE_LIMIT_ORGANIZER_REQUESTS", 200),
			HealthRequests:          getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 600),
			WhitelistedIPs:          getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", nil),
		},

		Kafka: KafkaConfig{
			Enabled:       getBoolEnv("KAFKA_ENABLED", false),
			Brokers:       getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			ReleasesTopic: getEnv("KAFKA_RELEASES_TOPIC", "seats-released"),
			GroupID:       getEnv("KAFKA_GROUP_ID", "nexusems-waitlist-notifier"),
			RetryMax:      getIntEnv("KAFKA_RETRY_MAX", 3),
			Timeout:       getDurationEnv("KAFKA_TIMEOUT", 10*time.Second),
			QueueSize:     getIntEnv("RELEASE_QUEUE_SIZE", 256),
		},

		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getIntEnv("SMTP_PORT", 587),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "noreply@nexusems.local"),
			FromName:     getEnv("FROM_NAME", "NexusEMS"),
			Timeout:      getDurationEnv("SMTP_TIMEOUT", 30*time.Second),
		},

		Waitlist: WaitlistConfig{
			SweepLockTTL:  getDurationEnv("WAITLIST_SWEEP_LOCK_TTL", 2*time.Minute),
			NotifyBaseURL: getEnv("WAITLIST_NOTIFY_BASE_URL", "http://localhost:4200/events"),
		},

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		MetricsEnabled: getBoolEnv("METRICS_ENABLED", true),
		SwaggerEnabled: getBoolEnv("SWAGGER_ENABLED", true),
	}

	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

func buildDatabaseDSN(db DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the listen address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path, e.g. /api/v1
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}

// SMTPConfigured reports whether enough SMTP settings exist to send mail
func (c *Config) SMTPConfigured() bool {
	return c.Email.SMTPHost != "" && c.Email.FromEmail != ""
}
