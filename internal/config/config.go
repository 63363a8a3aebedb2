package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Chat      ChatConfig      `yaml:"chat"`
	Notify    NotifyConfig    `yaml:"notify"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"false"`
}

// AuthConfig holds access token validation settings. Tokens are issued by
// the external session provider with the same secret and issuer.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"carematch"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"1h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request throttling settings.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"              env-default:"300"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// ChatConfig holds message log settings.
type ChatConfig struct {
	DefaultPageSize  int `yaml:"default_page_size"  env:"CHAT_DEFAULT_PAGE_SIZE"  env-default:"50"`
	MaxPageSize      int `yaml:"max_page_size"      env:"CHAT_MAX_PAGE_SIZE"      env-default:"100"`
	MaxMessageLength int `yaml:"max_message_length" env:"CHAT_MAX_MESSAGE_LENGTH" env-default:"1000"`
}

// Notification drivers.
const (
	NotifyDriverLog      = "log"
	NotifyDriverAlimtalk = "alimtalk"
	NotifyDriverRedis    = "redis"
)

// NotifyConfig selects and tunes the notification pipeline.
type NotifyConfig struct {
	Driver       string        `yaml:"driver"        env:"NOTIFY_DRIVER"        env-default:"log"`
	Workers      int           `yaml:"workers"       env:"NOTIFY_WORKERS"       env-default:"4"`
	QueueSize    int           `yaml:"queue_size"    env:"NOTIFY_QUEUE_SIZE"    env-default:"256"`
	SendTimeout  time.Duration `yaml:"send_timeout"  env:"NOTIFY_SEND_TIMEOUT"  env-default:"5s"`
	DrainTimeout time.Duration `yaml:"drain_timeout" env:"NOTIFY_DRAIN_TIMEOUT" env-default:"10s"`

	Alimtalk AlimtalkConfig `yaml:"alimtalk"`
	Redis    RedisConfig    `yaml:"redis"`
}

// AlimtalkConfig holds the Kakao Alimtalk HTTP client settings.
type AlimtalkConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"ALIMTALK_BASE_URL"    env-default:"https://kapi.kakao.com"`
	APIKey     string        `yaml:"api_key"     env:"ALIMTALK_API_KEY"`
	Timeout    time.Duration `yaml:"timeout"     env:"ALIMTALK_TIMEOUT"     env-default:"5s"`
	RetryCount int           `yaml:"retry_count" env:"ALIMTALK_RETRY_COUNT" env-default:"2"`
}

// RedisConfig holds the notification stream settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	Stream   string `yaml:"stream"   env:"REDIS_STREAM"   env-default:"carematch:notifications"`
	Group    string `yaml:"group"    env:"REDIS_GROUP"    env-default:"notifier"`
	MaxLen   int64  `yaml:"max_len"  env:"REDIS_MAX_LEN"  env-default:"100000"`
}
