package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env            string `env:"ENV" env-required:"true"`
	LogLevel       string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer     HttpServer
	Database       Database
	Limiter        Limiter
	Auth           AuthConfig
	SMTP           SMTPConfig
	Email          EmailConfig
	Cache          Cache
	Storage        Storage
	IDVerification IDVerification
	Notification   Notification
	Twilio         TwilioConfig
	Telemetry      Telemetry
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	AllowedOrigins []string      `env:"HTTP_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type Database struct {
	Driver             string        `env:"DB_DRIVER" env-default:"mysql" env-description:"one of mysql/postgres/sqlite"`
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER"`
	DBName             string        `env:"DB_NAME" env-required:"true" env-description:"database name, or file path for sqlite"`
	User               string        `env:"DB_USER"`
	Password           string        `env:"DB_PASSWORD"`
	SSLMode            string        `env:"DB_SSL_MODE" env-default:"disable"`
	TimeZone           string        `env:"DB_TIMEZONE" env-default:"UTC"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
	Migrate            bool          `env:"DB_MIGRATE" env-default:"false" env-description:"apply embedded schema on startup"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT          JWTConfig
	PasswordCost int `env:"AUTH_PASSWORD_COST" env-default:"10"`
}

type JWTConfig struct {
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	SigningKey     string        `env:"JWT_SIGNING_KEY" env-required:"true"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST"`
	Port int    `env:"SMTP_PORT" env-default:"587"`
	From string `env:"SMTP_FROM"`
	Pass string `env:"SMTP_PASS"`
}

type EmailConfig struct {
	Enabled   bool `env:"EMAIL_ENABLED" env-default:"false"`
	Templates EmailTemplates
}

type EmailTemplates struct {
	Notification string `env:"EMAIL_TEMPLATE_NOTIFICATION" env-default:"notification.html"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001'', '172.27.29.92:7002'']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

type Storage struct {
	Driver        string        `env:"STORAGE_DRIVER" env-default:"local" env-description:"one of local/cloudinary"`
	MaxTries      uint          `env:"STORAGE_MAX_TRIES" env-default:"3"`
	RetryInterval time.Duration `env:"STORAGE_RETRY_INTERVAL" env-default:"200ms"`
	Timeout       time.Duration `env:"STORAGE_TIMEOUT" env-default:"20s"`
	Local         struct {
		Dir       string `env:"STORAGE_LOCAL_DIR" env-default:"./uploads"`
		PublicURL string `env:"STORAGE_LOCAL_PUBLIC_URL" env-default:"http://localhost:8080/uploads"`
	}
	Cloudinary struct {
		CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
		APIKey    string `env:"CLOUDINARY_API_KEY"`
		APISecret string `env:"CLOUDINARY_API_SECRET"`
		Folder    string `env:"CLOUDINARY_FOLDER"`
	}
}

type IDVerification struct {
	MaxUploadSize int64         `env:"ID_VERIFICATION_MAX_UPLOAD_SIZE" env-default:"5242880" env-description:"max image size in bytes"`
	LockTTL       time.Duration `env:"ID_VERIFICATION_LOCK_TTL" env-default:"60s"`
}

type Notification struct {
	AppURL     string `env:"APP_URL" env-default:"http://localhost:3000"`
	SMSEnabled bool   `env:"SMS_ENABLED" env-default:"false"`
}

type TwilioConfig struct {
	AccountSID string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	From       string `env:"TWILIO_FROM"`
}

type Telemetry struct {
	Endpoint    string `env:"OTEL_EXPORTER_ENDPOINT" env-default:""`
	Insecure    bool   `env:"OTEL_EXPORTER_INSECURE" env-default:"false"`
	ServiceName string `env:"OTEL_SERVICE_NAME" env-default:"gigmarket-backend"`
}

func MustLoad() *Config {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
