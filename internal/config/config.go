package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	HTTPPort      string
	Env           string
	DBDriver      string // postgres | sqlite | mongo
	DatabaseDSN   string
	MongoURI      string
	MongoDatabase string
	SwaggerEnable bool
	Postgres      PostgresConfig
	Gym           GymConfig
	Admin         AdminConfig
	WhatsApp      WhatsAppConfig
	Storage       StorageConfig
	JournalDir    string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// GymConfig carries the business constants that used to live in ambient
// process state; they are injected into the services so tests can pin them.
type GymConfig struct {
	Name          string
	ContactInfo   string
	CountryCode   string
	Currency      string
	DefaultAmount float64
	ReminderHour  int
}

type AdminConfig struct {
	Username  string
	Password  string
	JWTSecret string
	TokenTTL  string
}

type WhatsAppConfig struct {
	Provider      string // meta | meow | "" (disabled)
	PhoneNumberID string
	AccessToken   string
	DataDir       string
	SessionName   string
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	PublicURL string
}

func (s StorageConfig) Enabled() bool {
	return s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != "" && s.Bucket != ""
}

func Load() *AppConfig {
	pg := PostgresConfig{
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		DBName:   getEnv("POSTGRES_DB", ""),
		SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}

	storage := StorageConfig{
		Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
		AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		Bucket:    getEnv("STORAGE_BUCKET", ""),
		Region:    getEnv("STORAGE_REGION", ""),
		UseSSL:    getEnv("STORAGE_USE_SSL", "false") == "true",
		PublicURL: getEnv("STORAGE_PUBLIC_URL", ""),
	}

	dsn := getEnv("DATABASE_DSN", "")
	driver := strings.ToLower(getEnv("DB_DRIVER", ""))
	mongoURI := getEnv("MONGO_URI", "")

	if driver == "" {
		lower := strings.ToLower(dsn)
		switch {
		case mongoURI != "" || strings.HasPrefix(lower, "mongodb"):
			driver = "mongo"
		case strings.HasPrefix(lower, "postgres"):
			driver = "postgres"
		case pg.Host != "":
			driver = "postgres"
		default:
			driver = "sqlite"
		}
	}

	switch driver {
	case "postgres":
		if dsn == "" {
			dsn = buildPostgresDSN(pg)
		}
	case "mongo":
		if mongoURI == "" {
			mongoURI = dsn
		}
		if mongoURI == "" {
			mongoURI = "mongodb://localhost:27017"
		}
	default:
		if dsn == "" {
			dsn = "file:gymtrack.db?_foreign_keys=on"
		}
	}

	cfg := &AppConfig{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		Env:           getEnv("APP_ENV", "development"),
		DBDriver:      driver,
		DatabaseDSN:   dsn,
		MongoURI:      mongoURI,
		MongoDatabase: getEnv("MONGO_DB", "gymtrack"),
		SwaggerEnable: getEnv("SWAGGER_ENABLE", "true") == "true",
		Postgres:      pg,
		Gym: GymConfig{
			Name:          getEnv("GYM_NAME", "GymTrack"),
			ContactInfo:   getEnv("GYM_CONTACT", ""),
			CountryCode:   getEnv("GYM_COUNTRY_CODE", "91"),
			Currency:      getEnv("GYM_CURRENCY", "₹"),
			DefaultAmount: getEnvFloat("GYM_DEFAULT_AMOUNT", 1000),
			ReminderHour:  getEnvInt("REMINDER_HOUR", 9),
		},
		Admin: AdminConfig{
			Username:  getEnv("ADMIN_USERNAME", "admin"),
			Password:  getEnv("ADMIN_PASSWORD", ""),
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnv("JWT_TTL", "24h"),
		},
		WhatsApp: WhatsAppConfig{
			Provider:      strings.ToLower(getEnv("WA_PROVIDER", "")),
			PhoneNumberID: getEnv("META_WA_PHONE_NUMBER_ID", ""),
			AccessToken:   getEnv("META_WA_ACCESS_TOKEN", ""),
			DataDir:       getEnv("WA_DATA_DIR", "data"),
			SessionName:   getEnv("WA_SESSION_NAME", "gymtrack"),
		},
		Storage:    storage,
		JournalDir: getEnv("REMINDER_JOURNAL_DIR", ""),
	}
	return cfg
}

func buildPostgresDSN(pg PostgresConfig) string {
	host := pg.Host
	if host == "" {
		host = "localhost"
	}
	port := pg.Port
	if port == "" {
		port = "5432"
	}
	ssl := pg.SSLMode
	if ssl == "" {
		ssl = "disable"
	}

	u := &url.URL{Scheme: "postgres"}
	if pg.User != "" {
		if pg.Password != "" {
			u.User = url.UserPassword(pg.User, pg.Password)
		} else {
			u.User = url.User(pg.User)
		}
	}
	u.Host = fmt.Sprintf("%s:%s", host, port)
	if pg.DBName != "" {
		u.Path = pg.DBName
	}
	q := u.Query()
	q.Set("sslmode", ssl)
	u.RawQuery = q.Encode()
	return u.String()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func MustLoad() *AppConfig {
	cfg := Load()
	if cfg.HTTPPort == "" {
		log.Fatal("HTTP_PORT required")
	}
	if cfg.Admin.JWTSecret == "" {
		log.Fatal("JWT_SECRET required")
	}
	if cfg.Admin.Password == "" {
		log.Fatal("ADMIN_PASSWORD required")
	}
	if cfg.DBDriver == "postgres" && cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN required for postgres driver")
	}
	if cfg.WhatsApp.Provider == "meta" && (cfg.WhatsApp.PhoneNumberID == "" || cfg.WhatsApp.AccessToken == "") {
		log.Fatal("META_WA_PHONE_NUMBER_ID and META_WA_ACCESS_TOKEN required for meta provider")
	}
	return cfg
}
