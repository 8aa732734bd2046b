package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultBaseURL = "https://spotdiff.ru/agro-market/"

type Client struct {
	BaseURL     string
	SessionPath string
	LogLevel    string
	LogFile     string
	HTTPTimeout time.Duration
}

type MockAPI struct {
	ServerPort int

	DatabaseURL string
	SQLitePath  string

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte

	KafkaBrokers []string

	AdminEmail    string
	AdminPassword string
	Seed          bool

	LogLevel string
}

// LoadEnv reads an optional .env file into the process environment.
func LoadEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		log.Printf("Notice: %s file not found: %v. Using system environment variables", path, err)
	}
}

func LoadClient() Client {
	return Client{
		BaseURL:     NormalizeBaseURL(EnvDefault("AGRO_BASE_URL", DefaultBaseURL)),
		SessionPath: EnvDefault("SESSION_PATH", "session.db"),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),
		LogFile:     EnvDefault("LOG_FILE", "agromarket.log"),
		HTTPTimeout: EnvDurationDefault("HTTP_TIMEOUT", 0),
	}
}

func LoadMockAPI() MockAPI {
	return MockAPI{
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  EnvDefault("MOCKAPI_SQLITE", "mockapi.db"),

		JWTAccessSecret:  []byte(EnvDefault("JWT_SECRET", "dev-access-secret")),
		JWTRefreshSecret: []byte(EnvDefault("JWT_REFRESH_SECRET", "dev-refresh-secret")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		AdminEmail:    EnvDefault("ADMIN_EMAIL", "admin@agro.local"),
		AdminPassword: EnvDefault("ADMIN_PASSWORD", "admin"),
		Seed:          EnvBoolDefault("SEED", true),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),
	}
}

// NormalizeBaseURL guarantees a trailing slash so endpoint paths can be appended.
func NormalizeBaseURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return DefaultBaseURL
	}
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}
