package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/agro-market/", NormalizeBaseURL("http://localhost:8080/agro-market"))
	assert.Equal(t, "http://localhost:8080/agro-market/", NormalizeBaseURL(" http://localhost:8080/agro-market/ "))
	assert.Equal(t, DefaultBaseURL, NormalizeBaseURL(""))
}

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("AGRO_BASE_URL", "")
	t.Setenv("SESSION_PATH", "")
	t.Setenv("HTTP_TIMEOUT", "")

	cfg := LoadClient()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "session.db", cfg.SessionPath)
	assert.Equal(t, time.Duration(0), cfg.HTTPTimeout)
}

func TestLoadClientFromEnv(t *testing.T) {
	t.Setenv("AGRO_BASE_URL", "http://127.0.0.1:9000/agro-market")
	t.Setenv("SESSION_PATH", "/tmp/s.db")
	t.Setenv("HTTP_TIMEOUT", "7s")

	cfg := LoadClient()
	assert.Equal(t, "http://127.0.0.1:9000/agro-market/", cfg.BaseURL)
	assert.Equal(t, "/tmp/s.db", cfg.SessionPath)
	assert.Equal(t, 7*time.Second, cfg.HTTPTimeout)
}

func TestLoadMockAPI(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SEED", "false")

	cfg := LoadMockAPI()
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.Seed)
	assert.NotEmpty(t, cfg.JWTAccessSecret)
}
