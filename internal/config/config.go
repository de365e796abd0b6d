package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
}

// SourceConfig selects where reservations are fetched from. A non-empty File wins over REST.
type SourceConfig struct {
	BaseURL string
	Path    string
	Token   string
	Timeout time.Duration
	File    string
}

type KafkaConfig struct {
	Brokers []string
	GroupID string
	Topics  []string
}

type WebsocketConfig struct {
	SendBuffer int
}

type DisplayConfig struct {
	Location *time.Location
}

type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Source    SourceConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
	Display   DisplayConfig
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envDefault("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Directory: envDefault("LOG_DIR", "./logs"),
			Level:     envDefault("LOG_LEVEL", "info"),
			Format:    envDefault("LOG_FORMAT", "text"),
		},
		Source: SourceConfig{
			BaseURL: envDefault("RESERVATIONS_BASE_URL", "http://localhost:3000"),
			Path:    envDefault("RESERVATIONS_PATH", "/api/v1/reservations"),
			Token:   strings.TrimSpace(os.Getenv("RESERVATIONS_TOKEN")),
			File:    strings.TrimSpace(os.Getenv("RESERVATIONS_FILE")),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(firstEnv("KAFKA_BROKERS", "KAFKA_BROKER")),
			GroupID: envDefault("KAFKA_GROUP_ID", "mesaya-board"),
			Topics:  splitList(envDefault("KAFKA_TOPICS", "mesa.reservations")),
		},
	}

	timeout, err := parseDuration("RESERVATIONS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.Source.Timeout = timeout

	buffer, err := strconv.Atoi(envDefault("WS_SEND_BUFFER", "8"))
	if err != nil || buffer < 1 {
		return nil, fmt.Errorf("invalid WS_SEND_BUFFER")
	}
	cfg.Websocket.SendBuffer = buffer

	location, err := time.LoadLocation(envDefault("DISPLAY_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("DISPLAY_TIMEZONE: %w", err)
	}
	cfg.Display.Location = location

	return cfg, nil
}

func envDefault(k, d string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	return v
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func parseDuration(k, d string) (time.Duration, error) {
	raw := envDefault(k, d)
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive", k)
	}
	return parsed, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
