package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Queue backends
const (
	QueueBackendMemory = "memory"
	QueueBackendRedis  = "redis"
	QueueBackendKafka  = "kafka"
)

// Config holds all configuration for the recognition bot
type Config struct {
	Telegram    TelegramConfig
	Recognition RecognitionConfig
	Queue       QueueConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Worker      WorkerConfig
	Logging     LoggingConfig
	Service     ServiceConfig
}

// TelegramConfig holds Telegram Bot API configuration
type TelegramConfig struct {
	BotToken   string
	APIURL     string
	ProxyURL   string
	WebhookURL string
}

// RecognitionConfig holds ACRCloud configuration
type RecognitionConfig struct {
	Host         string
	AccessKey    string
	AccessSecret string
	Timeout      time.Duration
	// Offset is the number of seconds skipped from the start of the media
	Offset        int
	FFmpegPath    string
	SampleSeconds int

	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

// QueueConfig selects the work queue backend
type QueueConfig struct {
	Backend     string
	PollTimeout time.Duration
}

// RedisConfig holds Redis queue configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	QueueKey string
}

// KafkaConfig holds Kafka queue configuration
type KafkaConfig struct {
	Brokers []string
	GroupID string
	Topic   string
}

// WorkerConfig holds processing loop configuration
type WorkerConfig struct {
	Count int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
	Port string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config      *Config
	Telegram    *TelegramConfig
	Recognition *RecognitionConfig
	Queue       *QueueConfig
	Redis       *RedisConfig
	Kafka       *KafkaConfig
	Worker      *WorkerConfig
	Logging     *LoggingConfig
	Service     *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:      cfg,
		Telegram:    &cfg.Telegram,
		Recognition: &cfg.Recognition,
		Queue:       &cfg.Queue,
		Redis:       &cfg.Redis,
		Kafka:       &cfg.Kafka,
		Worker:      &cfg.Worker,
		Logging:     &cfg.Logging,
		Service:     &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	acrTimeout, err := getEnvDuration("ACR_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	breakerTimeout, err := getEnvDuration("BREAKER_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	pollTimeout, err := getEnvDuration("QUEUE_POLL_TIMEOUT", "1s")
	if err != nil {
		return nil, err
	}
	offset, err := getEnvInt("RECOGNITION_OFFSET", "0")
	if err != nil {
		return nil, err
	}
	sampleSeconds, err := getEnvInt("RECOGNITION_SAMPLE_SECONDS", "12")
	if err != nil {
		return nil, err
	}
	maxFailures, err := getEnvInt("BREAKER_MAX_FAILURES", "5")
	if err != nil {
		return nil, err
	}
	redisDB, err := getEnvInt("REDIS_DB", "0")
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("WORKER_COUNT", "4")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
			APIURL:     strings.TrimRight(getEnv("TELEGRAM_API_URL", "https://api.telegram.org"), "/"),
			ProxyURL:   getEnv("TELEGRAM_PROXY_URL", ""),
			WebhookURL: getEnv("TELEGRAM_WEBHOOK_URL", ""),
		},
		Recognition: RecognitionConfig{
			Host:               getEnv("ACR_HOST", ""),
			AccessKey:          getEnv("ACR_ACCESS_KEY", ""),
			AccessSecret:       getEnv("ACR_ACCESS_SECRET", ""),
			Timeout:            acrTimeout,
			Offset:             offset,
			FFmpegPath:         getEnv("FFMPEG_PATH", ""),
			SampleSeconds:      sampleSeconds,
			BreakerMaxFailures: uint32(maxFailures),
			BreakerTimeout:     breakerTimeout,
		},
		Queue: QueueConfig{
			Backend:     strings.ToLower(getEnv("QUEUE_BACKEND", QueueBackendMemory)),
			PollTimeout: pollTimeout,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			QueueKey: getEnv("REDIS_QUEUE_KEY", "songid:updates"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9093")),
			GroupID: getEnv("KAFKA_GROUP_ID", "songid-bot-workers"),
			Topic:   getEnv("KAFKA_TOPIC", "recognition.updates"),
		},
		Worker: WorkerConfig{
			Count: workers,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "songid-bot"),
			Port: getEnv("SERVICE_PORT", "8080"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Recognition.Host == "" {
		return fmt.Errorf("ACR_HOST is required")
	}

	if c.Recognition.AccessKey == "" || c.Recognition.AccessSecret == "" {
		return fmt.Errorf("ACR_ACCESS_KEY and ACR_ACCESS_SECRET are required")
	}

	if c.Recognition.Offset < 0 {
		return fmt.Errorf("RECOGNITION_OFFSET must not be negative")
	}

	if c.Worker.Count < 1 {
		return fmt.Errorf("WORKER_COUNT must be at least 1")
	}

	switch c.Queue.Backend {
	case QueueBackendMemory, QueueBackendRedis:
	case QueueBackendKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("KAFKA_BROKERS is required for kafka queue backend")
		}
	default:
		return fmt.Errorf("unknown QUEUE_BACKEND %q", c.Queue.Backend)
	}

	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key, defaultValue string) (int, error) {
	value, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func getEnvDuration(key, defaultValue string) (time.Duration, error) {
	value, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
