package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env     string
	Server  ServerConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Auth    AuthConfig
	AI      AIConfig
	Notify  NotifyConfig
	Storage StorageConfig
	Admin   AdminConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret          string
	JWTIssuer          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	RateLimitPerMinute int
	RateLimitBurst     int
}

type AIConfig struct {
	Provider           string
	APIKey             string
	BaseURL            string
	Model              string
	Timeout            time.Duration
	RateLimitPerMinute int
	RateLimitBurst     int
	MaxOutputTokens    int
}

// NotifyConfig задает параметры расписания уведомлений: задержку алерта об
// истекающих продуктах, время ежедневного дайджеста и TTL партии рецептов.
type NotifyConfig struct {
	ExpiringDelay time.Duration
	DailyHour     int
	DailyMinute   int
	RecipeTTL     time.Duration
}

// StorageConfig настраивает S3-хранилище снимков. При Enabled=false снимки
// не сохраняются, анализ работает без хранилища.
type StorageConfig struct {
	Enabled       bool
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type AdminConfig struct {
	Emails []string
}

// Load загружает конфигурацию приложения из окружения и .env.
func Load() (Config, error) {
	cfg := Config{}

	if err := loadEnv(); err != nil {
		return cfg, err
	}

	cfg.Env = getEnv("APP_ENV", "local")

	serverPort, err := parseIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return cfg, err
	}

	readTimeout, err := parseDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return cfg, err
	}

	writeTimeout, err := parseDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return cfg, err
	}

	idleTimeout, err := parseDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return cfg, err
	}

	cfg.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "0.0.0.0"),
		Port:         serverPort,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	mongoTimeout, err := parseDurationEnv("MONGO_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return cfg, err
	}

	mongoPoolSize, err := parseIntEnv("MONGO_MAX_POOL_SIZE", 20)
	if err != nil {
		return cfg, err
	}

	cfg.Mongo = MongoConfig{
		URI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		Database:       getEnv("MONGO_DATABASE", "fresh_pantry"),
		ConnectTimeout: mongoTimeout,
		MaxPoolSize:    mongoPoolSize,
	}

	redisDB, err := parseNonNegativeIntEnv("REDIS_DB", 0)
	if err != nil {
		return cfg, err
	}

	cfg.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	accessTTL, err := parseDurationEnv("JWT_ACCESS_TTL", 15*time.Minute)
	if err != nil {
		return cfg, err
	}

	refreshTTL, err := parseDurationEnv("JWT_REFRESH_TTL", 7*24*time.Hour)
	if err != nil {
		return cfg, err
	}

	rateLimitPerMinute, err := parseIntEnv("AUTH_RATE_LIMIT_PER_MINUTE", 60)
	if err != nil {
		return cfg, err
	}

	rateLimitBurst, err := parseIntEnv("AUTH_RATE_LIMIT_BURST", 10)
	if err != nil {
		return cfg, err
	}

	cfg.Auth = AuthConfig{
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTIssuer:          getEnv("JWT_ISSUER", "fresh-pantry"),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
		RateLimitPerMinute: rateLimitPerMinute,
		RateLimitBurst:     rateLimitBurst,
	}

	aiTimeout, err := parseDurationEnv("AI_TIMEOUT", 30*time.Second)
	if err != nil {
		return cfg, err
	}

	aiRateLimitPerMinute, err := parseIntEnv("AI_RATE_LIMIT_PER_MINUTE", 30)
	if err != nil {
		return cfg, err
	}

	aiRateLimitBurst, err := parseIntEnv("AI_RATE_LIMIT_BURST", 10)
	if err != nil {
		return cfg, err
	}

	aiMaxOutputTokens, err := parseIntEnv("AI_MAX_OUTPUT_TOKENS", 4096)
	if err != nil {
		return cfg, err
	}

	aiProvider := strings.ToLower(getEnv("AI_PROVIDER", "gemini"))
	defaultBaseURL := "https://api.groq.com/openai/v1"
	defaultModel := "llama-3.2-11b-vision-preview"
	if aiProvider == "gemini" {
		defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
		defaultModel = "gemini-1.5-flash"
	}

	aiAPIKey := getEnv("AI_API_KEY", "")
	if aiAPIKey == "" && aiProvider == "gemini" {
		aiAPIKey = getEnv("GEMINI_API_KEY", "")
	}

	cfg.AI = AIConfig{
		Provider:           aiProvider,
		APIKey:             aiAPIKey,
		BaseURL:            getEnv("AI_BASE_URL", defaultBaseURL),
		Model:              getEnv("AI_MODEL", defaultModel),
		Timeout:            aiTimeout,
		RateLimitPerMinute: aiRateLimitPerMinute,
		RateLimitBurst:     aiRateLimitBurst,
		MaxOutputTokens:    aiMaxOutputTokens,
	}

	expiringDelay, err := parseDurationEnv("NOTIFY_EXPIRING_DELAY", 30*time.Minute)
	if err != nil {
		return cfg, err
	}

	dailyHour, dailyMinute, err := parseClockEnv("NOTIFY_DAILY_TIME", 9, 0)
	if err != nil {
		return cfg, err
	}

	recipeTTL, err := parseDurationEnv("RECIPE_BATCH_TTL", 24*time.Hour)
	if err != nil {
		return cfg, err
	}

	cfg.Notify = NotifyConfig{
		ExpiringDelay: expiringDelay,
		DailyHour:     dailyHour,
		DailyMinute:   dailyMinute,
		RecipeTTL:     recipeTTL,
	}

	cfg.Storage = StorageConfig{
		Enabled:       parseBoolEnv("STORAGE_ENABLED", false),
		Endpoint:      getEnv("STORAGE_ENDPOINT", ""),
		Region:        getEnv("STORAGE_REGION", "us-east-1"),
		Bucket:        getEnv("STORAGE_BUCKET", ""),
		AccessKey:     getEnv("STORAGE_ACCESS_KEY", ""),
		SecretKey:     getEnv("STORAGE_SECRET_KEY", ""),
		PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", ""),
	}

	cfg.Admin = AdminConfig{
		Emails: parseCSVEnv("ADMIN_EMAILS"),
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("SERVER_PORT must be greater than 0")
	}

	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}

	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DATABASE is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be greater than 0")
	}

	if c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("JWT_REFRESH_TTL must be greater than 0")
	}

	if c.Auth.RateLimitPerMinute <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT_PER_MINUTE must be greater than 0")
	}

	if c.Auth.RateLimitBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT_BURST must be greater than 0")
	}

	if c.AI.RateLimitPerMinute <= 0 {
		return fmt.Errorf("AI_RATE_LIMIT_PER_MINUTE must be greater than 0")
	}

	if c.AI.RateLimitBurst <= 0 {
		return fmt.Errorf("AI_RATE_LIMIT_BURST must be greater than 0")
	}

	if c.AI.MaxOutputTokens <= 0 {
		return fmt.Errorf("AI_MAX_OUTPUT_TOKENS must be greater than 0")
	}

	if c.Storage.Enabled {
		if c.Storage.Bucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required when storage is enabled")
		}
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required when storage is enabled")
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

func parseNonNegativeIntEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	if parsed < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}

	return parsed, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

// parseClockEnv читает время вида "15:04".
func parseClockEnv(key string, fallbackHour, fallbackMinute int) (int, int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallbackHour, fallbackMinute, nil
	}

	parsed, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("%s must be a clock time like 21:30: %w", key, err)
	}

	return parsed.Hour(), parsed.Minute(), nil
}

func parseBoolEnv(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}

	return parsed
}

func parseCSVEnv(key string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func loadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}
