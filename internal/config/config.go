package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	AnalyticsLogPath   string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	TurnTopic          string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider    string // "openai" (any OpenAI-compatible endpoint, Groq by default), "ollama", "huggingface"
	LLMModel       string
	LLMBaseURL     string
	LLMApiKey      string
	MaxRetries     int
	AttemptTimeout time.Duration
	MaxTokens      int
	Temperature    float64
	HistoryWindow  int
}

type AssistantConfig struct {
	SearchLimit     int
	TrendLimit      int
	TrendDays       int
	RecommendCount  int
	TrendCacheTTL   time.Duration
	ShopperCacheTTL time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			AnalyticsLogPath:   getEnv("ANALYTICS_LOG_PATH", "logs/turns.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			TurnTopic:          getEnv("TURN_TOPIC", "assistant.turn.completed"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "openai"),
			LLMModel:       getEnv("LLM_MODEL", ""),
			LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
			LLMApiKey:      getEnv("LLM_API_KEY", getEnv("GROQ_API_KEY", "")),
			MaxRetries:     getEnvAsInt("LLM_MAX_RETRIES", 2),
			AttemptTimeout: getEnvAsDuration("LLM_ATTEMPT_TIMEOUT", 30*time.Second),
			MaxTokens:      getEnvAsInt("LLM_MAX_TOKENS", 1024),
			Temperature:    getEnvAsFloat("LLM_TEMPERATURE", 0.3),
			HistoryWindow:  getEnvAsInt("LLM_HISTORY_WINDOW", 20),
		},
		Assistant: AssistantConfig{
			SearchLimit:     getEnvAsInt("ASSISTANT_SEARCH_LIMIT", 8),
			TrendLimit:      getEnvAsInt("ASSISTANT_TREND_LIMIT", 10),
			TrendDays:       getEnvAsInt("ASSISTANT_TREND_DAYS", 30),
			RecommendCount:  getEnvAsInt("ASSISTANT_RECOMMEND_COUNT", 8),
			TrendCacheTTL:   getEnvAsDuration("ASSISTANT_TREND_CACHE_TTL", 10*time.Minute),
			ShopperCacheTTL: getEnvAsDuration("ASSISTANT_SHOPPER_CACHE_TTL", time.Hour),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := getEnv(key, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseFloat(valStr, 64); err == nil {
		return val
	}
	return defaultVal
}

// getEnvAsDuration accepts Go durations ("45s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(valStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
