package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// RabbitMQConfig хранит конфигурацию для RabbitMQ
type RabbitMQConfig struct {
	URL     string
	Enabled bool
}

// DBconfig хранит конфигурацию для БД
type DBconfig struct {
	URL string
}

type RESTconfig struct {
	PORT string
}

// CatalogConfig описывает, откуда сервис берет каталог объявлений:
// "http" - listings API, "postgres" - прямое чтение из БД,
// "none" - пустой старт (каталог наполняется только событиями).
type CatalogConfig struct {
	Source           string
	ListingsAPIURL   string
	SuggestionSource string // "catalog" или "http"
}

// SuggestConfig хранит тайминги сервиса подсказок (в миллисекундах)
type SuggestConfig struct {
	DebounceMs int
	CacheTTLMs int
	TimeoutMs  int
}

type CompareConfig struct {
	MaxSize int
}

type StdoutLogConfig struct {
	Level string `mapstructure:"STDOUT_LOG_LEVEL" default:"debug"` // По умолчанию DEBUG
}

type FluentBitConfig struct {
	Host    string
	Port    int
	Enabled bool
	Level   string `mapstructure:"FLUENTBIT_LOG_LEVEL" default:"info"` // По умолчанию INFO
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	Database     DBconfig
	RabbitMQ     RabbitMQConfig
	Rest         RESTconfig
	Catalog      CatalogConfig
	Suggest      SuggestConfig
	Compare      CompareConfig
	FluentBit    FluentBitConfig
	AppName      string
	StdoutLogger StdoutLogConfig
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}

	if err != nil {
		log.Printf("Info: Could not load .env file (path: %v): %v.\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = os.Getenv("APP_NAME")
	if cfg.AppName == "" {
		cfg.AppName = "discovery-service" // Устанавливаем default
	}

	// Читаем конфигурацию для REST
	cfg.Rest.PORT = os.Getenv("PORT")
	if cfg.Rest.PORT == "" {
		cfg.Rest.PORT = "8086"
	}

	// Откуда грузим каталог на старте
	cfg.Catalog.Source = getEnvAsString("CATALOG_SOURCE", "http")
	switch cfg.Catalog.Source {
	case "http":
		cfg.Catalog.ListingsAPIURL = os.Getenv("LISTINGS_API_URL")
		if cfg.Catalog.ListingsAPIURL == "" {
			cfg.Catalog.ListingsAPIURL = "http://localhost:8082"
		}
	case "postgres":
		cfg.Database.URL = os.Getenv("DATABASE_URL")
		if cfg.Database.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required when CATALOG_SOURCE=postgres")
		}
	case "none":
		// Каталог наполняется только событиями из RabbitMQ
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE value: %s (expected http, postgres or none)", cfg.Catalog.Source)
	}

	cfg.Catalog.SuggestionSource = getEnvAsString("SUGGESTION_SOURCE", "catalog")
	if cfg.Catalog.SuggestionSource == "http" && cfg.Catalog.ListingsAPIURL == "" {
		cfg.Catalog.ListingsAPIURL = getEnvAsString("LISTINGS_API_URL", "http://localhost:8082")
	}

	// Читаем конфигурацию для RabbitMQ
	cfg.RabbitMQ.Enabled = getEnvAsBool("RABBITMQ_ENABLED", false)
	if cfg.RabbitMQ.Enabled {
		cfg.RabbitMQ.URL = os.Getenv("RABBITMQ_URL")
		if cfg.RabbitMQ.URL == "" {
			return nil, fmt.Errorf("RABBITMQ_URL environment variable is required when RABBITMQ_ENABLED is true")
		}
	}

	// Тайминги подсказок
	cfg.Suggest.DebounceMs = getEnvAsInt("SUGGEST_DEBOUNCE_MS", 150)
	cfg.Suggest.CacheTTLMs = getEnvAsInt("SUGGEST_CACHE_TTL_MS", 60000)
	cfg.Suggest.TimeoutMs = getEnvAsInt("SUGGEST_TIMEOUT_MS", 3000)

	cfg.Compare.MaxSize = getEnvAsInt("COMPARE_MAX_SIZE", 3)

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}

		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt читает переменную окружения как int или возвращает значение по умолчанию
// Логирует ошибку, если переменная есть, но не может быть преобразована в int
func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as int: %v. Using default value: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

// getEnvAsBool читает переменную окружения как bool или возвращает значение по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valBool, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Warning: Environment variable %s (value: %s) could not be parsed as bool: %v. Using default value: %t\n", key, valStr, err, defaultValue)
		return defaultValue
	}
	return valBool
}
