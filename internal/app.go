package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	catalog_adapter "discovery-service/internal/adapters/catalog"
	"discovery-service/internal/adapters/listings_api_client"
	logger_adapter "discovery-service/internal/adapters/logger"
	postgres_adapter "discovery-service/internal/adapters/postgres"
	rabbitmq_adapter "discovery-service/internal/adapters/rabbitmq"
	"discovery-service/internal/adapters/rest"
	"discovery-service/internal/adapters/suggest"
	"discovery-service/internal/configs"
	"discovery-service/internal/constants"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/port"
	"discovery-service/internal/core/usecase"
)

// App – структура приложения
type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	listingEventsConsumer *rabbitmq_adapter.ListingEventsConsumer

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

// NewApp создает новый экземпляр приложения
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false, // текстовый формат
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = logger_adapter.NewFluentClient(logger_adapter.FluentConfig{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName, // Используем имя приложения как префикс
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. ХРАНИЛИЩЕ КАТАЛОГА И ТАКСОНОМИЯ ---
	store := catalog_adapter.NewStore(baseLogger)
	taxonomy := catalog_adapter.NewStaticTaxonomy()

	// --- 4. ИСТОЧНИК КАТАЛОГА ---
	bootstrapCtx := contextkeys.ContextWithLogger(context.Background(), baseLogger)

	var dbPool *pgxpool.Pool
	var apiClient *listings_api_client.Client

	switch appConfig.Catalog.Source {
	case "http":
		apiClient = listings_api_client.NewClient(appConfig.Catalog.ListingsAPIURL)

		records, err := apiClient.LoadCatalog(bootstrapCtx)
		if err != nil {
			// Пустой старт допустим: каталог догонят события из очереди
			appLogger.Warn("Failed to load catalog from listings API, starting with empty catalog", port.Fields{"error": err.Error()})
		} else {
			store.ReplaceAll(records)
		}

		buckets, err := apiClient.GetPropertyTypes(bootstrapCtx)
		if err != nil {
			appLogger.Warn("Failed to load property types dictionary, using builtin taxonomy", port.Fields{"error": err.Error()})
		} else {
			taxonomy.SetAll(buckets)
		}

	case "postgres":
		dbPool, err = postgres_adapter.NewClient(context.Background(), postgres_adapter.Config{DatabaseURL: appConfig.Database.URL})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		appLogger.Info("Successfully connected to PostgreSQL pool", nil)

		catalogRepo := postgres_adapter.NewCatalogRepository(dbPool)
		records, err := catalogRepo.LoadCatalog(bootstrapCtx)
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to load catalog from database: %w", err)
		}
		store.ReplaceAll(records)

	case "none":
		appLogger.Info("Catalog source disabled, starting with empty catalog", nil)
	}

	// --- 5. ИСТОЧНИК ПОДСКАЗОК ---
	var suggestionSource port.SuggestionSourcePort
	var suggestionIndex port.SuggestionIndexPort

	if appConfig.Catalog.SuggestionSource == "http" {
		if apiClient == nil {
			apiClient = listings_api_client.NewClient(appConfig.Catalog.ListingsAPIURL)
		}
		suggestionSource = apiClient
	} else {
		scanSource := suggest.NewCatalogScanSource(store, baseLogger, 0)
		suggestionSource = scanSource
		suggestionIndex = scanSource
	}

	appLogger.Info("All outgoing adapters initialized.", nil)

	// --- 6. ИНИЦИАЛИЗАЦИЯ USE-CASES ---
	searchObjectsUseCase := usecase.NewSearchObjectsUseCase(store, taxonomy)
	findNearbyUseCase := usecase.NewFindNearbyUseCase(store)
	getSuggestionsUseCase := usecase.NewGetSuggestionsUseCase(suggestionSource, usecase.SuggestionConfig{
		Debounce:     time.Duration(appConfig.Suggest.DebounceMs) * time.Millisecond,
		CacheTTL:     time.Duration(appConfig.Suggest.CacheTTLMs) * time.Millisecond,
		FetchTimeout: time.Duration(appConfig.Suggest.TimeoutMs) * time.Millisecond,
	})
	toggleCompareUseCase := usecase.NewToggleCompareUseCase(store, appConfig.Compare.MaxSize)
	applyListingEventUseCase := usecase.NewApplyListingEventUseCase(store, suggestionIndex)
	appLogger.Info("All use cases initialized.", nil)

	// --- 7. ВХОДЯЩИЕ АДАПТЕРЫ ---
	var listingEventsConsumer *rabbitmq_adapter.ListingEventsConsumer
	if appConfig.RabbitMQ.Enabled {
		consumerCfg := rabbitmq_adapter.ConsumerConfig{
			URL:           appConfig.RabbitMQ.URL,
			Exchange:      constants.ExchangeListings,
			Queue:         constants.QueueListingEvents,
			RoutingKey:    constants.RoutingKeyListingEvents,
			ConsumerTag:   constants.ConsumerTagListingEvents,
			PrefetchCount: 1,
		}
		listingEventsConsumer, err = rabbitmq_adapter.NewListingEventsConsumer(consumerCfg, applyListingEventUseCase, baseLogger)
		if err != nil {
			if dbPool != nil {
				dbPool.Close()
			}
			return nil, err
		}
		appLogger.Info("Listing Events Listener initialized.", nil)
	}

	// REST API Server
	searchHandlers := rest.NewSearchHandler(searchObjectsUseCase)
	nearbyHandlers := rest.NewNearbyHandler(findNearbyUseCase)
	suggestHandlers := rest.NewSuggestHandler(getSuggestionsUseCase)
	compareHandlers := rest.NewCompareHandler(toggleCompareUseCase)
	statsHandlers := rest.NewStatsHandler(store)
	apiServer := rest.NewServer(appConfig.Rest.PORT,
		searchHandlers, nearbyHandlers, suggestHandlers, compareHandlers, statsHandlers,
		baseLogger)

	// Собираем приложение
	application := &App{
		config:                appConfig,
		dbPool:                dbPool,
		apiServer:             apiServer,
		listingEventsConsumer: listingEventsConsumer,
		logger:                appLogger,
		fluentClient:          fluentClient,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом
func (a *App) Run() error {
	// единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())
	appCtx = contextkeys.ContextWithLogger(appCtx, a.logger)

	// для ожидания завершения всех фоновых задач
	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("App: Shutdown sequence initiated...", nil)

		// Ждем завершения всех запущенных слушателей
		a.logger.Info("App: Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("App: All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("App: Error closing api server", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("App: PostgreSQL pool closed.", nil)
		}

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				a.logger.Error("App: Error closing fluent client", err, nil)
			}
		}
		a.logger.Info("Application shut down gracefully.", nil)
	}()

	a.logger.Info("Application is starting...", nil)

	if a.listingEventsConsumer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.logger.Info("App: Starting Listing Events Listener...", nil)
			a.listingEventsConsumer.Listen(appCtx)
			a.logger.Info("App: Listing Events Listener stopped.", nil)
		}()
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Info("App: Received signal. Shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("HTTP server failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("App: Context was cancelled unexpectedly. Shutting down...", nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
