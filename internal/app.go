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

	logger_adapter "marketplace-service/internal/adapters/logger"
	postgres_adapter "marketplace-service/internal/adapters/postgres"
	rabbitmq_adapter "marketplace-service/internal/adapters/rabbitmq"
	"marketplace-service/internal/adapters/rest"
	"marketplace-service/internal/configs"
	"marketplace-service/internal/constants"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"marketplace-service/internal/core/usecase"

	fluentlogger "marketplace-service/pkg/fluent_logger"
	"marketplace-service/pkg/postgres"
	"marketplace-service/pkg/rabbitmq/rabbitmq_common"
	"marketplace-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	publicationEventsListener port.EventListenerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
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
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
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

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ С КОНТЕКСТОМ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 3. НИЗКОУРОВНЕВЫЕ ЗАВИСИМОСТИ ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	parcelAssetRepository, err := postgres_adapter.NewParcelAssetRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create parcel asset repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create parcel asset repository: %w", err)
	}
	estateAssetRepository, err := postgres_adapter.NewEstateAssetRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create estate asset repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create estate asset repository: %w", err)
	}
	parcelRepository, err := postgres_adapter.NewParcelRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create parcel repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create parcel repository: %w", err)
	}
	districtRepository, err := postgres_adapter.NewDistrictRepository(dbPool)
	if err != nil {
		appLogger.Error("Failed to create district repository", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create district repository: %w", err)
	}
	publicationStorage, err := postgres_adapter.NewPublicationStorageAdapter(dbPool)
	if err != nil {
		appLogger.Error("Failed to create publication storage adapter", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create publication storage adapter: %w", err)
	}
	appLogger.Info("Postgres storage adapters initialized.", nil)

	connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger)
	connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, connManagerBridge)
	if err != nil {
		appLogger.Error("Failed to create connection manager", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

	// --- 4. USE CASES (ядро бизнес-логики) ---
	filterParcelsUseCase := usecase.NewFilterAssetsUseCase[domain.Parcel](parcelAssetRepository)
	filterEstatesUseCase := usecase.NewFilterAssetsUseCase[domain.Estate](estateAssetRepository)
	getParcelUseCase := usecase.NewGetAssetUseCase[domain.Parcel](parcelAssetRepository)
	addressParcelsUseCase := usecase.NewGetAddressAssetsUseCase[domain.Parcel](parcelAssetRepository)
	addressEstatesUseCase := usecase.NewGetAddressAssetsUseCase[domain.Estate](estateAssetRepository)

	parcelsInRangeUseCase := usecase.NewParcelsInRangeUseCase(parcelRepository)
	parcelTokenIDUseCase := usecase.NewParcelTokenIDUseCase(parcelRepository)
	mapParcelsUseCase := usecase.NewGetMapParcelsUseCase(parcelRepository)
	mortgagedParcelsUseCase := usecase.NewGetMortgagedParcelsUseCase(parcelRepository)
	districtsUseCase := usecase.NewGetDistrictsUseCase(districtRepository)

	savePublicationUseCase := usecase.NewSavePublicationUseCase(publicationStorage)
	changeStatusUseCase := usecase.NewChangePublicationStatusUseCase(publicationStorage)

	appLogger.Info("All use cases initialized.", nil)

	// --- 5. ВХОДЯЩИЕ АДАПТЕРЫ ---
	publicationConsumerCfg := rabbitmq_consumer.ConsumerConfig{
		Config:              rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		QueueName:           constants.QueuePublicationEvents,
		DurableQueue:        true,
		ExchangeNameForBind: "marketplace_exchange",
		RoutingKeyForBind:   constants.RoutingKeyPublicationEvents,
		PrefetchCount:       1,
		ConsumerTag:         "publication-saver-adapter",
		DeclareQueue:        true,

		EnableRetryMechanism: true,
		RetryExchange:        constants.QueuePublicationEvents + "_retry_ex",
		RetryQueue:           constants.QueuePublicationEvents + "_retry_wait_10s",
		RetryTTL:             10000, // 10 секунд в миллисекундах

		FinalDLXExchange:   constants.FinalDLXExchange,
		FinalDLQ:           constants.FinalDLQ,
		FinalDLQRoutingKey: constants.FinalDLQRoutingKey,

		MaxRetries: 3,
	}
	publicationListener, err := rabbitmq_adapter.NewPublicationConsumerAdapter(publicationConsumerCfg, savePublicationUseCase, changeStatusUseCase, baseLogger, connManager)
	if err != nil {
		appLogger.Error("Failed to create publication events listener", err, nil)
		dbPool.Close()
		return nil, err
	}
	appLogger.Info("Publication Events Listener initialized.", nil)

	// --- 6. REST API Server ---
	assetHandler := rest.NewAssetHandler(filterParcelsUseCase, filterEstatesUseCase, addressParcelsUseCase, addressEstatesUseCase)
	parcelHandler := rest.NewParcelHandler(getParcelUseCase, parcelsInRangeUseCase, parcelTokenIDUseCase, mapParcelsUseCase, mortgagedParcelsUseCase)
	districtHandler := rest.NewDistrictHandler(districtsUseCase)

	apiServer := rest.NewServer(appConfig.Rest.PORT, assetHandler, parcelHandler, districtHandler, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	application := &App{
		config:                    appConfig,
		dbPool:                    dbPool,
		apiServer:                 apiServer,
		publicationEventsListener: publicationListener,

		fluentClient: fluentClient,
		logger:       appLogger,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.publicationEventsListener != nil {
			if err := a.publicationEventsListener.Close(); err != nil {
				a.logger.Error("Error closing publication events listener", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Пишем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	startListener := func(name string, listener port.EventListenerPort) {
		defer wg.Done()
		listenerLogger := a.logger.WithFields(port.Fields{"listener_name": name})
		listenerLogger.Info("Starting listener...", nil)

		if err := listener.Start(appCtx); err != nil {
			listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
			errorsCh <- fmt.Errorf("%s error: %w", name, err)
		} else {
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}
	}

	wg.Add(1)
	go startListener("Publication Events Listener", a.publicationEventsListener)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

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
