package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"kinobot/internal/api"
	"kinobot/internal/bot"
	"kinobot/internal/config"
	"kinobot/internal/database"
	"kinobot/internal/events"
	"kinobot/internal/logging"
	"kinobot/internal/models"
	"kinobot/internal/repository"
	"kinobot/internal/service"
	"kinobot/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, loadErr := loadConfigAndLogger()
	if loadErr != nil {
		return loadErr
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	catalogStore := storage.NewCatalogStore(cfg.Storage.MoviesPath, &logger)
	bookingStore := storage.NewBookingStore(cfg.Storage.BookingsPath, &logger)

	if err := seedCatalog(cfg, catalogStore, &logger); err != nil {
		return err
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка инициализации базы данных")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, stateService := initStateService(ctx, cfg, &logger)
	defer func() { _ = repository.Close(redisClient) }()

	eventBus := events.NewEventBus()
	subscribeEvents(eventBus, &logger)

	catalogService := service.NewCatalogService(catalogStore, eventBus, &logger)
	bookingService := service.NewBookingService(bookingStore, eventBus, &logger)
	userService := service.NewUserService(db, &logger)
	metrics := bot.NewMetrics()

	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	if cfg.API.Enabled {
		apiServer := api.NewHTTPServer(cfg.API, catalogService, bookingService, &logger)
		go func() {
			if err := apiServer.Start(); err != nil {
				logger.Error().Err(err).Msg("API server error")
			}
		}()
		defer func() {
			_ = apiServer.Shutdown(context.Background())
		}()
	}

	if cfg.Backup.Enabled {
		backupService := storage.NewBackupService(
			[]string{cfg.Storage.MoviesPath, cfg.Storage.BookingsPath, cfg.Database.Path},
			cfg.Backup, &logger,
		)
		go backupService.Start(ctx)
	}

	return startBot(ctx, cfg, stateService, eventBus, catalogService, bookingService, userService, metrics, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if cfg == nil {
		return os.ErrInvalid
	}
	dirs := []string{
		filepath.Dir(cfg.Storage.MoviesPath),
		filepath.Dir(cfg.Storage.BookingsPath),
		filepath.Dir(cfg.Database.Path),
		cfg.Exports.Path,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error().Err(err).Str("dir", dir).Msg("Ошибка создания директории")
			return err
		}
	}
	return nil
}

// seedCatalog наполняет пустой каталог из configs/movies.yaml при первом
// запуске. Существующий файл каталога не перезаписывается.
func seedCatalog(cfg *config.Config, store *storage.CatalogStore, logger *zerolog.Logger) error {
	if _, err := os.Stat(cfg.Storage.MoviesPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	seedPath := os.Getenv("MOVIES_SEED_PATH")
	if seedPath == "" {
		seedPath = "configs/movies.yaml"
	}

	seedData, err := os.ReadFile(seedPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info().Str("path", seedPath).Msg("Нет файла с начальным каталогом, старт с пустым")
			return nil
		}
		logger.Error().Err(err).Msgf("Ошибка чтения %s", seedPath)
		return err
	}

	var seed struct {
		Movies []models.Movie `yaml:"movies"`
	}
	if err := yaml.Unmarshal(seedData, &seed); err != nil {
		logger.Error().Err(err).Msg("Ошибка парсинга movies.yaml")
		return err
	}

	if err := store.Save(seed.Movies); err != nil {
		logger.Error().Err(err).Msg("Ошибка записи начального каталога")
		return err
	}

	logger.Info().Int("movies", len(seed.Movies)).Msg("Каталог заполнен из начального файла")
	return nil
}

func initStateService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *service.StateService) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	primaryRepo := repository.NewRedisStateRepository(redisClient, time.Duration(models.DefaultRedisTTL)*time.Second)
	fallbackRepo := repository.NewMemoryStateRepository(time.Duration(models.DefaultRedisTTL) * time.Second)
	stateRepo := repository.NewFailoverStateRepository(primaryRepo, fallbackRepo, logger)
	return redisClient, service.NewStateService(stateRepo, logger)
}

func subscribeEvents(bus *events.EventBus, logger *zerolog.Logger) {
	bookingHandler := func(ev *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}
		logger.Info().
			Str("event", ev.Type).
			Str("booking_id", payload.BookingID).
			Str("user_id", payload.UserID).
			Str("movie", payload.Movie).
			Msg("booking event")
		return nil
	}

	catalogHandler := func(ev *events.Event) error {
		var payload events.CatalogEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}
		logger.Info().
			Str("event", ev.Type).
			Str("title", payload.Title).
			Msg("catalog event")
		return nil
	}

	bus.Subscribe(events.EventBookingCreated, bookingHandler)
	bus.Subscribe(events.EventBookingCancelled, bookingHandler)
	bus.Subscribe(events.EventMovieAdded, catalogHandler)
	bus.Subscribe(events.EventMovieDeleted, catalogHandler)
	bus.Subscribe(events.EventSessionUpdated, catalogHandler)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	stateService *service.StateService,
	eventBus *events.EventBus,
	catalogService *service.CatalogService,
	bookingService *service.BookingService,
	userService *service.UserService,
	metrics *bot.Metrics,
	logger *zerolog.Logger,
) error {
	if cfg.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		logger.Error().Msg("Задайте токен бота в config.yaml")
		return os.ErrInvalid
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания BotAPI")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	botWrapper := bot.NewBotWrapper(botAPI)
	tgService := service.NewTelegramService(botWrapper)

	telegramBot, err := bot.NewBot(
		tgService, cfg, stateService, catalogService,
		bookingService, userService, eventBus, metrics, logger,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания бота")
		return err
	}

	logger.Info().Msg("Бот запущен...")
	telegramBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}
