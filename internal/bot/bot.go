package bot

import (
	"context"
	"os"
	"strings"
	"time"

	"kinobot/internal/config"
	"kinobot/internal/domain"
	"kinobot/internal/events"
	"kinobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// handlerFunc — обработчик одного шага диалога: (состояние, ввод) →
// побочные эффекты, следующее состояние, запрос на отрисовку.
type handlerFunc func(ctx context.Context, update *tgbotapi.Update, state *models.UserState)

type Bot struct {
	tgService      domain.TelegramService
	config         *config.Config
	stateService   domain.StateManager
	catalogService domain.CatalogService
	bookingService domain.BookingService
	userService    domain.UserService
	eventBus       domain.EventPublisher
	metrics        *Metrics
	logger         *zerolog.Logger

	// Таблица (поток, шаг) → обработчик. Неизвестная пара невозможна:
	// диспетчер сбрасывает такие состояния в корневое меню.
	handlers map[string]map[string]handlerFunc
}

func NewBot(
	tgService domain.TelegramService,
	config *config.Config,
	stateService domain.StateManager,
	catalogService domain.CatalogService,
	bookingService domain.BookingService,
	userService domain.UserService,
	eventBus domain.EventPublisher,
	metrics *Metrics,
	logger *zerolog.Logger,
) (*Bot, error) {
	if eventBus == nil {
		eventBus = events.NewEventBus()
	}

	if logger == nil {
		l := zerolog.New(os.Stdout).With().Timestamp().Logger()
		logger = &l
	}

	b := &Bot{
		tgService:      tgService,
		config:         config,
		stateService:   stateService,
		catalogService: catalogService,
		bookingService: bookingService,
		userService:    userService,
		eventBus:       eventBus,
		metrics:        metrics,
		logger:         logger,
	}

	b.handlers = map[string]map[string]handlerFunc{
		models.FlowUser: {
			models.StateMainMenu:            b.handleMainMenu,
			models.StateMovieChoice:         b.handleMovieChoice,
			models.StateSessionChoice:       b.handleSessionChoice,
			models.StateSeatChoice:          b.handleSeatChoice,
			models.StateBookingCancellation: b.handleBookingCancellation,
		},
		models.FlowAdmin: {
			models.StateAdminMenu:   b.handleAdminMenu,
			models.StateAddMovie:    b.handleAddMovie,
			models.StateDeleteMovie: b.handleDeleteMovie,
			models.StateEditSession: b.handleEditSession,
		},
	}

	return b, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tgService.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tgService.GetSelf().UserName).Msg("Authorized on account")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.processUpdate(ctx, update)
		}
	}
}

// Stop stops receiving Telegram updates (best-effort).
func (b *Bot) Stop() {
	if b == nil || b.tgService == nil {
		return
	}
	b.tgService.StopReceivingUpdates()
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	start := time.Now()
	defer func() {
		if b.metrics != nil {
			b.metrics.UpdateProcessingTime.Observe(time.Since(start).Seconds())
		}
	}()

	// Каждое обновление обрабатывается до конца с собственным контекстом
	updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	requestID := uuid.New().String()
	l := b.logger.With().Str("request_id", requestID).Logger()
	updateCtx = l.WithContext(updateCtx)

	b.withRecovery(func() {
		if update.Message == nil || update.Message.From == nil {
			return
		}

		userID := update.Message.From.ID
		b.trackActivity(userID)

		if !b.isAdmin(userID) {
			allowed, err := b.stateService.CheckRateLimit(updateCtx, userID, b.config.Bot.RateLimitMessages, time.Duration(b.config.Bot.RateLimitWindow)*time.Second)
			if err != nil {
				b.logger.Error().Err(err).Int64("user_id", userID).Msg("Rate limit check failed")
			} else if !allowed {
				b.logger.Warn().Int64("user_id", userID).Msg("Rate limit exceeded")
				b.sendMessage(update.Message.Chat.ID, "⚠️ Вы отправляете сообщения слишком часто. Пожалуйста, подождите немного.")
				return
			}
		}

		b.handleMessage(updateCtx, &update)
	})
}

func (b *Bot) handleMessage(ctx context.Context, update *tgbotapi.Update) {
	userID := update.Message.From.ID
	text := update.Message.Text
	l := zerolog.Ctx(ctx)

	if b.metrics != nil {
		b.metrics.MessagesProcessed.Inc()
		if strings.HasPrefix(text, "/") {
			b.metrics.CommandsProcessed.Inc()
		}
	}

	l.Debug().
		Int64("user_id", userID).
		Str("username", update.Message.From.UserName).
		Str("text", text).
		Msg("Handling message")

	// Команды входа в поток и сквозная отмена срабатывают из любого
	// состояния.
	switch {
	case text == "/start" || strings.EqualFold(text, "сброс") || strings.EqualFold(text, "reset"):
		b.clearState(ctx, userID)
		b.handleStartWithUserTracking(ctx, update)
		return

	case text == "/admin":
		b.enterAdminFlow(ctx, update)
		return

	case text == "/cancel":
		b.handleCancelCommand(ctx, update)
		return
	}

	state := b.getState(ctx, userID)
	if state == nil {
		// Нет активного диалога: любое сообщение приводит в главное меню
		b.showMainMenu(ctx, update)
		return
	}

	if handler, ok := b.handlers[state.Flow][state.Step]; ok {
		handler(ctx, update, state)
		return
	}

	l.Warn().Str("flow", state.Flow).Str("step", state.Step).Msg("Unknown conversation state, resetting")
	b.clearState(ctx, userID)
	b.showMainMenu(ctx, update)
}

// handleCancelCommand — /cancel возвращает в корень текущего потока.
func (b *Bot) handleCancelCommand(ctx context.Context, update *tgbotapi.Update) {
	userID := update.Message.From.ID
	state := b.getState(ctx, userID)

	if state != nil && state.Flow == models.FlowAdmin {
		b.exitAdminFlow(ctx, update)
		return
	}

	b.clearState(ctx, userID)
	b.sendMessage(update.Message.Chat.ID, "🔙 Возврат в главное меню")
	b.showMainMenu(ctx, update)
}
