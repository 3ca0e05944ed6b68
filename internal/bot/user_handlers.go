package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kinobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// showMainMenu отрисовывает корневое меню. Кнопки "Мои бронирования" и
// "Отменить бронь" показываются только при наличии броней.
func (b *Bot) showMainMenu(ctx context.Context, update *tgbotapi.Update) {
	userID := update.Message.From.ID

	choices := []string{btnBookTicket}
	if len(b.bookingService.UserBookings(ctx, strconv.FormatInt(userID, 10))) > 0 {
		choices = append(choices, btnMyBookings, btnCancelBooking)
	}

	b.setState(ctx, &models.UserState{
		UserID: userID,
		Flow:   models.FlowUser,
		Step:   models.StateMainMenu,
	})

	b.sendChoices(update.Message.Chat.ID, "🎭 Добро пожаловать в кинотеатр! Выберите действие:", choices)
}

func (b *Bot) handleMainMenu(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	switch mainMenuActions[update.Message.Text] {
	case actionBookTicket:
		b.startBooking(ctx, update, state)
	case actionMyBookings:
		b.showUserBookings(ctx, update)
	case actionCancelBooking:
		b.startBookingCancellation(ctx, update, state)
	default:
		b.sendMessage(update.Message.Chat.ID, "❌ Неизвестная команда")
		b.showMainMenu(ctx, update)
	}
}

func (b *Bot) startBooking(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	movies := b.catalogService.Movies(ctx)
	if len(movies) == 0 {
		b.sendMessage(update.Message.Chat.ID, "🎥 Сейчас нет доступных фильмов.")
		b.showMainMenu(ctx, update)
		return
	}

	state.Step = models.StateMovieChoice
	state.User = &models.UserFlowData{}
	b.setState(ctx, state)

	b.showMovies(update.Message.Chat.ID, movies)
}

func (b *Bot) showMovies(chatID int64, movies []models.Movie) {
	choices := make([]string, 0, len(movies)+1)
	for _, m := range movies {
		choices = append(choices, m.Title)
	}
	choices = append(choices, btnBackToMain)
	b.sendChoices(chatID, "🎬 Выберите фильм:", choices)
}

func (b *Bot) handleMovieChoice(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	text := update.Message.Text
	chatID := update.Message.Chat.ID

	if text == btnBackToMain {
		b.showMainMenu(ctx, update)
		return
	}

	movie, ok := b.catalogService.MovieByTitle(ctx, text)
	if !ok {
		b.sendMessage(chatID, "❌ Фильм не найден")
		b.showMovies(chatID, b.catalogService.Movies(ctx))
		return
	}

	if len(movie.Sessions) == 0 {
		b.sendMessage(chatID, "⏰ Нет доступных сеансов для этого фильма")
		b.showMovies(chatID, b.catalogService.Movies(ctx))
		return
	}

	state.Step = models.StateSessionChoice
	state.UserData().SelectedMovie = movie.Title
	state.UserData().SelectedSession = ""
	b.setState(ctx, state)

	b.showSessions(chatID, movie)
}

func (b *Bot) showSessions(chatID int64, movie models.Movie) {
	choices := make([]string, 0, len(movie.Sessions)+1)
	for _, s := range movie.Sessions {
		choices = append(choices, s.Label())
	}
	choices = append(choices, btnBack)
	b.sendChoices(chatID, fmt.Sprintf("⏰ Сеансы для %s:", movie.Title), choices)
}

func (b *Bot) handleSessionChoice(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	text := update.Message.Text
	chatID := update.Message.Chat.ID

	if text == btnBack {
		state.Step = models.StateMovieChoice
		state.UserData().SelectedMovie = ""
		state.UserData().SelectedSession = ""
		b.setState(ctx, state)

		b.showMovies(chatID, b.catalogService.Movies(ctx))
		return
	}

	// Каталог перечитывается на каждом шаге: фильм мог исчезнуть, пока
	// пользователь думал.
	movie, ok := b.catalogService.MovieByTitle(ctx, state.UserData().SelectedMovie)
	if !ok {
		state.Step = models.StateMovieChoice
		state.UserData().SelectedMovie = ""
		b.setState(ctx, state)

		b.sendMessage(chatID, "❌ Фильм не найден")
		b.showMovies(chatID, b.catalogService.Movies(ctx))
		return
	}

	matched := false
	for _, s := range movie.Sessions {
		if s.Label() == text {
			matched = true
			break
		}
	}
	if !matched {
		b.sendMessage(chatID, "❌ Сеанс не найден")
		b.showSessions(chatID, movie)
		return
	}

	state.Step = models.StateSeatChoice
	state.UserData().SelectedSession = text
	b.setState(ctx, state)

	b.showSeats(chatID)
}

func (b *Bot) showSeats(chatID int64) {
	seatCount := b.config.Bot.SeatCount
	choices := make([]string, 0, seatCount+1)
	for i := 1; i <= seatCount; i++ {
		choices = append(choices, strconv.Itoa(i))
	}
	choices = append(choices, btnBack)
	b.sendChoices(chatID, fmt.Sprintf("💺 Выберите место (1-%d):", seatCount), choices)
}

func (b *Bot) handleSeatChoice(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	text := update.Message.Text
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if text == btnBack {
		state.Step = models.StateSessionChoice
		state.UserData().SelectedSession = ""
		b.setState(ctx, state)

		movie, ok := b.catalogService.MovieByTitle(ctx, state.UserData().SelectedMovie)
		if !ok {
			state.Step = models.StateMovieChoice
			state.UserData().SelectedMovie = ""
			b.setState(ctx, state)

			b.showMovies(chatID, b.catalogService.Movies(ctx))
			return
		}
		b.showSessions(chatID, movie)
		return
	}

	seat, err := ParseSeat(text, b.config.Bot.SeatCount)
	if err != nil {
		b.sendMessage(chatID, fmt.Sprintf("❌ Введите число от 1 до %d", b.config.Bot.SeatCount))
		b.showSeats(chatID)
		return
	}

	booking, err := b.bookingService.CreateBooking(ctx, models.Booking{
		UserID:  strconv.FormatInt(userID, 10),
		Movie:   state.UserData().SelectedMovie,
		Session: state.UserData().SelectedSession,
		Seat:    seat,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to create booking")
		b.sendMessage(chatID, "❌ Не удалось создать бронь. Попробуйте позже.")
		b.showMainMenu(ctx, update)
		return
	}

	if b.metrics != nil {
		b.metrics.BookingsCreated.WithLabelValues(booking.Movie).Inc()
	}

	b.sendMessage(chatID, fmt.Sprintf(
		"✅ Бронь успешно создана!\n\n🎬 Фильм: %s\n⏰ Время: %s\n💺 Место: %s",
		booking.Movie, booking.Session, booking.Seat,
	))
	b.showMainMenu(ctx, update)
}

func (b *Bot) showUserBookings(ctx context.Context, update *tgbotapi.Update) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	bookings := b.bookingService.UserBookings(ctx, strconv.FormatInt(userID, 10))
	if len(bookings) == 0 {
		b.sendMessage(chatID, "📭 У вас нет активных бронирований.")
		b.showMainMenu(ctx, update)
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Ваши бронирования:")
	for _, bk := range bookings {
		fmt.Fprintf(&sb, "\n\n🎬 %s\n⏰ %s\n💺 Место: %s", bk.Movie, bk.Session, bk.Seat)
	}
	b.sendMessage(chatID, sb.String())
	b.showMainMenu(ctx, update)
}

func (b *Bot) startBookingCancellation(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	bookings := b.bookingService.UserBookings(ctx, strconv.FormatInt(userID, 10))
	if len(bookings) == 0 {
		b.sendMessage(chatID, "ℹ️ Нет бронирований для отмены.")
		b.showMainMenu(ctx, update)
		return
	}

	// Снимок списка фиксирует соответствие номеров пунктов броням на
	// момент показа.
	state.Step = models.StateBookingCancellation
	state.UserData().Bookings = bookings
	b.setState(ctx, state)

	b.showCancellationChoices(chatID, bookings)
}

func (b *Bot) showCancellationChoices(chatID int64, bookings []models.Booking) {
	choices := make([]string, 0, len(bookings)+1)
	for i, bk := range bookings {
		choices = append(choices, fmt.Sprintf("%d. %s (место %s)", i+1, bk.Movie, bk.Seat))
	}
	choices = append(choices, btnCancelDialog)
	b.sendChoices(chatID, "Выберите бронь для отмены:", choices)
}

func (b *Bot) handleBookingCancellation(ctx context.Context, update *tgbotapi.Update, state *models.UserState) {
	text := update.Message.Text
	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if text == btnCancelDialog {
		b.sendMessage(chatID, "✅ Операция отменена.")
		b.showMainMenu(ctx, update)
		return
	}

	snapshot := state.UserData().Bookings
	idx, err := ParseCancellationChoice(text, len(snapshot))
	if err != nil {
		b.sendMessage(chatID, "❌ Неверный выбор. Попробуйте еще раз.")
		b.showCancellationChoices(chatID, snapshot)
		return
	}

	target := snapshot[idx-1]
	if err := b.bookingService.CancelBooking(ctx, target.UserID, target.Movie, target.Session, target.Seat); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("Failed to cancel booking")
		b.sendMessage(chatID, "❌ Не удалось отменить бронь.")
		b.showMainMenu(ctx, update)
		return
	}

	if b.metrics != nil {
		b.metrics.BookingsCancelled.Inc()
	}

	b.sendMessage(chatID, fmt.Sprintf("✅ Бронь на %s отменена!", target.Movie))
	b.showMainMenu(ctx, update)
}
