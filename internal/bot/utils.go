package bot

import (
	"context"
	"time"

	"kinobot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) isAdmin(userID int64) bool {
	return b.config.IsAdmin(userID)
}

func (b *Bot) getState(ctx context.Context, userID int64) *models.UserState {
	state, err := b.stateService.GetUserState(ctx, userID)
	if err != nil {
		b.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to get user state")
		return nil
	}
	return state
}

func (b *Bot) setState(ctx context.Context, state *models.UserState) {
	if err := b.stateService.SetUserState(ctx, state); err != nil {
		b.logger.Error().Err(err).Int64("user_id", state.UserID).Msg("Failed to save user state")
	}
}

func (b *Bot) clearState(ctx context.Context, userID int64) {
	if err := b.stateService.ClearUserState(ctx, userID); err != nil {
		b.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to clear user state")
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if _, err := b.tgService.SendMessage(chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
		if b.metrics != nil {
			b.metrics.ErrorsTotal.Inc()
		}
	}
}

func (b *Bot) sendHTML(chatID int64, text string) {
	if _, err := b.tgService.SendHTML(chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
		if b.metrics != nil {
			b.metrics.ErrorsTotal.Inc()
		}
	}
}

func (b *Bot) sendChoices(chatID int64, text string, choices []string) {
	if _, err := b.tgService.SendChoices(chatID, text, choices); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send keyboard")
		if b.metrics != nil {
			b.metrics.ErrorsTotal.Inc()
		}
	}
}

// handleStartWithUserTracking сохраняет профиль пользователя и
// показывает главное меню.
func (b *Bot) handleStartWithUserTracking(ctx context.Context, update *tgbotapi.Update) {
	from := update.Message.From

	if b.userService != nil {
		user := &models.User{
			TelegramID:   from.ID,
			Username:     from.UserName,
			FirstName:    from.FirstName,
			LastName:     from.LastName,
			LanguageCode: from.LanguageCode,
			IsAdmin:      b.isAdmin(from.ID),
			LastActivity: time.Now(),
		}
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := b.userService.SaveUser(saveCtx, user); err != nil {
			b.logger.Error().Err(err).Int64("user_id", from.ID).Msg("Failed to save user")
		}
	}

	b.showMainMenu(ctx, update)
}
