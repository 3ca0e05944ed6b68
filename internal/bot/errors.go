package bot

import (
	"errors"

	"kinobot/internal/service"
)

// userErrorMessage переводит ошибку сервисного слоя в текст для
// пользователя. Неизвестные ошибки не раскрываются.
func userErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrMovieExists):
		return "⚠️ Фильм с таким названием уже существует"
	case errors.Is(err, service.ErrMovieNotFound):
		return "❌ Фильм не найден"
	case errors.Is(err, service.ErrSessionNotFound):
		return "❌ Сеанс не найден"
	case errors.Is(err, service.ErrBookingNotFound):
		return "❌ Не удалось отменить бронь."
	default:
		return "❌ Произошла ошибка. Попробуйте еще раз."
	}
}
