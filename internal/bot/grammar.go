package bot

import (
	"errors"
	"strconv"
	"strings"

	"kinobot/internal/models"
)

// Грамматики свободного ввода. Каждый парсер — чистая функция, возвращающая
// результат либо ErrFormat; обработчик на границе превращает ошибку в
// повторный показ подсказки.

// ErrFormat ввод не соответствует грамматике состояния.
var ErrFormat = errors.New("input does not match expected format")

// ParseAddMovie разбирает "<название>; <дата> <время>, <дата> <время>, ...".
// Любой испорченный сегмент проваливает всю команду: частичный список
// сеансов никогда не сохраняется.
func ParseAddMovie(text string) (models.Movie, error) {
	title, rest, found := strings.Cut(strings.TrimSpace(text), ";")
	if !found {
		return models.Movie{}, ErrFormat
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return models.Movie{}, ErrFormat
	}

	var sessions []models.Session
	for _, part := range strings.Split(rest, ",") {
		fields := strings.Fields(part)
		if len(fields) != 2 {
			return models.Movie{}, ErrFormat
		}
		sessions = append(sessions, models.Session{Date: fields[0], Time: fields[1]})
	}

	return models.Movie{Title: title, Sessions: sessions}, nil
}

// SessionEdit — разобранный шаг 2 редактирования сеанса.
type SessionEdit struct {
	Index int
	Date  string
	Time  string
}

// ParseSessionEdit разбирает "<номер>, <дата>, <время>". Отрицательный или
// нечисловой номер — ошибка формата; выход за границы списка проверяет
// каталог.
func ParseSessionEdit(text string) (SessionEdit, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return SessionEdit{}, ErrFormat
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return SessionEdit{}, ErrFormat
		}
	}

	index, err := strconv.Atoi(parts[0])
	if err != nil || index < 0 {
		return SessionEdit{}, ErrFormat
	}

	return SessionEdit{Index: index, Date: parts[1], Time: parts[2]}, nil
}

// ParseSeat принимает целое число в диапазоне [1, seatCount].
func ParseSeat(text string, seatCount int) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > seatCount {
		return "", ErrFormat
	}
	return strconv.Itoa(n), nil
}

// ParseCancellationChoice разбирает выбор вида "<N>. <что угодно>" и
// возвращает 1-базный индекс в снимок бронирований. Значим только ведущий
// номер до первой точки.
func ParseCancellationChoice(text string, count int) (int, error) {
	head, _, _ := strings.Cut(text, ".")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil || n < 1 || n > count {
		return 0, ErrFormat
	}
	return n, nil
}
