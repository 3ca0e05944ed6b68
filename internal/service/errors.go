package service

import "errors"

var (
	// ErrMovieExists фильм с таким названием уже есть (сравнение без
	// учета регистра).
	ErrMovieExists = errors.New("movie already exists")

	// ErrMovieNotFound фильм не найден по названию.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrSessionNotFound индекс сеанса вне границ списка фильма.
	ErrSessionNotFound = errors.New("session not found")

	// ErrBookingNotFound в сторе нет записи с таким кортежем
	// (user, movie, session, seat).
	ErrBookingNotFound = errors.New("booking not found")
)
