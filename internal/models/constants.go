package models

const (
	FlowUser  = "user"
	FlowAdmin = "admin"
)

const (
	StateMainMenu            = "main_menu"
	StateMovieChoice         = "movie_choice"
	StateSessionChoice       = "session_choice"
	StateSeatChoice          = "seat_choice"
	StateBookingCancellation = "booking_cancellation"
)

const (
	StateAdminMenu   = "admin_menu"
	StateAddMovie    = "add_movie"
	StateDeleteMovie = "delete_movie"
	StateEditSession = "edit_session"
)

const (
	EditStepSelectMovie = "select_movie"
	EditStepEditSession = "edit_session"
)

const (
	ParseModeMarkdown = "Markdown"
	ParseModeHTML     = "HTML"
)

const (
	// DefaultSeatCount количество мест в зале
	DefaultSeatCount = 20

	// DefaultRedisTTL время жизни состояния пользователя в Redis
	DefaultRedisTTL = 24 * 60 * 60 // 24 часа в секундах

	// RateLimitMessages количество сообщений в окне
	RateLimitMessages = 20

	// RateLimitWindow окно ограничения частоты сообщений
	RateLimitWindow = 60 // 1 минута в секундах
)
