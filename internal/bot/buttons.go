package bot

// Подписи кнопок. Диспетчеризация идет через таблицы выбор→переход,
// так что подпись можно поменять в одном месте, не трогая логику.
const (
	btnBookTicket    = "🎬 Забронировать билет"
	btnMyBookings    = "📋 Мои бронирования"
	btnCancelBooking = "❌ Отменить бронь"

	btnBackToMain   = "🚪 Назад"
	btnBack         = "↩️ Назад"
	btnCancelDialog = "Отмена"
	cancelWord      = "отмена"

	btnAdminAddMovie    = "🎬 Добавить фильм"
	btnAdminDeleteMovie = "❌ Удалить фильм"
	btnAdminEditSession = "⏱️ Редактировать сеанс"
	btnAdminStats       = "📊 Статистика"
	btnAdminExport      = "📤 Экспорт бронирований"
	btnAdminExit        = "🚪 Выход"
)

// menuAction — переход, выбранный в меню.
type menuAction int

const (
	actionNone menuAction = iota
	actionBookTicket
	actionMyBookings
	actionCancelBooking
	actionAdminAddMovie
	actionAdminDeleteMovie
	actionAdminEditSession
	actionAdminStats
	actionAdminExport
	actionAdminExit
)

var mainMenuActions = map[string]menuAction{
	btnBookTicket:    actionBookTicket,
	btnMyBookings:    actionMyBookings,
	btnCancelBooking: actionCancelBooking,
}

var adminMenuActions = map[string]menuAction{
	btnAdminAddMovie:    actionAdminAddMovie,
	btnAdminDeleteMovie: actionAdminDeleteMovie,
	btnAdminEditSession: actionAdminEditSession,
	btnAdminStats:       actionAdminStats,
	btnAdminExport:      actionAdminExport,
	btnAdminExit:        actionAdminExit,
}
