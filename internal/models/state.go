package models

// UserState — состояние диалога одного пользователя. Живет только на время
// активного диалога: создается при входе в поток, стирается при выходе.
// Scratch-данные разнесены по потокам в типизированные структуры вместо
// общего словаря.
type UserState struct {
	UserID int64  `json:"user_id"`
	Flow   string `json:"flow"`
	Step   string `json:"step"`

	User  *UserFlowData  `json:"user,omitempty"`
	Admin *AdminFlowData `json:"admin,omitempty"`
}

// UserFlowData — scratch пользовательского потока.
type UserFlowData struct {
	SelectedMovie   string `json:"selected_movie,omitempty"`
	SelectedSession string `json:"selected_session,omitempty"`
	// Снимок бронирований, сделанный при входе в отмену.
	// Выбор сверяется с ним, а не с текущим стором.
	Bookings []Booking `json:"bookings,omitempty"`
}

// AdminFlowData — scratch админского потока.
type AdminFlowData struct {
	EditStep  string `json:"edit_step,omitempty"`
	EditMovie string `json:"edit_movie,omitempty"`
}

// UserData возвращает scratch пользовательского потока, создавая его при
// первом обращении.
func (s *UserState) UserData() *UserFlowData {
	if s.User == nil {
		s.User = &UserFlowData{}
	}
	return s.User
}

// AdminData возвращает scratch админского потока, создавая его при первом
// обращении.
func (s *UserState) AdminData() *AdminFlowData {
	if s.Admin == nil {
		s.Admin = &AdminFlowData{}
	}
	return s.Admin
}
