package model

// AvailableSlot свободный слот врача на дату.
// StartTime хранится строкой в том виде, в каком пришёл из API,
// и без изменений уходит в запрос на запись.
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime,omitempty"`
}
