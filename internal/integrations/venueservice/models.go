package venueservice

// Court корт из venue-сервиса
type Court struct {
	ID      int64  `json:"id"`
	VenueID int64  `json:"venueId"`
	Name    string `json:"name"`
	Sport   string `json:"sport"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
