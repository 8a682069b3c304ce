package entities

// AgendaEvent é uma atividade publicada na agenda cidadã.
type AgendaEvent struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Date        string   `json:"date" yaml:"date"` // YYYY-MM-DD
	StartTime   string   `json:"startTime" yaml:"startTime"`
	EndTime     string   `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Location    string   `json:"location" yaml:"location"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	Organizer   string   `json:"organizer" yaml:"organizer"`
	Email       string   `json:"email,omitempty" yaml:"email,omitempty"`
	Phone       string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Image       string   `json:"image,omitempty" yaml:"image,omitempty"`
	Lat         *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty" yaml:"lng,omitempty"`
}
