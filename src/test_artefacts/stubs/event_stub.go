package stubs

import (
	"time"

	"badajozrespira/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type AgendaEventStub struct {
	event entities.AgendaEvent
}

func NewAgendaEventStub() AgendaEventStub {
	date := gofakeit.DateRange(time.Now(), time.Now().AddDate(0, 2, 0))

	event := entities.AgendaEvent{
		ID:          gofakeit.UUID(),
		Title:       gofakeit.Sentence(4),
		Date:        date.Format(time.DateOnly),
		StartTime:   "10:00",
		Location:    gofakeit.Street(),
		Description: gofakeit.Paragraph(1, 2, 12, " "),
		Category:    entities.Categories[gofakeit.Number(0, len(entities.Categories)-1)],
		Organizer:   gofakeit.Company(),
		Email:       gofakeit.Email(),
	}

	return AgendaEventStub{event: event}
}

func (s AgendaEventStub) WithID(id string) AgendaEventStub {
	s.event.ID = id
	return s
}

func (s AgendaEventStub) WithTitle(title string) AgendaEventStub {
	s.event.Title = title
	return s
}

func (s AgendaEventStub) WithDate(date string, startTime string) AgendaEventStub {
	s.event.Date = date
	s.event.StartTime = startTime
	return s
}

func (s AgendaEventStub) WithCategory(category entities.Category) AgendaEventStub {
	s.event.Category = category
	return s
}

func (s AgendaEventStub) WithCoordinates(lat, lng float64) AgendaEventStub {
	s.event.Lat = &lat
	s.event.Lng = &lng
	return s
}

func (s AgendaEventStub) Get() entities.AgendaEvent {
	return s.event
}
