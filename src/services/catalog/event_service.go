package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/repositories"
	"badajozrespira/src/services/events"
)

const (
	DefaultEventStartTime = "10:00"
	DefaultEventLocation  = "Badajoz"
	DefaultEventOrganizer = "Farmamundi"
)

type EventService struct {
	base
	repository repositories.EventRepository
}

func NewEventService(logger *slog.Logger, repository repositories.EventRepository, publisher events.Publisher) *EventService {
	return &EventService{base: newBase(logger, publisher), repository: repository}
}

// List devolve a agenda em ordem cronológica, opcionalmente filtrada por categoria.
func (s *EventService) List(ctx context.Context, category entities.Category) ([]entities.AgendaEvent, error) {
	all, err := s.repository.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("EventService.List - failed to list events: %w", err)
	}

	filtered := make([]entities.AgendaEvent, 0, len(all))
	for _, event := range all {
		if category == "" || event.Category == category {
			filtered = append(filtered, event)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Date != filtered[j].Date {
			return filtered[i].Date < filtered[j].Date
		}
		return filtered[i].StartTime < filtered[j].StartTime
	})
	return filtered, nil
}

func (s *EventService) Get(ctx context.Context, id string) (entities.AgendaEvent, error) {
	event, err := s.repository.GetEvent(ctx, id)
	if err != nil {
		return entities.AgendaEvent{}, fmt.Errorf("EventService.Get - failed to get event: %w", err)
	}
	return event, nil
}

func validateEvent(event entities.AgendaEvent) error {
	if strings.TrimSpace(event.Title) == "" {
		return domain.NewValidationError("title", "El título es obligatorio.")
	}
	if strings.TrimSpace(event.Date) == "" {
		return domain.NewValidationError("date", "La fecha es obligatoria.")
	}
	if _, err := time.Parse(time.DateOnly, event.Date); err != nil {
		return domain.NewValidationError("date", "La fecha debe tener el formato AAAA-MM-DD.")
	}
	if event.Category != "" && !event.Category.IsValid() {
		return domain.NewValidationError("category", fmt.Sprintf("Categoría desconocida: %q", event.Category))
	}
	return nil
}

// Create exige título e data e completa o resto com os valores do painel.
func (s *EventService) Create(ctx context.Context, event entities.AgendaEvent) (entities.AgendaEvent, error) {
	if err := validateEvent(event); err != nil {
		return entities.AgendaEvent{}, err
	}

	event.ID = s.newID()
	event.StartTime = orDefault(event.StartTime, DefaultEventStartTime)
	event.Location = orDefault(event.Location, DefaultEventLocation)
	event.Organizer = orDefault(event.Organizer, DefaultEventOrganizer)
	event.Category = event.Category.OrDefault()

	if err := s.repository.SaveEvent(ctx, event); err != nil {
		return entities.AgendaEvent{}, fmt.Errorf("EventService.Create - failed to save event: %w", err)
	}

	s.publish(ctx, saveEventType(true), "event", event.ID, event)
	return event, nil
}

// Update substitui o evento inteiro; o id precisa existir.
func (s *EventService) Update(ctx context.Context, id string, event entities.AgendaEvent) (entities.AgendaEvent, error) {
	if _, err := s.repository.GetEvent(ctx, id); err != nil {
		return entities.AgendaEvent{}, fmt.Errorf("EventService.Update - failed to get event: %w", err)
	}
	if err := validateEvent(event); err != nil {
		return entities.AgendaEvent{}, err
	}

	event.ID = id
	event.Category = event.Category.OrDefault()

	if err := s.repository.SaveEvent(ctx, event); err != nil {
		return entities.AgendaEvent{}, fmt.Errorf("EventService.Update - failed to save event: %w", err)
	}

	s.publish(ctx, saveEventType(false), "event", id, event)
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.repository.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("EventService.Delete - failed to delete event: %w", err)
	}
	s.publish(ctx, domain.EventEntityDeleted, "event", id, nil)
	return nil
}
