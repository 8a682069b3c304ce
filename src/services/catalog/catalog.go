// Package catalog reúne os serviços do painel de administração e as
// listagens públicas da agenda, do mapa de recursos e do blog.
package catalog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"badajozrespira/src/domain"
	"badajozrespira/src/services/events"

	"github.com/google/uuid"
)

// base carrega as dependências comuns a todos os serviços do catálogo.
type base struct {
	logger    *slog.Logger
	publisher events.Publisher
	now       func() time.Time
	newID     func() string
}

func newBase(logger *slog.Logger, publisher events.Publisher) base {
	return base{
		logger:    logger,
		publisher: publisher,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

func (b base) publish(ctx context.Context, eventType, entityType, id string, data any) {
	if b.publisher == nil {
		return
	}
	event := events.NewDomainEvent(eventType, entityType, id, data)
	if err := b.publisher.Publish(ctx, event); err != nil {
		b.logger.Warn("Failed to publish catalog event", "error", err, "event_type", eventType, "entity_id", id)
	}
}

func (b base) today() string {
	return b.now().Format(time.DateOnly)
}

// saveEventType devolve entity.created para ids novos.
func saveEventType(created bool) string {
	if created {
		return domain.EventEntityCreated
	}
	return domain.EventEntityUpdated
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
