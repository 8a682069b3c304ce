package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/repositories"
	"badajozrespira/src/services/events"
)

type ResourceService struct {
	base
	repository repositories.ResourceRepository
}

func NewResourceService(logger *slog.Logger, repository repositories.ResourceRepository, publisher events.Publisher) *ResourceService {
	return &ResourceService{base: newBase(logger, publisher), repository: repository}
}

// List devolve os pontos do mapa, opcionalmente só os que têm a tag.
func (s *ResourceService) List(ctx context.Context, tag string) ([]entities.Resource, error) {
	all, err := s.repository.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("ResourceService.List - failed to list resources: %w", err)
	}
	if tag == "" {
		return all, nil
	}

	filtered := make([]entities.Resource, 0, len(all))
	for _, resource := range all {
		if resource.HasTag(tag) {
			filtered = append(filtered, resource)
		}
	}
	return filtered, nil
}

func (s *ResourceService) Get(ctx context.Context, id string) (entities.Resource, error) {
	resource, err := s.repository.GetResource(ctx, id)
	if err != nil {
		return entities.Resource{}, fmt.Errorf("ResourceService.Get - failed to get resource: %w", err)
	}
	return resource, nil
}

// Lat e Lng zero são tratados como ausentes, como no formulário do painel.
func validateResource(resource entities.Resource) error {
	if strings.TrimSpace(resource.Name) == "" {
		return domain.NewValidationError("name", "El nombre es obligatorio.")
	}
	if resource.Lat == 0 || resource.Lng == 0 {
		return domain.NewValidationError("coordinates", "Indica la latitud y la longitud del recurso.")
	}
	if resource.Lat < -90 || resource.Lat > 90 || resource.Lng < -180 || resource.Lng > 180 {
		return domain.NewValidationError("coordinates", "Coordenadas fuera de rango.")
	}
	return nil
}

func (s *ResourceService) Create(ctx context.Context, resource entities.Resource) (entities.Resource, error) {
	if err := validateResource(resource); err != nil {
		return entities.Resource{}, err
	}

	resource.ID = s.newID()
	resource.Category = resource.Category.OrDefault()
	if resource.Tags == nil {
		resource.Tags = []string{}
	}

	if err := s.repository.SaveResource(ctx, resource); err != nil {
		return entities.Resource{}, fmt.Errorf("ResourceService.Create - failed to save resource: %w", err)
	}

	s.publish(ctx, saveEventType(true), "resource", resource.ID, resource)
	return resource, nil
}

func (s *ResourceService) Update(ctx context.Context, id string, resource entities.Resource) (entities.Resource, error) {
	if _, err := s.repository.GetResource(ctx, id); err != nil {
		return entities.Resource{}, fmt.Errorf("ResourceService.Update - failed to get resource: %w", err)
	}
	if err := validateResource(resource); err != nil {
		return entities.Resource{}, err
	}

	resource.ID = id
	resource.Category = resource.Category.OrDefault()
	if resource.Tags == nil {
		resource.Tags = []string{}
	}

	if err := s.repository.SaveResource(ctx, resource); err != nil {
		return entities.Resource{}, fmt.Errorf("ResourceService.Update - failed to save resource: %w", err)
	}

	s.publish(ctx, saveEventType(false), "resource", id, resource)
	return resource, nil
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	if err := s.repository.DeleteResource(ctx, id); err != nil {
		return fmt.Errorf("ResourceService.Delete - failed to delete resource: %w", err)
	}
	s.publish(ctx, domain.EventEntityDeleted, "resource", id, nil)
	return nil
}
