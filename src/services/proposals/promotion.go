package proposals

import (
	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
)

const (
	DefaultStartTime = "10:00"
	DefaultLocation  = "Badajoz"
)

// BuildEvent materializa os detalhes de uma proposta de evento. Campos
// ausentes caem nos dados da própria proposta ou nos valores padrão.
func BuildEvent(p entities.Proposal, d entities.EventDetails, id string) entities.AgendaEvent {
	return entities.AgendaEvent{
		ID:          id,
		Title:       firstNonBlank(d.Title, p.Title),
		Date:        firstNonBlank(d.Date, p.Date),
		StartTime:   firstNonBlank(d.StartTime, DefaultStartTime),
		EndTime:     d.EndTime,
		Location:    firstNonBlank(d.Location, DefaultLocation),
		Description: firstNonBlank(d.Description, p.Description),
		Category:    d.Category.OrDefault(),
		Organizer:   firstNonBlank(d.Organizer, p.Author),
		Email:       d.Email,
		Phone:       d.Phone,
		Image:       d.Image,
		Lat:         d.Lat,
		Lng:         d.Lng,
	}
}

// BuildResource materializa os detalhes de uma proposta de recurso. Sem
// coordenadas o recurso fica no centro de Badajoz; as tags começam pela
// categoria.
func BuildResource(p entities.Proposal, d entities.ResourceDetails, id string) entities.Resource {
	category := d.Category.OrDefault()

	lat, lng := domain.BadajozCenter.Lat, domain.BadajozCenter.Lng
	if d.Lat != nil {
		lat = *d.Lat
	}
	if d.Lng != nil {
		lng = *d.Lng
	}

	tags := []string{string(category)}
	for _, tag := range d.Tags {
		if tag != "" && !contains(tags, tag) {
			tags = append(tags, tag)
		}
	}

	return entities.Resource{
		ID:          id,
		Name:        firstNonBlank(d.Name, p.Title),
		Category:    category,
		Address:     d.Address,
		Description: firstNonBlank(d.Description, p.Description),
		Lat:         lat,
		Lng:         lng,
		Tags:        tags,
		Email:       d.Email,
		Phone:       d.Phone,
		Image:       d.Image,
	}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
