package stubs

import (
	"badajozrespira/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type ResourceStub struct {
	resource entities.Resource
}

func NewResourceStub() ResourceStub {
	category := entities.Categories[gofakeit.Number(0, len(entities.Categories)-1)]

	resource := entities.Resource{
		ID:          gofakeit.UUID(),
		Name:        gofakeit.Company(),
		Category:    category,
		Address:     gofakeit.Street(),
		Description: gofakeit.Sentence(10),
		Lat:         gofakeit.Float64Range(38.85, 38.90),
		Lng:         gofakeit.Float64Range(-7.00, -6.94),
		Tags:        []string{string(category)},
	}

	return ResourceStub{resource: resource}
}

func (s ResourceStub) WithID(id string) ResourceStub {
	s.resource.ID = id
	return s
}

func (s ResourceStub) WithName(name string) ResourceStub {
	s.resource.Name = name
	return s
}

func (s ResourceStub) WithTags(tags ...string) ResourceStub {
	s.resource.Tags = tags
	return s
}

func (s ResourceStub) Get() entities.Resource {
	return s.resource
}
