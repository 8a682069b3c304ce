package main

import (
	"fmt"
	"math/rand"
	"time"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"

	"github.com/go-faker/faker/v4"
)

var (
	proposalTypes = []entities.ProposalType{entities.ProposalGeneral, entities.ProposalEvent, entities.ProposalResource}
	startTimes    = []string{"09:00", "10:30", "12:00", "17:00", "18:30", "20:00"}
	places        = []string{"Plaza Alta", "Paseo Fluvial", "Parque de Castelar", "Puente de Palmas", "San Roque", "Valdepasillas"}
)

// generator produz formulários de proposta com aparência real. A posição
// fica num raio de uns 3 km do centro de Badajoz.
type generator struct {
	rng *rand.Rand
	now time.Time
}

func newGenerator(seed int64, now time.Time) *generator {
	return &generator{rng: rand.New(rand.NewSource(seed)), now: now}
}

func (g *generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *generator) coordinates() (*float64, *float64) {
	lat := domain.BadajozCenter.Lat + (g.rng.Float64()-0.5)*0.05
	lng := domain.BadajozCenter.Lng + (g.rng.Float64()-0.5)*0.05
	return &lat, &lng
}

func (g *generator) category() entities.Category {
	return entities.Categories[g.rng.Intn(len(entities.Categories))]
}

func (g *generator) proposal() domain.SubmitProposalRequest {
	req := domain.SubmitProposalRequest{
		Type:        proposalTypes[g.rng.Intn(len(proposalTypes))],
		Author:      faker.Name(),
		Description: faker.Paragraph(),
	}

	switch req.Type {
	case entities.ProposalEvent:
		lat, lng := g.coordinates()
		place := g.pick(places)
		req.Title = fmt.Sprintf("Encuentro en %s", place)
		req.Details = entities.EventDetails{
			Date:      g.now.AddDate(0, 0, 1+g.rng.Intn(60)).Format(time.DateOnly),
			StartTime: g.pick(startTimes),
			Location:  place,
			Category:  g.category(),
			Organizer: faker.Name(),
			Email:     faker.Email(),
			Lat:       lat,
			Lng:       lng,
		}

	case entities.ProposalResource:
		lat, lng := g.coordinates()
		req.Title = fmt.Sprintf("Espacio %s", faker.Word())
		req.Details = entities.ResourceDetails{
			Category: g.category(),
			Address:  fmt.Sprintf("Calle %s, %d", faker.LastName(), 1+g.rng.Intn(80)),
			Tags:     []string{faker.Word(), faker.Word()},
			Phone:    faker.Phonenumber(),
			Lat:      lat,
			Lng:      lng,
		}

	default:
		req.Title = faker.Sentence()
	}

	return req
}

// invalid devolve uma proposta sem título, para exercitar o descarte no consumer.
func (g *generator) invalid() domain.SubmitProposalRequest {
	req := g.proposal()
	req.Title = ""
	if d, ok := req.Details.(entities.ResourceDetails); ok {
		d.Name = ""
		req.Details = d
	}
	return req
}

func (g *generator) batch(size int, invalidRatio float64) []domain.SubmitProposalRequest {
	requests := make([]domain.SubmitProposalRequest, size)
	for i := range requests {
		if g.rng.Float64() < invalidRatio {
			requests[i] = g.invalid()
			continue
		}
		requests[i] = g.proposal()
	}
	return requests
}
