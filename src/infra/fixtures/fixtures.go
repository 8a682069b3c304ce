// Package fixtures carrega os dados iniciais da plataforma a partir do YAML embutido.
package fixtures

import (
	_ "embed"
	"fmt"
	"time"

	"badajozrespira/src/domain/entities"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

const dateLayout = "2006-01-02"

// Seed agrupa as coleções iniciais de cada repositório.
type Seed struct {
	Users     []entities.User
	Events    []entities.AgendaEvent
	Resources []entities.Resource
	Posts     []entities.BlogPost
	Proposals []entities.Proposal
}

// when expresses a fixture date relative to the moment the seed is loaded.
type when struct {
	Offset      *int `yaml:"offset"`
	Day         int  `yaml:"day"`
	MonthOffset int  `yaml:"monthOffset"`
}

func (w *when) resolve(now time.Time) string {
	if w == nil {
		return now.Format(dateLayout)
	}
	if w.Offset != nil {
		return now.AddDate(0, 0, *w.Offset).Format(dateLayout)
	}

	day := w.Day
	if day == 0 {
		day = now.Day()
	}
	return time.Date(now.Year(), now.Month()+time.Month(w.MonthOffset), day, 0, 0, 0, 0, now.Location()).Format(dateLayout)
}

type eventFixture struct {
	entities.AgendaEvent `yaml:",inline"`
	When                 *when `yaml:"when"`
}

type postFixture struct {
	entities.BlogPost `yaml:",inline"`
	When              *when `yaml:"when"`
}

type eventDetailsFixture struct {
	entities.EventDetails `yaml:",inline"`
	When                  *when `yaml:"when"`
}

type proposalFixture struct {
	ID          string                  `yaml:"id"`
	Type        entities.ProposalType   `yaml:"type"`
	Author      string                  `yaml:"author"`
	Title       string                  `yaml:"title"`
	Description string                  `yaml:"description"`
	Votes       int                     `yaml:"votes"`
	Status      entities.ProposalStatus `yaml:"status"`
	When        *when                   `yaml:"when"`
	Details     yaml.Node               `yaml:"details"`
}

type document struct {
	Users     []entities.User     `yaml:"users"`
	Events    []eventFixture      `yaml:"events"`
	Resources []entities.Resource `yaml:"resources"`
	Posts     []postFixture       `yaml:"posts"`
	Proposals []proposalFixture   `yaml:"proposals"`
}

// Load parses the embedded seed, resolving relative dates against now.
func Load(now time.Time) (Seed, error) {
	return Parse(seedYAML, now)
}

func Parse(data []byte, now time.Time) (Seed, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Seed{}, fmt.Errorf("fixtures: failed to parse seed: %w", err)
	}

	seed := Seed{
		Users:     doc.Users,
		Resources: doc.Resources,
	}

	for _, f := range doc.Events {
		event := f.AgendaEvent
		if event.Date == "" {
			event.Date = f.When.resolve(now)
		}
		seed.Events = append(seed.Events, event)
	}

	for _, f := range doc.Posts {
		post := f.BlogPost
		if post.Date == "" {
			post.Date = f.When.resolve(now)
		}
		seed.Posts = append(seed.Posts, post)
	}

	for _, f := range doc.Proposals {
		proposal, err := f.toProposal(now)
		if err != nil {
			return Seed{}, fmt.Errorf("fixtures: proposal %s: %w", f.ID, err)
		}
		seed.Proposals = append(seed.Proposals, proposal)
	}

	return seed, nil
}

func (f proposalFixture) toProposal(now time.Time) (entities.Proposal, error) {
	proposal := entities.Proposal{
		ID:          f.ID,
		Type:        f.Type,
		Author:      f.Author,
		Title:       f.Title,
		Description: f.Description,
		Votes:       f.Votes,
		Status:      f.Status,
		Date:        f.When.resolve(now),
	}

	if f.Details.Kind == 0 {
		return proposal, entities.CheckDetails(f.Type, nil)
	}

	switch f.Type {
	case entities.ProposalEvent:
		var d eventDetailsFixture
		if err := f.Details.Decode(&d); err != nil {
			return entities.Proposal{}, err
		}
		if d.Date == "" && d.When != nil {
			d.Date = d.When.resolve(now)
		}
		proposal.Details = d.EventDetails
	case entities.ProposalResource:
		var d entities.ResourceDetails
		if err := f.Details.Decode(&d); err != nil {
			return entities.Proposal{}, err
		}
		proposal.Details = d
	default:
		return entities.Proposal{}, entities.CheckDetails(f.Type, entities.EventDetails{})
	}

	return proposal, nil
}
