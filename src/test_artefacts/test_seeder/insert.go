package test_seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"badajozrespira/src/domain/entities"
)

func (ts TestSeeder) insertDocument(ctx context.Context, table string, id string, doc any) {
	data, err := json.Marshal(doc)
	if err != nil {
		panic(fmt.Sprintf("Seeder.insertDocument marshal failed: %v", err))
	}

	query := fmt.Sprintf("INSERT INTO %s (id, data) VALUES ($1, $2)", table)
	if _, err := ts.pool.Exec(ctx, query, id, data); err != nil {
		panic(fmt.Sprintf("Seeder.insertDocument into %s failed: %v", table, err))
	}
}

func (ts TestSeeder) InsertEvent(ctx context.Context, event entities.AgendaEvent) {
	ts.insertDocument(ctx, "events", event.ID, event)
}

func (ts TestSeeder) InsertResource(ctx context.Context, resource entities.Resource) {
	ts.insertDocument(ctx, "resources", resource.ID, resource)
}

func (ts TestSeeder) InsertUser(ctx context.Context, user entities.User) {
	ts.insertDocument(ctx, "users", user.ID, user)
}

// InsertProposal grava também as colunas status e votes.
func (ts TestSeeder) InsertProposal(ctx context.Context, proposal entities.Proposal) {
	data, err := json.Marshal(proposal)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertProposal marshal failed: %v", err))
	}

	query := `INSERT INTO proposals (id, data, status, votes) VALUES ($1, $2, $3, $4)`
	if _, err := ts.pool.Exec(ctx, query, proposal.ID, data, string(proposal.Status), proposal.Votes); err != nil {
		panic(fmt.Sprintf("Seeder.InsertProposal failed: %v", err))
	}
}

func (ts TestSeeder) InsertPost(ctx context.Context, post entities.BlogPost) {
	ts.insertDocument(ctx, "blog_posts", post.ID, post)
}
