package test_seeder

import (
	"context"

	"badajozrespira/src/infra/postgres"
)

// ProposalRow expõe as colunas que não fazem parte do documento JSON.
type ProposalRow struct {
	Status           string
	Votes            int
	Resolved         bool
	PromotedEntityID string
}

func (ts TestSeeder) SelectProposalRow(ctx context.Context, id string) (ProposalRow, error) {
	query := `SELECT status, votes, resolved_at IS NOT NULL, COALESCE(promoted_entity_id, '')
			  FROM proposals WHERE id = $1`

	var row ProposalRow
	err := ts.pool.QueryRow(ctx, query, id).Scan(&row.Status, &row.Votes, &row.Resolved, &row.PromotedEntityID)
	return row, err
}

func (ts TestSeeder) CountRows(ctx context.Context, table string) (int, error) {
	var count int
	err := ts.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
	if postgres.IsNoRows(err) {
		return 0, nil
	}
	return count, err
}
