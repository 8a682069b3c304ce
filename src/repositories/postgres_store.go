package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"badajozrespira/src/domain"
	"badajozrespira/src/domain/entities"
	"badajozrespira/src/infra/fixtures"
	"badajozrespira/src/infra/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	tableEvents    = "events"
	tableResources = "resources"
	tablePosts     = "blog_posts"
	tableUsers     = "users"
	tableProposals = "proposals"
)

// querier é satisfeito tanto por *pgxpool.Pool quanto por pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore guarda cada entidade como um documento JSONB, no mesmo
// formato servido pela API. Propostas mantêm status e votos em colunas
// próprias para que votar e resolver sejam operações atômicas no banco.
type PostgresStore struct {
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
}

func NewPostgresStore(readPool *pgxpool.Pool, writePool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{readPool: readPool, writePool: writePool}
}

func listDocuments[T any](ctx context.Context, q querier, table string) ([]T, error) {
	rows, err := q.Query(ctx, fmt.Sprintf("SELECT data FROM %s ORDER BY created_at, id", table))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", table, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}

		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to decode %s row: %w", table, err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func getDocument[T any](ctx context.Context, q querier, table string, id string) (T, error) {
	var item T
	var raw []byte

	err := q.QueryRow(ctx, fmt.Sprintf("SELECT data FROM %s WHERE id = $1", table), id).Scan(&raw)
	if err != nil {
		if postgres.IsNoRows(err) {
			return item, notFound(table, id)
		}
		return item, fmt.Errorf("failed to get %s %s: %w", table, id, err)
	}

	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("failed to decode %s %s: %w", table, id, err)
	}
	return item, nil
}

func upsertDocument(ctx context.Context, q querier, table string, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s %s: %w", table, id, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, data) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET
			data = excluded.data,
			updated_at = NOW()
		WHERE %s.data IS DISTINCT FROM excluded.data`, table, table)

	if _, err := q.Exec(ctx, query, id, raw); err != nil {
		return fmt.Errorf("failed to upsert %s %s: %w", table, id, err)
	}
	return nil
}

func deleteDocument(ctx context.Context, q querier, table string, id string) error {
	tag, err := q.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", table, id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(table, id)
	}
	return nil
}

// ---- events ----

func (s *PostgresStore) ListEvents(ctx context.Context) ([]entities.AgendaEvent, error) {
	return listDocuments[entities.AgendaEvent](ctx, s.readPool, tableEvents)
}

func (s *PostgresStore) GetEvent(ctx context.Context, id string) (entities.AgendaEvent, error) {
	return getDocument[entities.AgendaEvent](ctx, s.readPool, tableEvents, id)
}

func (s *PostgresStore) SaveEvent(ctx context.Context, event entities.AgendaEvent) error {
	return upsertDocument(ctx, s.writePool, tableEvents, event.ID, event)
}

func (s *PostgresStore) DeleteEvent(ctx context.Context, id string) error {
	return deleteDocument(ctx, s.writePool, tableEvents, id)
}

// ---- resources ----

func (s *PostgresStore) ListResources(ctx context.Context) ([]entities.Resource, error) {
	return listDocuments[entities.Resource](ctx, s.readPool, tableResources)
}

func (s *PostgresStore) GetResource(ctx context.Context, id string) (entities.Resource, error) {
	return getDocument[entities.Resource](ctx, s.readPool, tableResources, id)
}

func (s *PostgresStore) SaveResource(ctx context.Context, resource entities.Resource) error {
	return upsertDocument(ctx, s.writePool, tableResources, resource.ID, resource)
}

func (s *PostgresStore) DeleteResource(ctx context.Context, id string) error {
	return deleteDocument(ctx, s.writePool, tableResources, id)
}

// ---- blog ----

func (s *PostgresStore) ListPosts(ctx context.Context) ([]entities.BlogPost, error) {
	return listDocuments[entities.BlogPost](ctx, s.readPool, tablePosts)
}

func (s *PostgresStore) GetPost(ctx context.Context, id string) (entities.BlogPost, error) {
	return getDocument[entities.BlogPost](ctx, s.readPool, tablePosts, id)
}

func (s *PostgresStore) SavePost(ctx context.Context, post entities.BlogPost) error {
	return upsertDocument(ctx, s.writePool, tablePosts, post.ID, post)
}

// EditPost bloqueia a linha do post com SELECT ... FOR UPDATE até gravar.
func (s *PostgresStore) EditPost(ctx context.Context, id string, edit func(post *entities.BlogPost) bool) (entities.BlogPost, error) {
	tx, err := s.writePool.Begin(ctx)
	if err != nil {
		return entities.BlogPost{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var raw []byte
	if err := tx.QueryRow(ctx, "SELECT data FROM blog_posts WHERE id = $1 FOR UPDATE", id).Scan(&raw); err != nil {
		if postgres.IsNoRows(err) {
			return entities.BlogPost{}, notFound(tablePosts, id)
		}
		return entities.BlogPost{}, fmt.Errorf("failed to lock post %s: %w", id, err)
	}

	var post entities.BlogPost
	if err := json.Unmarshal(raw, &post); err != nil {
		return entities.BlogPost{}, fmt.Errorf("failed to decode post %s: %w", id, err)
	}

	if !edit(&post) {
		return post, nil
	}

	if err := upsertDocument(ctx, tx, tablePosts, id, post); err != nil {
		return entities.BlogPost{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return entities.BlogPost{}, fmt.Errorf("failed to commit edit of post %s: %w", id, err)
	}
	return post, nil
}

func (s *PostgresStore) DeletePost(ctx context.Context, id string) error {
	return deleteDocument(ctx, s.writePool, tablePosts, id)
}

// ---- users ----

func (s *PostgresStore) ListUsers(ctx context.Context) ([]entities.User, error) {
	return listDocuments[entities.User](ctx, s.readPool, tableUsers)
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	var raw []byte
	err := s.readPool.QueryRow(ctx, "SELECT data FROM users WHERE LOWER(data ->> 'email') = LOWER($1)", email).Scan(&raw)
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.User{}, domain.ErrUserNotFound
		}
		return entities.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	var user entities.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return entities.User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) SaveUser(ctx context.Context, user entities.User) error {
	err := upsertDocument(ctx, s.writePool, tableUsers, user.ID, user)
	if postgres.IsUniqueViolation(err) {
		return fmt.Errorf("email %s: %w", user.Email, domain.ErrEmailTaken)
	}
	return err
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	return deleteDocument(ctx, s.writePool, tableUsers, id)
}

// ---- proposals ----

const selectProposal = "SELECT data, status, votes FROM proposals"

func scanProposal(row pgx.Row) (entities.Proposal, error) {
	var raw []byte
	var status string
	var votes int

	if err := row.Scan(&raw, &status, &votes); err != nil {
		return entities.Proposal{}, err
	}

	var proposal entities.Proposal
	if err := json.Unmarshal(raw, &proposal); err != nil {
		return entities.Proposal{}, fmt.Errorf("failed to decode proposal: %w", err)
	}

	// As colunas são a fonte da verdade para status e votos.
	proposal.Status = entities.ProposalStatus(status)
	proposal.Votes = votes
	return proposal, nil
}

func (s *PostgresStore) ListProposals(ctx context.Context) ([]entities.Proposal, error) {
	rows, err := s.readPool.Query(ctx, selectProposal+" ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	proposals := make([]entities.Proposal, 0)
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, proposal)
	}
	return proposals, rows.Err()
}

func (s *PostgresStore) getProposal(ctx context.Context, q querier, id string, forUpdate bool) (entities.Proposal, error) {
	query := selectProposal + " WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}

	proposal, err := scanProposal(q.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.Proposal{}, fmt.Errorf("%s: %w", id, domain.ErrProposalNotFound)
		}
		return entities.Proposal{}, fmt.Errorf("failed to get proposal %s: %w", id, err)
	}
	return proposal, nil
}

func (s *PostgresStore) GetProposal(ctx context.Context, id string) (entities.Proposal, error) {
	return s.getProposal(ctx, s.readPool, id, false)
}

func (s *PostgresStore) SaveProposal(ctx context.Context, proposal entities.Proposal) error {
	raw, err := json.Marshal(proposal)
	if err != nil {
		return fmt.Errorf("failed to encode proposal %s: %w", proposal.ID, err)
	}

	_, err = s.writePool.Exec(ctx, `
		INSERT INTO proposals (id, data, status, votes) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			data = excluded.data,
			status = excluded.status,
			votes = excluded.votes,
			updated_at = NOW()`,
		proposal.ID, raw, string(proposal.Status), proposal.Votes)
	if err != nil {
		return fmt.Errorf("failed to save proposal %s: %w", proposal.ID, err)
	}
	return nil
}

func (s *PostgresStore) CreateProposal(ctx context.Context, proposal entities.Proposal) (entities.Proposal, bool, error) {
	raw, err := json.Marshal(proposal)
	if err != nil {
		return entities.Proposal{}, false, fmt.Errorf("failed to encode proposal %s: %w", proposal.ID, err)
	}

	tag, err := s.writePool.Exec(ctx, `
		INSERT INTO proposals (id, data, status, votes) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		proposal.ID, raw, string(proposal.Status), proposal.Votes)
	if err != nil {
		return entities.Proposal{}, false, fmt.Errorf("failed to create proposal %s: %w", proposal.ID, err)
	}
	if tag.RowsAffected() == 1 {
		return proposal, true, nil
	}

	existing, err := s.getProposal(ctx, s.writePool, proposal.ID, false)
	if err != nil {
		return entities.Proposal{}, false, err
	}
	return existing, false, nil
}

func (s *PostgresStore) IncrementVotes(ctx context.Context, id string) (entities.Proposal, error) {
	row := s.writePool.QueryRow(ctx, `
		UPDATE proposals SET votes = votes + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING data, status, votes`, id)

	proposal, err := scanProposal(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.Proposal{}, fmt.Errorf("%s: %w", id, domain.ErrProposalNotFound)
		}
		return entities.Proposal{}, fmt.Errorf("failed to vote proposal %s: %w", id, err)
	}
	return proposal, nil
}

func (s *PostgresStore) SetProposalSummary(ctx context.Context, id string, summary string) error {
	tag, err := s.writePool.Exec(ctx, `
		UPDATE proposals SET data = jsonb_set(data, '{aiSummary}', to_jsonb($2::text)), updated_at = NOW()
		WHERE id = $1`, id, summary)
	if err != nil {
		return fmt.Errorf("failed to store summary of proposal %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", id, domain.ErrProposalNotFound)
	}
	return nil
}

func (s *PostgresStore) Resolve(ctx context.Context, resolution ProposalResolution) (entities.Proposal, error) {
	tx, err := s.writePool.Begin(ctx)
	if err != nil {
		return entities.Proposal{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	current, err := s.getProposal(ctx, tx, resolution.ProposalID, true)
	if err != nil {
		return entities.Proposal{}, err
	}

	if !resolution.allows(current.Status) {
		return entities.Proposal{}, fmt.Errorf("%s is %q: %w", current.ID, current.Status, domain.ErrProposalNotPending)
	}

	if resolution.Event != nil {
		if err := upsertDocument(ctx, tx, tableEvents, resolution.Event.ID, resolution.Event); err != nil {
			return entities.Proposal{}, err
		}
	}
	if resolution.Resource != nil {
		if err := upsertDocument(ctx, tx, tableResources, resolution.Resource.ID, resolution.Resource); err != nil {
			return entities.Proposal{}, err
		}
	}

	// resolved_at só é preenchido quando a proposta sai do fluxo.
	var resolvedAt *time.Time
	if resolution.To == entities.StatusValidated || resolution.To == entities.StatusRejected {
		now := time.Now().UTC()
		resolvedAt = &now
	}
	promotedID := resolution.PromotedID()
	current.Status = resolution.To

	_, err = tx.Exec(ctx, `
		UPDATE proposals SET
			status = $2,
			data = jsonb_set(data, '{status}', to_jsonb($2::text)),
			resolved_at = $3,
			promoted_entity_id = $4,
			updated_at = NOW()
		WHERE id = $1`,
		current.ID, string(resolution.To), postgres.NewNullTime(resolvedAt), postgres.NewNullString(&promotedID))
	if err != nil {
		return entities.Proposal{}, fmt.Errorf("failed to update proposal %s: %w", current.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return entities.Proposal{}, fmt.Errorf("failed to commit resolution of %s: %w", current.ID, err)
	}
	return current, nil
}

// SeedIfEmpty grava os fixtures numa base recém criada. Tabelas que já
// possuem linhas não são tocadas.
func (s *PostgresStore) SeedIfEmpty(ctx context.Context, seed fixtures.Seed) error {
	var count int
	if err := s.writePool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, user := range seed.Users {
		if err := s.SaveUser(ctx, user); err != nil {
			return err
		}
	}
	for _, event := range seed.Events {
		if err := s.SaveEvent(ctx, event); err != nil {
			return err
		}
	}
	for _, resource := range seed.Resources {
		if err := s.SaveResource(ctx, resource); err != nil {
			return err
		}
	}
	for _, post := range seed.Posts {
		if err := s.SavePost(ctx, post); err != nil {
			return err
		}
	}
	for _, proposal := range seed.Proposals {
		if err := s.SaveProposal(ctx, proposal); err != nil {
			return err
		}
	}
	return nil
}
