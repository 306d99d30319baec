package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isaktapper/klaralyze/internal/domain"
)

// SnapshotRepository persists imported copies of upstream tickets and
// agents. Rows are full replacements per import run; the analytics core
// itself never reads them back.
type SnapshotRepository interface {
	ReplaceTickets(ctx context.Context, orgID string, tickets []domain.Ticket) (int, error)
	ReplaceAgents(ctx context.Context, orgID string, agents []domain.Agent) (int, error)
	RecordRun(ctx context.Context, run *domain.ImportRun) error
}

type snapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository instantiates repository.
func NewSnapshotRepository(pool *pgxpool.Pool) SnapshotRepository {
	return &snapshotRepository{pool: pool}
}

func (r *snapshotRepository) ReplaceTickets(ctx context.Context, orgID string, tickets []domain.Ticket) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM imported_tickets WHERE org_id=$1`, orgID); err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	for i := range tickets {
		payload, err := json.Marshal(tickets[i])
		if err != nil {
			return 0, fmt.Errorf("encode ticket %d: %w", tickets[i].TicketID, err)
		}
		batch.Queue(
			`INSERT INTO imported_tickets (org_id, ticket_id, payload) VALUES ($1,$2,$3)`,
			orgID, tickets[i].TicketID, payload,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(tickets), nil
}

func (r *snapshotRepository) ReplaceAgents(ctx context.Context, orgID string, agents []domain.Agent) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM imported_agents WHERE org_id=$1`, orgID); err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	for _, agent := range agents {
		batch.Queue(
			`INSERT INTO imported_agents (org_id, agent_id, name, email, role, active) VALUES ($1,$2,$3,$4,$5,$6)`,
			orgID, agent.AgentID, agent.Name, agent.Email, agent.Role, agent.Active,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(agents), nil
}

func (r *snapshotRepository) RecordRun(ctx context.Context, run *domain.ImportRun) error {
	const query = `
        INSERT INTO import_runs (id, org_id, ticket_count, agent_count, started_at, finished_at)
        VALUES ($1,$2,$3,$4,$5,$6)`
	_, err := r.pool.Exec(ctx, query,
		run.ID,
		run.OrgID,
		run.TicketCount,
		run.AgentCount,
		run.StartedAt,
		run.FinishedAt,
	)
	return err
}
