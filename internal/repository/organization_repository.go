package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isaktapper/klaralyze/internal/domain"
)

// OrganizationRepository encapsulates the organizations record store: the
// slug-keyed rows holding each customer's Zendesk connection.
type OrganizationRepository interface {
	Upsert(ctx context.Context, org *domain.Organization) error
	GetBySlug(ctx context.Context, slug string) (*domain.Organization, error)
	UpdateSettings(ctx context.Context, slug string, settings map[string]any) error
	Disconnect(ctx context.Context, slug string) error
}

type organizationRepository struct {
	pool *pgxpool.Pool
}

// NewOrganizationRepository instantiates repository.
func NewOrganizationRepository(pool *pgxpool.Pool) OrganizationRepository {
	return &organizationRepository{pool: pool}
}

func (r *organizationRepository) Upsert(ctx context.Context, org *domain.Organization) error {
	const query = `
        INSERT INTO organizations (id, slug, name, zendesk_domain, zendesk_api_email, zendesk_api_token_sealed,
            zendesk_connected, selected_group_ids, settings)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (slug) DO UPDATE SET
            name = EXCLUDED.name,
            zendesk_domain = EXCLUDED.zendesk_domain,
            zendesk_api_email = EXCLUDED.zendesk_api_email,
            zendesk_api_token_sealed = EXCLUDED.zendesk_api_token_sealed,
            zendesk_connected = EXCLUDED.zendesk_connected,
            selected_group_ids = EXCLUDED.selected_group_ids,
            settings = EXCLUDED.settings,
            updated_at = NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		org.ID,
		org.Slug,
		org.Name,
		org.ZendeskDomain,
		org.ZendeskAPIEmail,
		org.SealedAPIToken,
		org.ZendeskConnected,
		org.SelectedGroupIDs,
		org.Settings,
	).Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
}

func (r *organizationRepository) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	const query = `
        SELECT id, slug, name, zendesk_domain, zendesk_api_email, zendesk_api_token_sealed,
               zendesk_connected, selected_group_ids, settings, created_at, updated_at
        FROM organizations WHERE slug=$1`
	var org domain.Organization
	if err := r.pool.QueryRow(ctx, query, slug).Scan(
		&org.ID,
		&org.Slug,
		&org.Name,
		&org.ZendeskDomain,
		&org.ZendeskAPIEmail,
		&org.SealedAPIToken,
		&org.ZendeskConnected,
		&org.SelectedGroupIDs,
		&org.Settings,
		&org.CreatedAt,
		&org.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) UpdateSettings(ctx context.Context, slug string, settings map[string]any) error {
	const query = `UPDATE organizations SET settings=$1, updated_at=NOW() WHERE slug=$2`
	cmd, err := r.pool.Exec(ctx, query, settings, slug)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *organizationRepository) Disconnect(ctx context.Context, slug string) error {
	const query = `
        UPDATE organizations SET zendesk_connected=false, zendesk_api_token_sealed=NULL,
            selected_group_ids=NULL, updated_at=NOW()
        WHERE slug=$1`
	cmd, err := r.pool.Exec(ctx, query, slug)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
