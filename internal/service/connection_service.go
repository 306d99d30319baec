package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/isaktapper/klaralyze/internal/domain"
	"github.com/isaktapper/klaralyze/internal/repository"
	"github.com/isaktapper/klaralyze/internal/secrets"
	apperrors "github.com/isaktapper/klaralyze/pkg/util/errorutil"
)

// ConnectionService owns the Zendesk connect flow: pre-flight credential
// verification, sealing the token, and persisting the connection record.
type ConnectionService struct {
	orgs   repository.OrganizationRepository
	box    *secrets.Box
	source SourceFactory
	logger *zap.Logger
}

// ConnectionDependencies bundles collaborators for the service.
type ConnectionDependencies struct {
	OrgRepo repository.OrganizationRepository
	Box     *secrets.Box
	Source  SourceFactory
	Logger  *zap.Logger
}

// ConnectInput describes a connect request.
type ConnectInput struct {
	Name        string
	Credentials domain.Credentials
	GroupIDs    []int64
}

// NewConnectionService constructs the service.
func NewConnectionService(deps ConnectionDependencies) *ConnectionService {
	return &ConnectionService{
		orgs:   deps.OrgRepo,
		box:    deps.Box,
		source: deps.Source,
		logger: deps.Logger,
	}
}

// Verify runs the pre-flight credential check without persisting anything.
func (s *ConnectionService) Verify(ctx context.Context, creds domain.Credentials) bool {
	if !creds.Complete() {
		return false
	}
	return s.source(creds).VerifyCredentials(ctx)
}

// Connect verifies the credential triple and upserts the organization's
// connection record with the token sealed at rest.
func (s *ConnectionService) Connect(ctx context.Context, slug string, input ConnectInput) (*domain.Organization, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperrors.NewValidationError("slug required", nil)
	}
	if !input.Credentials.Complete() {
		return nil, apperrors.NewValidationError("domain, email and api token are required", nil)
	}

	if !s.source(input.Credentials).VerifyCredentials(ctx) {
		return nil, apperrors.NewUnauthorized("invalid zendesk credentials")
	}

	sealed, err := s.box.Seal(input.Credentials.APIToken)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	org := &domain.Organization{
		ID:               uuid.NewString(),
		Slug:             slug,
		Name:             input.Name,
		ZendeskDomain:    input.Credentials.NormalizedDomain(),
		ZendeskAPIEmail:  input.Credentials.Email,
		SealedAPIToken:   sealed,
		ZendeskConnected: true,
		SelectedGroupIDs: input.GroupIDs,
		Settings:         map[string]any{},
	}
	if err := s.orgs.Upsert(ctx, org); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("zendesk connection established",
		zap.String("slug", slug),
		zap.String("domain", org.ZendeskDomain))
	return org, nil
}

// Status returns the stored connection record. The sealed token is never
// exposed to callers; consumers use ConnectionStatus DTOs built off this.
func (s *ConnectionService) Status(ctx context.Context, slug string) (*domain.Organization, error) {
	org, err := s.orgs.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("organization", map[string]any{"slug": slug})
		}
		return nil, apperrors.MapError(err)
	}
	return org, nil
}

// Disconnect clears the connection flag and drops the sealed token.
func (s *ConnectionService) Disconnect(ctx context.Context, slug string) error {
	if err := s.orgs.Disconnect(ctx, slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("organization", map[string]any{"slug": slug})
		}
		return apperrors.MapError(err)
	}
	s.logger.Info("zendesk connection removed", zap.String("slug", slug))
	return nil
}

// credentialsFor rebuilds the credential triple for a connected org.
func credentialsFor(ctx context.Context, orgs repository.OrganizationRepository, box *secrets.Box, slug string) (domain.Credentials, *domain.Organization, error) {
	org, err := orgs.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Credentials{}, nil, apperrors.NewNotFound("organization", map[string]any{"slug": slug})
		}
		return domain.Credentials{}, nil, apperrors.MapError(err)
	}
	if !org.ZendeskConnected || len(org.SealedAPIToken) == 0 {
		return domain.Credentials{}, nil, apperrors.NewValidationError("organization has no zendesk connection", map[string]any{"slug": slug})
	}

	token, err := box.Open(org.SealedAPIToken)
	if err != nil {
		return domain.Credentials{}, nil, apperrors.NewInternalError(err)
	}
	creds := domain.Credentials{
		Domain:   org.ZendeskDomain,
		Email:    org.ZendeskAPIEmail,
		APIToken: token,
	}
	return creds, org, nil
}
