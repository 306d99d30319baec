package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/isaktapper/klaralyze/internal/api/dto"
	"github.com/isaktapper/klaralyze/internal/auth"
	"github.com/isaktapper/klaralyze/internal/session"
	apperrors "github.com/isaktapper/klaralyze/pkg/util/errorutil"
)

// SessionHandler exposes the principal's metadata bag, used by the connect
// flow to park credentials before an organization record exists.
type SessionHandler struct {
	store *session.Store
}

// NewSessionHandler constructs handler.
func NewSessionHandler(store *session.Store) *SessionHandler {
	return &SessionHandler{store: store}
}

// Metadata GET /session/metadata.
func (h *SessionHandler) Metadata(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("principal required")
	}
	bag, err := h.store.Metadata(c.UserContext(), principal.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.SessionMetadataResponse{Metadata: bag}})
}

// UpdateMetadata PUT /session/metadata.
func (h *SessionHandler) UpdateMetadata(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("principal required")
	}
	var req dto.SessionMetadataRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	bag, err := h.store.UpdateMetadata(c.UserContext(), principal.ID, req.Metadata)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.SessionMetadataResponse{Metadata: bag}})
}
