package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/isaktapper/klaralyze/internal/api/dto"
	"github.com/isaktapper/klaralyze/internal/domain"
	"github.com/isaktapper/klaralyze/internal/service"
	apperrors "github.com/isaktapper/klaralyze/pkg/util/errorutil"
)

// ConnectionHandler manages the Zendesk connect flow endpoints.
type ConnectionHandler struct {
	service *service.ConnectionService
}

// NewConnectionHandler constructs handler.
func NewConnectionHandler(connectionService *service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{service: connectionService}
}

// Verify POST /connect/verify.
func (h *ConnectionHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	valid := h.service.Verify(c.UserContext(), domain.Credentials{
		Domain:   req.Domain,
		Email:    req.Email,
		APIToken: req.APIToken,
	})
	return c.JSON(dto.VerifyResponse{Valid: valid})
}

// Connect POST /orgs/:slug/connection.
func (h *ConnectionHandler) Connect(c *fiber.Ctx) error {
	var req dto.ConnectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	org, err := h.service.Connect(c.UserContext(), c.Params("slug"), service.ConnectInput{
		Name: req.Name,
		Credentials: domain.Credentials{
			Domain:   req.Domain,
			Email:    req.Email,
			APIToken: req.APIToken,
		},
		GroupIDs: req.GroupIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": connectionStatus(org)})
}

// Status GET /orgs/:slug/connection.
func (h *ConnectionHandler) Status(c *fiber.Ctx) error {
	org, err := h.service.Status(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": connectionStatus(org)})
}

// Disconnect DELETE /orgs/:slug/connection.
func (h *ConnectionHandler) Disconnect(c *fiber.Ctx) error {
	if err := h.service.Disconnect(c.UserContext(), c.Params("slug")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func connectionStatus(org *domain.Organization) dto.ConnectionStatusResponse {
	return dto.ConnectionStatusResponse{
		Slug:             org.Slug,
		Name:             org.Name,
		ZendeskDomain:    org.ZendeskDomain,
		ZendeskAPIEmail:  org.ZendeskAPIEmail,
		Connected:        org.ZendeskConnected,
		SelectedGroupIDs: org.SelectedGroupIDs,
	}
}
