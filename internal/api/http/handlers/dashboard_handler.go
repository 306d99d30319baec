package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/isaktapper/klaralyze/internal/api/dto"
	"github.com/isaktapper/klaralyze/internal/service"
	apperrors "github.com/isaktapper/klaralyze/pkg/util/errorutil"
)

// DashboardHandler serves the analytics endpoints.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: dashboardService}
}

// Overview GET /orgs/:slug/dashboard/overview.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	query, err := parseDashboardQuery(c)
	if err != nil {
		return err
	}
	result, err := h.service.Overview(c.UserContext(), c.Params("slug"), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.OverviewResponse{
		Tickets: result.Tickets,
		Summary: result.Summary,
	}})
}

// Resolution GET /orgs/:slug/dashboard/resolution.
func (h *DashboardHandler) Resolution(c *fiber.Ctx) error {
	query, err := parseDashboardQuery(c)
	if err != nil {
		return err
	}
	result, err := h.service.Resolution(c.UserContext(), c.Params("slug"), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ResolutionResponse{
		Tickets:                  result.Tickets,
		CountByClosedDate:        result.CountByClosedDate,
		AvgResolutionTimeMinutes: result.AvgResolutionTimeMinutes,
	}})
}

// Agents GET /orgs/:slug/agents.
func (h *DashboardHandler) Agents(c *fiber.Ctx) error {
	agents, err := h.service.Agents(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": agents})
}

// Groups GET /orgs/:slug/groups.
func (h *DashboardHandler) Groups(c *fiber.Ctx) error {
	groups, err := h.service.Groups(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": groups})
}

// parseDashboardQuery validates filter parameters before any upstream call
// is made. An absent groups param means "use the stored selection" (nil);
// a present-but-empty value means "all groups" (empty slice).
func parseDashboardQuery(c *fiber.Ctx) (service.DashboardQuery, error) {
	query := service.DashboardQuery{}

	if raw := c.Query("start_time"); raw != "" {
		start, err := parseStartTime(raw)
		if err != nil {
			return query, apperrors.NewValidationError("invalid start_time", map[string]any{"start_time": raw})
		}
		query.StartTime = start
	}

	rawGroups, present := queryParam(c, "groups")
	if present {
		groupIDs, err := parseGroupIDs(rawGroups)
		if err != nil {
			return query, apperrors.NewValidationError("invalid groups", map[string]any{"groups": rawGroups})
		}
		query.GroupIDs = groupIDs
	}
	return query, nil
}

func queryParam(c *fiber.Ctx, key string) (string, bool) {
	args := c.Request().URI().QueryArgs()
	if !args.Has(key) {
		return "", false
	}
	return string(args.Peek(key)), true
}

// parseStartTime accepts RFC3339 or a unix epoch.
func parseStartTime(raw string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		utc := t.UTC()
		return &utc, nil
	}
	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	t := time.Unix(epoch, 0).UTC()
	return &t, nil
}

// parseGroupIDs parses a comma-separated id list. An empty value yields an
// empty (non-nil) slice: "all groups", never "match nothing".
func parseGroupIDs(raw string) ([]int64, error) {
	groupIDs := []int64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		groupIDs = append(groupIDs, id)
	}
	return groupIDs, nil
}
