package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/claims-service/internal/api/dto"
	"github.com/spec-kit/claims-service/internal/service"
)

// AreasHandler exposes the area/subarea hierarchy.
type AreasHandler struct {
	directory *service.DirectoryService
}

// NewAreasHandler constructs handler.
func NewAreasHandler(directory *service.DirectoryService) *AreasHandler {
	return &AreasHandler{directory: directory}
}

// Create handles POST /areas.
func (h *AreasHandler) Create(c *fiber.Ctx) error {
	var req dto.AreaCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	area, err := h.directory.CreateArea(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAreaResponse(area)})
}

// List handles GET /areas.
func (h *AreasHandler) List(c *fiber.Ctx) error {
	areas, err := h.directory.ListAreas(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAreaResponses(areas)})
}

// CreateSubarea handles POST /areas/:id/subareas.
func (h *AreasHandler) CreateSubarea(c *fiber.Ctx) error {
	var req dto.SubareaCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	subarea, err := h.directory.CreateSubarea(c.UserContext(), c.Params("id"), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSubareaResponse(subarea)})
}

// ListSubareas handles GET /areas/:id/subareas.
func (h *AreasHandler) ListSubareas(c *fiber.Ctx) error {
	subareas, err := h.directory.ListSubareas(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSubareaResponses(subareas)})
}
