package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-admin/internal/service"
	"github.com/spec-kit/ticket-admin/internal/store"
	apperrors "github.com/spec-kit/ticket-admin/pkg/util"
)

// ResourcesHandler serves the list/get/create/replace/delete surface of one
// dashboard collection. The same handler shape backs events, sectors, lots,
// coupons and settings.
type ResourcesHandler[T any] struct {
	svc *service.ResourceService[T]
}

// NewResourcesHandler constructs handler.
func NewResourcesHandler[T any](svc *service.ResourceService[T]) *ResourcesHandler[T] {
	return &ResourcesHandler[T]{svc: svc}
}

// Register mounts the CRUD routes under /<collection>.
func (h *ResourcesHandler[T]) Register(router fiber.Router) {
	group := router.Group("/" + h.svc.Name())
	group.Get("/", h.List)
	group.Get("/:id", h.Get)
	group.Post("/", h.Create)
	group.Put("/:id", h.Replace)
	group.Delete("/:id", h.Delete)
}

// List handles GET /<collection>.
func (h *ResourcesHandler[T]) List(c *fiber.Ctx) error {
	items, err := h.svc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// Get handles GET /<collection>/:id.
func (h *ResourcesHandler[T]) Get(c *fiber.Ctx) error {
	item, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapNotFound(err)
	}
	return c.JSON(item)
}

// Create handles POST /<collection>. An id is generated when the payload
// carries none.
func (h *ResourcesHandler[T]) Create(c *fiber.Ctx) error {
	var item T
	if err := c.BodyParser(&item); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	stored, err := h.svc.Create(c.Context(), item)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(stored)
}

// Replace handles PUT /<collection>/:id.
func (h *ResourcesHandler[T]) Replace(c *fiber.Ctx) error {
	var item T
	if err := c.BodyParser(&item); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	stored, err := h.svc.Replace(c.Context(), c.Params("id"), item)
	if err != nil {
		return h.mapNotFound(err)
	}
	return c.JSON(stored)
}

// Delete handles DELETE /<collection>/:id. The empty-object body matches
// what the dashboard front-end has always received.
func (h *ResourcesHandler[T]) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return h.mapNotFound(err)
	}
	return c.JSON(fiber.Map{})
}

func (h *ResourcesHandler[T]) mapNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NewNotFound(h.svc.Name(), nil)
	}
	return err
}
