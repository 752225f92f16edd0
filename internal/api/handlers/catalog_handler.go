package handlers

import (
	"foodgram-backend/domain"
	"foodgram-backend/internal/api/presenters"
	"foodgram-backend/pkg/catalog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		GetTags(c *fiber.Ctx) error
		GetTagDetail(c *fiber.Ctx) error
		CreateTag(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
		GetIngredientDetail(c *fiber.Ctx) error
		CreateIngredient(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
		validator      *validator.Validate
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService, validator *validator.Validate) CatalogHandler {
	return &catalogHandler{
		catalogService: catalogService,
		validator:      validator,
	}
}

func (h *catalogHandler) GetTags(c *fiber.Ctx) error {
	tags, err := h.catalogService.GetTags(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetTags, err)
	}

	return presenters.SuccessResponse(c, tags, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *catalogHandler) GetTagDetail(c *fiber.Ctx) error {
	res, err := h.catalogService.GetTagDetail(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetTagDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTagDetail)
}

func (h *catalogHandler) CreateTag(c *fiber.Ctx) error {
	role := c.Locals("role").(string)
	req := new(domain.CreateTagRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateTag, err)
	}

	res, err := h.catalogService.CreateTag(c.Context(), *req, role)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedCreateTag, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateTag)
}

func (h *catalogHandler) GetIngredients(c *fiber.Ctx) error {
	page, limit := pagination(c)
	namePrefix := c.Query("name")

	ingredients, count, err := h.catalogService.GetIngredients(c.Context(), namePrefix, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetIngredients, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"ingredients": ingredients,
		"pagination":  paginationMap(page, limit, count),
	}, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *catalogHandler) GetIngredientDetail(c *fiber.Ctx) error {
	res, err := h.catalogService.GetIngredientDetail(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredient)
}

func (h *catalogHandler) CreateIngredient(c *fiber.Ctx) error {
	role := c.Locals("role").(string)
	req := new(domain.CreateIngredientRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateIngredient, err)
	}

	res, err := h.catalogService.CreateIngredient(c.Context(), *req, role)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedCreateIngredient, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateIngredient)
}
