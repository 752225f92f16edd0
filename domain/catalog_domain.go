package domain

import (
	"errors"
)

// Tag colors match the fixed palette the catalog was seeded with.
const (
	TagColorGreen  = "09db4f"
	TagColorOrange = "fa6a02"
	TagColorPurple = "b813d1"
)

var (
	MessageSuccessGetTags          = "success get tags"
	MessageSuccessGetTagDetail     = "success get tag detail"
	MessageSuccessCreateTag        = "tag created successfully"
	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessGetIngredient    = "success get ingredient detail"
	MessageSuccessCreateIngredient = "ingredient created successfully"

	MessageFailedGetTags          = "failed to get tags"
	MessageFailedGetTagDetail     = "failed to get tag detail"
	MessageFailedCreateTag        = "failed to create tag"
	MessageFailedGetIngredients   = "failed to get ingredients"
	MessageFailedGetIngredient    = "failed to get ingredient detail"
	MessageFailedCreateIngredient = "failed to create ingredient"

	ErrTagNotFound        = errors.New("tag not found")
	ErrTagAlreadyExists   = errors.New("tag with the same name, color or slug already exists")
	ErrIngredientNotFound = errors.New("ingredient not found")
)

type (
	CreateTagRequest struct {
		Name  string `json:"name" validate:"required,max=200"`
		Color string `json:"color" validate:"required,oneof=09db4f fa6a02 b813d1"`
		Slug  string `json:"slug" validate:"required,max=200"`
	}

	TagResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}

	CreateIngredientRequest struct {
		Name            string `json:"name" validate:"required"`
		MeasurementUnit string `json:"measurement_unit" validate:"required"`
	}

	IngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
)
