package repository

import (
	"context"

	"carcatalog/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres). No business logic here.
// Missing rows are reported as sql.ErrNoRows.

// CarRepository defines data access for cars.
type CarRepository interface {
	// Create inserts a car and returns it with the generated ID.
	Create(ctx context.Context, car *model.Car) (*model.Car, error)

	// FindByID returns a car with its category.
	FindByID(ctx context.Context, id int) (*model.Car, error)

	// List returns one page of cars and the total row count for the filter.
	List(ctx context.Context, q CarQuery) (*PageResult[model.Car], error)

	// Update overwrites the descriptive fields and category of a car.
	Update(ctx context.Context, id int, car *model.Car) error

	// UpdateImage stores the object key and MIME type of the car picture.
	UpdateImage(ctx context.Context, id int, image, mimeType string) error

	// Delete removes a car by ID.
	Delete(ctx context.Context, id int) error
}

// CategoryRepository defines read access for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int) (*model.Category, error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// CarQuery filters the car list. An empty CategoryNormalizedName matches every category.
type CarQuery struct {
	PageQuery
	CategoryNormalizedName string
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
