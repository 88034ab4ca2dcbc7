package repository

import (
	"context"

	"gymboost-server/internal/domain"
)

// FoodSort selects the ordering column for food searches.
type FoodSort string

const (
	FoodSortName     FoodSort = "name"
	FoodSortCalories FoodSort = "calories"
)

// FoodQuery filters and orders catalog searches.
type FoodQuery struct {
	Search     string
	Sort       FoodSort
	Descending bool
}

// FoodRepository exposes the read-mostly food catalog.
type FoodRepository interface {
	Init(ctx context.Context) error
	Upsert(ctx context.Context, food *domain.FoodReference) error
	Get(ctx context.Context, id int64) (*domain.FoodReference, error)
	Search(ctx context.Context, q FoodQuery) ([]domain.FoodReference, error)
}
