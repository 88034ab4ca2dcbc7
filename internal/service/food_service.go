package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/repository"
)

// FoodService serves the read-only food catalog.
type FoodService interface {
	Search(ctx context.Context, search, sort, order string) ([]domain.FoodReference, error)
	Import(ctx context.Context, r io.Reader) (int, error)
}

type foodService struct {
	foods repository.FoodRepository
	log   logrus.FieldLogger
}

func NewFoodService(foods repository.FoodRepository, log logrus.FieldLogger) FoodService {
	return &foodService{
		foods: foods,
		log:   log,
	}
}

func (s *foodService) Search(ctx context.Context, search, sort, order string) ([]domain.FoodReference, error) {
	q := repository.FoodQuery{Search: search}

	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "", "name":
		q.Sort = repository.FoodSortName
	case "calories":
		q.Sort = repository.FoodSortCalories
	default:
		return nil, invalid("Invalid sort field %q; use name or calories.", sort)
	}

	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc":
	case "desc":
		q.Descending = true
	default:
		return nil, invalid("Invalid sort order %q; use asc or desc.", order)
	}

	return s.foods.Search(ctx, q)
}

// Import loads a JSON array of food references, replacing entries that
// share a name.
func (s *foodService) Import(ctx context.Context, r io.Reader) (int, error) {
	var foods []domain.FoodReference
	if err := json.NewDecoder(r).Decode(&foods); err != nil {
		return 0, fmt.Errorf("decode food catalog: %w", err)
	}

	imported := 0
	for i := range foods {
		food := &foods[i]
		food.Name = strings.TrimSpace(food.Name)
		if food.Name == "" {
			s.log.WithField("index", i).Warn("skipping food without a name")
			continue
		}
		if err := s.foods.Upsert(ctx, food); err != nil {
			return imported, err
		}
		imported++
	}

	s.log.WithField("count", imported).Info("food catalog imported")
	return imported, nil
}
