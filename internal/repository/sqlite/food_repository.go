package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/repository"
)

const createFoodsTable = `
CREATE TABLE IF NOT EXISTS foods (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	serving_amount REAL NOT NULL DEFAULT 0,
	serving_unit TEXT NOT NULL DEFAULT '',
	calories REAL NOT NULL DEFAULT 0,
	nutrients TEXT NOT NULL DEFAULT '[]'
);
`

type FoodRepository struct {
	db *sql.DB
}

func NewFoodRepository(db *sql.DB) repository.FoodRepository {
	return &FoodRepository{db: db}
}

func (r *FoodRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFoodsTable); err != nil {
		return fmt.Errorf("create foods table: %w", err)
	}
	return nil
}

func (r *FoodRepository) Upsert(ctx context.Context, food *domain.FoodReference) error {
	nutrients := food.Nutrients
	if nutrients == nil {
		nutrients = []domain.Nutrient{}
	}
	encoded, err := json.Marshal(nutrients)
	if err != nil {
		return fmt.Errorf("encode nutrients: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
INSERT INTO foods (name, serving_amount, serving_unit, calories, nutrients)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	serving_amount = excluded.serving_amount,
	serving_unit = excluded.serving_unit,
	calories = excluded.calories,
	nutrients = excluded.nutrients
RETURNING id`,
		food.Name,
		food.ServingAmount,
		food.ServingUnit,
		food.Calories,
		string(encoded),
	)
	if err := row.Scan(&food.ID); err != nil {
		return fmt.Errorf("upsert food %s: %w", food.Name, err)
	}
	return nil
}

func (r *FoodRepository) Get(ctx context.Context, id int64) (*domain.FoodReference, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, serving_amount, serving_unit, calories, nutrients
FROM foods
WHERE id = ?`, id)
	return scanFood(row)
}

func (r *FoodRepository) Search(ctx context.Context, q repository.FoodQuery) ([]domain.FoodReference, error) {
	column := "name"
	if q.Sort == repository.FoodSortCalories {
		column = "calories"
	}
	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}

	query := `
SELECT id, name, serving_amount, serving_unit, calories, nutrients
FROM foods`
	var args []any
	if term := strings.TrimSpace(q.Search); term != "" {
		query += `
WHERE LOWER(name) LIKE ? ESCAPE '\'`
		args = append(args, "%"+escapeLike(strings.ToLower(term))+"%")
	}
	query += fmt.Sprintf(`
ORDER BY %s %s, id ASC`, column, direction)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query foods: %w", err)
	}
	defer rows.Close()

	foods := []domain.FoodReference{}
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, *food)
	}
	return foods, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanFood(row interface {
	Scan(dest ...any) error
}) (*domain.FoodReference, error) {
	var (
		food      domain.FoodReference
		nutrients string
	)
	if err := row.Scan(
		&food.ID,
		&food.Name,
		&food.ServingAmount,
		&food.ServingUnit,
		&food.Calories,
		&nutrients,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("food: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan food: %w", err)
	}
	if err := json.Unmarshal([]byte(nutrients), &food.Nutrients); err != nil {
		return nil, fmt.Errorf("decode nutrients for food %d: %w", food.ID, err)
	}
	return &food, nil
}
