package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/nutrition"
	"gymboost-server/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	first_login INTEGER NOT NULL DEFAULT 1,
	avatar_url TEXT NULL,
	daily_calories INTEGER NOT NULL DEFAULT 2000,
	calories_consumed INTEGER NOT NULL DEFAULT 0,
	calories_burned INTEGER NOT NULL DEFAULT 0,
	calories_needed INTEGER NOT NULL DEFAULT 2000,
	carbs REAL NOT NULL DEFAULT 0,
	fat REAL NOT NULL DEFAULT 0,
	protein REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const userColumns = `id, username, password_hash, first_login, avatar_url,
	daily_calories, calories_consumed, calories_burned, calories_needed,
	carbs, fat, protein, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Ledger.DailyCalories == 0 {
		user.Ledger.DailyCalories = domain.DefaultDailyCalories
	}
	user.Ledger.CaloriesNeeded = domain.CaloriesNeededFor(user.Ledger.DailyCalories, user.Ledger.CaloriesConsumed)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, password_hash, first_login, daily_calories, calories_needed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Username,
		user.PasswordHash,
		user.FirstLogin,
		user.Ledger.DailyCalories,
		user.Ledger.CaloriesNeeded,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert user %s: %w", user.Username, repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) ClearFirstLogin(ctx context.Context, id int64) error {
	return r.execOne(ctx, "clear first login", `
UPDATE users SET first_login = 0, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id,
	)
}

func (r *UserRepository) SetAvatarURL(ctx context.Context, id int64, url string) error {
	return r.execOne(ctx, "set avatar url", `
UPDATE users SET avatar_url = ?, updated_at = ? WHERE id = ?`,
		url, time.Now().UTC(), id,
	)
}

// Fold relies on SQLite evaluating every SET expression against the row's
// pre-update values, so calories_needed is derived from the same
// calories_consumed value the statement writes. A fold that would push a
// total past its ceiling matches no row and leaves the totals untouched.
func (r *UserRepository) Fold(ctx context.Context, id int64, delta nutrition.Delta) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users SET
	calories_consumed = MAX(0, calories_consumed + ?),
	carbs = MAX(0, carbs + ?),
	fat = MAX(0, fat + ?),
	protein = MAX(0, protein + ?),
	calories_needed = MAX(0, daily_calories - MAX(0, calories_consumed + ?)),
	updated_at = ?
WHERE id = ?
	AND calories_consumed + ? <= ?
	AND carbs + ? <= ?
	AND fat + ? <= ?
	AND protein + ? <= ?`,
		delta.Calories,
		delta.Carbs,
		delta.Fat,
		delta.Protein,
		delta.Calories,
		time.Now().UTC(),
		id,
		delta.Calories, nutrition.MaxTotalCalories,
		delta.Carbs, nutrition.MaxTotalGrams,
		delta.Fat, nutrition.MaxTotalGrams,
		delta.Protein, nutrition.MaxTotalGrams,
	)
	if err != nil {
		return fmt.Errorf("fold ledger: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("fold ledger rows affected: %w", err)
	}
	if aff > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, id).Scan(&exists)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("fold ledger: %w", repository.ErrNotFound)
	case err != nil:
		return fmt.Errorf("fold ledger lookup: %w", err)
	}
	return fmt.Errorf("fold ledger user %d: %w", id, repository.ErrOutOfRange)
}

func (r *UserRepository) SetDailyCalories(ctx context.Context, id int64, calories int) error {
	return r.execOne(ctx, "set daily calories", `
UPDATE users SET
	daily_calories = ?,
	calories_needed = MAX(0, ? - calories_consumed),
	updated_at = ?
WHERE id = ?`,
		calories,
		calories,
		time.Now().UTC(),
		id,
	)
}

func (r *UserRepository) ReplaceTotals(ctx context.Context, id int64, caloriesConsumed int, carbs, fat, protein float64) error {
	return r.execOne(ctx, "replace totals", `
UPDATE users SET
	calories_consumed = ?,
	carbs = ?,
	fat = ?,
	protein = ?,
	calories_needed = MAX(0, daily_calories - ?),
	updated_at = ?
WHERE id = ?`,
		caloriesConsumed,
		carbs,
		fat,
		protein,
		caloriesConsumed,
		time.Now().UTC(),
		id,
	)
}

func (r *UserRepository) GetLedger(ctx context.Context, id int64) (*domain.Ledger, error) {
	var l domain.Ledger
	err := r.db.QueryRowContext(ctx, `
SELECT daily_calories, calories_consumed, calories_burned, calories_needed, carbs, fat, protein
FROM users
WHERE id = ?`, id).Scan(
		&l.DailyCalories,
		&l.CaloriesConsumed,
		&l.CaloriesBurned,
		&l.CaloriesNeeded,
		&l.Carbs,
		&l.Fat,
		&l.Protein,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("ledger for user %d: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	return &l, nil
}

func (r *UserRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if aff == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var (
		user   domain.User
		avatar sql.NullString
	)
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FirstLogin,
		&avatar,
		&user.Ledger.DailyCalories,
		&user.Ledger.CaloriesConsumed,
		&user.Ledger.CaloriesBurned,
		&user.Ledger.CaloriesNeeded,
		&user.Ledger.Carbs,
		&user.Ledger.Fat,
		&user.Ledger.Protein,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	if avatar.Valid {
		user.AvatarURL = &avatar.String
	}
	return &user, nil
}
