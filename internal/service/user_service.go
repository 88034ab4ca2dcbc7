package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"gymboost-server/internal/domain"
	"gymboost-server/internal/repository"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token      string
	UserID     int64
	ExpiresAt  time.Time
	FirstLogin bool
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, userID int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users      repository.UserRepository
	sessions   SessionAuthority
	bcryptCost int
	log        logrus.FieldLogger
}

func NewUserService(users repository.UserRepository, sessions SessionAuthority, bcryptCost int, log logrus.FieldLogger) UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		users:      users,
		sessions:   sessions,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstLogin:   true,
		Ledger:       domain.Ledger{DailyCalories: domain.DefaultDailyCalories},
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func validateCredentials(username, password string) error {
	if username == "" || password == "" {
		return invalid("Username and password are required.")
	}
	if utf8.RuneCountInString(username) < minUsernameLength {
		return invalid("Username must be at least %d characters long.", minUsernameLength)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return invalid("Password must be at least %d characters long.", minPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return invalid("Password must contain at least one letter and one number.")
	}
	return nil
}

// Login reports the first-login flag as it was before this login and then
// clears it.
func (s *userService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if user.FirstLogin {
		if err := s.users.ClearFirstLogin(ctx, user.ID); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Warn("clear first login flag")
		}
	}

	return &LoginResult{
		Token:      session.Token,
		UserID:     user.ID,
		ExpiresAt:  session.ExpiresAt,
		FirstLogin: user.FirstLogin,
	}, nil
}

func (s *userService) Logout(ctx context.Context, userID int64) error {
	return s.sessions.Revoke(ctx, userID)
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
