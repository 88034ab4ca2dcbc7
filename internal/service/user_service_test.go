package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestUserService_RegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantMsg  string
	}{
		{name: "empty username", username: "", password: "abcdef1", wantMsg: "Username and password are required."},
		{name: "empty password", username: "alice", password: "", wantMsg: "Username and password are required."},
		{name: "short username", username: "ab", password: "abcdef1", wantMsg: "Username must be at least 3 characters long."},
		{name: "short password", username: "alice", password: "ab1", wantMsg: "Password must be at least 6 characters long."},
		{name: "no digit", username: "alice", password: "abcdefg", wantMsg: "Password must contain at least one letter and one number."},
		{name: "no letter", username: "alice", password: "1234567", wantMsg: "Password must contain at least one letter and one number."},
	}

	store := newTestStore(t)
	svc := newUserService(store, time.Now)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password)
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Register() error = %v, want *ValidationError", err)
			}
			if vErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", vErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestUserService_RegisterScenario(t *testing.T) {
	store := newTestStore(t)
	svc := newUserService(store, time.Now)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ab", "abcdef1"); err == nil {
		t.Fatal("Register(ab) should fail")
	}

	user, err := svc.Register(ctx, "abc", "abcdef1")
	if err != nil {
		t.Fatalf("Register(abc) error = %v", err)
	}
	if user.ID == 0 {
		t.Error("registered user should have an id")
	}
	if user.PasswordHash != "" {
		t.Error("returned user must not expose the password hash")
	}
	if user.Ledger.DailyCalories != 2000 || user.Ledger.CaloriesNeeded != 2000 {
		t.Errorf("new ledger = %+v, want daily 2000 needed 2000", user.Ledger)
	}

	stored, err := store.users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.PasswordHash == "abcdef1" || !strings.HasPrefix(stored.PasswordHash, "$2") {
		t.Errorf("password should be stored as a bcrypt hash, got %q", stored.PasswordHash)
	}

	if _, err := svc.Register(ctx, "abc", "other12"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate Register() error = %v, want ErrUserAlreadyExists", err)
	}
}

func TestUserService_UsernameWhitespaceIsKept(t *testing.T) {
	store := newTestStore(t)
	svc := newUserService(store, time.Now)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ab ", "abcdef1"); err != nil {
		t.Fatalf("Register(%q) error = %v", "ab ", err)
	}
	if _, err := svc.Register(ctx, " bob ", "abcdef1"); err != nil {
		t.Fatalf("Register(%q) error = %v", " bob ", err)
	}

	if _, err := svc.Login(ctx, " bob ", "abcdef1"); err != nil {
		t.Errorf("Login(%q) error = %v", " bob ", err)
	}
	if _, err := svc.Login(ctx, "bob", "abcdef1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(bob) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserService_LoginFirstLoginFlag(t *testing.T) {
	store := newTestStore(t)
	svc := newUserService(store, time.Now)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	first, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !first.FirstLogin {
		t.Error("first Login() should report FirstLogin = true")
	}
	if first.Token == "" {
		t.Error("Login() should issue a token")
	}

	second, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if second.FirstLogin {
		t.Error("second Login() should report FirstLogin = false")
	}
	if second.Token == first.Token {
		t.Error("each login should issue a fresh token")
	}
}

func TestUserService_LoginInvalidCredentials(t *testing.T) {
	store := newTestStore(t)
	svc := newUserService(store, time.Now)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice", password: "secret2"},
		{name: "unknown user", username: "bob", password: "secret1"},
		{name: "empty", username: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.username, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestUserService_LogoutRevokesTokens(t *testing.T) {
	store := newTestStore(t)
	sessions := NewSessionAuthority(store.sessions, time.Hour)
	svc := NewUserService(store.users, sessions, 4, discardLogger())
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	login, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := svc.Logout(ctx, user.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := sessions.Validate(ctx, login.Token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Validate() after logout error = %v, want ErrUnauthorized", err)
	}
}

func TestUserService_GetByID(t *testing.T) {
	store := newTestStore(t)
	svc := newUserService(store, time.Now)
	ctx := context.Background()

	user := store.addUser(t, "alice")

	got, err := svc.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Username != "alice" || got.PasswordHash != "" {
		t.Errorf("GetByID() = %+v", got)
	}

	if _, err := svc.GetByID(ctx, 9999); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrUserNotFound", err)
	}
}
