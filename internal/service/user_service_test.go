package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestCreateUserValidation(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())

	t.Run("invalid emails", func(t *testing.T) {
		for _, addr := range []string{"", "sinarroba", "@dominio.com", "usuario@", "usuario@sinpunto"} {
			_, err := svc.CreateUser(context.Background(), CreateUserInput{Email: addr, Password: "secreta123"})
			if !errors.Is(err, ErrInvalidEmail) {
				t.Fatalf("email %q: err = %v, want ErrInvalidEmail", addr, err)
			}
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := svc.CreateUser(context.Background(), CreateUserInput{Email: "ana@example.com", Password: "corta"})
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("err = %v, want ErrWeakPassword", err)
		}
	})
}

func TestCreateUserNormalizesAndDetectsDuplicates(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:       "  Ana@Example.COM ",
		DisplayName: " Ana ",
		Password:    "secreta123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "ana@example.com" {
		t.Fatalf("email = %q, want normalized lowercase", user.Email)
	}
	if user.DisplayName != "Ana" {
		t.Fatalf("display name = %q, want trimmed", user.DisplayName)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secreta123" {
		t.Fatalf("password must be stored hashed")
	}

	_, err = svc.CreateUser(context.Background(), CreateUserInput{Email: "ANA@example.com", Password: "otraclave123"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newMockUserRepo()
	svc := NewUserService(zap.NewNop(), repo)

	created, err := svc.CreateUser(context.Background(), CreateUserInput{
		Email:    "bruno@example.com",
		Password: "clavesegura",
	})
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	t.Run("happy path", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "Bruno@example.com", "clavesegura")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != created.ID {
			t.Fatalf("user id = %q, want %q", user.ID, created.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Authenticate(context.Background(), "bruno@example.com", "incorrecta"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := svc.Authenticate(context.Background(), "nadie@example.com", "clavesegura"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("empty credentials", func(t *testing.T) {
		if _, err := svc.Authenticate(context.Background(), "", ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestGetByIDNotFoundUser(t *testing.T) {
	svc := NewUserService(zap.NewNop(), newMockUserRepo())
	if _, err := svc.GetByID(context.Background(), "nope"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
