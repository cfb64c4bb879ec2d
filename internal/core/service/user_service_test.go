package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

func TestUserService_Create_AdminRoleAllowed(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Root",
		Email:    "root@example.com",
		Password: "123456",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", user.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("123456")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_RejectsUnknownRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "X",
		Email:    "x@example.com",
		Password: "123456",
		Role:     "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Update_RoleChange(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	created, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Pat",
		Email:    "pat@example.com",
		Password: "123456",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Role != domain.RoleUser {
		t.Fatalf("expected default role, got %s", created.Role)
	}

	updated, err := svc.Update(context.Background(), created.ID, ports.UserUpdate{Role: domain.RolePublisher})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Role != domain.RolePublisher {
		t.Fatalf("expected publisher role, got %s", updated.Role)
	}

	if _, err := svc.Update(context.Background(), created.ID, ports.UserUpdate{Role: "superuser"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo)

	created, _ := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Gone",
		Email:    "gone@example.com",
		Password: "123456",
	})
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
