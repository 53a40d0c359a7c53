// Package service provides the business logic for accounts and blog posts,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/postboard/postboard/internal/models"
)

// PasswordCost is the bcrypt work factor used for new accounts.
const PasswordCost = 10

// maxPasswordBytes is the longest input bcrypt accepts. Longer passwords are
// cut to this length both when hashing and when comparing.
const maxPasswordBytes = 72

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// FindUser returns the user with the given id, or models.ErrNotFound.
	FindUser(ctx context.Context, id string) (*models.User, error)
	// InsertUser stores a new user. It returns models.ErrDuplicateUsername
	// when the id is already taken.
	InsertUser(ctx context.Context, u models.User) error
}

// AuthService implements account creation and credential checks.
type AuthService struct {
	// repo performs the data-layer operations.
	repo AuthRepository
	cost int
}

// NewAuthService constructs a new AuthService using the provided repository.
func NewAuthService(repo AuthRepository) *AuthService {
	return &AuthService{repo: repo, cost: PasswordCost}
}

// CreateAccount hashes the password and stores a new user.
// A taken id yields models.ErrDuplicateUsername and leaves the existing row as is.
func (s *AuthService) CreateAccount(ctx context.Context, id, password, displayName string) error {
	hash, err := bcrypt.GenerateFromPassword(passwordBytes(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.InsertUser(ctx, models.User{
		ID:           id,
		PasswordHash: string(hash),
		DisplayName:  displayName,
	})
}

// Authenticate verifies the credentials and returns the matching user.
// An unknown id and a wrong password both yield models.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, id, password string) (*models.User, error) {
	u, err := s.repo.FindUser(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), passwordBytes(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return u, nil
}

func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
