package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ownerRepo "barbershop/database/repository/owner"
	"barbershop/models"
	"barbershop/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidOwner       = errors.New("invalid owner")
)

// AuthResponse is returned on a successful login.
type AuthResponse struct {
	OwnerID   string    `json:"ownerId"`
	ShopID    string    `json:"shopId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthService interface {
	Register(ctx context.Context, email, password, shopID string) (*models.Owner, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
}

// ShopRegistrar records a shop as known once its owner signs up.
type ShopRegistrar interface {
	Register(ctx context.Context, shopID string) error
}

type DefaultAuthService struct {
	Repo     ownerRepo.OwnerRepository
	Shops    ShopRegistrar
	TokenTTL time.Duration
	Cost     int
	Logger   *zap.Logger
}

func NewAuthService(repo ownerRepo.OwnerRepository, shops ShopRegistrar, ttl time.Duration, logger *zap.Logger) *DefaultAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &DefaultAuthService{Repo: repo, Shops: shops, TokenTTL: ttl, Cost: bcrypt.DefaultCost, Logger: logger}
}

func (s *DefaultAuthService) Register(ctx context.Context, email, password, shopID string) (*models.Owner, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	shopID = strings.TrimSpace(shopID)
	switch {
	case !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidOwner)
	case len(password) < minPasswordLength:
		return nil, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidOwner, minPasswordLength)
	case shopID == "":
		return nil, fmt.Errorf("%w: shopId is required", ErrInvalidOwner)
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ownerRepo.ErrOwnerNotFound) {
		return nil, err
	}

	// Hash the provided password.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		s.Logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	owner := models.Owner{
		ID:           uuid.New().String(),
		ShopID:       shopID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Save(ctx, owner); err != nil {
		return nil, err
	}
	if s.Shops != nil {
		if err := s.Shops.Register(ctx, shopID); err != nil {
			s.Logger.Warn("failed to register shop for owner", zap.String("shopID", shopID), zap.Error(err))
		}
	}
	s.Logger.Info("owner registered", zap.String("ownerID", owner.ID), zap.String("shopID", shopID))
	return &owner, nil
}

func (s *DefaultAuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	owner, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, ownerRepo.ErrOwnerNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// Verify the provided password.
	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expires := time.Now().Add(s.TokenTTL)
	token, err := utils.GenerateToken(owner.ID, owner.ShopID, s.TokenTTL)
	if err != nil {
		s.Logger.Error("Failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	return &AuthResponse{
		OwnerID:   owner.ID,
		ShopID:    owner.ShopID,
		Email:     owner.Email,
		Token:     token,
		ExpiresAt: expires.UTC(),
	}, nil
}
