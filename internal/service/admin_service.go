package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"relief_map/internal/model"
	"relief_map/internal/repository"
	"relief_map/internal/utils"

	"github.com/google/uuid"
)

// ErrSelfDelete is returned when an admin tries to delete their own account
var ErrSelfDelete = errors.New("cannot delete your own account")

// AdminService provides moderation and user management operations.
// Role enforcement happens in the middleware; every method here assumes
// the actor has already been resolved to an admin.
type AdminService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	CreateAdmin(ctx context.Context, req model.CreateAdminRequest) (string, error)
	GetStats(ctx context.Context) (*model.Stats, error)
	UpdateUserRole(ctx context.Context, targetID, role string) error
	DeleteUser(ctx context.Context, actorID, targetID string) error
}

type adminService struct {
	userRepo repository.UserRepository
	pinRepo  repository.PinRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repository.UserRepository, pinRepo repository.PinRepository) AdminService {
	return &adminService{userRepo: userRepo, pinRepo: pinRepo}
}

// ListUsers returns all users, newest first
func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateAdmin provisions a new admin account and returns its id
func (s *adminService) CreateAdmin(ctx context.Context, req model.CreateAdminRequest) (string, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return "", ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now().UnixMilli(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create admin user: %w", err)
	}
	return user.ID, nil
}

// GetStats computes the aggregate counters fresh on every call
func (s *adminService) GetStats(ctx context.Context) (*model.Stats, error) {
	stats := &model.Stats{}
	var err error

	if stats.TotalUsers, err = s.userRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	if stats.TotalVolunteers, err = s.userRepo.CountByRole(ctx, model.RoleVolunteer); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	if stats.TotalPins, err = s.pinRepo.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	if stats.NeedPins, err = s.pinRepo.CountByType(ctx, model.PinTypeNeed); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	if stats.OfferPins, err = s.pinRepo.CountByType(ctx, model.PinTypeOffer); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	if stats.VerifiedPins, err = s.pinRepo.CountByStatus(ctx, model.PinStatusVerified); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return stats, nil
}

// UpdateUserRole changes the role of the target user
func (s *adminService) UpdateUserRole(ctx context.Context, targetID, role string) error {
	if !model.ValidRole(role) {
		return ErrInvalidRole
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to find user for role update: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// DeleteUser removes the target user and all their pins.
// Admins cannot delete their own account, even when no other admin exists.
func (s *adminService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfDelete
	}

	target, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to find user for deletion: %w", err)
	}
	if target == nil {
		return ErrUserNotFound
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
