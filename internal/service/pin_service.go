package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"relief_map/internal/geo"
	"relief_map/internal/model"
	"relief_map/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrPinNotFound  = errors.New("pin not found")
	ErrNotVolunteer = errors.New("only volunteers can set center location")
)

// MaxPinListing caps how many pins a single listing returns
const MaxPinListing = 500

// PinService defines operations for pins
type PinService interface {
	// CreatePin persists a pin for the actor and returns it together with the
	// number of volunteers whose alert radius covers the pin's location.
	// The count is informational only; no notification is delivered.
	CreatePin(ctx context.Context, actorID string, req model.CreatePinRequest) (*model.Pin, int, error)
	ListPins(ctx context.Context, filters model.PinFilters) ([]model.Pin, error)
	GetPin(ctx context.Context, id string) (*model.Pin, error)
	SetVolunteerCenter(ctx context.Context, actor *model.User, lat, lng float64) error
	ToggleVerification(ctx context.Context, pinID string) (string, error)
}

type pinService struct {
	pinRepo  repository.PinRepository
	userRepo repository.UserRepository
}

// NewPinService creates a new PinService
func NewPinService(pinRepo repository.PinRepository, userRepo repository.UserRepository) PinService {
	return &pinService{pinRepo: pinRepo, userRepo: userRepo}
}

func (s *pinService) CreatePin(ctx context.Context, actorID string, req model.CreatePinRequest) (*model.Pin, int, error) {
	pin := &model.Pin{
		ID:        uuid.NewString(),
		Type:      req.Type,
		Category:  req.Category,
		Details:   req.Details,
		Quantity:  req.Quantity,
		Lat:       *req.Lat,
		Lng:       *req.Lng,
		Status:    model.PinStatusUnverified,
		CreatedBy: actorID,
		CreatedAt: time.Now().UnixMilli(),
	}

	if err := s.pinRepo.Create(ctx, pin); err != nil {
		return nil, 0, fmt.Errorf("failed to create pin in repo: %w", err)
	}

	alerts, err := s.countMatchingVolunteers(ctx, pin.Lat, pin.Lng)
	if err != nil {
		return nil, 0, err
	}

	return pin, alerts, nil
}

// countMatchingVolunteers counts volunteers with a positive alert radius and
// a set operating center within radius of the given point. The stored radius
// is in kilometers, distances are computed in meters.
func (s *pinService) countMatchingVolunteers(ctx context.Context, lat, lng float64) (int, error) {
	volunteers, err := s.userRepo.FindVolunteersWithRadius(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load volunteers for alerting: %w", err)
	}

	count := 0
	for _, v := range volunteers {
		if v.CenterLat == nil || v.CenterLng == nil {
			continue
		}
		distance := geo.DistanceMeters(*v.CenterLat, *v.CenterLng, lat, lng)
		if distance <= float64(v.VolunteerRadius)*1000 {
			count++
		}
	}
	return count, nil
}

// ListPins returns the newest pins, optionally narrowed by a geo filter
// (radius in meters around a point) and by type/category equality.
func (s *pinService) ListPins(ctx context.Context, filters model.PinFilters) ([]model.Pin, error) {
	pins, err := s.pinRepo.FindRecent(ctx, MaxPinListing)
	if err != nil {
		return nil, fmt.Errorf("failed to list pins: %w", err)
	}

	geoFilter := filters.Lat != nil && filters.Lng != nil && filters.Radius != nil

	filtered := make([]model.Pin, 0, len(pins))
	for _, p := range pins {
		if filters.Type != nil && p.Type != *filters.Type {
			continue
		}
		if filters.Category != nil && p.Category != *filters.Category {
			continue
		}
		if geoFilter {
			distance := geo.DistanceMeters(*filters.Lat, *filters.Lng, p.Lat, p.Lng)
			if distance > *filters.Radius {
				continue
			}
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

func (s *pinService) GetPin(ctx context.Context, id string) (*model.Pin, error) {
	pin, err := s.pinRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pin: %w", err)
	}
	if pin == nil {
		return nil, ErrPinNotFound
	}
	return pin, nil
}

// SetVolunteerCenter records where a volunteer operates from
func (s *pinService) SetVolunteerCenter(ctx context.Context, actor *model.User, lat, lng float64) error {
	if actor.Role != model.RoleVolunteer {
		return ErrNotVolunteer
	}
	if err := s.userRepo.UpdateCenter(ctx, actor.ID, lat, lng); err != nil {
		return fmt.Errorf("failed to set volunteer center: %w", err)
	}
	return nil
}

// ToggleVerification flips a pin between unverified and verified,
// returning the new status.
func (s *pinService) ToggleVerification(ctx context.Context, pinID string) (string, error) {
	pin, err := s.pinRepo.FindByID(ctx, pinID)
	if err != nil {
		return "", fmt.Errorf("failed to load pin for verification: %w", err)
	}
	if pin == nil {
		return "", ErrPinNotFound
	}

	newStatus := model.PinStatusVerified
	if pin.Status == model.PinStatusVerified {
		newStatus = model.PinStatusUnverified
	}

	if err := s.pinRepo.UpdateStatus(ctx, pinID, newStatus); err != nil {
		return "", fmt.Errorf("failed to update pin status: %w", err)
	}
	return newStatus, nil
}
