package service

import (
	"context"
	"fmt"

	"relief_map/internal/model"
	"relief_map/internal/repository"
)

// In-memory repositories so service tests exercise business rules
// without a database.

type mockUserRepo struct {
	users []*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	stored := *user
	m.users = append(m.users, &stored)
	return nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	// newest first
	result := make([]model.User, 0, len(m.users))
	for i := len(m.users) - 1; i >= 0; i-- {
		result = append(result, *m.users[i])
	}
	return result, nil
}

func (m *mockUserRepo) FindVolunteersWithRadius(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == model.RoleVolunteer && u.VolunteerRadius > 0 {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) UpdateRole(_ context.Context, id, role string) error {
	for _, u := range m.users {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return fmt.Errorf("user not found for role update")
}

func (m *mockUserRepo) UpdateCenter(_ context.Context, id string, lat, lng float64) error {
	for _, u := range m.users {
		if u.ID == id {
			u.CenterLat, u.CenterLng = &lat, &lng
			return nil
		}
	}
	return fmt.Errorf("user not found for center update")
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user not found for deletion")
}

func (m *mockUserRepo) CountAll(_ context.Context) (int, error) {
	return len(m.users), nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, role string) (int, error) {
	count := 0
	for _, u := range m.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type mockPinRepo struct {
	pins []*model.Pin
}

func newMockPinRepo() *mockPinRepo {
	return &mockPinRepo{}
}

func (m *mockPinRepo) Create(_ context.Context, pin *model.Pin) error {
	stored := *pin
	m.pins = append(m.pins, &stored)
	return nil
}

func (m *mockPinRepo) FindByID(_ context.Context, id string) (*model.Pin, error) {
	for _, p := range m.pins {
		if p.ID == id {
			copy := *p
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *mockPinRepo) FindRecent(_ context.Context, limit int) ([]model.Pin, error) {
	// newest first = reverse insertion order
	result := make([]model.Pin, 0, len(m.pins))
	for i := len(m.pins) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, *m.pins[i])
	}
	return result, nil
}

func (m *mockPinRepo) UpdateStatus(_ context.Context, id, status string) error {
	for _, p := range m.pins {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return fmt.Errorf("pin not found for status update")
}

func (m *mockPinRepo) CountAll(_ context.Context) (int, error) {
	return len(m.pins), nil
}

func (m *mockPinRepo) CountByType(_ context.Context, pinType string) (int, error) {
	count := 0
	for _, p := range m.pins {
		if p.Type == pinType {
			count++
		}
	}
	return count, nil
}

func (m *mockPinRepo) CountByStatus(_ context.Context, status string) (int, error) {
	count := 0
	for _, p := range m.pins {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func ptrFloat(f float64) *float64 { return &f }

func ptrString(s string) *string { return &s }
