package service

import (
	"context"
	"testing"

	"relief_map/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPinService() (PinService, *mockPinRepo, *mockUserRepo) {
	pinRepo := newMockPinRepo()
	userRepo := newMockUserRepo()
	return NewPinService(pinRepo, userRepo), pinRepo, userRepo
}

func addVolunteer(t *testing.T, userRepo *mockUserRepo, id string, radiusKm int, centerLat, centerLng *float64) {
	t.Helper()
	err := userRepo.Create(context.Background(), &model.User{
		ID:              id,
		Name:            "Vol " + id,
		Email:           id + "@example.com",
		PasswordHash:    "hashed",
		Role:            model.RoleVolunteer,
		VolunteerRadius: radiusKm,
		CenterLat:       centerLat,
		CenterLng:       centerLng,
	})
	require.NoError(t, err)
}

func needPinReq(lat, lng float64) model.CreatePinRequest {
	return model.CreatePinRequest{
		Type:     model.PinTypeNeed,
		Category: "Water",
		Details:  "Drinking water needed",
		Lat:      ptrFloat(lat),
		Lng:      ptrFloat(lng),
	}
}

func TestPinService_CreatePin(t *testing.T) {
	svc, pinRepo, _ := newTestPinService()

	pin, alerts, err := svc.CreatePin(context.Background(), "user-1", needPinReq(27.7, 85.3))

	require.NoError(t, err)
	assert.NotEmpty(t, pin.ID)
	assert.Equal(t, model.PinStatusUnverified, pin.Status)
	assert.Equal(t, "user-1", pin.CreatedBy)
	assert.Equal(t, 0, alerts) // no volunteers registered
	assert.Len(t, pinRepo.pins, 1)
}

func TestPinService_CreatePin_AlertsVolunteerInRange(t *testing.T) {
	svc, _, userRepo := newTestPinService()
	addVolunteer(t, userRepo, "vol-1", 1, ptrFloat(27.7), ptrFloat(85.3))

	_, alerts, err := svc.CreatePin(context.Background(), "user-1", needPinReq(27.7, 85.3))

	require.NoError(t, err)
	assert.Equal(t, 1, alerts)
}

func TestPinService_CreatePin_NoAlertWhenCenterFarAway(t *testing.T) {
	svc, _, userRepo := newTestPinService()
	// ~50 km north of the pin, radius still 1 km.
	addVolunteer(t, userRepo, "vol-1", 1, ptrFloat(28.15), ptrFloat(85.3))

	_, alerts, err := svc.CreatePin(context.Background(), "user-1", needPinReq(27.7, 85.3))

	require.NoError(t, err)
	assert.Equal(t, 0, alerts)
}

func TestPinService_CreatePin_IgnoresVolunteerWithoutCenter(t *testing.T) {
	svc, _, userRepo := newTestPinService()
	addVolunteer(t, userRepo, "vol-1", 100, nil, nil)

	_, alerts, err := svc.CreatePin(context.Background(), "user-1", needPinReq(27.7, 85.3))

	require.NoError(t, err)
	assert.Equal(t, 0, alerts)
}

func TestPinService_CreatePin_RadiusIsKilometers(t *testing.T) {
	svc, _, userRepo := newTestPinService()
	// Center ~11 km away; a 15 km radius covers it, a 5 km radius does not.
	addVolunteer(t, userRepo, "vol-near", 15, ptrFloat(27.8), ptrFloat(85.3))
	addVolunteer(t, userRepo, "vol-tight", 5, ptrFloat(27.8), ptrFloat(85.3))

	_, alerts, err := svc.CreatePin(context.Background(), "user-1", needPinReq(27.7, 85.3))

	require.NoError(t, err)
	assert.Equal(t, 1, alerts)
}

func TestPinService_ListPins_NewestFirst(t *testing.T) {
	svc, _, _ := newTestPinService()
	first, _, err := svc.CreatePin(context.Background(), "user-1", needPinReq(27.7, 85.3))
	require.NoError(t, err)
	second, _, err := svc.CreatePin(context.Background(), "user-1", needPinReq(27.8, 85.4))
	require.NoError(t, err)

	pins, err := svc.ListPins(context.Background(), model.PinFilters{})

	require.NoError(t, err)
	require.Len(t, pins, 2)
	assert.Equal(t, second.ID, pins[0].ID)
	assert.Equal(t, first.ID, pins[1].ID)
}

func TestPinService_ListPins_GeoFilterInMeters(t *testing.T) {
	svc, _, _ := newTestPinService()
	near, _, err := svc.CreatePin(context.Background(), "user-1", needPinReq(27.7, 85.3))
	require.NoError(t, err)
	// ~2 km north of the filter point.
	_, _, err = svc.CreatePin(context.Background(), "user-1", needPinReq(27.718, 85.3))
	require.NoError(t, err)

	pins, err := svc.ListPins(context.Background(), model.PinFilters{
		Lat:    ptrFloat(27.7),
		Lng:    ptrFloat(85.3),
		Radius: ptrFloat(1000),
	})

	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, near.ID, pins[0].ID)
}

func TestPinService_ListPins_TypeAndCategoryFilters(t *testing.T) {
	svc, _, _ := newTestPinService()
	_, _, err := svc.CreatePin(context.Background(), "user-1", needPinReq(27.7, 85.3))
	require.NoError(t, err)
	offer := model.CreatePinRequest{
		Type:     model.PinTypeOffer,
		Category: "Food",
		Lat:      ptrFloat(27.7),
		Lng:      ptrFloat(85.3),
	}
	created, _, err := svc.CreatePin(context.Background(), "user-2", offer)
	require.NoError(t, err)

	pins, err := svc.ListPins(context.Background(), model.PinFilters{Type: ptrString(model.PinTypeOffer)})
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, created.ID, pins[0].ID)

	pins, err = svc.ListPins(context.Background(), model.PinFilters{Category: ptrString("Water")})
	require.NoError(t, err)
	require.Len(t, pins, 1)
	assert.Equal(t, model.PinTypeNeed, pins[0].Type)
}

func TestPinService_GetPin_NotFound(t *testing.T) {
	svc, _, _ := newTestPinService()

	_, err := svc.GetPin(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrPinNotFound)
}

func TestPinService_SetVolunteerCenter(t *testing.T) {
	svc, _, userRepo := newTestPinService()
	addVolunteer(t, userRepo, "vol-1", 2, nil, nil)
	actor, err := userRepo.FindByID(context.Background(), "vol-1")
	require.NoError(t, err)

	err = svc.SetVolunteerCenter(context.Background(), actor, 27.7, 85.3)

	require.NoError(t, err)
	updated, err := userRepo.FindByID(context.Background(), "vol-1")
	require.NoError(t, err)
	require.NotNil(t, updated.CenterLat)
	assert.Equal(t, 27.7, *updated.CenterLat)
	assert.Equal(t, 85.3, *updated.CenterLng)
}

func TestPinService_SetVolunteerCenter_NonVolunteer(t *testing.T) {
	svc, _, _ := newTestPinService()
	actor := &model.User{ID: "user-1", Role: model.RoleUser}

	err := svc.SetVolunteerCenter(context.Background(), actor, 27.7, 85.3)

	assert.ErrorIs(t, err, ErrNotVolunteer)
}

func TestPinService_ToggleVerification_RoundTrip(t *testing.T) {
	svc, _, _ := newTestPinService()
	pin, _, err := svc.CreatePin(context.Background(), "user-1", needPinReq(27.7, 85.3))
	require.NoError(t, err)

	status, err := svc.ToggleVerification(context.Background(), pin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PinStatusVerified, status)

	status, err = svc.ToggleVerification(context.Background(), pin.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PinStatusUnverified, status)
}

func TestPinService_ToggleVerification_NotFound(t *testing.T) {
	svc, _, _ := newTestPinService()

	_, err := svc.ToggleVerification(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrPinNotFound)
}
