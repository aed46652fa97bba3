package config

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	configRepo "github.com/m04kA/SportZone-BookingService/internal/infra/storage/config"
	"github.com/m04kA/SportZone-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/SportZone-BookingService/internal/service/config/models"
)

type fakeRepo struct {
	configs map[int64]*domain.CourtConfig
	getErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{configs: map[int64]*domain.CourtConfig{}}
}

func (f *fakeRepo) GetByCourtID(_ context.Context, courtID int64) (*domain.CourtConfig, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	config, ok := f.configs[courtID]
	if !ok {
		return nil, configRepo.ErrConfigNotFound
	}
	return config, nil
}

func (f *fakeRepo) Upsert(_ context.Context, config *domain.CourtConfig) (*domain.CourtConfig, error) {
	f.configs[config.CourtID] = config
	return config, nil
}

type fakeVenueClient struct {
	courts map[int64]*venueservice.Court
	err    error
}

func (f *fakeVenueClient) GetCourt(_ context.Context, courtID int64) (*venueservice.Court, error) {
	if f.err != nil {
		return nil, f.err
	}
	court, ok := f.courts[courtID]
	if !ok {
		return nil, venueservice.ErrCourtNotFound
	}
	return court, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetCourtConfig_DefaultsWhenMissing(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeVenueClient{}, nopLogger{})

	config, err := svc.GetCourtConfig(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultOpenHour, config.OpenHour)
	assert.Equal(t, domain.DefaultCloseHour, config.CloseHour)
	assert.Equal(t, float64(0), config.PricePerHour)
}

func TestGetCourtConfig_ReturnsStored(t *testing.T) {
	repo := newFakeRepo()
	repo.configs[7] = &domain.CourtConfig{CourtID: 7, OpenHour: 10, CloseHour: 20, PricePerHour: 1200}
	svc := NewService(repo, &fakeVenueClient{}, nopLogger{})

	config, err := svc.GetCourtConfig(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 10, config.OpenHour)
	assert.Equal(t, 20, config.CloseHour)
	assert.Equal(t, float64(1200), config.PricePerHour)
}

func TestUpdateCourtConfig_Upserts(t *testing.T) {
	repo := newFakeRepo()
	venues := &fakeVenueClient{courts: map[int64]*venueservice.Court{
		7: {ID: 7, VenueID: 3, Name: "Корт 1", Sport: "badminton"},
	}}
	svc := NewService(repo, venues, nopLogger{})

	config, err := svc.UpdateCourtConfig(context.Background(), 7, &models.UpdateCourtConfigRequest{
		OpenHour:     9,
		CloseHour:    23,
		PricePerHour: 1500,
	})

	require.NoError(t, err)
	assert.Equal(t, 9, config.OpenHour)
	require.Contains(t, repo.configs, int64(7))
}

func TestUpdateCourtConfig_UnknownCourtRejected(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeVenueClient{courts: map[int64]*venueservice.Court{}}, nopLogger{})

	_, err := svc.UpdateCourtConfig(context.Background(), 99, &models.UpdateCourtConfigRequest{
		OpenHour:  9,
		CloseHour: 23,
	})

	require.ErrorIs(t, err, ErrCourtNotFound)
}

func TestUpdateCourtConfig_InvalidWindowRejected(t *testing.T) {
	venues := &fakeVenueClient{courts: map[int64]*venueservice.Court{7: {ID: 7}}}
	svc := NewService(newFakeRepo(), venues, nopLogger{})

	for _, req := range []*models.UpdateCourtConfigRequest{
		{OpenHour: 22, CloseHour: 8},
		{OpenHour: -1, CloseHour: 10},
		{OpenHour: 8, CloseHour: 25},
		{OpenHour: 8, CloseHour: 22, PricePerHour: -10},
	} {
		_, err := svc.UpdateCourtConfig(context.Background(), 7, req)
		require.ErrorIs(t, err, ErrInvalidConfig)
	}
}

func TestUpdateCourtConfig_VenueServiceErrorWrapped(t *testing.T) {
	venues := &fakeVenueClient{err: errors.New("connection refused")}
	svc := NewService(newFakeRepo(), venues, nopLogger{})

	_, err := svc.UpdateCourtConfig(context.Background(), 7, &models.UpdateCourtConfigRequest{
		OpenHour:  9,
		CloseHour: 23,
	})

	require.ErrorIs(t, err, ErrInternal)
}
