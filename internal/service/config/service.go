package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	configRepo "github.com/m04kA/SportZone-BookingService/internal/infra/storage/config"
	"github.com/m04kA/SportZone-BookingService/internal/integrations/venueservice"
	"github.com/m04kA/SportZone-BookingService/internal/service/config/models"
)

// Service сервис конфигурации кортов: окно работы и цена часового слота.
// Для кортов без сохраненной конфигурации отдает значения по умолчанию.
type Service struct {
	configRepo  ConfigRepository
	venueClient VenueClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, venueClient VenueClient, logger Logger) *Service {
	return &Service{
		configRepo:  configRepo,
		venueClient: venueClient,
		logger:      logger,
	}
}

// GetCourtConfig получает конфигурацию корта.
// Отсутствие записи — не ошибка: возвращается окно по умолчанию.
func (s *Service) GetCourtConfig(ctx context.Context, courtID int64) (*models.CourtConfigResponse, error) {
	config, err := s.configRepo.GetByCourtID(ctx, courtID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetCourtConfig: no config for court=%d, using defaults", courtID)
			return models.FromDomainConfig(domain.DefaultCourtConfig(courtID)), nil
		}
		s.logger.Error("GetCourtConfig: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: GetCourtConfig - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// UpdateCourtConfig создает или обновляет конфигурацию корта.
// Существование корта проверяется в venue-сервисе, чтобы не копить
// конфигурации несуществующих кортов.
func (s *Service) UpdateCourtConfig(ctx context.Context, courtID int64, req *models.UpdateCourtConfigRequest) (*models.CourtConfigResponse, error) {
	s.logger.Info("UpdateCourtConfig: court=%d, open=%d, close=%d, price=%.2f",
		courtID, req.OpenHour, req.CloseHour, req.PricePerHour)

	config := &domain.CourtConfig{
		CourtID:      courtID,
		OpenHour:     req.OpenHour,
		CloseHour:    req.CloseHour,
		PricePerHour: req.PricePerHour,
	}

	if !config.IsValid() {
		s.logger.Warn("UpdateCourtConfig: invalid config for court=%d", courtID)
		return nil, ErrInvalidConfig
	}

	if _, err := s.venueClient.GetCourt(ctx, courtID); err != nil {
		if errors.Is(err, venueservice.ErrCourtNotFound) {
			s.logger.Warn("UpdateCourtConfig: court=%d not found in venue service", courtID)
			return nil, ErrCourtNotFound
		}
		s.logger.Error("UpdateCourtConfig: venue service error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: UpdateCourtConfig - venue service error: %v", ErrInternal, err)
	}

	updated, err := s.configRepo.Upsert(ctx, config)
	if err != nil {
		s.logger.Error("UpdateCourtConfig: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: UpdateCourtConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateCourtConfig: court=%d config updated", courtID)
	return models.FromDomainConfig(updated), nil
}
