package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	"github.com/m04kA/SportZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SportZone-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий расписаний работы кортов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации кортов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCourtID получает конфигурацию корта.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) GetByCourtID(ctx context.Context, courtID int64) (*domain.CourtConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"court_id",
		"open_hour",
		"close_hour",
		"price_per_hour",
		"created_at",
		"updated_at",
	).
		From("court_configs").
		Where(squirrel.Eq{"court_id": courtID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtID - build select query: %v", ErrBuildQuery, err)
	}

	var config domain.CourtConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.CourtID,
		&config.OpenHour,
		&config.CloseHour,
		&config.PricePerHour,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCourtID - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// Upsert создает или обновляет конфигурацию корта
func (r *Repository) Upsert(ctx context.Context, config *domain.CourtConfig) (*domain.CourtConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("court_configs").
		Columns(
			"court_id",
			"open_hour",
			"close_hour",
			"price_per_hour",
		).
		Values(
			config.CourtID,
			config.OpenHour,
			config.CloseHour,
			config.PricePerHour,
		).
		Suffix(`ON CONFLICT (court_id) DO UPDATE SET
			open_hour = EXCLUDED.open_hour,
			close_hour = EXCLUDED.close_hour,
			price_per_hour = EXCLUDED.price_per_hour,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}
