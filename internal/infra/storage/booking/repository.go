package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	"github.com/m04kA/SportZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/SportZone-BookingService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL: unique_violation и serialization_failure
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"court_id",
	"venue_id",
	"start_time",
	"end_time",
	"amount",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями кортов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её —
// так создание попадает в ту же сериализуемую транзакцию, что и проверка пересечений.
// Нарушение уникальности (court_id, start_time) превращается в ErrDuplicateSlot.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"court_id",
			"venue_id",
			"start_time",
			"end_time",
			"amount",
			"status",
		).
		Values(
			booking.UserID,
			booking.CourtID,
			booking.VenueID,
			booking.StartTime,
			booking.EndTime,
			booking.Amount,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, wrapDBErr(ErrExecQuery, "Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, wrapDBErr(ErrScanRow, "GetByID - scan booking", err)
	}

	return booking, nil
}

// GetByUserID получает историю бронирований пользователя постранично,
// отсортированную по времени начала (сначала новые).
// Возвращает бронирования страницы и общее количество.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, page, size int) ([]*domain.Booking, int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserID - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, wrapDBErr(ErrScanRow, "GetByUserID - scan count", err)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_time DESC").
		Limit(uint64(size)).
		Offset(uint64(page * size)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapDBErr(ErrExecQuery, "GetByUserID - execute query", err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// GetByCourtID получает все бронирования корта
func (r *Repository) GetByCourtID(ctx context.Context, courtID int64) ([]*domain.Booking, error) {
	return r.getByField(ctx, "GetByCourtID", squirrel.Eq{"court_id": courtID})
}

// GetByVenueID получает все бронирования площадки
func (r *Repository) GetByVenueID(ctx context.Context, venueID int64) ([]*domain.Booking, error) {
	return r.getByField(ctx, "GetByVenueID", squirrel.Eq{"venue_id": venueID})
}

// FindOverlapping возвращает бронирования корта, пересекающиеся с интервалом [interval.Start, interval.End)
// и не входящие в excludeStatuses. Полуоткрытое пересечение: start_time < e AND end_time > s,
// граничное касание пересечением не считается.
// Внутри транзакции строки блокируются (FOR UPDATE) до её завершения.
func (r *Repository) FindOverlapping(
	ctx context.Context,
	courtID int64,
	interval domain.Interval,
	excludeStatuses []domain.BookingStatus,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"court_id": courtID}).
		Where(squirrel.Lt{"start_time": interval.End}).
		Where(squirrel.Gt{"end_time": interval.Start})

	if len(excludeStatuses) > 0 {
		statusStrings := make([]string, len(excludeStatuses))
		for i, s := range excludeStatuses {
			statusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": statusStrings})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErr(ErrExecQuery, "FindOverlapping - execute query", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByStatusBefore получает бронирования в заданном статусе, закончившиеся до указанного момента.
// Используется sweeper'ом для выборки confirmed-бронирований, подлежащих завершению.
func (r *Repository) GetByStatusBefore(ctx context.Context, status domain.BookingStatus, before time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": status}).
		Where(squirrel.Lt{"end_time": before}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStatusBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErr(ErrExecQuery, "GetByStatusBefore - execute query", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Update обновляет интервал, сумму и статус бронирования.
// Нарушение уникальности (court_id, start_time) превращается в ErrDuplicateSlot.
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("amount", booking.Amount).
		Set("status", booking.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return wrapDBErr(ErrExecQuery, "Update - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapDBErr(ErrExecQuery, "Update - get rows affected", err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatus обновляет статус бронирования безусловно
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapDBErr(ErrExecQuery, "UpdateStatus - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapDBErr(ErrExecQuery, "UpdateStatus - get rows affected", err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// UpdateStatusIf условно переводит бронирование из статуса from в статус to.
// Возвращает false без ошибки, если бронирование уже не в статусе from —
// так конкурирующая отмена выигрывает у sweeper'а, а не затирается им.
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapDBErr(ErrExecQuery, "UpdateStatusIf - execute update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, wrapDBErr(ErrExecQuery, "UpdateStatusIf - get rows affected", err)
	}

	return rowsAffected > 0, nil
}

// BulkUpdateStatus переводит набор бронирований в указанный статус.
// Возвращает ID фактически обновленных строк — вызывающая сторона видит,
// какие бронирования из набора были затронуты.
func (r *Repository) BulkUpdateStatus(ctx context.Context, ids []int64, status domain.BookingStatus) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: BulkUpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErr(ErrExecQuery, "BulkUpdateStatus - execute update", err)
	}
	defer rows.Close()

	updated := make([]int64, 0, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, wrapDBErr(ErrScanRow, "BulkUpdateStatus - scan id", err)
		}
		updated = append(updated, id)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(ErrScanRow, "BulkUpdateStatus - rows error", err)
	}

	return updated, nil
}

// getByField общая выборка бронирований по условию равенства
func (r *Repository) getByField(ctx context.Context, method string, where squirrel.Eq) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErr(ErrExecQuery, method+" - execute query", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBooking сканирует одну строку результата в бронирование
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.CourtID,
		&booking.VenueID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Amount,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.CourtID,
			&booking.VenueID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Amount,
			&booking.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, wrapDBErr(ErrScanRow, "scanBookings - scan row", err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(ErrScanRow, "scanBookings - rows error", err)
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgSerializationFailure
}

// wrapDBErr оборачивает ошибку обращения к БД. Serialization failure (40001)
// сохраняется в цепочке через %w — transaction manager должен увидеть код и
// повторить транзакцию; остальные причины сворачиваются в текст.
func wrapDBErr(sentinel error, op string, err error) error {
	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %s: %w", sentinel, op, err)
	}
	return fmt.Errorf("%w: %s: %v", sentinel, op, err)
}
