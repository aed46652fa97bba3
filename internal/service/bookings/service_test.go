package bookings

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SportZone-BookingService/internal/infra/storage/booking"
)

// memRepo потокобезопасный репозиторий в памяти для тестов сервиса
type memRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
	failOn   map[string]error
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, bookings: make(map[int64]*domain.Booking), failOn: make(map[string]error)}
}

func (m *memRepo) add(b domain.Booking) *domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.nextID
	m.nextID++
	m.bookings[b.ID] = &b
	return &b
}

func (m *memRepo) get(id int64) domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.bookings[id]
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if err := m.failOn["GetByID"]; err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *memRepo) GetByUserID(_ context.Context, userID int64, page, size int) ([]*domain.Booking, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []*domain.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			copied := *b
			all = append(all, &copied)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.After(all[j].StartTime) })

	total := int64(len(all))
	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *memRepo) GetByCourtID(_ context.Context, courtID int64) ([]*domain.Booking, error) {
	if err := m.failOn["GetByCourtID"]; err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.CourtID == courtID {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memRepo) GetByVenueID(_ context.Context, venueID int64) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.VenueID == venueID {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memRepo) GetByStatusBefore(_ context.Context, status domain.BookingStatus, before time.Time) ([]*domain.Booking, error) {
	if err := m.failOn["GetByStatusBefore"]; err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.Status == status && b.EndTime.Before(before) {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (m *memRepo) UpdateStatusIf(_ context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	if err := m.failOn["UpdateStatusIf"]; err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (m *memRepo) BulkUpdateStatus(_ context.Context, ids []int64, status domain.BookingStatus) ([]int64, error) {
	if err := m.failOn["BulkUpdateStatus"]; err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var updated []int64
	for _, id := range ids {
		if b, ok := m.bookings[id]; ok {
			b.Status = status
			updated = append(updated, id)
		}
	}
	return updated, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func slotAt(day, hour int) (time.Time, time.Time) {
	start := time.Date(2025, 6, day, hour, 0, 0, 0, time.UTC)
	return start, start.Add(time.Hour)
}

func activeBooking(repo *memRepo, courtID, venueID int64, day, hour int, status domain.BookingStatus) *domain.Booking {
	start, end := slotAt(day, hour)
	return repo.add(domain.Booking{
		UserID:    1,
		CourtID:   courtID,
		VenueID:   venueID,
		StartTime: start,
		EndTime:   end,
		Amount:    500,
		Status:    status,
	})
}

func TestCancel_Idempotent(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nopLogger{})
	b := activeBooking(repo, 5, 1, 1, 10, domain.StatusConfirmed)

	first, err := svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), first.Status)

	// Повторная отмена — тот же результат, без ошибки
	second, err := svc.Cancel(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.ID, second.ID)
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(newMemRepo(), nopLogger{})

	_, err := svc.Cancel(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelAllForCourt_MixedStatuses(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nopLogger{})

	// 3 активных + 2 уже отмененных
	active := []*domain.Booking{
		activeBooking(repo, 5, 1, 1, 10, domain.StatusPending),
		activeBooking(repo, 5, 1, 1, 12, domain.StatusConfirmed),
		activeBooking(repo, 5, 1, 1, 14, domain.StatusCompleted),
	}
	cancelled := []*domain.Booking{
		activeBooking(repo, 5, 1, 1, 16, domain.StatusCancelled),
		activeBooking(repo, 5, 1, 1, 18, domain.StatusCancelled),
	}
	// Чужой корт не трогаем
	other := activeBooking(repo, 6, 1, 1, 10, domain.StatusConfirmed)

	count, err := svc.CancelAllForCourt(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	for _, b := range append(active, cancelled...) {
		assert.Equal(t, domain.StatusCancelled, repo.get(b.ID).Status)
	}
	assert.Equal(t, domain.StatusConfirmed, repo.get(other.ID).Status)
}

func TestCancelAllForVenue_EmptySet(t *testing.T) {
	svc := NewService(newMemRepo(), nopLogger{})

	count, err := svc.CancelAllForVenue(context.Background(), 99)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestApplyPaymentStatus_ConfirmsPending(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nopLogger{})
	b := activeBooking(repo, 5, 1, 1, 10, domain.StatusPending)

	resp, err := svc.ApplyPaymentStatus(context.Background(), b.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.get(b.ID).Status)
}

func TestApplyPaymentStatus_RejectsNonPending(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nopLogger{})
	b := activeBooking(repo, 5, 1, 1, 10, domain.StatusCancelled)

	_, err := svc.ApplyPaymentStatus(context.Background(), b.ID, "confirmed")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplyPaymentStatus_RejectsNonPaymentOutcome(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nopLogger{})
	b := activeBooking(repo, 5, 1, 1, 10, domain.StatusPending)

	_, err := svc.ApplyPaymentStatus(context.Background(), b.ID, "completed")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.ApplyPaymentStatus(context.Background(), b.ID, "no_show")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCompleteExpired_AdvancesOnlyPastConfirmed(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nopLogger{})
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	past := activeBooking(repo, 5, 1, 1, 10, domain.StatusConfirmed)    // закончилось вчера
	future := activeBooking(repo, 5, 1, 3, 10, domain.StatusConfirmed)  // еще впереди
	pending := activeBooking(repo, 5, 1, 1, 12, domain.StatusPending)   // не подтверждено
	cancelledB := activeBooking(repo, 5, 1, 1, 14, domain.StatusCancelled)

	completed, err := svc.CompleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []int64{past.ID}, completed)

	assert.Equal(t, domain.StatusCompleted, repo.get(past.ID).Status)
	assert.Equal(t, domain.StatusConfirmed, repo.get(future.ID).Status)
	assert.Equal(t, domain.StatusPending, repo.get(pending.ID).Status)
	assert.Equal(t, domain.StatusCancelled, repo.get(cancelledB.ID).Status)
}

func TestCompleteExpired_ConcurrentCancellationWins(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nopLogger{})
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	b := activeBooking(repo, 5, 1, 1, 10, domain.StatusConfirmed)

	// Отмена успевает между выборкой sweeper'а и его условной записью
	require.NoError(t, repo.UpdateStatus(context.Background(), b.ID, domain.StatusCancelled))

	completed, err := svc.CompleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, completed)
	assert.Equal(t, domain.StatusCancelled, repo.get(b.ID).Status)
}

func TestCompleteExpired_SingleFailureDoesNotBlockSweep(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nopLogger{})
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	activeBooking(repo, 5, 1, 1, 8, domain.StatusConfirmed)
	activeBooking(repo, 5, 1, 1, 10, domain.StatusConfirmed)

	repo.failOn["UpdateStatusIf"] = errors.New("transient storage error")
	completed, err := svc.CompleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, completed)

	// После восстановления хранилища следующий проход добирает оба
	delete(repo.failOn, "UpdateStatusIf")
	completed, err = svc.CompleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Len(t, completed, 2)
}

func TestGetUserBookings_PaginatedDescending(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nopLogger{})

	for day := 1; day <= 5; day++ {
		activeBooking(repo, 5, 1, day, 10, domain.StatusConfirmed)
	}

	page, err := svc.GetUserBookings(context.Background(), 1, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Bookings, 2)

	// Сначала новые
	assert.True(t, page.Bookings[0].StartTime.After(page.Bookings[1].StartTime))

	last, err := svc.GetUserBookings(context.Background(), 1, 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Bookings, 1)
}
