package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SportZone-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SportZone-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SportZone-BookingService/internal/service/admission"
	"github.com/m04kA/SportZone-BookingService/pkg/keyedmutex"
	"github.com/m04kA/SportZone-BookingService/pkg/ptr"
)

// memRepo репозиторий в памяти, повторяющий контракт хранилища:
// уникальность (court_id, start_time) среди активных бронирований
type memRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1}
}

func (m *memRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Частичная уникальность (court_id, start_time) среди неотмененных, как в схеме
	for _, existing := range m.bookings {
		if existing.CourtID == b.CourtID && existing.StartTime.Equal(b.StartTime) && existing.IsActive() {
			return nil, bookingRepo.ErrDuplicateSlot
		}
	}

	b.ID = m.nextID
	m.nextID++
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	copied := *b
	m.bookings = append(m.bookings, &copied)
	return b, nil
}

func (m *memRepo) FindOverlapping(_ context.Context, courtID int64, interval domain.Interval, excludeStatuses []domain.BookingStatus) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.CourtID != courtID || !b.Interval().Overlaps(interval) {
			continue
		}
		skip := false
		for _, s := range excludeStatuses {
			if b.Status == s {
				skip = true
				break
			}
		}
		if !skip {
			copied := *b
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memRepo) all() []*domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.Booking(nil), m.bookings...)
}

// passthroughTx выполняет fn без настоящей транзакции: атомарность в тестах
// обеспечивается блокировкой корта
type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// retryingTx повторяет fn при serialization failure, как настоящий transaction manager
type retryingTx struct{ attempts int }

func (r *retryingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	for i := 0; i < 3; i++ {
		r.attempts++
		err := fn(ctx)
		if err == nil {
			return nil
		}
		var pqErr *pq.Error
		if !errors.As(err, &pqErr) || string(pqErr.Code) != "40001" {
			return err
		}
	}
	return errors.New("serialization retries exhausted")
}

// flakyRepo падает на Create с ошибкой сериализуемой транзакции первые failures раз,
// в том же виде, в котором её возвращает репозиторий
type flakyRepo struct {
	*memRepo
	failures int
}

func (f *flakyRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.failures > 0 {
		f.failures--
		return nil, fmt.Errorf("%w: Create - execute insert: %w", bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
	}
	return f.memRepo.Create(ctx, b)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestUseCase(repo *memRepo) *UseCase {
	uc := NewUseCase(
		repo,
		admission.NewChecker(repo),
		keyedmutex.New(5*time.Second),
		passthroughTx{},
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func validRequest(startHour, endHour int) *Request {
	return &Request{
		UserID:    1,
		CourtID:   5,
		VenueID:   2,
		StartTime: time.Date(2025, 6, 1, startHour, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 6, 1, endHour, 0, 0, 0, time.UTC),
		Amount:    800,
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	uc := newTestUseCase(newMemRepo())

	resp, err := uc.Execute(context.Background(), validRequest(10, 11))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, int64(5), resp.CourtID)
}

func TestExecute_ConfirmedPath(t *testing.T) {
	uc := newTestUseCase(newMemRepo())

	req := validRequest(10, 11)
	req.Status = ptr.Ptr("confirmed")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(newMemRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"unordered", func(r *Request) { r.StartTime, r.EndTime = r.EndTime, r.StartTime }, ErrInvalidInterval},
		{"equal bounds", func(r *Request) { r.EndTime = r.StartTime }, ErrInvalidInterval},
		{"not hour aligned", func(r *Request) { r.StartTime = r.StartTime.Add(30 * time.Minute) }, ErrInvalidInterval},
		{"start in past", func(r *Request) {
			r.StartTime = testNow.Add(-2 * time.Hour)
			r.EndTime = testNow.Add(-1 * time.Hour)
		}, ErrInvalidInterval},
		{"zero amount", func(r *Request) { r.Amount = 0 }, ErrInvalidAmount},
		{"negative amount", func(r *Request) { r.Amount = -100 }, ErrInvalidAmount},
		{"bad status", func(r *Request) { r.Status = ptr.Ptr("completed") }, ErrInvalidStatus},
		{"bad user", func(r *Request) { r.UserID = 0 }, ErrInvalidInput},
		{"bad court", func(r *Request) { r.CourtID = -1 }, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(10, 11)
			tt.mutate(req)

			_, err := uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := newMemRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	_, err := uc.Execute(ctx, validRequest(10, 11))
	require.NoError(t, err)

	// Пересекающийся слот отклоняется
	_, err = uc.Execute(ctx, validRequest(10, 11))
	assert.ErrorIs(t, err, ErrSlotConflict)

	req := validRequest(10, 12)
	req.StartTime = req.StartTime.Add(-time.Hour) // [9, 12) накрывает [10, 11)
	_, err = uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_BoundaryTouchBothSucceed(t *testing.T) {
	uc := newTestUseCase(newMemRepo())
	ctx := context.Background()

	// [10, 11) и [11, 12) на одном корте — оба проходят
	_, err := uc.Execute(ctx, validRequest(10, 11))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, validRequest(11, 12))
	require.NoError(t, err)
}

func TestExecute_CancelledSlotReusable(t *testing.T) {
	repo := newMemRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, validRequest(10, 11))
	require.NoError(t, err)

	// Отменяем первое бронирование прямо в хранилище
	repo.mu.Lock()
	for _, stored := range repo.bookings {
		if stored.ID == resp.ID {
			stored.Status = domain.StatusCancelled
		}
	}
	repo.mu.Unlock()

	_, err = uc.Execute(ctx, validRequest(10, 11))
	assert.NoError(t, err)
}

func TestExecute_ConcurrentCreatesAdmitExactlyOne(t *testing.T) {
	repo := newMemRepo()
	uc := newTestUseCase(repo)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)

	// N конкурирующих запросов с попарно пересекающимися интервалами
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest(10, 12)
			req.UserID = int64(i + 1)
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotConflict) || errors.Is(err, ErrSlotTaken):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicted)

	// Глобальный инвариант: активные бронирования корта попарно не пересекаются
	all := repo.all()
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			a, b := all[i], all[j]
			if a.CourtID == b.CourtID && a.IsActive() && b.IsActive() {
				assert.False(t, a.Interval().Overlaps(b.Interval()),
					"bookings %d and %d overlap", a.ID, b.ID)
			}
		}
	}
}

func TestExecute_SerializationFailureRetriedTransparently(t *testing.T) {
	repo := &flakyRepo{memRepo: newMemRepo(), failures: 1}
	tx := &retryingTx{}

	uc := NewUseCase(repo, admission.NewChecker(repo), keyedmutex.New(time.Second), tx, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}

	// Конкурирующая транзакция откатила первую попытку —
	// клиент не должен увидеть ошибку
	resp, err := uc.Execute(context.Background(), validRequest(10, 11))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, 2, tx.attempts)
}

func TestExecute_LockTimeoutSurfacesAsBusy(t *testing.T) {
	repo := newMemRepo()
	locks := keyedmutex.New(50 * time.Millisecond)

	uc := NewUseCase(repo, admission.NewChecker(repo), locks, passthroughTx{}, nopLogger{})
	uc.timeProvider = fixedTime{now: testNow}

	// Держим блокировку корта извне — запрос должен отвалиться по таймауту
	require.NoError(t, locks.Lock(context.Background(), 5))
	defer locks.Unlock(5)

	_, err := uc.Execute(context.Background(), validRequest(10, 11))
	assert.ErrorIs(t, err, ErrCourtBusy)
}
