package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SportZone-BookingService/internal/service/bookings"
	"github.com/m04kA/SportZone-BookingService/internal/service/bookings/models"
)

type fakeService struct {
	applyErr   error
	lastStatus string
}

func (f *fakeService) ApplyPaymentStatus(_ context.Context, id int64, status string) (*models.BookingResponse, error) {
	f.lastStatus = status
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &models.BookingResponse{
		ID:        id,
		UserID:    100,
		CourtID:   7,
		VenueID:   3,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Amount:    1500,
		Status:    status,
		CreatedAt: start.Add(-time.Hour),
		UpdatedAt: start,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(h *Handler, bookingID, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/status", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/status",
		strings.NewReader(body))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_ConfirmsPendingBooking(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	w := doRequest(h, "42", `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", svc.lastStatus)
	assert.Contains(t, w.Body.String(), `"status":"confirmed"`)
}

func TestHandle_InvalidStatusRejected(t *testing.T) {
	svc := &fakeService{applyErr: bookings.ErrInvalidStatus}
	h := NewHandler(svc, nopLogger{})

	w := doRequest(h, "42", `{"status":"blocked"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandle_NonPendingBookingConflicts(t *testing.T) {
	svc := &fakeService{applyErr: bookings.ErrInvalidTransition}
	h := NewHandler(svc, nopLogger{})

	w := doRequest(h, "42", `{"status":"confirmed"}`)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestHandle_NotFound(t *testing.T) {
	svc := &fakeService{applyErr: bookings.ErrBookingNotFound}
	h := NewHandler(svc, nopLogger{})

	w := doRequest(h, "42", `{"status":"confirmed"}`)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandle_MalformedBody(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, nopLogger{})

	w := doRequest(h, "42", `{"status":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
