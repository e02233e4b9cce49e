package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/item-sharing-backend/internal/actor"
	"github.com/nekogravitycat/item-sharing-backend/internal/booking"
)

// stubService records the last call and plays back canned results.
type stubService struct {
	booking   *booking.Booking
	bookings  []*booking.Booking
	err       error
	lastState string
	lastFrom  int
	lastSize  int
	approve   bool
}

func (s *stubService) GetByID(_ context.Context, _, _ string) (*booking.Booking, error) {
	return s.booking, s.err
}

func (s *stubService) ListByBooker(_ context.Context, _, state string, from, size int) ([]*booking.Booking, error) {
	s.lastState, s.lastFrom, s.lastSize = state, from, size
	return s.bookings, s.err
}

func (s *stubService) ListByOwner(_ context.Context, _, state string, from, size int) ([]*booking.Booking, error) {
	s.lastState, s.lastFrom, s.lastSize = state, from, size
	return s.bookings, s.err
}

func (s *stubService) Create(_ context.Context, _ string, _ booking.CreateRequest) (*booking.Booking, error) {
	return s.booking, s.err
}

func (s *stubService) ChangeStatus(_ context.Context, _, _ string, approve bool) (*booking.Booking, error) {
	s.approve = approve
	return s.booking, s.err
}

const (
	actorID   = "11111111-1111-1111-1111-111111111111"
	bookingID = "22222222-2222-2222-2222-222222222222"
	itemID    = "33333333-3333-3333-3333-333333333333"
)

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group(""), NewHandler(svc), actor.Required())
	return r
}

func doRequest(r *gin.Engine, method, target, body, actorHeader string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if actorHeader != "" {
		req.Header.Set(actor.Header, actorHeader)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking() *booking.Booking {
	return &booking.Booking{
		ID:         bookingID,
		ItemID:     itemID,
		ItemName:   "Drill",
		BookerID:   actorID,
		BookerName: "Booker",
		Start:      time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
		End:        time.Date(2025, 7, 2, 10, 0, 0, 0, time.UTC),
		Status:     booking.StatusWaiting,
	}
}

func TestActorHeader(t *testing.T) {
	r := newTestRouter(&stubService{booking: sampleBooking()})

	t.Run("Missing header", func(t *testing.T) {
		w := doRequest(r, "GET", "/bookings/"+bookingID, "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Header is not a UUID", func(t *testing.T) {
		w := doRequest(r, "GET", "/bookings/"+bookingID, "", "not-a-uuid")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetBooking(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r := newTestRouter(&stubService{booking: sampleBooking()})

		w := doRequest(r, "GET", "/bookings/"+bookingID, "", actorID)
		require.Equal(t, http.StatusOK, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, bookingID, resp.ID)
		assert.Equal(t, "WAITING", resp.Status)
		assert.Equal(t, itemID, resp.Item.ID)
		assert.Equal(t, "Drill", resp.Item.Name)
		assert.Equal(t, actorID, resp.Booker.ID)
	})

	t.Run("Invalid booking id", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := doRequest(r, "GET", "/bookings/42", "", actorID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Not found maps to 404", func(t *testing.T) {
		r := newTestRouter(&stubService{err: booking.ErrNotFound})
		w := doRequest(r, "GET", "/bookings/"+bookingID, "", actorID)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Stranger maps to 403", func(t *testing.T) {
		r := newTestRouter(&stubService{err: booking.ErrNotOwnerOrBooker})
		w := doRequest(r, "GET", "/bookings/"+bookingID, "", actorID)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestListBookings(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		svc := &stubService{bookings: []*booking.Booking{}}
		r := newTestRouter(svc)

		w := doRequest(r, "GET", "/bookings", "", actorID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ALL", svc.lastState)
		assert.Equal(t, 0, svc.lastFrom)
		assert.Equal(t, 10, svc.lastSize)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("Explicit state and window", func(t *testing.T) {
		svc := &stubService{bookings: []*booking.Booking{sampleBooking()}}
		r := newTestRouter(svc)

		w := doRequest(r, "GET", "/bookings?state=PAST&from=5&size=2", "", actorID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "PAST", svc.lastState)
		assert.Equal(t, 5, svc.lastFrom)
		assert.Equal(t, 2, svc.lastSize)
	})

	t.Run("Owner listing", func(t *testing.T) {
		svc := &stubService{bookings: []*booking.Booking{sampleBooking()}}
		r := newTestRouter(svc)

		w := doRequest(r, "GET", "/bookings/owner?state=FUTURE", "", actorID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "FUTURE", svc.lastState)
	})

	t.Run("Negative from is rejected", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := doRequest(r, "GET", "/bookings?from=-1", "", actorID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Zero size is rejected", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := doRequest(r, "GET", "/bookings?size=0", "", actorID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Unknown state surfaces the literal", func(t *testing.T) {
		r := newTestRouter(&stubService{err: booking.ErrUnknownState("SOMEDAY")})
		w := doRequest(r, "GET", "/bookings?state=SOMEDAY", "", actorID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unknown state: SOMEDAY")
	})
}

func TestCreateBooking(t *testing.T) {
	validBody := `{"itemId":"` + itemID + `","start":"2025-07-01T10:00:00Z","end":"2025-07-02T10:00:00Z"}`

	t.Run("Success", func(t *testing.T) {
		r := newTestRouter(&stubService{booking: sampleBooking()})

		w := doRequest(r, "POST", "/bookings", validBody, actorID)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, bookingID, resp.ID)
	})

	t.Run("Missing item id", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		body := `{"start":"2025-07-01T10:00:00Z","end":"2025-07-02T10:00:00Z"}`
		w := doRequest(r, "POST", "/bookings", body, actorID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("End before start is caught at the edge", func(t *testing.T) {
		r := newTestRouter(&stubService{booking: sampleBooking()})
		body := `{"itemId":"` + itemID + `","start":"2025-07-02T10:00:00Z","end":"2025-07-01T10:00:00Z"}`
		w := doRequest(r, "POST", "/bookings", body, actorID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Self-booking maps to 403", func(t *testing.T) {
		r := newTestRouter(&stubService{err: booking.ErrOwnerSelfBooking})
		w := doRequest(r, "POST", "/bookings", validBody, actorID)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unavailable item maps to 400", func(t *testing.T) {
		r := newTestRouter(&stubService{err: booking.ErrItemUnavailable})
		w := doRequest(r, "POST", "/bookings", validBody, actorID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestChangeBookingStatus(t *testing.T) {
	t.Run("Approve", func(t *testing.T) {
		approved := sampleBooking()
		approved.Status = booking.StatusApproved
		svc := &stubService{booking: approved}
		r := newTestRouter(svc)

		w := doRequest(r, "PATCH", "/bookings/"+bookingID+"?approved=true", "", actorID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, svc.approve)

		var resp BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "APPROVED", resp.Status)
	})

	t.Run("Reject", func(t *testing.T) {
		rejected := sampleBooking()
		rejected.Status = booking.StatusRejected
		svc := &stubService{booking: rejected}
		r := newTestRouter(svc)

		w := doRequest(r, "PATCH", "/bookings/"+bookingID+"?approved=false", "", actorID)
		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, svc.approve)
	})

	t.Run("Missing approved parameter", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := doRequest(r, "PATCH", "/bookings/"+bookingID, "", actorID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Already approved maps to 400", func(t *testing.T) {
		r := newTestRouter(&stubService{err: booking.ErrStatusAlreadySet})
		w := doRequest(r, "PATCH", "/bookings/"+bookingID+"?approved=true", "", actorID)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Non-owner maps to 403", func(t *testing.T) {
		r := newTestRouter(&stubService{err: booking.ErrNotItemOwner})
		w := doRequest(r, "PATCH", "/bookings/"+bookingID+"?approved=true", "", actorID)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
