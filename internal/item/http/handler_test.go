package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/item-sharing-backend/internal/actor"
	"github.com/nekogravitycat/item-sharing-backend/internal/item"
)

type stubService struct {
	item     *item.Item
	view     *item.View
	views    []*item.View
	items    []*item.Item
	comment  *item.Comment
	err      error
	lastText string
}

func (s *stubService) Create(_ context.Context, _ string, _ item.CreateInput) (*item.Item, error) {
	return s.item, s.err
}

func (s *stubService) Update(_ context.Context, _, _ string, _ item.UpdateInput) (*item.Item, error) {
	return s.item, s.err
}

func (s *stubService) Delete(context.Context, string, string) error { return s.err }

func (s *stubService) GetByID(context.Context, string) (*item.Item, error) {
	return s.item, s.err
}

func (s *stubService) GetView(context.Context, string, string) (*item.View, error) {
	return s.view, s.err
}

func (s *stubService) ListByOwner(context.Context, string, int, int) ([]*item.View, error) {
	return s.views, s.err
}

func (s *stubService) Search(_ context.Context, text string, _, _ int) ([]*item.Item, error) {
	s.lastText = text
	return s.items, s.err
}

func (s *stubService) IDsByOwner(context.Context, string) ([]string, error) { return nil, s.err }

func (s *stubService) AddComment(_ context.Context, _, _, _ string) (*item.Comment, error) {
	return s.comment, s.err
}

const (
	actorID = "11111111-1111-1111-1111-111111111111"
	itemID  = "22222222-2222-2222-2222-222222222222"
)

func newTestRouter(svc item.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group(""), NewHandler(svc), actor.Required())
	return r
}

func doRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(actor.Header, actorID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetItem(t *testing.T) {
	t.Run("Owner view carries bookings and comments", func(t *testing.T) {
		view := &item.View{
			Item:        item.Item{ID: itemID, Name: "Drill", Available: true, OwnerID: actorID},
			LastBooking: &item.BookingRef{ID: "b1", BookerID: "u1"},
			NextBooking: &item.BookingRef{ID: "b2", BookerID: "u2"},
			Comments:    []item.Comment{{ID: "c1", Text: "great"}},
		}
		r := newTestRouter(&stubService{view: view})

		w := doRequest(r, "GET", "/items/"+itemID, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp ItemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Drill", resp.Name)
		require.NotNil(t, resp.LastBooking)
		assert.Equal(t, "b1", resp.LastBooking.ID)
		require.NotNil(t, resp.NextBooking)
		require.Len(t, resp.Comments, 1)
		assert.Equal(t, "great", resp.Comments[0].Text)
	})

	t.Run("Stranger view omits the booking fields", func(t *testing.T) {
		view := &item.View{Item: item.Item{ID: itemID, Name: "Drill"}}
		r := newTestRouter(&stubService{view: view})

		w := doRequest(r, "GET", "/items/"+itemID, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "lastBooking")
		assert.NotContains(t, w.Body.String(), "nextBooking")
	})

	t.Run("Not found", func(t *testing.T) {
		r := newTestRouter(&stubService{err: item.ErrNotFound})
		w := doRequest(r, "GET", "/items/"+itemID, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSearchItems(t *testing.T) {
	svc := &stubService{items: []*item.Item{{ID: itemID, Name: "Drill"}}}
	r := newTestRouter(svc)

	w := doRequest(r, "GET", "/items/search?text=drill", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "drill", svc.lastText)

	var resp []ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Drill", resp[0].Name)
}

func TestCreateItem(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		created := &item.Item{ID: itemID, Name: "Drill", Available: true}
		r := newTestRouter(&stubService{item: created})

		body := `{"name":"Drill","description":"cordless","available":true}`
		w := doRequest(r, "POST", "/items", body)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Available is mandatory", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		body := `{"name":"Drill","description":"cordless"}`
		w := doRequest(r, "POST", "/items", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Explicit false is accepted", func(t *testing.T) {
		created := &item.Item{ID: itemID, Name: "Drill"}
		r := newTestRouter(&stubService{item: created})

		body := `{"name":"Drill","description":"cordless","available":false}`
		w := doRequest(r, "POST", "/items", body)
		assert.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestUpdateItem(t *testing.T) {
	t.Run("Non-owner maps to 403", func(t *testing.T) {
		r := newTestRouter(&stubService{err: item.ErrNotOwner})
		w := doRequest(r, "PATCH", "/items/"+itemID, `{"name":"Mine"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAddComment(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		comment := &item.Comment{ID: "c1", Text: "worked great", AuthorName: "Booker"}
		r := newTestRouter(&stubService{comment: comment})

		w := doRequest(r, "POST", "/items/"+itemID+"/comment", `{"text":"worked great"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp CommentResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "worked great", resp.Text)
		assert.Equal(t, "Booker", resp.AuthorName)
	})

	t.Run("Empty text is rejected", func(t *testing.T) {
		r := newTestRouter(&stubService{})
		w := doRequest(r, "POST", "/items/"+itemID+"/comment", `{"text":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("No finished booking maps to 400", func(t *testing.T) {
		r := newTestRouter(&stubService{err: item.ErrCommentNotAllowed})
		w := doRequest(r, "POST", "/items/"+itemID+"/comment", `{"text":"hi"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
