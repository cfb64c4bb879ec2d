package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type stubReviewService struct {
	listFn   func(ctx context.Context, bootcampID string, q ports.ListQuery) ([]*domain.Review, int64, error)
	getFn    func(ctx context.Context, id string) (*domain.Review, error)
	addFn    func(ctx context.Context, actor *domain.User, bootcampID string, in ports.ReviewInput) (*domain.Review, error)
	updateFn func(ctx context.Context, actor *domain.User, id string, update ports.ReviewUpdate) (*domain.Review, error)
	deleteFn func(ctx context.Context, actor *domain.User, id string) error
}

func (s *stubReviewService) List(ctx context.Context, bootcampID string, q ports.ListQuery) ([]*domain.Review, int64, error) {
	return s.listFn(ctx, bootcampID, q)
}

func (s *stubReviewService) Get(ctx context.Context, id string) (*domain.Review, error) {
	return s.getFn(ctx, id)
}

func (s *stubReviewService) Add(ctx context.Context, actor *domain.User, bootcampID string, in ports.ReviewInput) (*domain.Review, error) {
	return s.addFn(ctx, actor, bootcampID, in)
}

func (s *stubReviewService) Update(ctx context.Context, actor *domain.User, id string, update ports.ReviewUpdate) (*domain.Review, error) {
	return s.updateFn(ctx, actor, id, update)
}

func (s *stubReviewService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func TestReviewHandler_List_ScopedToBootcamp(t *testing.T) {
	stub := &stubReviewService{
		listFn: func(_ context.Context, bootcampID string, _ ports.ListQuery) ([]*domain.Review, int64, error) {
			if bootcampID != "bc_1" {
				t.Fatalf("expected bootcamp scope, got %q", bootcampID)
			}
			return []*domain.Review{{ID: "rev_1", BootcampID: bootcampID}}, 1, nil
		},
	}
	h := NewReviewHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodGet, "/api/v1/bootcamps/bc_1/reviews", "")
	c.SetParamNames("bootcampId")
	c.SetParamValues("bc_1")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("expected one review, got %d", resp.Count)
	}
}

func TestReviewHandler_Add(t *testing.T) {
	actor := &domain.User{ID: "user_1", Role: domain.RoleUser}
	stub := &stubReviewService{
		addFn: func(_ context.Context, got *domain.User, bootcampID string, in ports.ReviewInput) (*domain.Review, error) {
			if got.ID != actor.ID || bootcampID != "bc_1" {
				t.Fatalf("unexpected args: %+v %s", got, bootcampID)
			}
			if in.Rating != 8 {
				t.Fatalf("unexpected rating: %d", in.Rating)
			}
			return &domain.Review{ID: "rev_1", BootcampID: bootcampID, UserID: got.ID, Rating: in.Rating}, nil
		},
	}
	h := NewReviewHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/bootcamps/bc_1/reviews",
		`{"title":"Great","text":"Loved it","rating":8}`)
	c.SetParamNames("bootcampId")
	c.SetParamValues("bc_1")
	c.Set("user", actor)

	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestReviewHandler_Add_RatingBounds(t *testing.T) {
	stub := &stubReviewService{
		addFn: func(_ context.Context, _ *domain.User, _ string, _ ports.ReviewInput) (*domain.Review, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewReviewHandler(stub)

	for _, body := range []string{
		`{"title":"T","text":"X","rating":0}`,
		`{"title":"T","text":"X","rating":11}`,
		`{"title":"T","text":"X"}`,
	} {
		c, _ := newAuthTestContext(t, http.MethodPost, "/api/v1/bootcamps/bc_1/reviews", body)
		c.SetParamNames("bootcampId")
		c.SetParamValues("bc_1")
		c.Set("user", &domain.User{ID: "user_1", Role: domain.RoleUser})

		err := h.Add(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %v", body, err)
		}
	}
}

func TestReviewHandler_Add_DuplicatePropagates(t *testing.T) {
	stub := &stubReviewService{
		addFn: func(_ context.Context, _ *domain.User, _ string, _ ports.ReviewInput) (*domain.Review, error) {
			return nil, domain.ErrDuplicateReview
		},
	}
	h := NewReviewHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/api/v1/bootcamps/bc_1/reviews",
		`{"title":"Again","text":"Twice","rating":5}`)
	c.SetParamNames("bootcampId")
	c.SetParamValues("bc_1")
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RoleUser})

	if err := h.Add(c); !errors.Is(err, domain.ErrDuplicateReview) {
		t.Fatalf("expected ErrDuplicateReview to propagate, got %v", err)
	}
}

func TestReviewHandler_Update_PartialRating(t *testing.T) {
	stub := &stubReviewService{
		updateFn: func(_ context.Context, _ *domain.User, id string, update ports.ReviewUpdate) (*domain.Review, error) {
			if id != "rev_1" {
				t.Fatalf("unexpected id: %s", id)
			}
			if update.Rating == nil || *update.Rating != 3 {
				t.Fatalf("expected rating 3, got %v", update.Rating)
			}
			if update.Title != "" {
				t.Fatal("absent fields must stay empty")
			}
			return &domain.Review{ID: id, Rating: 3}, nil
		},
	}
	h := NewReviewHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPut, "/api/v1/reviews/rev_1", `{"rating":3}`)
	c.SetParamNames("id")
	c.SetParamValues("rev_1")
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RoleUser})

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestReviewHandler_Delete(t *testing.T) {
	stub := &stubReviewService{
		deleteFn: func(_ context.Context, actor *domain.User, id string) error {
			if actor.ID != "user_1" || id != "rev_1" {
				t.Fatalf("unexpected args: %+v %s", actor, id)
			}
			return nil
		},
	}
	h := NewReviewHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodDelete, "/api/v1/reviews/rev_1", "")
	c.SetParamNames("id")
	c.SetParamValues("rev_1")
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RoleUser})

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data, ok := resp["data"].(map[string]any); !ok || len(data) != 0 {
		t.Fatalf("expected empty data object, got %+v", resp["data"])
	}
}
