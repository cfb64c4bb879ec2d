package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

type stubBootcampService struct {
	createFn   func(ctx context.Context, actor *domain.User, in ports.BootcampInput) (*domain.Bootcamp, error)
	getFn      func(ctx context.Context, id string) (*domain.Bootcamp, error)
	listFn     func(ctx context.Context, q ports.ListQuery) ([]*domain.Bootcamp, int64, error)
	inRadiusFn func(ctx context.Context, zipcode string, distanceMiles float64) ([]*domain.Bootcamp, error)
	updateFn   func(ctx context.Context, actor *domain.User, id string, update ports.BootcampUpdate) (*domain.Bootcamp, error)
	deleteFn   func(ctx context.Context, actor *domain.User, id string) error
	uploadFn   func(ctx context.Context, actor *domain.User, id string, file ports.PhotoUpload) (string, error)
}

func (s *stubBootcampService) Create(ctx context.Context, actor *domain.User, in ports.BootcampInput) (*domain.Bootcamp, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubBootcampService) Get(ctx context.Context, id string) (*domain.Bootcamp, error) {
	return s.getFn(ctx, id)
}

func (s *stubBootcampService) List(ctx context.Context, q ports.ListQuery) ([]*domain.Bootcamp, int64, error) {
	return s.listFn(ctx, q)
}

func (s *stubBootcampService) InRadius(ctx context.Context, zipcode string, distanceMiles float64) ([]*domain.Bootcamp, error) {
	return s.inRadiusFn(ctx, zipcode, distanceMiles)
}

func (s *stubBootcampService) Update(ctx context.Context, actor *domain.User, id string, update ports.BootcampUpdate) (*domain.Bootcamp, error) {
	return s.updateFn(ctx, actor, id, update)
}

func (s *stubBootcampService) Delete(ctx context.Context, actor *domain.User, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubBootcampService) UploadPhoto(ctx context.Context, actor *domain.User, id string, file ports.PhotoUpload) (string, error) {
	return s.uploadFn(ctx, actor, id, file)
}

func TestBootcampHandler_List(t *testing.T) {
	stub := &stubBootcampService{
		listFn: func(_ context.Context, q ports.ListQuery) ([]*domain.Bootcamp, int64, error) {
			if q.Page != ports.DefaultPage || q.Limit != ports.DefaultLimit {
				t.Fatalf("expected default page window, got %+v", q)
			}
			return []*domain.Bootcamp{{ID: "bc_1", Name: "Devworks"}, {ID: "bc_2", Name: "ModernTech"}}, 2, nil
		},
	}
	h := NewBootcampHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodGet, "/api/v1/bootcamps", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Success || resp.Count != 2 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Pagination != nil {
		t.Fatalf("single-page collection must omit pagination, got %+v", resp.Pagination)
	}
}

func TestBootcampHandler_List_QueryParams(t *testing.T) {
	stub := &stubBootcampService{
		listFn: func(_ context.Context, q ports.ListQuery) ([]*domain.Bootcamp, int64, error) {
			if got, want := strings.Join(q.Select, ","), "name,housing"; got != want {
				t.Fatalf("select: got %q, want %q", got, want)
			}
			if got, want := strings.Join(q.Sort, ","), "-average_rating,name"; got != want {
				t.Fatalf("sort: got %q, want %q", got, want)
			}
			if q.Page != 2 || q.Limit != 2 {
				t.Fatalf("page window: got %+v", q)
			}
			return []*domain.Bootcamp{{ID: "bc_3"}, {ID: "bc_4"}}, 5, nil
		},
	}
	h := NewBootcampHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodGet,
		"/api/v1/bootcamps?select=name,housing&sort=-average_rating,name&page=2&limit=2", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count: got %d, want 2", resp.Count)
	}
	if resp.Pagination == nil || resp.Pagination.Next == nil || resp.Pagination.Prev == nil {
		t.Fatalf("middle page needs both links, got %+v", resp.Pagination)
	}
	if resp.Pagination.Next.Page != 3 || resp.Pagination.Prev.Page != 1 {
		t.Fatalf("wrong neighbours: %+v", resp.Pagination)
	}
	if resp.Pagination.Next.Limit != 2 {
		t.Fatalf("limit must carry through: %+v", resp.Pagination.Next)
	}
}

func TestBootcampHandler_List_BadPageParamsFallBack(t *testing.T) {
	stub := &stubBootcampService{
		listFn: func(_ context.Context, q ports.ListQuery) ([]*domain.Bootcamp, int64, error) {
			if q.Page != ports.DefaultPage || q.Limit != ports.DefaultLimit {
				t.Fatalf("expected defaults for junk params, got %+v", q)
			}
			return []*domain.Bootcamp{}, 0, nil
		},
	}
	h := NewBootcampHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodGet, "/api/v1/bootcamps?page=abc&limit=-3", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestBootcampHandler_Create(t *testing.T) {
	actor := &domain.User{ID: "user_1", Role: domain.RolePublisher}
	stub := &stubBootcampService{
		createFn: func(_ context.Context, got *domain.User, in ports.BootcampInput) (*domain.Bootcamp, error) {
			if got.ID != actor.ID {
				t.Fatalf("wrong actor: %+v", got)
			}
			if in.Name != "Devworks" || !in.Housing {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Bootcamp{ID: "bc_1", UserID: got.ID, Name: in.Name}, nil
		},
	}
	h := NewBootcampHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodPost, "/api/v1/bootcamps",
		`{"name":"Devworks","description":"Learn to code","housing":true}`)
	c.Set("user", actor)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestBootcampHandler_Create_MissingFields(t *testing.T) {
	stub := &stubBootcampService{
		createFn: func(_ context.Context, _ *domain.User, _ ports.BootcampInput) (*domain.Bootcamp, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	h := NewBootcampHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPost, "/api/v1/bootcamps", `{"name":"NoDescription"}`)
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RolePublisher})

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestBootcampHandler_InRadius(t *testing.T) {
	stub := &stubBootcampService{
		inRadiusFn: func(_ context.Context, zipcode string, distance float64) ([]*domain.Bootcamp, error) {
			if zipcode != "02215" || distance != 10 {
				t.Fatalf("unexpected args: %s %v", zipcode, distance)
			}
			return []*domain.Bootcamp{{ID: "bc_1"}}, nil
		},
	}
	h := NewBootcampHandler(stub)

	c, rec := newAuthTestContext(t, http.MethodGet, "/api/v1/bootcamps/radius/02215/10", "")
	c.SetParamNames("zipcode", "distance")
	c.SetParamValues("02215", "10")

	if err := h.InRadius(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 {
		t.Fatalf("expected one result, got %d", resp.Count)
	}
}

func TestBootcampHandler_InRadius_BadDistance(t *testing.T) {
	h := NewBootcampHandler(&stubBootcampService{})

	for _, distance := range []string{"abc", "-5", "0"} {
		c, _ := newAuthTestContext(t, http.MethodGet, "/api/v1/bootcamps/radius/02215/"+distance, "")
		c.SetParamNames("zipcode", "distance")
		c.SetParamValues("02215", distance)

		err := h.InRadius(c)
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("distance %q: expected 400, got %v", distance, err)
		}
	}
}

func TestBootcampHandler_Update_PartialBooleans(t *testing.T) {
	stub := &stubBootcampService{
		updateFn: func(_ context.Context, _ *domain.User, id string, update ports.BootcampUpdate) (*domain.Bootcamp, error) {
			if id != "bc_1" {
				t.Fatalf("unexpected id: %s", id)
			}
			if update.Housing == nil || *update.Housing {
				t.Fatalf("expected housing=false to be carried, got %v", update.Housing)
			}
			if update.JobAssistance != nil {
				t.Fatal("absent booleans must stay nil")
			}
			return &domain.Bootcamp{ID: id}, nil
		},
	}
	h := NewBootcampHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodPut, "/api/v1/bootcamps/bc_1", `{"housing":false}`)
	c.SetParamNames("id")
	c.SetParamValues("bc_1")
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RolePublisher})

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestBootcampHandler_Delete_PropagatesForbidden(t *testing.T) {
	stub := &stubBootcampService{
		deleteFn: func(_ context.Context, _ *domain.User, _ string) error {
			return domain.ErrForbidden
		},
	}
	h := NewBootcampHandler(stub)

	c, _ := newAuthTestContext(t, http.MethodDelete, "/api/v1/bootcamps/bc_1", "")
	c.SetParamNames("id")
	c.SetParamValues("bc_1")
	c.Set("user", &domain.User{ID: "user_2", Role: domain.RolePublisher})

	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}

func multipartUpload(t *testing.T, field, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	head := make(textproto.MIMEHeader)
	head.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	head.Set("Content-Type", contentType)
	part, err := w.CreatePart(head)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := io.Copy(part, strings.NewReader(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestBootcampHandler_UploadPhoto(t *testing.T) {
	stub := &stubBootcampService{
		uploadFn: func(_ context.Context, _ *domain.User, id string, file ports.PhotoUpload) (string, error) {
			if id != "bc_1" || file.Filename != "campus.jpg" || file.ContentType != "image/jpeg" {
				t.Fatalf("unexpected upload: %s %+v", id, file)
			}
			data, _ := io.ReadAll(file.Content)
			if string(data) != "jpegbytes" {
				t.Fatalf("unexpected content: %q", data)
			}
			return "photo_bc_1.jpg", nil
		},
	}
	h := NewBootcampHandler(stub)

	body, contentType := multipartUpload(t, "file", "campus.jpg", "image/jpeg", "jpegbytes")
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/bootcamps/bc_1/photo", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("bc_1")
	c.Set("user", &domain.User{ID: "user_1", Role: domain.RolePublisher})

	if err := h.UploadPhoto(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp dataResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data != "photo_bc_1.jpg" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestBootcampHandler_UploadPhoto_NoFile(t *testing.T) {
	h := NewBootcampHandler(&stubBootcampService{})

	c, _ := newAuthTestContext(t, http.MethodPut, "/api/v1/bootcamps/bc_1/photo", "")
	c.SetParamNames("id")
	c.SetParamValues("bc_1")

	err := h.UploadPhoto(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a file, got %v", err)
	}
}
