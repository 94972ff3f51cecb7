package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/productmgmt/product-api/internal/core/domain"
)

type stubProductService struct {
	nextID  int64
	rows    map[int64]domain.Product
	failErr error

	updated []domain.Product
	deleted []int64
}

func newStubProductService() *stubProductService {
	return &stubProductService{rows: make(map[int64]domain.Product)}
}

func (s *stubProductService) seed(p domain.Product) domain.Product {
	s.nextID++
	p.ID = s.nextID
	s.rows[p.ID] = p
	return p
}

func (s *stubProductService) ListProducts(_ context.Context) ([]domain.Product, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	out := make([]domain.Product, 0, len(s.rows))
	for id := int64(1); id <= s.nextID; id++ {
		if p, ok := s.rows[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductService) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if s.failErr != nil {
		return nil, s.failErr
	}
	p, ok := s.rows[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (s *stubProductService) CreateProduct(_ context.Context, p *domain.Product) error {
	if s.failErr != nil {
		return s.failErr
	}
	*p = s.seed(*p)
	return nil
}

func (s *stubProductService) UpdateProduct(_ context.Context, p *domain.Product) error {
	if _, ok := s.rows[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	s.rows[p.ID] = *p
	s.updated = append(s.updated, *p)
	return nil
}

func (s *stubProductService) DeleteProduct(_ context.Context, id int64) error {
	delete(s.rows, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func strPtr(s string) *string { return &s }

func newContext(method, target, body string, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != code {
		t.Fatalf("expected HTTPError %d, got %v", code, err)
	}
}

func TestProductHandler_List(t *testing.T) {
	svc := newStubProductService()
	svc.seed(domain.Product{Name: "Keyboard", Price: 10})
	svc.seed(domain.Product{Name: "Mouse", Description: strPtr("wireless"), Price: 5.5})
	h := NewProductHandler(svc)

	c, rec := newContext(http.MethodGet, "/products", "", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0]["name"] != "Keyboard" || got[1]["name"] != "Mouse" {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if v, ok := got[0]["description"]; !ok || v != nil {
		t.Fatalf("expected description null, got %v (present=%v)", v, ok)
	}
}

func TestProductHandler_ListEmpty(t *testing.T) {
	h := NewProductHandler(newStubProductService())

	c, rec := newContext(http.MethodGet, "/products", "", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", rec.Body.String())
	}
}

func TestProductHandler_Get(t *testing.T) {
	svc := newStubProductService()
	p := svc.seed(domain.Product{Name: "Keyboard", Price: 10})
	h := NewProductHandler(svc)

	c, rec := newContext(http.MethodGet, "/products/1", "", "1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != p {
		t.Fatalf("expected %+v, got %+v", p, got)
	}
}

func TestProductHandler_GetNotFound(t *testing.T) {
	h := NewProductHandler(newStubProductService())

	c, rec := newContext(http.MethodGet, "/products/42", "", "42")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestProductHandler_InvalidID(t *testing.T) {
	h := NewProductHandler(newStubProductService())

	for name, call := range map[string]func(echo.Context) error{
		"get":    h.Get,
		"update": h.Update,
		"delete": h.Delete,
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, "/products/abc", `{"name":"x","price":1}`, "abc")
			expectHTTPError(t, call(c), http.StatusBadRequest)
		})
	}
}

func TestProductHandler_Create(t *testing.T) {
	svc := newStubProductService()
	h := NewProductHandler(svc)

	c, rec := newContext(http.MethodPost, "/products", `{"name":"Monitor","description":"27 inch","price":199.9}`, "")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/products/1" {
		t.Fatalf("expected Location /products/1, got %q", loc)
	}

	var got domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != 1 || got.Name != "Monitor" || got.Description == nil || *got.Description != "27 inch" || got.Price != 199.9 {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestProductHandler_CreateIgnoresClientID(t *testing.T) {
	svc := newStubProductService()
	svc.seed(domain.Product{Name: "existing"})
	h := NewProductHandler(svc)

	c, rec := newContext(http.MethodPost, "/products", `{"id":99,"name":"new","price":1}`, "")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/products/2" {
		t.Fatalf("expected store-assigned id 2, got Location %q", loc)
	}
}

func TestProductHandler_CreateAcceptsUnvalidatedInput(t *testing.T) {
	h := NewProductHandler(newStubProductService())

	c, rec := newContext(http.MethodPost, "/products", `{"name":"","price":-3}`, "")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProductHandler_CreateMalformedJSON(t *testing.T) {
	h := NewProductHandler(newStubProductService())

	c, _ := newContext(http.MethodPost, "/products", `{"name":`, "")
	expectHTTPError(t, h.Create(c), http.StatusBadRequest)

	c, _ = newContext(http.MethodPost, "/products", `{"name":"x","price":"cheap"}`, "")
	expectHTTPError(t, h.Create(c), http.StatusBadRequest)
}

func TestProductHandler_CreateServiceError(t *testing.T) {
	svc := newStubProductService()
	svc.failErr = errors.New("disk full")
	h := NewProductHandler(svc)

	c, _ := newContext(http.MethodPost, "/products", `{"name":"x","price":1}`, "")
	if err := h.Create(c); !errors.Is(err, svc.failErr) {
		t.Fatalf("expected service error to propagate, got %v", err)
	}
}

func TestProductHandler_Update(t *testing.T) {
	svc := newStubProductService()
	svc.seed(domain.Product{Name: "old", Description: strPtr("old desc"), Price: 1})
	h := NewProductHandler(svc)

	c, rec := newContext(http.MethodPut, "/products/1", `{"id":7,"name":"new","price":2.5}`, "1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}

	got := svc.rows[1]
	if got.ID != 1 || got.Name != "new" || got.Description != nil || got.Price != 2.5 {
		t.Fatalf("unexpected stored product: %+v", got)
	}
}

func TestProductHandler_UpdateNotFound(t *testing.T) {
	svc := newStubProductService()
	h := NewProductHandler(svc)

	c, rec := newContext(http.MethodPut, "/products/5", `{"name":"x","price":1}`, "5")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(svc.updated) != 0 {
		t.Fatalf("update should not reach the service, got %v", svc.updated)
	}
}

func TestProductHandler_Delete(t *testing.T) {
	svc := newStubProductService()
	svc.seed(domain.Product{Name: "gone"})
	h := NewProductHandler(svc)

	c, rec := newContext(http.MethodDelete, "/products/1", "", "1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, ok := svc.rows[1]; ok {
		t.Fatal("product still present after delete")
	}

	c, rec = newContext(http.MethodGet, "/products/1", "", "1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestProductHandler_DeleteNotFound(t *testing.T) {
	svc := newStubProductService()
	h := NewProductHandler(svc)

	c, rec := newContext(http.MethodDelete, "/products/3", "", "3")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if len(svc.deleted) != 0 {
		t.Fatalf("delete should not reach the service, got %v", svc.deleted)
	}
}
