package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain"
	cartrepo "storefront/internal/repository/cart"
	adminsvc "storefront/internal/service/admin"
	cartsvc "storefront/internal/service/cart"
	productsvc "storefront/internal/service/product"
	"storefront/internal/stockstream"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type stubProductRepo struct {
	products map[string]domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: map[string]domain.Product{}}
}

func (s *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProductRepo) ListByCategory(_ context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	p.ID = uuid.NewString()
	s.products[p.ID] = p
	return &p, nil
}

func (s *stubProductRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	if _, ok := s.products[p.ID]; !ok {
		return nil, domain.ErrNotFound
	}
	s.products[p.ID] = p
	return &p, nil
}

func (s *stubProductRepo) Delete(_ context.Context, id string) error {
	delete(s.products, id)
	return nil
}

func (s *stubProductRepo) SetStock(_ context.Context, id string, stock int) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Stock = stock
	s.products[id] = p
	return &p, nil
}

func (s *stubProductRepo) Count(_ context.Context) (int, error) { return len(s.products), nil }

type stubNewsletterRepo struct {
	subscribed map[string]bool
}

func (s *stubNewsletterRepo) Subscribe(_ context.Context, email string) (bool, error) {
	if s.subscribed[email] {
		return false, nil
	}
	s.subscribed[email] = true
	return true, nil
}

func (s *stubNewsletterRepo) Count(_ context.Context) (int, error) { return len(s.subscribed), nil }

type stubAdminUserRepo struct{}

func (stubAdminUserRepo) List(_ context.Context) ([]domain.User, error) { return nil, nil }
func (stubAdminUserRepo) Delete(_ context.Context, _ string) error      { return nil }
func (stubAdminUserRepo) Count(_ context.Context) (int, error)          { return 0, nil }
func (stubAdminUserRepo) CountAdmins(_ context.Context) (int, error)    { return 0, nil }

type testEnv struct {
	router   *gin.Engine
	products *stubProductRepo
	carts    *cartrepo.Memory
	tokens   *auth.JWTService
	admin    *adminsvc.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := newStubProductRepo()
	carts := cartrepo.NewMemory()
	tokens := auth.NewJWTService("test-secret", time.Hour, time.Hour)
	admin := adminsvc.New(stubAdminUserRepo{}, products, &stubNewsletterRepo{}, adminsvc.Settings{})

	deps := Deps{
		CartSvc:    cartsvc.New(carts, products),
		ProductSvc: productsvc.New(products, stockstream.NewHub()),
		AdminSvc:   admin,
		Newsletter: &stubNewsletterRepo{subscribed: map[string]bool{}},
		Stream:     stockstream.NewHub(),
		Tokens:     tokens,
	}
	logger := log.New(io.Discard, "", 0)
	return &testEnv{
		router:   buildRouter(logger, nil, deps, []string{"*"}),
		products: products,
		carts:    carts,
		tokens:   tokens,
		admin:    admin,
	}
}

func (e *testEnv) addProduct(t *testing.T, stock int) domain.Product {
	t.Helper()
	p := domain.Product{
		ID:         uuid.NewString(),
		Name:       "Demo T-Shirt",
		PriceCents: 1999,
		Currency:   "USD",
		Category:   "clothing",
		Stock:      stock,
	}
	e.products.products[p.ID] = p
	e.carts.PutProduct(p)
	return p
}

func (e *testEnv) accessToken(t *testing.T, userID string, admin bool) string {
	t.Helper()
	token, _, err := e.tokens.GenerateAccessToken(userID, "user@example.com", admin)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/cart", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/cart", "not.a.token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", rec.Code)
	}

	token := env.accessToken(t, "u1", false)
	rec = env.do(t, http.MethodGet, "/api/cart", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d: %s", rec.Code, rec.Body.String())
	}

	// Browsers send the token as a cookie instead.
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 with cookie token, got %d", recorder.Code)
	}
}

func TestAdminRequired(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/admin/dashboard", env.accessToken(t, "u1", false), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/admin/dashboard", env.accessToken(t, "u1", true), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCartEndpoints(t *testing.T) {
	env := newTestEnv(t)
	p := env.addProduct(t, 5)
	token := env.accessToken(t, "u1", false)

	rec := env.do(t, http.MethodPost, "/api/cart/items", token, map[string]any{
		"productId": p.ID,
		"quantity":  3,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on add, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["totalCents"] != float64(3*1999) {
		t.Fatalf("expected totalCents %d, got %v", 3*1999, body["totalCents"])
	}
	if body["total"] != "59.97" {
		t.Fatalf("expected total \"59.97\", got %v", body["total"])
	}

	// Merging past stock is rejected with the shortage details.
	rec = env.do(t, http.MethodPost, "/api/cart/items", token, map[string]any{
		"productId": p.ID,
		"quantity":  4,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on insufficient stock, got %d", rec.Code)
	}
	body = decodeBody(t, rec)
	if body["productId"] != p.ID || body["available"] != float64(5) {
		t.Fatalf("unexpected conflict body: %v", body)
	}

	rec = env.do(t, http.MethodPut, "/api/cart/items/"+p.ID, token, map[string]any{"quantity": 5})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/cart/checkout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on checkout, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/cart", token, nil)
	body = decodeBody(t, rec)
	if body["totalCents"] != float64(0) {
		t.Fatalf("expected empty cart after checkout, got %v", body)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	token := env.accessToken(t, "u1", false)

	rec := env.do(t, http.MethodPost, "/api/cart/checkout", token, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for empty cart, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "cart is empty" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRemoveCartItemIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	p := env.addProduct(t, 5)
	token := env.accessToken(t, "u1", false)

	rec := env.do(t, http.MethodPost, "/api/cart/items", token, map[string]any{
		"productId": p.ID,
		"quantity":  1,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: got %d", rec.Code)
	}

	for i := 0; i < 2; i++ {
		rec = env.do(t, http.MethodDelete, "/api/cart/items/"+p.ID, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("remove %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}

func TestValidateCouponEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/coupons/validate", "", map[string]any{
		"code":       "SAVE20",
		"totalCents": 10000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["valid"] != true || body["discountPercent"] != float64(20) {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["discountedTotalCents"] != float64(8000) {
		t.Fatalf("expected discounted total 8000, got %v", body["discountedTotalCents"])
	}

	rec = env.do(t, http.MethodPost, "/api/coupons/validate", "", map[string]any{"code": "NOPE"})
	body = decodeBody(t, rec)
	if body["valid"] != false {
		t.Fatalf("expected invalid code, got %v", body)
	}
}

func TestNewsletterSubscribe(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/newsletter/subscribe", "", map[string]any{"email": "nope"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad email, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/newsletter/subscribe", "", map[string]any{"email": "a@b.com"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 on first subscribe, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/newsletter/subscribe", "", map[string]any{"email": "A@b.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on repeat subscribe, got %d", rec.Code)
	}
}

func TestProductEndpoints(t *testing.T) {
	env := newTestEnv(t)
	p := env.addProduct(t, 5)

	rec := env.do(t, http.MethodGet, "/api/products", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/products/"+p.ID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["price"] != "19.99" {
		t.Fatalf("expected formatted price, got %v", body)
	}

	rec = env.do(t, http.MethodGet, "/api/products/"+uuid.NewString(), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", rec.Code)
	}
}

func TestMaintenanceGuard(t *testing.T) {
	env := newTestEnv(t)
	admin := env.accessToken(t, "a1", true)

	env.admin.UpdateSettings(adminsvc.Settings{MaintenanceMode: true})

	rec := env.do(t, http.MethodGet, "/api/products", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 during maintenance, got %d", rec.Code)
	}

	// The admin panel stays reachable so maintenance mode can be turned off.
	rec = env.do(t, http.MethodPut, "/api/admin/settings", admin, adminsvc.Settings{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating settings, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/products", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after maintenance ends, got %d", rec.Code)
	}
}
