package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	cartsvc "github.com/feastly/feastly-backend/internal/cart"
	"github.com/feastly/feastly-backend/internal/identity"
	"github.com/feastly/feastly-backend/pkg/db/models"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
)

type stubCartService struct {
	record *models.Cart
	err    error

	gotOwner   identity.FlexID
	gotProduct identity.FlexID
	gotInput   cartsvc.CandidateLine
	gotQty     int
}

func (s *stubCartService) Get(ctx context.Context, owner identity.FlexID) (*models.Cart, error) {
	s.gotOwner = owner
	return s.record, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, owner identity.FlexID, input cartsvc.CandidateLine) (*models.Cart, error) {
	s.gotOwner = owner
	s.gotProduct = input.ProductID
	s.gotInput = input
	return s.record, s.err
}

func (s *stubCartService) SetQuantity(ctx context.Context, owner, product identity.FlexID, quantity int) (*models.Cart, error) {
	s.gotOwner = owner
	s.gotProduct = product
	s.gotQty = quantity
	return s.record, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, owner, product identity.FlexID) (*models.Cart, error) {
	s.gotOwner = owner
	s.gotProduct = product
	return s.record, s.err
}

func (s *stubCartService) Clear(ctx context.Context, owner identity.FlexID) (*models.Cart, error) {
	s.gotOwner = owner
	return s.record, s.err
}

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rc := chi.NewRouteContext()
	for key, value := range params {
		rc.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestCartGetReturnsCartWithTotals(t *testing.T) {
	record := &models.Cart{
		ID:      uuid.New(),
		OwnerID: "42",
		Lines: []models.CartLine{
			{ID: uuid.New(), ProductID: "7", Name: "Paneer Tikka", UnitPriceCents: 850, Quantity: 2},
		},
	}
	svc := &stubCartService{record: record}
	handler := CartGet(svc, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/cart/42", nil), map[string]string{"ownerID": "42"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotOwner.String() != "42" {
		t.Fatalf("expected owner 42, got %q", svc.gotOwner)
	}

	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.SubtotalCents != 1700 {
		t.Fatalf("expected subtotal 1700, got %d", envelope.Data.SubtotalCents)
	}
	if envelope.Data.Subtotal != "17.00" {
		t.Fatalf("expected formatted subtotal 17.00, got %s", envelope.Data.Subtotal)
	}
	if envelope.Data.Items[0].LineTotal != "17.00" {
		t.Fatalf("expected line total 17.00, got %s", envelope.Data.Items[0].LineTotal)
	}
}

func TestCartAddItemAcceptsNumericIdentifiers(t *testing.T) {
	svc := &stubCartService{record: &models.Cart{ID: uuid.New(), OwnerID: "42"}}
	handler := CartAddItem(svc, nil)

	body := strings.NewReader(`{"ownerId": 42, "item": {"productId": 7, "name": "Samosa", "unitPrice": "3.00"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotOwner.String() != "42" || svc.gotProduct.String() != "7" {
		t.Fatalf("unexpected identifiers: owner=%q product=%q", svc.gotOwner, svc.gotProduct)
	}
	if svc.gotInput.UnitPriceCents != 300 {
		t.Fatalf("expected 300 cents, got %d", svc.gotInput.UnitPriceCents)
	}
}

func TestCartAddItemRejectsMissingItem(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"ownerId":"42"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemRejectsSubCentPrice(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	body := strings.NewReader(`{"ownerId":"42","item":{"productId":"7","name":"Samosa","unitPrice":"3.001"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartSetQuantityRequiresQuantity(t *testing.T) {
	handler := CartSetQuantity(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items", strings.NewReader(`{"ownerId":"42","productId":"7"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartSetQuantityPassesZeroThrough(t *testing.T) {
	svc := &stubCartService{record: &models.Cart{ID: uuid.New(), OwnerID: "42"}}
	handler := CartSetQuantity(svc, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items", strings.NewReader(`{"ownerId":"42","productId":"7","quantity":0}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotQty != 0 {
		t.Fatalf("expected quantity 0 forwarded, got %d", svc.gotQty)
	}
}

func TestCartRemoveItemUsesPathParams(t *testing.T) {
	svc := &stubCartService{record: &models.Cart{ID: uuid.New(), OwnerID: "42"}}
	handler := CartRemoveItem(svc, nil)

	req := withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/42/items/7", nil), map[string]string{
		"ownerID":   "42",
		"productID": "7",
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotProduct.String() != "7" {
		t.Fatalf("expected product 7, got %q", svc.gotProduct)
	}
}

func TestCartHandlersSurfaceServiceErrors(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "item is unavailable")}
	handler := CartAddItem(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"ownerId":"42","item":{"productId":"7","name":"Samosa","unitPrice":"3.00"}}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}
