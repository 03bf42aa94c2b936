package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/feastly/feastly-backend/pkg/enums"
	pkgerrors "github.com/feastly/feastly-backend/pkg/errors"
)

func TestAdminOrderStatusUpdateForwardsOverride(t *testing.T) {
	record := sampleOrder()
	record.Status = enums.OrderStatusDelivered
	svc := &stubOrdersService{record: record}
	handler := AdminOrderStatusUpdate(svc, nil)

	target := "/api/admin/v1/orders/" + record.ID.String() + "/status"
	body := strings.NewReader(`{"status":"delivered","override":true}`)
	req := withURLParams(httptest.NewRequest(http.MethodPut, target, body), map[string]string{"orderID": record.ID.String()})
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotStatus != enums.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", svc.gotStatus)
	}
	if !svc.gotOverride {
		t.Fatalf("expected override to be forwarded")
	}
}

func TestAdminOrderStatusUpdateRejectsUnknownStatus(t *testing.T) {
	handler := AdminOrderStatusUpdate(&stubOrdersService{}, nil)

	target := "/api/admin/v1/orders/" + uuid.NewString() + "/status"
	req := withURLParams(httptest.NewRequest(http.MethodPut, target, strings.NewReader(`{"status":"lost","override":true}`)), map[string]string{"orderID": uuid.NewString()})
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminOrderStatusUpdateSurfacesTransitionConflict(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "invalid status transition")}
	handler := AdminOrderStatusUpdate(svc, nil)

	target := "/api/admin/v1/orders/" + uuid.NewString() + "/status"
	req := withURLParams(httptest.NewRequest(http.MethodPut, target, strings.NewReader(`{"status":"delivered"}`)), map[string]string{"orderID": uuid.NewString()})
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}
