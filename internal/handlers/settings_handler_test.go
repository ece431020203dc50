package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"kukkaro/internal/models"
	"kukkaro/internal/services"
)

// --- mock settings service ---

type mockSettingsService struct {
	getSettingsFn    func(ctx context.Context) (*models.Settings, error)
	updateSettingsFn func(ctx context.Context, update services.SettingsUpdate) (*models.Settings, error)
}

func (m *mockSettingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	if m.getSettingsFn != nil {
		return m.getSettingsFn(ctx)
	}
	s := models.DefaultSettings()
	return &s, nil
}

func (m *mockSettingsService) UpdateSettings(ctx context.Context, update services.SettingsUpdate) (*models.Settings, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(ctx, update)
	}
	s := models.DefaultSettings()
	return &s, nil
}

var _ services.SettingsServicer = (*mockSettingsService)(nil)

func setupSettingsRouter(handler *SettingsHandler) *gin.Engine {
	r := newTestRouter()
	r.GET("/settings", handler.GetSettings)
	r.PUT("/settings", handler.UpdateSettings)
	return r
}

func TestSettingsHandler_GetSettings(t *testing.T) {
	r := setupSettingsRouter(NewSettingsHandler(&mockSettingsService{}))

	rec := doRequest(r, "GET", "/settings", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	if result["budgetEnabled"] != false {
		t.Errorf("expected budgetEnabled false, got %v", result["budgetEnabled"])
	}
	if result["budgetAmount"] != float64(0) {
		t.Errorf("expected budgetAmount 0, got %v", result["budgetAmount"])
	}
}

func TestSettingsHandler_UpdateSettings(t *testing.T) {
	t.Run("parses comma amount", func(t *testing.T) {
		var got services.SettingsUpdate
		svc := &mockSettingsService{
			updateSettingsFn: func(_ context.Context, update services.SettingsUpdate) (*models.Settings, error) {
				got = update
				s := models.DefaultSettings()
				s.BudgetEnabled = true
				s.BudgetAmount = *update.BudgetAmount
				return &s, nil
			},
		}
		r := setupSettingsRouter(NewSettingsHandler(svc))

		rec := doRequest(r, "PUT", "/settings", `{"budgetEnabled":true,"budgetAmount":"1500,50"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.BudgetEnabled == nil || !*got.BudgetEnabled {
			t.Error("expected budgetEnabled to be passed")
		}
		if got.BudgetAmount == nil || !got.BudgetAmount.Equal(decimal.RequireFromString("1500.5")) {
			t.Errorf("unexpected amount %v", got.BudgetAmount)
		}
		if parseJSON(t, rec)["budgetAmount"] != 1500.5 {
			t.Error("expected budgetAmount 1500.5 in response")
		}
	})

	t.Run("omitted fields stay nil", func(t *testing.T) {
		var got services.SettingsUpdate
		svc := &mockSettingsService{
			updateSettingsFn: func(_ context.Context, update services.SettingsUpdate) (*models.Settings, error) {
				got = update
				s := models.DefaultSettings()
				return &s, nil
			},
		}
		r := setupSettingsRouter(NewSettingsHandler(svc))

		rec := doRequest(r, "PUT", "/settings", `{"budgetEnabled":false}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.BudgetAmount != nil {
			t.Errorf("expected no amount, got %v", got.BudgetAmount)
		}
	})

	t.Run("returns 400 on negative amount", func(t *testing.T) {
		r := setupSettingsRouter(NewSettingsHandler(&mockSettingsService{}))

		rec := doRequest(r, "PUT", "/settings", `{"budgetAmount":-10}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "VALIDATION_ERROR")
	})

	t.Run("returns 400 on non boolean flag", func(t *testing.T) {
		r := setupSettingsRouter(NewSettingsHandler(&mockSettingsService{}))

		rec := doRequest(r, "PUT", "/settings", `{"budgetEnabled":"yes"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := parseJSON(t, rec)["error"]; msg != "Invalid value for budgetEnabled" {
			t.Errorf("unexpected message %v", msg)
		}
	})
}
