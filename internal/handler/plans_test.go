package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tdmsuite/insights/internal/plan"
)

func TestPlanList(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/plans", nil)
	rec := httptest.NewRecorder()

	if err := NewPlanHandler().List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Plans []plan.Plan `json:"plans"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Plans) != 4 {
		t.Fatalf("want 4 plans, got %d", len(resp.Plans))
	}
	if resp.Plans[0].Name != "Freemium" || resp.Plans[1].Name != "Pro" {
		t.Fatalf("catalog out of order: %+v", resp.Plans)
	}
}

func TestPlanRevenueModels(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/plans/revenue-models", nil)
	rec := httptest.NewRecorder()

	if err := NewPlanHandler().RevenueModels(e.NewContext(req, rec)); err != nil {
		t.Fatalf("RevenueModels: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Reference []plan.RevenueModel `json:"reference"`
		Features  []featureModelsPart `json:"features"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Reference) != 21 {
		t.Fatalf("reference entries = %d", len(resp.Reference))
	}
	if len(resp.Features) != 8 {
		t.Fatalf("feature entries = %d", len(resp.Features))
	}
	for _, f := range resp.Features {
		if len(f.Models) == 0 {
			t.Fatalf("feature %q has no enabled models", f.Feature)
		}
	}
}

func simulateRequest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/plans/simulate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := NewPlanHandler().Simulate(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	return rec
}

func TestPlanSimulate(t *testing.T) {
	rec := simulateRequest(t, `{"plan":"Pro","customers":200,"avg_gmv":500,"annual":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res plan.SimulationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if math.Abs(res.SaaSRevenue-200*290.0/12) > 1e-6 {
		t.Fatalf("saas revenue = %v", res.SaaSRevenue)
	}
	if math.Abs(res.MarketplaceRevenue-200*500*0.08) > 1e-6 {
		t.Fatalf("marketplace revenue = %v", res.MarketplaceRevenue)
	}
	if math.Abs(res.AnnualRevenue-res.MonthlyRevenue*12) > 1e-6 {
		t.Fatalf("annual revenue = %v", res.AnnualRevenue)
	}
}

func TestPlanSimulateUnknownPlan(t *testing.T) {
	if rec := simulateRequest(t, `{"plan":"Platinum","customers":10}`); rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPlanSimulateInvalidInput(t *testing.T) {
	if rec := simulateRequest(t, `{"plan":"Pro","customers":-5}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
