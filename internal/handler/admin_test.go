package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/tdmsuite/insights/internal/config"
	"github.com/tdmsuite/insights/internal/repository"
	"github.com/tdmsuite/insights/internal/utils"
)

func adminConfig(t *testing.T, key string) config.Config {
	t.Helper()
	hash, err := utils.HashAdminKey(key, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash admin key: %v", err)
	}
	cfg := testConfig()
	cfg.AdminKeyHash = hash
	return cfg
}

func adminRequest(t *testing.T, h *AdminHandler, key, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/audit"+query, nil)
	if key != "" {
		req.Header.Set("X-Admin-Key", key)
	}
	rec := httptest.NewRecorder()
	if err := h.ListAudit(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListAudit: %v", err)
	}
	return rec
}

func TestAdminListAudit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id,occurred_at").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "occurred_at", "actor", "action", "detail", "created_at"}).
			AddRow(1, now, "user_00042", "insights.exported", "watermark=abcd", now))

	h := NewAdminHandler(adminConfig(t, "letmein"), repository.NewAuditRepo(db))

	rec := adminRequest(t, h, "letmein", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Events []auditEventPart `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Action != "insights.exported" {
		t.Fatalf("events = %+v", resp.Events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAdminListAuditRejectsBadKey(t *testing.T) {
	h := NewAdminHandler(adminConfig(t, "letmein"), nil)

	if rec := adminRequest(t, h, "wrong", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad key status = %d, want 401", rec.Code)
	}
	if rec := adminRequest(t, h, "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing key status = %d, want 401", rec.Code)
	}
}

func TestAdminListAuditNoKeyConfigured(t *testing.T) {
	h := NewAdminHandler(testConfig(), nil)
	if rec := adminRequest(t, h, "anything", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminListAuditStorageUnavailable(t *testing.T) {
	h := NewAdminHandler(adminConfig(t, "letmein"), nil)
	if rec := adminRequest(t, h, "letmein", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestAdminListAuditCapsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT id,occurred_at").
		WithArgs(500).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "occurred_at", "actor", "action", "detail", "created_at"}))

	h := NewAdminHandler(adminConfig(t, "letmein"), repository.NewAuditRepo(db))
	if rec := adminRequest(t, h, "letmein", "?limit=9999"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestAdminListAuditInvalidLimit(t *testing.T) {
	h := NewAdminHandler(adminConfig(t, "letmein"), repository.NewAuditRepo(nil))
	if rec := adminRequest(t, h, "letmein", "?limit=zero"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
