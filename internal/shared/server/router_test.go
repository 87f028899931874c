package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"healthoffice-backend/internal/bootstrap"
	"healthoffice-backend/internal/shared/config"
)

func buildApp(t *testing.T, staticDir string) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", "dev")

	cfg := config.Config{
		Port:            "0",
		Env:             "dev",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		TokenTTL:        time.Hour,
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		StaticDir:       staticDir,
		SeedOnBoot:      true,
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func login(t *testing.T, router http.Handler, path string, body any) string {
	t.Helper()
	resp := doJSON(t, router, http.MethodPost, path, "", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", path, resp.Code, resp.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if out.Token == "" {
		t.Fatalf("expected token in login response")
	}
	return out.Token
}

func TestGateEnforcesActorPrefixes(t *testing.T) {
	app := buildApp(t, "")
	router := app.Router

	// Public route needs no token.
	resp := doJSON(t, router, http.MethodGet, "/api/v1/health", "", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.Code)
	}

	// Admin prefix without a token.
	resp = doJSON(t, router, http.MethodGet, "/api/v1/admin/facilities", "", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	// Admin prefix with a garbage token.
	resp = doJSON(t, router, http.MethodGet, "/api/v1/admin/facilities", "not-a-token", nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with invalid token, got %d", resp.Code)
	}

	// Admin prefix with a portal token.
	portalToken := login(t, router, "/api/v1/auth/portal/login", map[string]string{
		"phoneNumber": "777777777",
		"password":    "password",
	})
	resp = doJSON(t, router, http.MethodGet, "/api/v1/admin/facilities", portalToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for portal token on admin path, got %d", resp.Code)
	}

	// Portal prefix with an admin token.
	adminToken := login(t, router, "/api/v1/auth/admin/login", map[string]string{
		"username": "admin",
		"password": "password",
	})
	resp = doJSON(t, router, http.MethodGet, "/api/v1/portal/notifications", adminToken, nil)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for admin token on portal path, got %d", resp.Code)
	}
}

func TestLicensingWorkflowEndToEnd(t *testing.T) {
	app := buildApp(t, "")
	router := app.Router

	portalToken := login(t, router, "/api/v1/auth/portal/login", map[string]string{
		"phoneNumber": "777777777",
		"password":    "password",
	})
	adminToken := login(t, router, "/api/v1/auth/admin/login", map[string]string{
		"username": "admin",
		"password": "password",
	})

	// Facility owner submits a license application.
	resp := doJSON(t, router, http.MethodPost, "/api/v1/portal/applications", portalToken, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var submitted struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	if submitted.Status != "SUBMITTED" {
		t.Fatalf("expected SUBMITTED, got %s", submitted.Status)
	}

	// Reviewer moves it under review.
	resp = doJSON(t, router, http.MethodPut, "/api/v1/admin/applications/"+submitted.ID+"/status", adminToken, map[string]string{
		"status": "UNDER_REVIEW",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("set status: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// Pick an inspector.
	resp = doJSON(t, router, http.MethodGet, "/api/v1/admin/inspectors", adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("inspectors: expected 200, got %d", resp.Code)
	}
	var inspectors []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&inspectors); err != nil {
		t.Fatalf("decode inspectors: %v", err)
	}
	if len(inspectors) == 0 {
		t.Fatalf("expected at least one inspector")
	}

	// Schedule the inspection; the seeded hospital template has three items.
	resp = doJSON(t, router, http.MethodPost, "/api/v1/admin/inspections", adminToken, map[string]any{
		"applicationId": submitted.ID,
		"inspectorId":   inspectors[0].ID,
		"scheduledDate": time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339),
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("schedule: expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var scheduled struct {
		ID    string `json:"id"`
		Items []struct {
			ID       string   `json:"id"`
			MaxScore float64  `json:"maxScore"`
			Score    *float64 `json:"score"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&scheduled); err != nil {
		t.Fatalf("decode schedule response: %v", err)
	}
	if len(scheduled.Items) != 3 {
		t.Fatalf("expected 3 score rows from hospital template, got %d", len(scheduled.Items))
	}

	// Complete with one line scored.
	resp = doJSON(t, router, http.MethodPut, "/api/v1/admin/inspections/"+scheduled.ID+"/complete", adminToken, map[string]any{
		"overallScore": 38.5,
		"notes":        "passed with remarks",
		"items": []map[string]any{
			{"id": scheduled.Items[0].ID, "score": 9.0},
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	// Application ends up inspection-completed.
	resp = doJSON(t, router, http.MethodGet, "/api/v1/admin/applications/"+submitted.ID, adminToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("get application: expected 200, got %d", resp.Code)
	}
	var after struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&after); err != nil {
		t.Fatalf("decode application: %v", err)
	}
	if after.Status != "INSPECTION_COMPLETED" {
		t.Fatalf("expected INSPECTION_COMPLETED, got %s", after.Status)
	}

	// The submitting user saw both transitions.
	resp = doJSON(t, router, http.MethodGet, "/api/v1/portal/notifications", portalToken, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("notifications: expected 200, got %d", resp.Code)
	}
	var page struct {
		Items []struct {
			TitleEn string `json:"titleEn"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(page.Items) < 2 {
		t.Fatalf("expected at least 2 notifications, got %d", len(page.Items))
	}
}

func TestSpaFallback(t *testing.T) {
	staticDir := t.TempDir()
	index := []byte("<html><body>portal</body></html>")
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), index, 0o644); err != nil {
		t.Fatalf("write index.html: %v", err)
	}

	app := buildApp(t, staticDir)
	router := app.Router

	// HTML client on an unknown path gets the SPA shell.
	req := httptest.NewRequest(http.MethodGet, "/licenses/123", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for SPA route, got %d", resp.Code)
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("portal")) {
		t.Fatalf("expected index.html content, got %q", resp.Body.String())
	}

	// API-looking paths stay JSON 404s.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/does-not-exist", nil)
	req.Header.Set("Accept", "text/html")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown API path, got %d", resp.Code)
	}

	// Non-HTML clients on unknown paths get JSON 404s too.
	req = httptest.NewRequest(http.MethodGet, "/licenses/123", nil)
	req.Header.Set("Accept", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-HTML client, got %d", resp.Code)
	}
}
