// file: internals/features/school/schools/controller/school_controller_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mattilda_backend/internals/configs"
	database "mattilda_backend/internals/databases"
	"mattilda_backend/internals/features/school/schools/model"
	helper "mattilda_backend/internals/helpers"
	routes "mattilda_backend/internals/route"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	token string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrateAll(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	cfg := &configs.AppConfig{
		JWTSecret:           "test-secret",
		AccessTokenTTL:      time.Hour,
		AIRequestsPerMinute: 100,
	}
	app := fiber.New(fiber.Config{ErrorHandler: helper.FiberErrorHandler})
	routes.SetupRoutes(app, db, cfg)

	env := &testEnv{app: app, db: db}
	env.request(t, http.MethodPost, "/auth/register", fiber.Map{
		"username": "backoffice",
		"password": "supersecret",
	})
	_, envelope := env.request(t, http.MethodPost, "/auth/login", fiber.Map{
		"username": "backoffice",
		"password": "supersecret",
	})
	var tokenData struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(envelope["data"], &tokenData); err != nil || tokenData.AccessToken == "" {
		t.Fatalf("login token: err=%v data=%s", err, envelope["data"])
	}
	env.token = tokenData.AccessToken
	return env
}

func (e *testEnv) request(t *testing.T, method, path string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	envelope := map[string]json.RawMessage{}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return resp, envelope
}

func TestSchoolSoftDelete(t *testing.T) {
	env := newTestEnv(t)

	resp, envelope := env.request(t, http.MethodPost, "/api/a/schools", fiber.Map{
		"name": "Gamma Prep",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created struct {
		ID       string `json:"id"`
		IsActive bool   `json:"is_active"`
	}
	if err := json.Unmarshal(envelope["data"], &created); err != nil {
		t.Fatalf("decode created school: %v", err)
	}
	if !created.IsActive {
		t.Fatalf("new school should be active")
	}

	resp, _ = env.request(t, http.MethodDelete, "/api/a/schools/"+created.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	// baris masih ada, hanya nonaktif
	var school model.School
	if err := env.db.First(&school, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("soft-deleted school should still exist: %v", err)
	}
	if school.IsActive {
		t.Fatalf("school should be inactive after delete")
	}

	// hilang dari list
	resp, envelope = env.request(t, http.MethodGet, "/api/u/schools", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var listData struct {
		Schools []json.RawMessage `json:"schools"`
	}
	if err := json.Unmarshal(envelope["data"], &listData); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listData.Schools) != 0 {
		t.Fatalf("list should hide inactive schools, got %d rows", len(listData.Schools))
	}

	// delete kedua → 404
	resp, _ = env.request(t, http.MethodDelete, "/api/a/schools/"+created.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", resp.StatusCode)
	}
}
