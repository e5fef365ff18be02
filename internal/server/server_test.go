package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/farellandr/skatefund/config"
	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/middleware"
	"github.com/farellandr/skatefund/internal/models"
	"github.com/farellandr/skatefund/internal/services"
	"github.com/farellandr/skatefund/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestApp(t *testing.T, domainStatus, burst int) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	cfg := &config.Config{
		JWTSecret:                 testSecret,
		CORSAllowedOrigins:        []string{"*"},
		ContributionRatePerMinute: 60,
		ContributionBurst:         burst,
		DomainInvariantStatus:     domainStatus,
	}
	deps := &middleware.Deps{
		Services:  services.New(db, log),
		Errors:    helpers.ErrorMapper{DomainInvariantStatus: domainStatus},
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
	}
	limiter := middleware.NewRateLimiter(cfg.ContributionRatePerMinute, cfg.ContributionBurst)
	return &testApp{router: NewRouter(cfg, deps, limiter, log), db: db}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) login(t *testing.T) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/v1/register", "", gin.H{"login": "admin", "password": "secret1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: want=%d got=%d body=%s", http.StatusCreated, w.Code, w.Body.String())
	}
	w = a.do(t, http.MethodPost, "/v1/login", "", gin.H{"login": "admin", "password": "secret1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: want=%d got=%d body=%s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func TestContributionEndpoint(t *testing.T) {
	app := newTestApp(t, http.StatusInternalServerError, 10)
	trick := testutil.SeedTrick(t, context.Background(), app.db, "kickflip", 100, 40)

	w := app.do(t, http.MethodPost, "/v1/contributions", "", gin.H{
		"trickId": trick.ID, "amount": "25", "fanFullName": "Ana Lopez", "phone": "555-1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("contribute: want=%d got=%d body=%s", http.StatusCreated, w.Code, w.Body.String())
	}
	var resp struct {
		Trick models.Trick `json:"trick"`
	}
	decode(t, w, &resp)
	if resp.Trick.CurrentAmount != 65 {
		t.Fatalf("contribute: want=65 got=%d", resp.Trick.CurrentAmount)
	}

	w = app.do(t, http.MethodPost, "/v1/contributions", "", gin.H{
		"trickId": trick.ID, "amount": 5, "fanFullName": "Bea Ruiz", "phone": "555-1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("contribute reused phone: want=%d got=%d", http.StatusBadRequest, w.Code)
	}
	var errResp helpers.ErrorResponse
	decode(t, w, &errResp)
	if errResp.Code != "PhoneAlreadyUsed" {
		t.Fatalf("contribute reused phone: want=PhoneAlreadyUsed got=%q", errResp.Code)
	}
}

func TestContributionRateLimit(t *testing.T) {
	app := newTestApp(t, http.StatusInternalServerError, 1)
	trick := testutil.SeedTrick(t, context.Background(), app.db, "kickflip", 100, 0)

	body := gin.H{"trickId": trick.ID, "amount": "x", "fanFullName": "Ana Lopez", "phone": "555-1"}
	if w := app.do(t, http.MethodPost, "/v1/contributions", "", body); w.Code != http.StatusBadRequest {
		t.Fatalf("first request: want=%d got=%d", http.StatusBadRequest, w.Code)
	}
	if w := app.do(t, http.MethodPost, "/v1/contributions", "", body); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: want=%d got=%d", http.StatusTooManyRequests, w.Code)
	}
}

func TestActiveEventEndpoint(t *testing.T) {
	app := newTestApp(t, http.StatusInternalServerError, 10)

	if w := app.do(t, http.MethodGet, "/v1/events/active", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("active on empty: want=%d got=%d", http.StatusNotFound, w.Code)
	}

	event := testutil.SeedEvent(t, context.Background(), app.db, "Street Jam", true)
	w := app.do(t, http.MethodGet, "/v1/events/active", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("active: want=%d got=%d", http.StatusOK, w.Code)
	}
	var got models.Event
	decode(t, w, &got)
	if got.ID != event.ID {
		t.Fatalf("active: want=%s got=%s", event.ID, got.ID)
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := newTestApp(t, http.StatusInternalServerError, 10)

	if w := app.do(t, http.MethodPost, "/v1/tricks", "", gin.H{"name": "ollie"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: want=%d got=%d", http.StatusUnauthorized, w.Code)
	}
	if w := app.do(t, http.MethodPost, "/v1/tricks", "garbage", gin.H{"name": "ollie"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: want=%d got=%d", http.StatusUnauthorized, w.Code)
	}
}

func TestTrickWithoutActiveEventStatus(t *testing.T) {
	for _, status := range []int{http.StatusInternalServerError, http.StatusBadRequest} {
		app := newTestApp(t, status, 10)
		token := app.login(t)

		w := app.do(t, http.MethodPost, "/v1/tricks", token, gin.H{"name": "ollie", "objectiveAmount": 10})
		if w.Code != status {
			t.Fatalf("create trick without active event: want=%d got=%d", status, w.Code)
		}
		var errResp helpers.ErrorResponse
		decode(t, w, &errResp)
		if errResp.Code != "NoActiveEvent" {
			t.Fatalf("create trick without active event: want=NoActiveEvent got=%q", errResp.Code)
		}
	}
}

func TestAdminFlow(t *testing.T) {
	app := newTestApp(t, http.StatusInternalServerError, 10)
	token := app.login(t)

	w := app.do(t, http.MethodPost, "/v1/events", token, gin.H{"name": "Street Jam", "day": "2026-10-15", "active": true})
	if w.Code != http.StatusCreated {
		t.Fatalf("create event: want=%d got=%d body=%s", http.StatusCreated, w.Code, w.Body.String())
	}
	var event models.Event
	decode(t, w, &event)
	if event.DayString != "2026-10-15" || !event.Active {
		t.Fatalf("create event: unexpected %+v", event)
	}

	w = app.do(t, http.MethodPost, "/v1/tricks", token, gin.H{"name": "ollie", "objectiveAmount": 10})
	if w.Code != http.StatusCreated {
		t.Fatalf("create trick: want=%d got=%d body=%s", http.StatusCreated, w.Code, w.Body.String())
	}
	var trick models.Trick
	decode(t, w, &trick)

	w = app.do(t, http.MethodPost, "/v1/tricks", token, gin.H{"id": trick.ID, "name": "again"})
	var errResp helpers.ErrorResponse
	decode(t, w, &errResp)
	if w.Code != http.StatusBadRequest || errResp.Code != "idexists" {
		t.Fatalf("create trick with id: want=400/idexists got=%d/%q", w.Code, errResp.Code)
	}

	w = app.do(t, http.MethodPost, "/v1/fans", token, gin.H{"fullName": "Carl Diaz", "phone": "555-3"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create fan: want=%d got=%d body=%s", http.StatusCreated, w.Code, w.Body.String())
	}
	var fan models.Fan
	decode(t, w, &fan)

	path := "/v1/relations/event_fans/" + event.ID.String() + "/" + fan.ID.String()
	for i := 0; i < 2; i++ {
		w = app.do(t, http.MethodPut, path, token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("attach #%d: want=%d got=%d body=%s", i+1, http.StatusOK, w.Code, w.Body.String())
		}
	}
	var withFan models.Event
	decode(t, w, &withFan)
	if len(withFan.Fans) != 1 || len(withFan.Tricks) != 1 {
		t.Fatalf("attach: want 1 fan and 1 trick got=%d/%d", len(withFan.Fans), len(withFan.Tricks))
	}

	w = app.do(t, http.MethodDelete, path, token, nil)
	var withoutFan models.Event
	decode(t, w, &withoutFan)
	if w.Code != http.StatusOK || len(withoutFan.Fans) != 0 {
		t.Fatalf("detach: want=200 with no fans got=%d/%d", w.Code, len(withoutFan.Fans))
	}

	if w := app.do(t, http.MethodPut, "/v1/relations/spot_tricks/"+event.ID.String()+"/"+fan.ID.String(), token, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown relation: want=%d got=%d", http.StatusBadRequest, w.Code)
	}

	w = app.do(t, http.MethodPost, "/v1/events/"+event.ID.String()+"/images", token, gin.H{"title": "crowd", "image": "https://cdn.example.com/crowd.jpg"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add image: want=%d got=%d body=%s", http.StatusCreated, w.Code, w.Body.String())
	}
	var withPhoto models.Event
	decode(t, w, &withPhoto)
	if len(withPhoto.Photos) != 1 {
		t.Fatalf("add image: want 1 photo got=%d", len(withPhoto.Photos))
	}

	w = app.do(t, http.MethodDelete, "/v1/events/"+event.ID.String()+"/images/"+withPhoto.Photos[0].ID.String(), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete image: want=%d got=%d body=%s", http.StatusOK, w.Code, w.Body.String())
	}

	if w := app.do(t, http.MethodGet, "/v1/tricks/not-a-uuid", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id: want=%d got=%d", http.StatusBadRequest, w.Code)
	}
}

func TestProfileRoutes(t *testing.T) {
	app := newTestApp(t, http.StatusInternalServerError, 10)
	token := app.login(t)

	w := app.do(t, http.MethodPost, "/v1/players", token, gin.H{"firstName": "Lee", "lastName": "Park", "phone": "555-9"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create player: want=%d got=%d body=%s", http.StatusCreated, w.Code, w.Body.String())
	}
	var player models.Player
	decode(t, w, &player)
	if player.User == nil || player.User.Login != "555-9" {
		t.Fatalf("create player: unexpected user %+v", player.User)
	}

	w = app.do(t, http.MethodPut, "/v1/players/"+player.ID.String(), token, gin.H{"firstName": "Lee", "country": "KR"})
	if w.Code != http.StatusOK {
		t.Fatalf("update player: want=%d got=%d body=%s", http.StatusOK, w.Code, w.Body.String())
	}
	decode(t, w, &player)
	if player.User == nil || player.User.Country != "KR" {
		t.Fatalf("update player: unexpected user %+v", player.User)
	}

	w = app.do(t, http.MethodPost, "/v1/fans", token, gin.H{"fullName": "Dana Cruz", "phone": "555-5"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create fan: want=%d got=%d body=%s", http.StatusCreated, w.Code, w.Body.String())
	}
	var fan models.Fan
	decode(t, w, &fan)

	w = app.do(t, http.MethodPut, "/v1/fans/"+fan.ID.String(), token, gin.H{"fullName": "Dana Cruz", "login": "admin"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("update fan to taken login: want=%d got=%d", http.StatusBadRequest, w.Code)
	}
	var errResp helpers.ErrorResponse
	decode(t, w, &errResp)
	if errResp.Code != "LoginAlreadyUsed" {
		t.Fatalf("update fan to taken login: code=%q", errResp.Code)
	}

	w = app.do(t, http.MethodPut, "/v1/users/"+player.UserID.String(), token, gin.H{"login": "lee", "country": "KR"})
	if w.Code != http.StatusOK {
		t.Fatalf("update user: want=%d got=%d body=%s", http.StatusOK, w.Code, w.Body.String())
	}
	var user models.User
	decode(t, w, &user)
	if user.Login != "lee" {
		t.Fatalf("update user: want login=lee got=%q", user.Login)
	}

	w = app.do(t, http.MethodPost, "/v1/users/picture", token, gin.H{"image": "not an image"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("set picture invalid: want=%d got=%d", http.StatusBadRequest, w.Code)
	}
	w = app.do(t, http.MethodPost, "/v1/users/picture", token, gin.H{"image": "https://cdn.example.com/admin.jpg"})
	if w.Code != http.StatusOK {
		t.Fatalf("set picture: want=%d got=%d body=%s", http.StatusOK, w.Code, w.Body.String())
	}
	decode(t, w, &user)
	if user.Login != "admin" || user.Picture != "https://cdn.example.com/admin.jpg" {
		t.Fatalf("set picture: unexpected user %+v", user)
	}
}
