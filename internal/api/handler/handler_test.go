package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"labportal/internal/api/middleware"
	"labportal/internal/dto"
	"labportal/internal/service"
	pkgerrors "labportal/pkg/errors"
	"labportal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.TokenResponse
	loginErr         error
	refreshResult    *dto.TokenResponse
	refreshErr       error
	refreshGot       string
	logoutErr        error
	logoutJTI        string
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, token string) (*dto.TokenResponse, error) {
	m.refreshGot = token
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, jti string, _ time.Time) error {
	m.logoutJTI = jti
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}

// ── Mock JobService ──

type mockJobService struct {
	view      *dto.JobView
	err       error
	list      []dto.JobSummary
	total     int64
	gotLab    string
	gotNumber string
	gotPhase  string
}

func (m *mockJobService) Assemble(_ context.Context, number string) (*dto.JobView, error) {
	m.gotNumber = number
	return m.view, m.err
}
func (m *mockJobService) List(_ context.Context, lab string, req *dto.JobListRequest) ([]dto.JobSummary, int64, error) {
	m.gotLab = lab
	m.gotPhase = req.Phase
	return m.list, m.total, m.err
}
func (m *mockJobService) Create(_ context.Context, lab string, req *dto.CreateJobRequest) (*dto.JobView, error) {
	m.gotLab = lab
	m.gotNumber = req.Number
	return m.view, m.err
}
func (m *mockJobService) SaveAttributes(_ context.Context, number string, _ *dto.JobAttributesRequest) (*dto.JobView, error) {
	m.gotNumber = number
	return m.view, m.err
}

// ── Mock RegistrationService ──

type mockRegistrationService struct {
	reg       *dto.RegistrationResponse
	list      []dto.RegistrationResponse
	err       error
	gotID     int64
	gotNumber string
}

func (m *mockRegistrationService) List(_ context.Context, number string) ([]dto.RegistrationResponse, error) {
	m.gotNumber = number
	return m.list, m.err
}
func (m *mockRegistrationService) Create(_ context.Context, _, number string, _ *dto.RegistrationRequest) (*dto.RegistrationResponse, error) {
	m.gotNumber = number
	return m.reg, m.err
}
func (m *mockRegistrationService) Update(_ context.Context, number string, id int64, _ *dto.RegistrationRequest) (*dto.RegistrationResponse, error) {
	m.gotNumber, m.gotID = number, id
	return m.reg, m.err
}
func (m *mockRegistrationService) Delete(_ context.Context, number string, id int64) error {
	m.gotNumber, m.gotID = number, id
	return m.err
}

// ── Mock DeliveryService ──

type mockDeliveryService struct {
	tomorrow *dto.TomorrowDeliveriesResponse
	ics      string
	err      error
}

func (m *mockDeliveryService) Tomorrow(_ context.Context, _ string) (*dto.TomorrowDeliveriesResponse, error) {
	return m.tomorrow, m.err
}
func (m *mockDeliveryService) Calendar(_ context.Context, _ string) (string, error) {
	return m.ics, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportJobs(_ context.Context, _ string, _ *dto.JobListRequest) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

// withAuth 模拟 JWTAuth + SelfScope 注入的上下文
func withAuth(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "test-user-id")
		c.Set(middleware.CtxUsername, "ana")
		c.Set(middleware.CtxTokenJTI, "test-jti")
		c.Set(middleware.CtxTokenExp, time.Now().Add(15*time.Minute))
		c.Set(middleware.CtxLab, "LAB01")
		next(c)
	}
}

func serve(method, route, target string, body io.Reader, h gin.HandlerFunc) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, route, h)

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.TokenResponse{
			AccessToken:  "test-access-token",
			RefreshToken: "test-refresh-token",
			ExpiresIn:    900,
		},
	}
	h := NewAuthHandler(mock, nil)

	w := serve("POST", "/auth/login", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "ana",
		Password: "Test1234",
	}), h.Login)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}

	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			found = true
			if c.Value != "test-refresh-token" || !c.HttpOnly {
				t.Errorf("unexpected refresh cookie: %+v", c)
			}
		}
	}
	if !found {
		t.Error("expected refresh_token cookie to be set")
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	w := serve("POST", "/auth/login", "/auth/login", strings.NewReader("invalid json"), h.Login)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials}, nil)

	w := serve("POST", "/auth/login", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "ana",
		Password: "wrong",
	}), h.Login)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if resp := parseResponse(w); resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_StoreDown(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: pkgerrors.Unavailable("authdb", errors.New("down"))}, nil)

	w := serve("POST", "/auth/login", "/auth/login", jsonBody(dto.LoginRequest{
		Username: "ana",
		Password: "Test1234",
	}), h.Login)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_FromBody(t *testing.T) {
	mock := &mockAuthService{refreshResult: &dto.TokenResponse{AccessToken: "new-access", RefreshToken: "new-refresh"}}
	h := NewAuthHandler(mock, nil)

	w := serve("POST", "/auth/refresh", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{RefreshToken: "old-refresh"}), h.RefreshToken)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.refreshGot != "old-refresh" {
		t.Errorf("expected token from body, got %q", mock.refreshGot)
	}
}

func TestAuthHandler_RefreshToken_FromCookie(t *testing.T) {
	mock := &mockAuthService{refreshResult: &dto.TokenResponse{AccessToken: "new-access", RefreshToken: "new-refresh"}}
	h := NewAuthHandler(mock, nil)

	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	req := httptest.NewRequest("POST", "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.refreshGot != "cookie-refresh" {
		t.Errorf("expected token from cookie, got %q", mock.refreshGot)
	}
}

func TestAuthHandler_RefreshToken_Missing(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	w := serve("POST", "/auth/refresh", "/auth/refresh", jsonBody(map[string]string{}), h.RefreshToken)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{refreshErr: service.ErrInvalidToken}, nil)

	w := serve("POST", "/auth/refresh", "/auth/refresh", jsonBody(dto.RefreshTokenRequest{RefreshToken: "x"}), h.RefreshToken)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	mock := &mockAuthService{}
	h := NewAuthHandler(mock, nil)

	w := serve("POST", "/auth/logout", "/auth/logout", nil, withAuth(h.Logout))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if mock.logoutJTI != "test-jti" {
		t.Errorf("expected jti test-jti, got %q", mock.logoutJTI)
	}
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	mock := &mockAuthService{getCurrentResult: &dto.UserResponse{ID: "test-user-id", Username: "ana", Lab: "LAB01"}}
	h := NewAuthHandler(mock, nil)

	w := serve("GET", "/auth/me", "/auth/me", nil, withAuth(h.GetCurrentUser))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_GetCurrentUser_NoAuth(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, nil)

	w := serve("GET", "/auth/me", "/auth/me", nil, h.GetCurrentUser)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// JobHandler Tests
// ═══════════════════════════════════════════════════════════

func TestJobHandler_ListJobs(t *testing.T) {
	mock := &mockJobService{list: []dto.JobSummary{{Number: "24001"}}, total: 41}
	h := NewJobHandler(mock)

	w := serve("GET", "/users/:id/jobs", "/users/u/jobs?phase=proof&page=2&page_size=20", nil, withAuth(h.ListJobs))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if mock.gotLab != "LAB01" || mock.gotPhase != "proof" {
		t.Errorf("unexpected lab/phase: %q %q", mock.gotLab, mock.gotPhase)
	}

	var body struct {
		Data response.PageData `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Data.Pagination.TotalPages != 3 || body.Data.Pagination.Page != 2 {
		t.Errorf("unexpected pagination: %+v", body.Data.Pagination)
	}
}

func TestJobHandler_ListJobs_InvalidPhase(t *testing.T) {
	h := NewJobHandler(&mockJobService{})

	w := serve("GET", "/users/:id/jobs", "/users/u/jobs?phase=archived", nil, withAuth(h.ListJobs))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestJobHandler_ListJobs_NoLab(t *testing.T) {
	h := NewJobHandler(&mockJobService{})

	w := serve("GET", "/users/:id/jobs", "/users/u/jobs", nil, h.ListJobs)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestJobHandler_GetJob_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"ok", nil, http.StatusOK},
		{"validation", service.ErrInvalidJobNumber, http.StatusBadRequest},
		{"not found", service.ErrJobNotFound, http.StatusNotFound},
		{"store down", pkgerrors.Unavailable("optimus", errors.New("down")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockJobService{view: &dto.JobView{Number: "24001", Known: true}, err: tt.err}
			h := NewJobHandler(mock)

			w := serve("GET", "/users/:id/jobs/:number", "/users/u/jobs/24001", nil, withAuth(h.GetJob))

			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
			if mock.gotNumber != "24001" {
				t.Errorf("expected number 24001, got %q", mock.gotNumber)
			}
		})
	}
}

func TestJobHandler_CreateJob(t *testing.T) {
	mock := &mockJobService{view: &dto.JobView{Number: "24100", Known: true}}
	h := NewJobHandler(mock)

	w := serve("POST", "/users/:id/jobs", "/users/u/jobs", jsonBody(map[string]interface{}{
		"number": "24100",
		"title1": "Rótulo",
	}), withAuth(h.CreateJob))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if mock.gotLab != "LAB01" || mock.gotNumber != "24100" {
		t.Errorf("unexpected lab/number: %q %q", mock.gotLab, mock.gotNumber)
	}
}

func TestJobHandler_CreateJob_Conflict(t *testing.T) {
	h := NewJobHandler(&mockJobService{err: service.ErrJobExists})

	w := serve("POST", "/users/:id/jobs", "/users/u/jobs", jsonBody(map[string]interface{}{"number": "24100"}), withAuth(h.CreateJob))

	if w.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", w.Code)
	}
}

func TestJobHandler_CreateJob_ForeignNumberDenied(t *testing.T) {
	h := NewJobHandler(&mockJobService{err: service.ErrJobDenied})

	w := serve("POST", "/users/:id/jobs", "/users/u/jobs", jsonBody(map[string]interface{}{"number": "24100"}), withAuth(h.CreateJob))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != response.CodeDenied || resp.Message != "无权访问" {
		t.Errorf("expected the generic denial body, got %+v", resp)
	}
}

func TestJobHandler_CreateJob_NonNumeric(t *testing.T) {
	h := NewJobHandler(&mockJobService{})

	w := serve("POST", "/users/:id/jobs", "/users/u/jobs", jsonBody(map[string]interface{}{"number": "24A"}), withAuth(h.CreateJob))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// RegistrationHandler Tests
// ═══════════════════════════════════════════════════════════

func TestRegistrationHandler_Update(t *testing.T) {
	mock := &mockRegistrationService{reg: &dto.RegistrationResponse{ID: 7, Code: "R-2"}}
	h := NewRegistrationHandler(mock)

	w := serve("PUT", "/jobs/:number/registrations/:rid", "/jobs/24001/registrations/7",
		jsonBody(dto.RegistrationRequest{Code: "R-2"}), withAuth(h.UpdateRegistration))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.gotID != 7 || mock.gotNumber != "24001" {
		t.Errorf("unexpected id/number: %d %q", mock.gotID, mock.gotNumber)
	}
}

func TestRegistrationHandler_BadID(t *testing.T) {
	h := NewRegistrationHandler(&mockRegistrationService{})

	w := serve("DELETE", "/jobs/:number/registrations/:rid", "/jobs/24001/registrations/abc", nil, withAuth(h.DeleteRegistration))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestRegistrationHandler_DeleteOtherJob(t *testing.T) {
	h := NewRegistrationHandler(&mockRegistrationService{err: service.ErrRegistrationNotFound})

	w := serve("DELETE", "/jobs/:number/registrations/:rid", "/jobs/24001/registrations/9", nil, withAuth(h.DeleteRegistration))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestRegistrationHandler_CreateRequiresCode(t *testing.T) {
	h := NewRegistrationHandler(&mockRegistrationService{})

	w := serve("POST", "/jobs/:number/registrations", "/jobs/24001/registrations",
		jsonBody(map[string]string{"description": "x"}), withAuth(h.CreateRegistration))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// DeliveryHandler / ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestDeliveryHandler_Tomorrow(t *testing.T) {
	mock := &mockDeliveryService{tomorrow: &dto.TomorrowDeliveriesResponse{Day: "2024-03-11"}}
	h := NewDeliveryHandler(mock)

	w := serve("GET", "/deliveries/tomorrow", "/deliveries/tomorrow", nil, withAuth(h.Tomorrow))

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestDeliveryHandler_Calendar(t *testing.T) {
	h := NewDeliveryHandler(&mockDeliveryService{ics: "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"})

	w := serve("GET", "/deliveries/calendar.ics", "/deliveries/calendar.ics", nil, withAuth(h.Calendar))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("unexpected Content-Type: %s", ct)
	}
	if !strings.Contains(w.Body.String(), "BEGIN:VCALENDAR") {
		t.Error("expected calendar body")
	}
}

func TestExportHandler_ExportJobs(t *testing.T) {
	mock := &mockExportService{buf: bytes.NewBufferString("xlsx"), filename: "obras_LAB01_production_20240315.xlsx"}
	h := NewExportHandler(mock)

	w := serve("GET", "/export/jobs.xlsx", "/export/jobs.xlsx?phase=delivered", nil, withAuth(h.ExportJobs))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "obras_LAB01_production_20240315.xlsx") {
		t.Errorf("unexpected Content-Disposition: %s", cd)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected Content-Type: %s", ct)
	}
}

func TestExportHandler_InvalidRange(t *testing.T) {
	h := NewExportHandler(&mockExportService{err: service.ErrInvalidDateRange})

	w := serve("GET", "/export/jobs.xlsx", "/export/jobs.xlsx?from=2024-03-10&to=2024-03-01", nil, withAuth(h.ExportJobs))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// HealthHandler Tests
// ═══════════════════════════════════════════════════════════

func healthStatus(t *testing.T, w *httptest.ResponseRecorder) (string, map[string]string) {
	t.Helper()
	var body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid health body: %v", err)
	}
	return body.Status, body.Components
}

func TestHealthHandler(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	h := NewHealthHandler(
		Probe{Name: "optimus", Required: true, Check: up},
		Probe{Name: "redis", Check: down},
	)
	w := serve("GET", "/health", "/health", nil, h.Check)
	if w.Code != http.StatusOK {
		t.Fatalf("optional dependency down should still be 200, got %d", w.Code)
	}
	status, components := healthStatus(t, w)
	if status != "degraded" || components["redis"] != "down" || components["optimus"] != "up" {
		t.Errorf("unexpected health: %s %v", status, components)
	}

	h = NewHealthHandler(Probe{Name: "optimus", Required: true, Check: down})
	w = serve("GET", "/health", "/health", nil, h.Check)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("required dependency down should be 503, got %d", w.Code)
	}
	if status, _ := healthStatus(t, w); status != "down" {
		t.Errorf("expected down, got %s", status)
	}
}
