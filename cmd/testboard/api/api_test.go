package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/testboard-dev/testboard/cmd/testboard/api"
	"github.com/testboard-dev/testboard/internal/accesscontrol"
	"github.com/testboard-dev/testboard/internal/auth"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/testutils"
)

const testSecret = "api-test-secret"

func setupServer(t *testing.T, openReads bool) *echo.Echo {
	t.Helper()

	db := testutils.InMemoryDB(t)
	rbac, err := accesscontrol.NewCasbinRBAC(db)
	assert.Nil(t, err)
	assert.Nil(t, core.BootstrapAccessControl(rbac))

	return api.Router(db, rbac, auth.NewTokenService(testSecret, time.Hour), openReads)
}

func request(t *testing.T, server *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		assert.Nil(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var decoded T
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return decoded
}

func registerAndLogin(t *testing.T, server *echo.Echo, email, role string) string {
	t.Helper()

	recorder := request(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "supersecret",
		"role":     role,
	})
	assert.Equal(t, 201, recorder.Code)

	recorder = request(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "supersecret",
	})
	assert.Equal(t, 200, recorder.Code)

	return decode[struct {
		Token string `json:"token"`
	}](t, recorder).Token
}

type idResponse struct {
	ID string `json:"id"`
}

func TestEndToEndFlow(t *testing.T) {
	server := setupServer(t, false)
	token := registerAndLogin(t, server, "admin@test.com", "admin")

	// the whole catalog: project, suite, two cases
	recorder := request(t, server, http.MethodPost, "/api/v1/projects", token, map[string]string{"name": "Demo"})
	assert.Equal(t, 201, recorder.Code)
	project := decode[struct {
		idResponse
		Slug string `json:"slug"`
	}](t, recorder)
	assert.Equal(t, "demo", project.Slug)

	recorder = request(t, server, http.MethodPost, "/api/v1/projects/demo/suites", token, map[string]string{"name": "Smoke"})
	assert.Equal(t, 201, recorder.Code)
	suite := decode[idResponse](t, recorder)

	casesPath := fmt.Sprintf("/api/v1/projects/demo/suites/%s/cases", suite.ID)
	recorder = request(t, server, http.MethodPost, casesPath, token, map[string]string{"title": "Login works"})
	assert.Equal(t, 201, recorder.Code)
	loginCase := decode[idResponse](t, recorder)

	recorder = request(t, server, http.MethodPost, casesPath, token, map[string]string{"title": "Create project"})
	assert.Equal(t, 201, recorder.Code)
	createCase := decode[idResponse](t, recorder)

	// one run with a pass and a fail
	recorder = request(t, server, http.MethodPost, "/api/v1/projects/demo/runs", token, map[string]bool{"triggeredByCi": true})
	assert.Equal(t, 201, recorder.Code)
	run := decode[idResponse](t, recorder)

	recorder = request(t, server, http.MethodPost, fmt.Sprintf("/api/v1/projects/demo/runs/%s/results", run.ID), token, map[string]any{
		"results": []map[string]any{
			{"caseId": loginCase.ID, "status": "pass", "durationMs": 850},
			{"caseId": createCase.ID, "status": "fail", "durationMs": 1200},
		},
	})
	assert.Equal(t, 200, recorder.Code)
	report := decode[struct {
		Accepted []idResponse `json:"accepted"`
		Rejected []any        `json:"rejected"`
	}](t, recorder)
	assert.Len(t, report.Accepted, 2)
	assert.Empty(t, report.Rejected)

	recorder = request(t, server, http.MethodGet, fmt.Sprintf("/api/v1/projects/demo/runs/%s/summary", run.ID), token, nil)
	assert.Equal(t, 200, recorder.Code)
	summary := decode[map[string]int64](t, recorder)
	assert.Equal(t, int64(2), summary["total"])
	assert.Equal(t, int64(1), summary["pass"])
	assert.Equal(t, int64(1), summary["fail"])
	assert.Equal(t, int64(0), summary["skip"])
	assert.Equal(t, int64(0), summary["error"])
	assert.Equal(t, int64(2050), summary["durationTotalMs"])

	// listing carries the summary per run
	recorder = request(t, server, http.MethodGet, "/api/v1/projects/demo/runs", token, nil)
	assert.Equal(t, 200, recorder.Code)
	paged := decode[struct {
		Total int64 `json:"total"`
		Data  []struct {
			idResponse
			Summary struct {
				Total int64 `json:"total"`
			} `json:"summary"`
		} `json:"data"`
	}](t, recorder)
	assert.Equal(t, int64(1), paged.Total)
	assert.Len(t, paged.Data, 1)
	assert.Equal(t, run.ID, paged.Data[0].ID)
	assert.Equal(t, int64(2), paged.Data[0].Summary.Total)

	// the failing case shows up in the history
	recorder = request(t, server, http.MethodGet, fmt.Sprintf("%s/%s/history", casesPath, createCase.ID), token, nil)
	assert.Equal(t, 200, recorder.Code)
	history := decode[[]struct {
		RunID  string `json:"runId"`
		Status string `json:"status"`
	}](t, recorder)
	assert.Len(t, history, 1)
	assert.Equal(t, run.ID, history[0].RunID)
	assert.Equal(t, "fail", history[0].Status)

	recorder = request(t, server, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, 200, recorder.Code)
	me := decode[struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}](t, recorder)
	assert.Equal(t, "admin@test.com", me.Email)
	assert.Equal(t, "admin", me.Role)
}

func TestRoleEnforcement(t *testing.T) {
	server := setupServer(t, false)
	adminToken := registerAndLogin(t, server, "admin@test.com", "admin")
	devToken := registerAndLogin(t, server, "dev@test.com", "dev")
	qaToken := registerAndLogin(t, server, "qa@test.com", "qa")

	recorder := request(t, server, http.MethodPost, "/api/v1/projects", adminToken, map[string]string{"name": "Demo"})
	assert.Equal(t, 201, recorder.Code)

	// dev can read but not write
	recorder = request(t, server, http.MethodGet, "/api/v1/projects/demo", devToken, nil)
	assert.Equal(t, 200, recorder.Code)
	recorder = request(t, server, http.MethodPost, "/api/v1/projects", devToken, map[string]string{"name": "Nope"})
	assert.Equal(t, 403, recorder.Code)
	recorder = request(t, server, http.MethodDelete, "/api/v1/projects/demo", devToken, nil)
	assert.Equal(t, 403, recorder.Code)

	// qa can manage the catalog but not archive projects or change roles
	recorder = request(t, server, http.MethodPost, "/api/v1/projects/demo/suites", qaToken, map[string]string{"name": "Smoke"})
	assert.Equal(t, 201, recorder.Code)
	recorder = request(t, server, http.MethodDelete, "/api/v1/projects/demo", qaToken, nil)
	assert.Equal(t, 403, recorder.Code)

	// only the admin archives
	recorder = request(t, server, http.MethodDelete, "/api/v1/projects/demo", adminToken, nil)
	assert.Equal(t, 200, recorder.Code)
	recorder = request(t, server, http.MethodGet, "/api/v1/projects/demo", adminToken, nil)
	assert.Equal(t, 404, recorder.Code)
}

func TestChangeRole(t *testing.T) {
	server := setupServer(t, false)
	adminToken := registerAndLogin(t, server, "admin@test.com", "admin")
	devToken := registerAndLogin(t, server, "dev@test.com", "dev")

	recorder := request(t, server, http.MethodGet, "/api/v1/me", devToken, nil)
	assert.Equal(t, 200, recorder.Code)
	dev := decode[idResponse](t, recorder)

	// a dev cannot promote anyone, not even themselves
	recorder = request(t, server, http.MethodPut, "/api/v1/users/"+dev.ID+"/role", devToken, map[string]string{"role": "admin"})
	assert.Equal(t, 403, recorder.Code)

	recorder = request(t, server, http.MethodPut, "/api/v1/users/"+dev.ID+"/role", adminToken, map[string]string{"role": "qa"})
	assert.Equal(t, 200, recorder.Code)

	// the promotion takes effect on the next issued credential
	promotedToken := registerAndLoginExisting(t, server, "dev@test.com")
	recorder = request(t, server, http.MethodPost, "/api/v1/projects", promotedToken, map[string]string{"name": "Now allowed"})
	assert.Equal(t, 201, recorder.Code)
}

func registerAndLoginExisting(t *testing.T, server *echo.Echo, email string) string {
	t.Helper()
	recorder := request(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "supersecret",
	})
	assert.Equal(t, 200, recorder.Code)
	return decode[struct {
		Token string `json:"token"`
	}](t, recorder).Token
}

func TestAuthenticationFailures(t *testing.T) {
	server := setupServer(t, false)
	registerAndLogin(t, server, "admin@test.com", "admin")

	// wrong password and unknown email get the same answer
	recorder := request(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@test.com",
		"password": "wrong password",
	})
	assert.Equal(t, 401, recorder.Code)
	recorder = request(t, server, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ghost@test.com",
		"password": "wrong password",
	})
	assert.Equal(t, 401, recorder.Code)

	// missing, malformed and expired credentials are all a 401
	recorder = request(t, server, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, 401, recorder.Code)
	recorder = request(t, server, http.MethodGet, "/api/v1/me", "not-a-token", nil)
	assert.Equal(t, 401, recorder.Code)

	expired := auth.NewTokenService(testSecret, -time.Minute)
	recorder = request(t, server, http.MethodGet, "/api/v1/me", issueFor(t, server, expired), nil)
	assert.Equal(t, 401, recorder.Code)
}

// issueFor signs a credential for the registered admin with the given
// service, bypassing the login endpoint.
func issueFor(t *testing.T, server *echo.Echo, service *auth.TokenService) string {
	t.Helper()

	valid := registerAndLoginExisting(t, server, "admin@test.com")
	session, err := auth.NewTokenService(testSecret, time.Hour).Verify(valid)
	assert.Nil(t, err)

	token, _, err := service.Issue(session.UserID(), session.GetRole())
	assert.Nil(t, err)
	return token
}

func TestDuplicateRegistration(t *testing.T) {
	server := setupServer(t, false)
	registerAndLogin(t, server, "admin@test.com", "admin")

	recorder := request(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "Admin@Test.com",
		"password": "supersecret",
	})
	assert.Equal(t, 409, recorder.Code)
}

func TestRegistrationValidation(t *testing.T) {
	server := setupServer(t, false)

	recorder := request(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "supersecret",
	})
	assert.Equal(t, 400, recorder.Code)

	recorder = request(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "short@test.com",
		"password": "short",
	})
	assert.Equal(t, 400, recorder.Code)

	recorder = request(t, server, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "weird@test.com",
		"password": "supersecret",
		"role":     "superuser",
	})
	assert.Equal(t, 400, recorder.Code)
}

func TestOpenReads(t *testing.T) {
	server := setupServer(t, true)
	token := registerAndLogin(t, server, "admin@test.com", "admin")

	recorder := request(t, server, http.MethodPost, "/api/v1/projects", token, map[string]string{"name": "Demo"})
	assert.Equal(t, 201, recorder.Code)

	// reads pass without a credential
	recorder = request(t, server, http.MethodGet, "/api/v1/projects", "", nil)
	assert.Equal(t, 200, recorder.Code)
	recorder = request(t, server, http.MethodGet, "/api/v1/projects/demo", "", nil)
	assert.Equal(t, 200, recorder.Code)

	// writes still need one
	recorder = request(t, server, http.MethodPost, "/api/v1/projects", "", map[string]string{"name": "Nope"})
	assert.Equal(t, 401, recorder.Code)

	// /me has nothing to say without a session
	recorder = request(t, server, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, 401, recorder.Code)
}

func TestUnknownResources(t *testing.T) {
	server := setupServer(t, false)
	token := registerAndLogin(t, server, "admin@test.com", "admin")

	recorder := request(t, server, http.MethodGet, "/api/v1/projects/ghost", token, nil)
	assert.Equal(t, 404, recorder.Code)

	request(t, server, http.MethodPost, "/api/v1/projects", token, map[string]string{"name": "Demo"})
	recorder = request(t, server, http.MethodGet, "/api/v1/projects/demo/suites/not-a-uuid", token, nil)
	assert.Equal(t, 400, recorder.Code)

	recorder = request(t, server, http.MethodGet, "/api/v1/projects/demo/runs/11111111-1111-1111-1111-111111111111/summary", token, nil)
	assert.Equal(t, 404, recorder.Code)
}

func TestHealthEndpoints(t *testing.T) {
	server := setupServer(t, false)

	recorder := request(t, server, http.MethodGet, "/api/v1/health/liveness", "", nil)
	assert.Equal(t, 200, recorder.Code)
	recorder = request(t, server, http.MethodGet, "/api/v1/health/readiness", "", nil)
	assert.Equal(t, 200, recorder.Code)
}
