package fittrack_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fittrack/fittrack"
)

const testAdminPassword = "password123"

var (
	testHashOnce sync.Once
	testHash     string
)

// testAdminHash caches the Argon2id hash of testAdminPassword so the
// suite pays the derivation cost once.
func testAdminHash(t *testing.T) string {
	t.Helper()
	testHashOnce.Do(func() {
		h, err := fittrack.HashPassword(testAdminPassword)
		if err != nil {
			t.Fatalf("hash fixture: %v", err)
		}
		testHash = h
	})
	return testHash
}

func newTestApp(t *testing.T, repo *MockRepositoryManager) (*fiber.App, *fittrack.RouteAuthenticator) {
	t.Helper()

	authenticator := fittrack.NewAuthenticator(repo.admins, newTestConfig())

	auther, err := fittrack.NewHTTPAuthenticator(authenticator, newTestConfig())
	require.NoError(t, err)

	ctrl := fittrack.NewController(
		fittrack.WithControllerRepo(repo),
		fittrack.WithControllerAuther(auther),
	)

	app := fiber.New()
	fittrack.RegisterRoutes(app, ctrl, auther.ProtectedRoute(fittrack.AuthErrorHandler(nil)))

	return app, auther
}

func jsonRequest(method, target string, payload any) *http.Request {
	var body io.Reader
	if payload != nil {
		buf, _ := json.Marshal(payload)
		body = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// loginAdmin performs a full login round and returns the session cookie.
func loginAdmin(t *testing.T, app *fiber.App, repo *MockRepositoryManager) []*http.Cookie {
	t.Helper()

	admin := &fittrack.Admin{ID: 1, Email: "admin@example.com", PasswordHash: testAdminHash(t)}
	repo.admins.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/admin/login", map[string]string{
		"email":    "admin@example.com",
		"password": testAdminPassword,
	}), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func sessionCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("sets both session cookies", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)

		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)
		assert.NotEmpty(t, access.Value)
		assert.True(t, access.HttpOnly)

		refresh := sessionCookie(t, cookies, fittrack.DefaultRefreshCookieName)
		assert.NotEmpty(t, refresh.Value)
		assert.Greater(t, refresh.MaxAge, access.MaxAge)
	})

	t.Run("unknown account and wrong password share a response", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		admin := &fittrack.Admin{ID: 1, Email: "admin@example.com", PasswordHash: testAdminHash(t)}
		repo.admins.On("GetByEmail", mock.Anything, "admin@example.com").Return(admin, nil)
		repo.admins.On("GetByEmail", mock.Anything, "ghost@example.com").
			Return(nil, fittrack.ErrAdminNotFound)

		wrongPass, err := app.Test(jsonRequest(http.MethodPost, "/admin/login", map[string]string{
			"email":    "admin@example.com",
			"password": "totally wrong",
		}), -1)
		require.NoError(t, err)

		unknown, err := app.Test(jsonRequest(http.MethodPost, "/admin/login", map[string]string{
			"email":    "ghost@example.com",
			"password": testAdminPassword,
		}), -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
		assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
		assert.Equal(t, decodeBody(t, wrongPass), decodeBody(t, unknown))
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		resp, err := app.Test(jsonRequest(http.MethodPost, "/admin/login", map[string]string{
			"email": "not-an-email",
		}), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestProtectedRoutes(t *testing.T) {
	t.Run("no cookie means 401", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/users", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage cookie means 401", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.AddCookie(&http.Cookie{Name: fittrack.DefaultCookieName, Value: "junk"})

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("check_auth with a session", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		req := httptest.NewRequest(http.MethodGet, "/admins/check_auth", nil)
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Authenticated", decodeBody(t, resp)["message"])
	})

	t.Run("bearer header works for non-browser clients", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		repo.users.On("List", mock.Anything).Return([]*fittrack.User{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		req.Header.Set("Authorization", "Bearer "+access.Value)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRefreshTokenEndpoint(t *testing.T) {
	t.Run("mints a new access cookie", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		refresh := sessionCookie(t, cookies, fittrack.DefaultRefreshCookieName)

		admin := &fittrack.Admin{ID: 1, Email: "admin@example.com", PasswordHash: testAdminHash(t)}
		repo.admins.On("GetByID", mock.Anything, int64(1)).Return(admin, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/admins/refresh_token", nil)
		req.AddCookie(refresh)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		access := sessionCookie(t, resp.Cookies(), fittrack.DefaultCookieName)
		assert.NotEmpty(t, access.Value)
	})

	t.Run("missing refresh cookie", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/admins/refresh_token", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("access cookie is not accepted as refresh token", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		req := httptest.NewRequest(http.MethodPost, "/admins/refresh_token", nil)
		req.AddCookie(&http.Cookie{Name: fittrack.DefaultRefreshCookieName, Value: access.Value})

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAdminManagementEndpoints(t *testing.T) {
	t.Run("master admin cannot be deleted", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		repo.admins.On("GetByID", mock.Anything, int64(1)).
			Return(&fittrack.Admin{ID: 1, MasterID: true}, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/admins/delete/1", nil)
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		repo.admins.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("regular admin delete", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		repo.admins.On("GetByID", mock.Anything, int64(2)).
			Return(&fittrack.Admin{ID: 2}, nil).Once()
		repo.admins.On("Delete", mock.Anything, int64(2)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/admins/delete/2", nil)
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown admin delete is 404", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		repo.admins.On("GetByID", mock.Anything, int64(9)).
			Return(nil, fittrack.ErrAdminNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/admins/delete/9", nil)
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUserEndpoints(t *testing.T) {
	t.Run("profile 404 for missing user", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		repo.users.On("GetByID", mock.Anything, int64(77)).
			Return(nil, fittrack.ErrUserNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/profile/77", nil)
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "User not found", decodeBody(t, resp)["error"])
	})

	t.Run("lock update requires an explicit flag", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		req := jsonRequest(http.MethodPut, "/api/user_lock/5", map[string]any{})
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("lock update false is a valid value", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		repo.users.On("SetLocked", mock.Anything, int64(5), false).Return(nil).Once()

		req := jsonRequest(http.MethodPut, "/api/user_lock/5", map[string]any{"locked": false})
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		repo.users.AssertExpectations(t)
	})

	t.Run("email update for missing user", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		repo.users.On("UpdateEmail", mock.Anything, int64(8), "new@example.com").
			Return(fittrack.ErrUserNotFound).Once()

		req := jsonRequest(http.MethodPut, "/api/email/8", map[string]string{"email": "new@example.com"})
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id is rejected before any lookup", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		req := httptest.NewRequest(http.MethodGet, "/api/profile/abc", nil)
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("createPassword returns a generated credential", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		req := httptest.NewRequest(http.MethodGet, "/api/createPassword", nil)
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, decodeBody(t, resp)["password"])
	})
}

func TestUserDeleteEndpoint(t *testing.T) {
	expectCascade := func(repo *MockRepositoryManager, userID int64) {
		repo.exercises.On("DeleteByUser", mock.Anything, userID).Return(0, nil).Once()
		repo.workoutPlans.On("IDsByUser", mock.Anything, userID).Return([]int64(nil), nil).Once()
		repo.workoutPlans.On("DeleteByUser", mock.Anything, userID).Return(0, nil).Once()
		repo.bodyMetrics.On("DeleteByUser", mock.Anything, userID).Return(0, nil).Once()
		repo.meals.On("DeleteByUser", mock.Anything, userID).Return(0, nil).Once()
	}

	t.Run("success", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		expectCascade(repo, 42)
		repo.users.On("Delete", mock.Anything, int64(42)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/user/42", nil)
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "User deleted successfully", decodeBody(t, resp)["message"])
	})

	t.Run("repeat delete is 404", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		expectCascade(repo, 42)
		repo.users.On("Delete", mock.Anything, int64(42)).
			Return(fittrack.ErrUserNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/user/42", nil)
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("account row failure is 500", func(t *testing.T) {
		repo := newMockRepositoryManager()
		app, _ := newTestApp(t, repo)

		cookies := loginAdmin(t, app, repo)
		access := sessionCookie(t, cookies, fittrack.DefaultCookieName)

		expectCascade(repo, 42)
		repo.users.On("Delete", mock.Anything, int64(42)).
			Return(errors.New("deadlock")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/user/42", nil)
		req.AddCookie(access)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Failed to delete user", decodeBody(t, resp)["error"])
	})
}

func TestLogoutEndpoint(t *testing.T) {
	repo := newMockRepositoryManager()
	app, _ := newTestApp(t, repo)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/admin/logout", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Expired cookies carry a past Expires date; fasthttp drops the
	// Max-Age attribute entirely when it is non-positive, so MaxAge is
	// useless for this assertion.
	for _, name := range []string{fittrack.DefaultCookieName, fittrack.DefaultRefreshCookieName} {
		c := sessionCookie(t, resp.Cookies(), name)
		assert.Empty(t, c.Value, "cookie %q should be blanked", name)
		assert.True(t, c.Expires.Before(time.Now()), "cookie %q should be expired", name)
	}
}
