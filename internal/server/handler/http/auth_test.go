package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postboard/postboard/internal/models"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	createErr error
	user      *models.User
	authErr   error
}

func (f *fakeAuthService) CreateAccount(ctx context.Context, id, password, displayName string) error {
	return f.createErr
}

func (f *fakeAuthService) Authenticate(ctx context.Context, id, password string) (*models.User, error) {
	return f.user, f.authErr
}

func newAuthHandler(svc *fakeAuthService) (*AuthHandler, *fakeRenderer, *fakeSessions) {
	rd := &fakeRenderer{}
	sm := &fakeSessions{}
	return &AuthHandler{AuthService: svc, View: View{Renderer: rd, Sessions: sm}}, rd, sm
}

func TestAuthHandler_CreateAccount(t *testing.T) {
	tests := []struct {
		name      string
		service   *fakeAuthService
		wantCode  int
		wantPage  string
		wantError string
	}{
		{
			name:     "success shows sign in",
			service:  &fakeAuthService{},
			wantCode: http.StatusOK,
			wantPage: "signin",
		},
		{
			name:      "duplicate username",
			service:   &fakeAuthService{createErr: models.ErrDuplicateUsername},
			wantCode:  http.StatusOK,
			wantPage:  "signup",
			wantError: "Username already taken",
		},
		{
			name:      "store failure",
			service:   &fakeAuthService{createErr: errors.New("db down")},
			wantCode:  http.StatusOK,
			wantPage:  "signup",
			wantError: "Could not create the account, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rd, _ := newAuthHandler(tt.service)
			rec := httptest.NewRecorder()
			form := url.Values{"username": {"alice"}, "password": {"pw123"}, "disp-name": {"Alice A"}}

			h.CreateAccount(rec, formRequest("/create-account", form, anonymous()))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantPage, rd.name)
			assert.Equal(t, tt.wantError, rd.page.Error)
		})
	}
}

func TestAuthHandler_AccessAccount_Success(t *testing.T) {
	h, _, sm := newAuthHandler(&fakeAuthService{user: &models.User{ID: "alice", DisplayName: "Alice A"}})
	sess := anonymous()
	rec := httptest.NewRecorder()

	h.AccessAccount(rec, formRequest("/access-account", url.Values{"username": {"alice"}, "password": {"pw123"}}, sess))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 1, sm.renewed)
	require.Len(t, sm.saved, 1)
	assert.Equal(t, "renewed", sm.last().ID)
	assert.Equal(t, "alice", sm.last().UserID)
	assert.Equal(t, "Alice A", sm.last().DisplayName)
}

func TestAuthHandler_AccessAccount_Failures(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantError string
	}{
		{"wrong password", models.ErrInvalidCredentials, http.StatusOK, "Incorrect username or password"},
		{"store failure", models.ErrQueryFailure, http.StatusOK, "Sign in failed, please try again"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rd, sm := newAuthHandler(&fakeAuthService{authErr: tt.err})
			rec := httptest.NewRecorder()

			h.AccessAccount(rec, formRequest("/access-account", url.Values{"username": {"alice"}, "password": {"nope"}}, anonymous()))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "signin", rd.name)
			assert.Equal(t, tt.wantError, rd.page.Error)
			assert.Empty(t, sm.saved)
			assert.False(t, rd.page.Session.SignedIn())
		})
	}
}

func TestAuthHandler_SignOut(t *testing.T) {
	h, _, sm := newAuthHandler(&fakeAuthService{})
	sess := signedIn("alice", "Alice A")
	rec := httptest.NewRecorder()

	h.SignOut(rec, formRequest("/signout", nil, sess))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 1, sm.destroyed)
	assert.False(t, sess.SignedIn())
}

func TestAuthHandler_Pages(t *testing.T) {
	h, rd, _ := newAuthHandler(&fakeAuthService{})
	pages := map[string]http.HandlerFunc{
		"signin":  h.SignIn,
		"signup":  h.SignUp,
		"account": h.ManageAccount,
	}
	for want, handle := range pages {
		rec := httptest.NewRecorder()
		handle(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rd.name)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	}
}

func TestView_RenderFailure(t *testing.T) {
	h, rd, _ := newAuthHandler(&fakeAuthService{})
	rd.err = errors.New("boom")
	rec := httptest.NewRecorder()

	h.SignIn(rec, httptest.NewRequest(http.MethodGet, "/signin", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal error")
}
