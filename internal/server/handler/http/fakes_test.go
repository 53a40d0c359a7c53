package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/postboard/postboard/internal/middleware"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/web"
)

// fakeRenderer records the last rendered page.
type fakeRenderer struct {
	name string
	page web.Page
	err  error
}

func (f *fakeRenderer) Render(w io.Writer, name string, data any) error {
	if f.err != nil {
		return f.err
	}
	f.name = name
	f.page = data.(web.Page)
	_, err := io.WriteString(w, "page:"+name)
	return err
}

// fakeSessions records session lifecycle calls.
type fakeSessions struct {
	saved     []models.Session
	renewed   int
	destroyed int
	saveErr   error
}

func (f *fakeSessions) Save(ctx context.Context, w http.ResponseWriter, s *models.Session) error {
	f.saved = append(f.saved, *s)
	return f.saveErr
}

func (f *fakeSessions) Renew(ctx context.Context, s *models.Session) error {
	f.renewed++
	s.ID = "renewed"
	return nil
}

func (f *fakeSessions) Destroy(ctx context.Context, w http.ResponseWriter, s *models.Session) error {
	f.destroyed++
	s.SignOut()
	return nil
}

func (f *fakeSessions) last() models.Session {
	if len(f.saved) == 0 {
		return models.Session{}
	}
	return f.saved[len(f.saved)-1]
}

// formRequest builds a form POST carrying sess in its context.
func formRequest(target string, form url.Values, sess *models.Session) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sess != nil {
		req = req.WithContext(middleware.ContextWithSession(req.Context(), sess))
	}
	return req
}

func signedIn(userID, name string) *models.Session {
	return &models.Session{ID: "s-" + userID, UserID: userID, DisplayName: name, CategoryFilter: models.NoFilter}
}

func anonymous() *models.Session {
	return &models.Session{ID: "anon", CategoryFilter: models.NoFilter}
}
