package web

import "github.com/postboard/postboard/internal/models"

// Page is the data handed to every template. Session must be non-nil.
type Page struct {
	Session        *models.Session
	Flash          string
	Error          string
	Categories     []string
	CategoryFilter string
	Posts          []models.BlogPost
	Post           *models.BlogPost
	Weather        *models.WeatherSnapshot
}

// NewPage starts a Page for sess, consuming its pending flash message.
func NewPage(sess *models.Session) Page {
	if sess == nil {
		sess = &models.Session{CategoryFilter: models.NoFilter}
	}
	return Page{
		Session:        sess,
		Flash:          sess.PopFlash(),
		Categories:     Categories,
		CategoryFilter: sess.CategoryFilter,
	}
}
