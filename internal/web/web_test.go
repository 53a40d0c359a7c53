package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postboard/postboard/internal/models"
)

func TestRenderer_Pages(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	for _, name := range []string{"index", "signin", "signup", "account", "edit", "weather"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, r.Render(&buf, name, NewPage(nil)))
			assert.Contains(t, buf.String(), "<!DOCTYPE html>")
		})
	}
}

func TestRenderer_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "missing", NewPage(nil))
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderer_IndexShowsOwnerActions(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	sess := &models.Session{ID: "s1", UserID: "alice", DisplayName: "Alice A", CategoryFilter: models.NoFilter, Flash: "welcome"}
	page := NewPage(sess)
	page.Posts = []models.BlogPost{
		{ID: 1, CreatorID: "alice", CreatorName: "Alice A", Title: "Mine", Body: "**bold**", Category: "Tech"},
		{ID: 2, CreatorID: "bob", CreatorName: "Bob", Title: "Theirs", Body: "plain", Category: "Food"},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "index", page))
	out := buf.String()

	assert.Contains(t, out, "Signed in as Alice A")
	assert.Contains(t, out, "welcome")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, `<article class="post" id="post-1">`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`action="/delete"`)))
	assert.Empty(t, sess.Flash, "flash is consumed once rendered")
}

func TestRenderer_EscapesTitles(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := NewPage(nil)
	page.Posts = []models.BlogPost{{ID: 1, Title: "<script>x</script>"}}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "index", page))
	assert.NotContains(t, buf.String(), "<script>x</script>")
}

func TestRenderer_Weather(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := NewPage(nil)
	page.Weather = &models.WeatherSnapshot{Temp: 71.6, TempMin: 65, TempMax: 75, Humidity: 40, ConditionMain: "Clear", ConditionDescription: "clear sky", IconCode: "01d"}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, "weather", page))
	assert.Contains(t, buf.String(), "72&deg;F")
	assert.Contains(t, buf.String(), "clear sky")
}

func TestStatic(t *testing.T) {
	srv := httptest.NewServer(http.StripPrefix("/static/", Static()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/static/css/main.css")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
