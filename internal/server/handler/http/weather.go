package http

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/postboard/postboard/internal/metrics"
	"github.com/postboard/postboard/internal/middleware"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/weather"
	"github.com/postboard/postboard/internal/web"
)

// WeatherService looks up current conditions.
type WeatherService interface {
	CurrentWeather(ctx context.Context, coords weather.Coordinates) (*models.WeatherSnapshot, error)
}

// WeatherHandler renders the weather view for the browser's location.
type WeatherHandler struct {
	Weather WeatherService
	View
}

// Show handles POST /weather with lat and lon form fields. Lookup failures
// are shown on the weather page itself.
func (h *WeatherHandler) Show(w http.ResponseWriter, r *http.Request) {
	page := web.NewPage(middleware.SessionFromContext(r.Context()))

	snap, err := h.Weather.CurrentWeather(r.Context(), weather.Coordinates{
		Lat: r.PostFormValue("lat"),
		Lon: r.PostFormValue("lon"),
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMissingCoordinates):
			metrics.WeatherRequestsTotal.WithLabelValues("missing_coordinates").Inc()
			page.Error = "Location unavailable. Allow location access to see the weather."
		case errors.Is(err, models.ErrInvalidCoordinates):
			metrics.WeatherRequestsTotal.WithLabelValues("invalid_coordinates").Inc()
			page.Error = "That location is not valid."
		default:
			metrics.WeatherRequestsTotal.WithLabelValues("upstream_error").Inc()
			h.logger().Error("weather lookup failed", zap.Error(err))
			page.Error = "The weather service is unavailable right now."
		}
		h.render(w, "weather", page)
		return
	}

	metrics.WeatherRequestsTotal.WithLabelValues("ok").Inc()
	page.Weather = snap
	h.render(w, "weather", page)
}
