package middleware

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-StudioBooking/internal/api/handlers"
)

const msgTooManyRequests = "слишком много запросов"

// Throttle ограничивает общий поток запросов token bucket лимитером
func Throttle(rps float64, burst int, logger Logger) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				logger.Warn("%s %s - throttled", r.Method, r.URL.Path)
				handlers.RespondTooManyRequests(w, msgTooManyRequests, time.Duration(float64(time.Second)/rps))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
