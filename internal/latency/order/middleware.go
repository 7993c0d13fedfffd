package order

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vasanth32/order-patterns/internal/obs"
)

// timedWriter delays the header flush so X-Response-Time-Ms can still
// be set when the handler finishes.
type timedWriter struct {
	http.ResponseWriter
	start       time.Time
	status      int
	wroteHeader bool
}

func (w *timedWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code
	ms := float64(time.Since(w.start).Microseconds()) / 1000.0
	w.Header().Set("X-Response-Time-Ms", strconv.FormatFloat(ms, 'f', 3, 64))
	w.ResponseWriter.WriteHeader(code)
}

func (w *timedWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// WithResponseTime stamps each response with its handling time and
// warns about requests slower than the threshold.
func WithResponseTime(threshold time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &timedWriter{ResponseWriter: w, start: time.Now()}
		next.ServeHTTP(tw, r)
		elapsed := time.Since(tw.start)
		if elapsed > threshold {
			obs.Logger.Warn("slow request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", tw.status,
				"elapsed_ms", float64(elapsed.Microseconds())/1000.0,
				"threshold_ms", float64(threshold.Microseconds())/1000.0,
			)
		}
	})
}
