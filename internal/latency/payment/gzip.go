package payment

import (
	"bytes"
	"compress/gzip"
	"net/http"
	"strconv"
	"strings"
)

// gzipBuffer collects the response so the middleware can decide after
// the handler ran whether the body is worth compressing.
type gzipBuffer struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func (w *gzipBuffer) Header() http.Header { return w.header }

func (w *gzipBuffer) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *gzipBuffer) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

// WithGzip compresses responses larger than minSize for clients that
// sent Accept-Encoding: gzip. Smaller bodies pass through unchanged;
// compressing them would cost more than it saves.
func WithGzip(minSize int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		buf := &gzipBuffer{header: w.Header().Clone()}
		next.ServeHTTP(buf, r)

		for k, vs := range buf.header {
			for _, v := range vs {
				w.Header().Set(k, v)
			}
		}

		if buf.body.Len() < minSize {
			w.Header().Set("Content-Length", strconv.Itoa(buf.body.Len()))
			w.WriteHeader(buf.status)
			_, _ = w.Write(buf.body.Bytes())
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		w.WriteHeader(buf.status)
		gz := gzip.NewWriter(w)
		_, _ = gz.Write(buf.body.Bytes())
		_ = gz.Close()
	})
}
