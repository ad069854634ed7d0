package httpapi

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	start  time.Time
	wrote  bool
}

// WriteHeader stamps X-Process-Time just before the header goes out; it is
// the last moment headers can still be set.
func (r *statusRecorder) WriteHeader(code int) {
	if !r.wrote {
		r.Header().Set("X-Process-Time", fmt.Sprintf("%.6f", time.Since(r.start).Seconds()))
		r.status = code
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wrote {
		r.WriteHeader(http.StatusOK)
	}
	return r.ResponseWriter.Write(b)
}

// withRequestID assigns each request a UUID, echoed in X-Request-ID.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// withLogging logs every request and response with client address, status and
// duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.logger.Info(fmt.Sprintf("%s %s | client=%s", r.Method, r.URL.Path, clientHost(r)))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK, start: start}
		next.ServeHTTP(rec, r)

		s.logger.Info(fmt.Sprintf(
			"%s %s | status=%d | %.3fs",
			r.Method, r.URL.Path, rec.status, time.Since(start).Seconds(),
		))
	})
}

// withRecovery converts transport-level panics into opaque 500 responses.
// The orchestrator has its own recovery; this one covers the middleware and
// encoding path.
func (s *Server) withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.logger.Error(fmt.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, v))
				s.writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients that exceed the route's budget.
func (s *Server) withRateLimit(l *ClientLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientHost(r)
		if !l.Allow(client) {
			s.logger.Warn(fmt.Sprintf("rate limit exceeded | client=%s path=%s", client, r.URL.Path))
			s.writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
