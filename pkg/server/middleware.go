package server

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const headerRequestID = "X-Request-ID"

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyLogger
)

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

func loggerFrom(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// RequestID keeps a client supplied X-Request-ID or assigns a time ordered
// one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			if v7, err := uuid.NewV7(); err == nil {
				id = v7.String()
			} else {
				id = uuid.New().String()
			}
		}

		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), keyRequestID, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// StructuredLogger puts a request scoped logger into the context and logs
// every finished request.
func StructuredLogger(logger *slog.Logger, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLogger := logger.With(
				slog.String("request_id", requestID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("ip", RealIP(r, trustProxy)),
			)

			ctx := context.WithValue(r.Context(), keyLogger, reqLogger)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			level := slog.LevelInfo
			switch {
			case rec.status >= 500:
				level = slog.LevelError
			case rec.status >= 400:
				level = slog.LevelWarn
			}
			reqLogger.Log(ctx, level, "http request finished",
				slog.Int("status", rec.status),
				slog.Int64("latency_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

// PanicRecovery turns a panicking handler into a 500.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				stack := make([]byte, 2048)
				n := runtime.Stack(stack, false)
				loggerFrom(r.Context()).ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", err),
					slog.String("stack", string(stack[:n])),
				)
				writeJSON(w, http.StatusInternalServerError, apiError{Code: "INTERNAL", Error: "an unexpected error occurred"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client address. Proxy headers
// only identify the client when trustProxy is set.
type RateLimiter struct {
	limit      rate.Limit
	burst      int
	ttl        time.Duration
	trustProxy bool

	mu      sync.Mutex
	clients map[string]*client
}

func NewRateLimiter(perSecond float64, burst int, trustProxy bool) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:      rate.Limit(perSecond),
		burst:      burst,
		ttl:        10 * time.Minute,
		trustProxy: trustProxy,
		clients:    make(map[string]*client),
	}
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

// Prune forgets clients not seen for a while.
func (l *RateLimiter) Prune() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for ip, c := range l.clients {
		if time.Since(c.lastSeen) > l.ttl {
			delete(l.clients, ip)
			n++
		}
	}
	return n
}

func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(RealIP(r, l.trustProxy)) {
			writeJSON(w, http.StatusTooManyRequests, apiError{Code: "TOO_MANY_REQUESTS", Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RealIP extracts the client address. X-Real-IP and X-Forwarded-For are
// honoured only behind a trusted reverse proxy; otherwise any client could
// pick its own address.
func RealIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := r.Header.Get("X-Real-IP"); ip != "" {
			return ip
		}
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			return strings.TrimSpace(first)
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
