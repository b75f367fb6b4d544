package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/AnshRaj112/voice-journal/pkg/clientip"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLog logs one line per request with status, duration and client IP.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Printf("%s %s %d %s %s", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond), clientip.RealClientIP(r))
	})
}
