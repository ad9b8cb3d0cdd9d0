package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"golang.org/x/time/rate"
)

// limiterIdleTTL é o tempo sem requisições após o qual um cliente é esquecido
const limiterIdleTTL = 3 * time.Minute

// visitor é o token bucket de um cliente e o momento do último acesso
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter mantém um token bucket por IP de cliente
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter cria um limitador com rps requisições por segundo e rajada de burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow consome um token do cliente ip e informa se a requisição pode seguir
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// sweep remove clientes ociosos no máximo uma vez por TTL. Quem chama segura mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < limiterIdleTTL {
		return
	}
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > limiterIdleTTL {
			delete(rl.visitors, ip)
		}
	}
	rl.lastSweep = now
}

// RateLimit responde 429 com Retry-After quando o cliente excede o limite
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if !limiter.Allow(ip) {
				log.ForContext(r.Context()).WithField("ip", ip).Warn("http: limite de requisições excedido")
				w.Header().Set("Retry-After", "1")
				apiErrors.WriteError(w, apiErrors.ErrTooManyRequests, "too many requests", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefere os headers de encaminhamento. TrustedProxy deve rodar antes
// para que apenas um proxy confiável possa defini-los.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	return remoteHost(r)
}
