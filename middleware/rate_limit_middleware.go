package middleware

import (
	apimodels "hr-payroll-backend/models/api"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type ipRateLimiter struct {
	mu    sync.Mutex
	ips   map[string]*rate.Limiter
	limit rate.Limit
	burst int
}

func newIPRateLimiter(perMinute int) *ipRateLimiter {
	return &ipRateLimiter{
		ips:   map[string]*rate.Limiter{},
		limit: rate.Every(time.Minute / time.Duration(perMinute)),
		burst: perMinute,
	}
}

func (l *ipRateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.ips[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.ips[key] = limiter
	}
	return limiter
}

// RateLimiter ограничение запросов в минуту с одного адреса, 0 - без ограничения
func RateLimiter(perMinute int) fiber.Handler {
	return rateLimit(perMinute, "превышен лимит запросов, повторите позже")
}

// LoginRateLimiter ограничение попыток входа с одного адреса
func LoginRateLimiter(perMinute int) fiber.Handler {
	return rateLimit(perMinute, "слишком много попыток входа, повторите позже")
}

func rateLimit(perMinute int, message string) fiber.Handler {
	if perMinute <= 0 {
		return func(ctx *fiber.Ctx) error {
			return ctx.Next()
		}
	}
	limiter := newIPRateLimiter(perMinute)
	return func(ctx *fiber.Ctx) error {
		if !limiter.get(ctx.IP()).Allow() {
			log.WithField("ip", ctx.IP()).WithField("path", ctx.Path()).Warn("превышен лимит запросов")
			return ctx.Status(fiber.StatusTooManyRequests).JSON(apimodels.NewError(message))
		}
		return ctx.Next()
	}
}
