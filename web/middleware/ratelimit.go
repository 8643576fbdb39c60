package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/mhsanaei/memo/logger"
	"github.com/mhsanaei/memo/web/entity"
	"github.com/mhsanaei/memo/web/locale"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

const loginRateWindow = time.Minute

// LoginRateLimiter counts failed logins per client IP. Once an IP reaches
// the limit its further attempts are refused until the window that started
// with its first failure has passed.
type LoginRateLimiter struct {
	limit    int
	window   time.Duration
	failures *cache.Cache
	keyFunc  func(c *gin.Context) string
}

// NewLoginRateLimiter allows limit failures per minute. A limit of 0
// disables throttling.
func NewLoginRateLimiter(limit int) *LoginRateLimiter {
	return &LoginRateLimiter{
		limit:    limit,
		window:   loginRateWindow,
		failures: cache.New(loginRateWindow, 2*loginRateWindow),
		keyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// Middleware guards a login handler. An attempt counts as failed when the
// handler answers 401.
func (l *LoginRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.limit <= 0 {
			c.Next()
			return
		}

		key := l.keyFunc(c)
		if count, expires, found := l.failures.GetWithExpiration(key); found && count.(int) >= l.limit {
			seconds := int(math.Ceil(time.Until(expires).Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			logger.Warningf("login rate limit exceeded for %s (failures: %d)", key, count)
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, entity.Msg{
				Success: false,
				Msg:     locale.I18n(locale.GetLocalizer(c), "toasts.tooManyAttempts", "Seconds=="+strconv.Itoa(seconds)),
			})
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusUnauthorized {
			l.recordFailure(key)
		}
	}
}

func (l *LoginRateLimiter) recordFailure(key string) {
	if err := l.failures.Add(key, 1, l.window); err == nil {
		return
	}
	if _, err := l.failures.IncrementInt(key, 1); err != nil {
		// expired between Add and IncrementInt
		l.failures.Set(key, 1, l.window)
	}
}

// Reset forgets every recorded failure.
func (l *LoginRateLimiter) Reset() {
	l.failures.Flush()
}
