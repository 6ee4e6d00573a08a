package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"nexusems/internal/shared/utils/response"
	"nexusems/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware limits requests per client IP and route class. A Redis failure lets
// the request through.
func Middleware(rateLimiter *RateLimiter, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.Request.Method, c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			log.ErrorWithContext(c.Request.Context(), "Rate limit check failed", err, map[string]interface{}{
				"ip":    clientIP,
				"class": string(limitType),
			})
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			log.LogRateLimitExceeded(c.Request.Context(), clientIP, c.FullPath())
			response.RespondJSON(c, http.StatusTooManyRequests, "Rate limit exceeded", gin.H{
				"limit":      result.Limit,
				"reset_time": result.ResetTime,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func getRateLimitType(method, path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/metrics"):
		return RateLimitTypeHealth

	case strings.Contains(path, "/organizer/"),
		strings.HasSuffix(path, "/attendees"),
		strings.Contains(path, "/waitlist/notify"):
		return RateLimitTypeOrganizer

	// Seat-touching writes
	case strings.HasSuffix(path, "/bookings") && method == http.MethodPost,
		strings.HasSuffix(path, "/payment"),
		strings.Contains(path, "/bookings/") && method == http.MethodDelete:
		return RateLimitTypeBookingCritical

	case strings.Contains(path, "/bookings"):
		return RateLimitTypeBooking

	case strings.Contains(path, "/waitlist"):
		return RateLimitTypeWaitlist

	case strings.Contains(path, "/events"),
		strings.Contains(path, "/tickets"),
		strings.Contains(path, "/discounts"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// getClientIP prefers proxy headers, then RemoteAddr
func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := c.GetHeader("X-Real-IP"); net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}
