package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig configures the CORS middleware.
type CORSConfig struct {
	// AllowOrigins lists origins allowed to make cross-origin requests. An
	// empty list or the single entry "*" allows every origin.
	AllowOrigins []string
	// AllowMethods defaults to GET, POST, PUT, DELETE, PATCH, OPTIONS.
	AllowMethods []string
	// AllowHeaders echoes Access-Control-Request-Headers when empty.
	AllowHeaders     []string
	AllowCredentials bool
	// MaxAge in seconds. Zero omits the header.
	MaxAge int
}

// CORS answers preflight requests itself with 204 and decorates every other
// cross-origin response. Origins are matched case-insensitively and echoed
// with the configured case.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	allowAll := len(cfg.AllowOrigins) == 0
	allowed := make(map[string]string, len(cfg.AllowOrigins))
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			allowAll = true
			break
		}
		allowed[strings.ToLower(o)] = o
	}

	allowMethods := strings.Join(cfg.AllowMethods, ", ")
	if allowMethods == "" {
		allowMethods = "GET, POST, PUT, DELETE, PATCH, OPTIONS"
	}
	allowHeaders := strings.Join(cfg.AllowHeaders, ", ")

	maxAge := ""
	if cfg.MaxAge > 0 {
		maxAge = strconv.Itoa(cfg.MaxAge)
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		h := c.Writer.Header()

		if origin == "" {
			if !allowAll {
				h.Add("Vary", "Origin")
			}
			c.Next()
			return
		}

		allowOrigin := matchOrigin(origin, allowAll, cfg.AllowCredentials, allowed)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			h.Add("Vary", "Origin")
			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")

			if allowOrigin != "" {
				h.Set("Access-Control-Allow-Origin", allowOrigin)
				h.Set("Access-Control-Allow-Methods", allowMethods)
				if allowHeaders != "" {
					h.Set("Access-Control-Allow-Headers", allowHeaders)
				} else if rh := c.GetHeader("Access-Control-Request-Headers"); rh != "" {
					h.Set("Access-Control-Allow-Headers", rh)
				}
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				if maxAge != "" {
					h.Set("Access-Control-Max-Age", maxAge)
				}
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		if !allowAll {
			h.Add("Vary", "Origin")
		}
		if allowOrigin != "" {
			h.Set("Access-Control-Allow-Origin", allowOrigin)
			if cfg.AllowCredentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
		}
		c.Next()
	}
}

// matchOrigin returns the Access-Control-Allow-Origin value for origin, or ""
// when it is not allowed. With credentials the wildcard is never sent.
func matchOrigin(origin string, allowAll, credentials bool, allowed map[string]string) string {
	if allowAll {
		if credentials {
			return origin
		}
		return "*"
	}
	if orig, ok := allowed[strings.ToLower(origin)]; ok {
		return orig
	}
	return ""
}
