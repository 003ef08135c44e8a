package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// UnknownClient is the sentinel used when no client address can be derived.
// It keeps rate limiting and consent hashing deterministic for direct
// connections that carry no forwarding headers.
const UnknownClient = "unknown"

// ClientAddr extracts the client network address from the request.
//
// Priority order:
// 1. First entry of X-Forwarded-For (standard load balancers and CDNs)
// 2. X-Real-IP (reverse proxies like Nginx)
// 3. Gin's ClientIP() for direct connections
//
// The returned value is only ever hashed (rate-limit fingerprint, consent
// ip_hash); callers must not log or persist it raw.
func ClientAddr(c *gin.Context) string {
	forwarded := c.Request.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// Format: X-Forwarded-For: client, proxy1, proxy2
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	realIP := strings.TrimSpace(c.Request.Header.Get("X-Real-IP"))
	if realIP != "" && isValidIP(realIP) {
		return realIP
	}

	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	return UnknownClient
}

// GetUserAgent extracts the User-Agent header from the request
func GetUserAgent(c *gin.Context) string {
	ua := c.Request.UserAgent()
	if ua == "" {
		return "Unknown"
	}
	return ua
}

// isValidIP checks if the given string is a valid IP address
func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
