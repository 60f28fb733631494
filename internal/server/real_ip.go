package server

import (
	"net"
	"net/http"
	"strings"
)

// RealIP returns the best-effort client IP address for a request.
// Forwarded wins over X-Forwarded-For, which wins over X-Real-IP,
// falling back to the connection's remote address.
func RealIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	for _, part := range strings.Split(r.Header.Get("Forwarded"), ",") {
		for _, pair := range strings.Split(part, ";") {
			pair = strings.TrimSpace(pair)
			if !strings.HasPrefix(strings.ToLower(pair), "for=") {
				continue
			}
			if ip := cleanIPValue(strings.Trim(pair[4:], "\" ")); ip != "" {
				return ip
			}
		}
	}
	for _, part := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		if ip := cleanIPValue(strings.TrimSpace(part)); ip != "" {
			return ip
		}
	}
	if ip := cleanIPValue(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

func cleanIPValue(value string) string {
	if value == "" {
		return ""
	}
	if strings.EqualFold(value, "unknown") {
		return ""
	}
	value = strings.TrimSpace(strings.Trim(value, "\""))
	if strings.HasPrefix(value, "[") {
		if idx := strings.Index(value, "]"); idx > 0 {
			value = value[1:idx]
		}
	}
	if host, _, err := net.SplitHostPort(value); err == nil && host != "" {
		return host
	}
	if ip := net.ParseIP(value); ip != nil {
		return ip.String()
	}
	return value
}
