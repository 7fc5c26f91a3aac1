package netutil

import (
	"context"
	"errors"
	"net"
	"net/url"
	"regexp"
	"strings"

	tele "gopkg.in/telebot.v4"
)

// Error kinds reported in logs for failed Telegram API calls.
const (
	KindTimeout   = "timeout"
	KindCancelled = "cancelled"
	KindDNS       = "dns"
	KindNetwork   = "network"
	KindHTTP4xx   = "http_4xx"
	KindHTTP5xx   = "http_5xx"
	KindOther     = "other"
)

var tokenRx = regexp.MustCompile(`bot\d+:[A-Za-z0-9_-]+`)

// RedactToken hides bot tokens embedded in Telegram API URLs.
func RedactToken(s string) string {
	return tokenRx.ReplaceAllString(s, "bot<redacted>")
}

// IsTransient reports whether a network error is a short-lived dial or timeout
// failure produced by net/http while contacting the Telegram API.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && (opErr.Timeout() || opErr.Op == "dial") {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr) && urlErr.Timeout()
}

// IsNotModified reports whether an edit was rejected because the message
// already has the requested text and markup.
func IsNotModified(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, tele.ErrSameMessageContent) || errors.Is(err, tele.ErrMessageNotModified) {
		return true
	}
	return strings.Contains(err.Error(), "message is not modified")
}

// Classify maps an error returned by a Telegram call to a coarse kind for logs.
// It returns "" for nil.
func Classify(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return KindCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return httpKind(apiErr.Code)
	}
	var floodErr tele.FloodError
	if errors.As(err, &floodErr) {
		return KindHTTP4xx
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNS
	}
	if IsTransient(err) {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindNetwork
	}
	return KindOther
}

func httpKind(code int) string {
	switch {
	case code >= 500:
		return KindHTTP5xx
	case code >= 400:
		return KindHTTP4xx
	default:
		return KindOther
	}
}
