package httpclient

import (
	"net/http"
	"time"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/logger"

	"go.uber.org/zap"
)

// LoggingRoundTripper captures request details for debugging.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	logger.Get().Debug("HTTP Request Started",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("HTTP Request Failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Get().Debug("HTTP Request Completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// BearerRoundTripper attaches a static bearer token to every outgoing request.
// Adapters that forward per-user tokens set the Authorization header per request
// instead; this is for service-level credentials (e.g., the card provider key).
type BearerRoundTripper struct {
	// Token is the bearer credential to attach.
	Token string
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip sets the Authorization header on a clone of the request and
// executes it. RoundTrippers must not mutate the caller's request.
func (brt *BearerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") == "" && brt.Token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+brt.Token)
	}
	return brt.Proxied.RoundTrip(req)
}

// NewClient returns an http.Client with logging middleware.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
		},
		Timeout: timeout,
	}
}

// NewBearerClient returns an http.Client that logs requests and attaches the
// given bearer token to each of them.
func NewBearerClient(token string, timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &BearerRoundTripper{
			Token: token,
			Proxied: &LoggingRoundTripper{
				Proxied: http.DefaultTransport,
			},
		},
		Timeout: timeout,
	}
}
