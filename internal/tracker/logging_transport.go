package tracker

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/douhashi/issuenum/internal/logger"
)

const bodyPreviewLimit = 200

// loggingRoundTripper はトラッカーAPIへのHTTPリクエスト/レスポンスをログ出力するラウンドトリッパー
type loggingRoundTripper struct {
	base   http.RoundTripper
	logger logger.Logger
}

// NewLoggingTransport はHTTPトランスポートにログ出力を差し込む。logger が nil なら base をそのまま返す
func NewLoggingTransport(base http.RoundTripper, log logger.Logger) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if log == nil {
		return base
	}
	return &loggingRoundTripper{base: base, logger: log}
}

// RoundTrip はHTTPリクエストを実行し、リクエスト/レスポンスの詳細をログ出力する
func (rt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	rt.logRequest(req)

	resp, err := rt.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		rt.logger.Error("tracker_api_error",
			"method", req.Method,
			"url", req.URL.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	rt.logResponse(req, resp, duration)
	return resp, nil
}

// logRequest はリクエストをログ出力する
func (rt *loggingRoundTripper) logRequest(req *http.Request) {
	fields := []interface{}{
		"method", req.Method,
		"url", req.URL.String(),
	}

	// Authorization / PRIVATE-TOKEN はマスキング
	if auth := req.Header.Get("Authorization"); auth != "" {
		fields = append(fields, "authorization", maskAuthHeader(auth))
	}
	if req.Header.Get("PRIVATE-TOKEN") != "" {
		fields = append(fields, "private_token", "[REDACTED]")
	}

	rt.logger.Debug("tracker_api_request", fields...)
}

// logResponse はレスポンスをログ出力する。失敗時はボディの先頭も残す
func (rt *loggingRoundTripper) logResponse(req *http.Request, resp *http.Response, duration time.Duration) {
	fields := []interface{}{
		"method", req.Method,
		"url", req.URL.String(),
		"status_code", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	}

	// GitHubとGitLabでヘッダー名が異なる
	for _, h := range []string{"X-RateLimit-Remaining", "RateLimit-Remaining"} {
		if v := resp.Header.Get(h); v != "" {
			fields = append(fields, "rate_limit_remaining", v)
			break
		}
	}
	for _, h := range []string{"X-RateLimit-Reset", "RateLimit-Reset"} {
		if v := resp.Header.Get(h); v != "" {
			fields = append(fields, "rate_limit_reset", v)
			break
		}
	}

	if resp.StatusCode >= 400 && resp.Body != nil {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			rt.logger.Error("failed_to_read_response_body", "error", err.Error())
		} else {
			resp.Body = io.NopCloser(bytes.NewReader(bodyBytes))

			preview := string(bodyBytes)
			if len(preview) > bodyPreviewLimit {
				preview = preview[:bodyPreviewLimit] + "..."
			}
			fields = append(fields, "body_preview", preview)
		}
		rt.logger.Warn("tracker_api_response", fields...)
		return
	}

	rt.logger.Debug("tracker_api_response", fields...)
}

// maskAuthHeader はAuthorizationヘッダーのスキーム以外を伏せる
func maskAuthHeader(auth string) string {
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) == 2 {
		return fmt.Sprintf("%s [REDACTED]", parts[0])
	}
	return "[REDACTED]"
}
