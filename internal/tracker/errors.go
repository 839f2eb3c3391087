package tracker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorType はトラッカーAPIエラーの種別
type ErrorType int

const (
	// ErrorTypeUnknown は分類できないエラー
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit はレート制限超過
	ErrorTypeRateLimit
	// ErrorTypeNetworkTimeout はネットワーク障害・タイムアウト
	ErrorTypeNetworkTimeout
	// ErrorTypeAuthentication は認証・権限エラー
	ErrorTypeAuthentication
	// ErrorTypeNotFound はリソースが存在しない
	ErrorTypeNotFound
	// ErrorTypeServerError は5xx
	ErrorTypeServerError
)

// String はエラー種別の文字列表現を返す
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeRateLimit:
		return "RateLimit"
	case ErrorTypeNetworkTimeout:
		return "NetworkTimeout"
	case ErrorTypeAuthentication:
		return "Authentication"
	case ErrorTypeNotFound:
		return "NotFound"
	case ErrorTypeServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}

// Error はトラッカー呼び出しの失敗。内部でリトライはせず、呼び出し元に伝播させる
type Error struct {
	Op         string
	Type       ErrorType
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s failed [%s, HTTP %d]: %s", e.Op, e.Type, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s failed [%s]: %s", e.Op, e.Type, msg)
}

// Unwrap は元のエラーを返す
func (e *Error) Unwrap() error {
	return e.Err
}

// TypeForStatus はHTTPステータスコードからエラー種別を決める
func TypeForStatus(status int) ErrorType {
	switch {
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrorTypeAuthentication
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status >= 500 && status < 600:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}

// NewError はHTTPステータスから Error を組み立てる
func NewError(op string, status int, message string, err error) *Error {
	return &Error{
		Op:         op,
		Type:       TypeForStatus(status),
		StatusCode: status,
		Message:    message,
		Err:        err,
	}
}

// WrapTransport はHTTPレスポンスを伴わない失敗（通信エラー・キャンセル）を Error に変換する
func WrapTransport(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var existing *Error
	if errors.As(err, &existing) {
		return err
	}

	t := ErrorTypeUnknown
	var netErr net.Error
	if errors.As(err, &netErr) {
		t = ErrorTypeNetworkTimeout
	}
	return &Error{Op: op, Type: t, Err: err}
}

func isType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// IsNotFound はリソースが存在しないエラーかを返す
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsRateLimit はレート制限エラーかを返す
func IsRateLimit(err error) bool {
	return isType(err, ErrorTypeRateLimit)
}

// IsAuthentication は認証エラーかを返す
func IsAuthentication(err error) bool {
	return isType(err, ErrorTypeAuthentication)
}
