// Package apperrors 提供统一的错误定义
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

const (
	CodeInvalidParam          ErrorCode = "INVALID_PARAM"
	CodeInvalidContentType    ErrorCode = "INVALID_CONTENT_TYPE"
	CodeUnsupportedFormat     ErrorCode = "UNSUPPORTED_FORMAT"
	CodeCapabilityUnavailable ErrorCode = "CAPABILITY_UNAVAILABLE"
	CodeUpstreamGeneration    ErrorCode = "UPSTREAM_GENERATION_FAILURE"
	CodeMalformedUpstream     ErrorCode = "MALFORMED_UPSTREAM_OUTPUT"
	CodeEncodingFailed        ErrorCode = "ENCODING_FAILED"
	CodeStorageFailed         ErrorCode = "STORAGE_FAILED"
	CodeNotFound              ErrorCode = "NOT_FOUND"
	CodeInternal              ErrorCode = "INTERNAL"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target carries the same code, so sentinel values work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeInvalidParam, CodeInvalidContentType, CodeUnsupportedFormat:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeCapabilityUnavailable:
		return http.StatusServiceUnavailable
	case CodeUpstreamGeneration, CodeMalformedUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrInvalidParam          = New(CodeInvalidParam, "invalid parameter")
	ErrInvalidContentType    = New(CodeInvalidContentType, "invalid content type")
	ErrUnsupportedFormat     = New(CodeUnsupportedFormat, "unsupported file format")
	ErrCapabilityUnavailable = New(CodeCapabilityUnavailable, "capability unavailable")
	ErrUpstreamGeneration    = New(CodeUpstreamGeneration, "text generation failed")
	ErrNotFound              = New(CodeNotFound, "resource not found")
)

// IsAppError 检查错误链中是否包含 AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal error")
}

// HTTPStatus returns the status code an error maps to; unknown errors are 500.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return AsAppError(err).HTTPStatus
}

// UserMessage renders err for people rather than logs: the message, the detail
// when present, and the underlying cause for wrapped errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	msg := appErr.Message
	if appErr.Detail != "" {
		msg += ": " + appErr.Detail
	}
	if appErr.Err != nil {
		msg += ": " + appErr.Err.Error()
	}
	return msg
}
