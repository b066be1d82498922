package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden      ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest     ErrorCode = "BAD_REQUEST"
	ErrCodeConflict       ErrorCode = "CONFLICT"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation     ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError  ErrorCode = "DATABASE_ERROR"
	ErrCodeAuthentication ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeGeneration     ErrorCode = "GENERATION_FAILED"
	ErrCodeExport         ErrorCode = "EXPORT_FAILED"
)

// Сообщения, которые безопасно показывать пользователю.
const (
	MsgGenerationFailed = "Failed to generate proposal. Please try again later."
	MsgExportFailed     = "Failed to generate download file. Please try again."
	MsgNotAuthorized    = "You are not authorized to access this proposal."
	MsgSaveFailed       = "Failed to save proposal. Please try again later."
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// Authentication - сервис генерации отклонил ключ API.
func Authentication(cause error) *AppError {
	return Wrap(cause, ErrCodeAuthentication, MsgGenerationFailed)
}

// GenerationFailed - любая другая ошибка при обращении к сервису генерации.
func GenerationFailed(cause error) *AppError {
	return Wrap(cause, ErrCodeGeneration, MsgGenerationFailed)
}

// ExportFailed - не удалось построить файл выгрузки.
func ExportFailed(cause error) *AppError {
	return Wrap(cause, ErrCodeExport, MsgExportFailed)
}

// NotAuthorized - запрошенное предложение не принадлежит пользователю (или не существует).
func NotAuthorized() *AppError {
	return New(ErrCodeForbidden, MsgNotAuthorized)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeAuthentication, ErrCodeGeneration:
		// ключ API принадлежит серверу, а не клиенту, поэтому не 401
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код AppError в цепочке или ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

var (
	ErrUserNotFound       = New(ErrCodeNotFound, "user not found")
	ErrInvalidCredentials = New(ErrCodeUnauthorized, "invalid email or password")
	ErrEmailTaken         = New(ErrCodeConflict, "email already registered")
	ErrUsernameTaken      = New(ErrCodeConflict, "username already taken")
)
