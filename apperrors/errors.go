package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation           = "error.validation"
	CodeUnauthorized         = "error.unauthorized"
	CodeInvalidToken         = "error.invalidToken"
	CodeInvalidCredentials   = "error.invalidCredentials"
	CodeForbidden            = "error.forbidden"
	CodeNotFound             = "error.notFound"
	CodeHotelNotFound        = "error.hotelNotFound"
	CodeRoomNotFound         = "error.roomNotFound"
	CodeReservationNotFound  = "error.reservationNotFound"
	CodeDuplicateEmail       = "error.duplicateEmail"
	CodeDateConflict         = "error.dateConflict"
	CodeAlreadyCancelled     = "error.alreadyCancelled"
	CodeReservationCancelled = "error.reservationCancelled"
	CodeAlreadyPaid          = "error.alreadyPaid"
	CodeProcessor            = "error.paymentProcessor"
	CodeResourceBusy         = "error.resourceBusy"
	CodeRateLimited          = "error.rateLimited"
	CodeInternal             = "error.internal"
)

// AppError is the single error type that crosses the service/HTTP boundary.
// Two AppErrors match under errors.Is when their codes are equal.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func (e *AppError) StatusCode() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

// Wrap returns a copy of e carrying err as its cause.
func (e *AppError) Wrap(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// WithMessage returns a copy of e with a more specific human message.
func (e *AppError) WithMessage(msg string) *AppError {
	cp := *e
	cp.Message = msg
	return &cp
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func Validation(message string) *AppError {
	return ErrValidation.WithMessage(message)
}

func Internal(err error) *AppError {
	return ErrInternal.Wrap(err)
}

var (
	ErrValidation           = New(CodeValidation, "invalid request", http.StatusBadRequest)
	ErrUnauthorized         = New(CodeUnauthorized, "missing or malformed bearer token", http.StatusUnauthorized)
	ErrInvalidToken         = New(CodeInvalidToken, "invalid or expired token", http.StatusUnauthorized)
	ErrInvalidCredentials   = New(CodeInvalidCredentials, "invalid email or password", http.StatusUnauthorized)
	ErrForbidden            = New(CodeForbidden, "insufficient role for this operation", http.StatusForbidden)
	ErrNotFound             = New(CodeNotFound, "resource not found", http.StatusNotFound)
	ErrHotelNotFound        = New(CodeHotelNotFound, "hotel not found", http.StatusNotFound)
	ErrRoomNotFound         = New(CodeRoomNotFound, "room not found", http.StatusNotFound)
	ErrReservationNotFound  = New(CodeReservationNotFound, "reservation not found", http.StatusNotFound)
	ErrDuplicateEmail       = New(CodeDuplicateEmail, "email is already registered", http.StatusConflict)
	ErrDateConflict         = New(CodeDateConflict, "room is not available for the selected dates", http.StatusConflict)
	ErrAlreadyCancelled     = New(CodeAlreadyCancelled, "reservation is already cancelled", http.StatusConflict)
	ErrReservationCancelled = New(CodeReservationCancelled, "reservation is cancelled", http.StatusConflict)
	ErrAlreadyPaid          = New(CodeAlreadyPaid, "reservation already has a payment", http.StatusConflict)
	ErrProcessor            = New(CodeProcessor, "payment processor rejected the charge", http.StatusBadGateway)
	ErrResourceBusy         = New(CodeResourceBusy, "resource is busy, try again", http.StatusServiceUnavailable)
	ErrRateLimited          = New(CodeRateLimited, "too many requests", http.StatusTooManyRequests)
	ErrInternal             = New(CodeInternal, "internal server error", http.StatusInternalServerError)
)

// As converts any error into an AppError. Unknown errors become ErrInternal
// with the original kept as cause.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
