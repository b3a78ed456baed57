// Package handlers общие функции HTTP слоя: JSON ответы, декодирование и валидация тел запросов
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

const (
	msgInternalError      = "внутренняя ошибка сервера"
	msgServiceUnavailable = "сервис временно недоступен, повторите запрос"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError отправляет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondErrorWithDetails отправляет ошибку с дополнительными данными
func RespondErrorWithDetails(w http.ResponseWriter, status int, message string, details any) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message, Details: details})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string, details any) {
	RespondErrorWithDetails(w, http.StatusConflict, message, details)
}

// RespondUnprocessable 422
func RespondUnprocessable(w http.ResponseWriter, message string, details any) {
	RespondErrorWithDetails(w, http.StatusUnprocessableEntity, message, details)
}

// RespondTooManyRequests 429 с заголовком Retry-After
func RespondTooManyRequests(w http.ResponseWriter, message string, retryAfter time.Duration) {
	setRetryAfter(w, retryAfter)
	RespondError(w, http.StatusTooManyRequests, message)
}

// RespondServiceUnavailable 503 с заголовком Retry-After
func RespondServiceUnavailable(w http.ResponseWriter, retryAfter time.Duration) {
	setRetryAfter(w, retryAfter)
	RespondError(w, http.StatusServiceUnavailable, msgServiceUnavailable)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// setRetryAfter выставляет Retry-After в секундах, округляя вверх
func setRetryAfter(w http.ResponseWriter, d time.Duration) {
	seconds := int64((d + time.Second - 1) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
}
