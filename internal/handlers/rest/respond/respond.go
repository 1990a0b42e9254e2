package respond

import (
	"encoding/json"
	"net/http"

	"dispatch/internal/apperr"
	"dispatch/pkg/logger"
)

// ErrMalformedBody тело запроса не разобралось как JSON нужной формы.
var ErrMalformedBody = apperr.New(apperr.ErrValidation, "malformed request body")

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var kindStatus = map[error]int{
	apperr.ErrValidation:      http.StatusBadRequest,
	apperr.ErrUnauthenticated: http.StatusUnauthorized,
	apperr.ErrUnauthorized:    http.StatusForbidden,
	apperr.ErrNotFound:        http.StatusNotFound,
	apperr.ErrConflict:        http.StatusConflict,
	apperr.ErrExpired:         http.StatusGone,
}

func JSON(w http.ResponseWriter, log errorLogger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}

// Error пишет доменную ошибку с кодом по ее виду. Все остальное 500 без подробностей.
func Error(w http.ResponseWriter, log errorLogger, err error) {
	kind := apperr.Kind(err)
	status, ok := kindStatus[kind]
	if !ok {
		log.Error("request failed", logger.NewField("error", err))
		JSON(w, log, http.StatusInternalServerError, errorBody{
			Error:   "internal",
			Message: "internal server error",
		})
		return
	}

	msg := apperr.Message(err)
	if msg == "" {
		msg = err.Error()
	}

	JSON(w, log, status, errorBody{
		Error:   kind.Error(),
		Message: msg,
	})
}

// Status код ответа для ошибки, нужен там, где тело уже не отправить.
func Status(err error) int {
	if status, ok := kindStatus[apperr.Kind(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}
