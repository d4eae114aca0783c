// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов об ошибках. Успешные ответы отдают сам ресурс,
// ошибки — конверт с машиночитаемым kind и человекочитаемым сообщением.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Машиночитаемые виды ошибок.
const (
	KindValidation   = "validation_error"
	KindConflict     = "conflict"
	KindNotFound     = "not_found"
	KindPrecondition = "precondition_failed"
	KindRateLimited  = "rate_limited"
	KindInternal     = "internal"
)

// ErrorResponse описывает структуру JSON-ответа с ошибкой.
// Поле Kind — машиночитаемый вид ошибки, Error — текст для человека.
// Детали внутреннего состояния наружу не попадают.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Kind   string `json:"kind" example:"validation_error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Error возвращает ErrorResponse с заданным видом и сообщением.
func Error(kind, msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Kind:   kind,
		Error:  msg,
	}
}

// ValidationError формирует ответ вида validation_error на основе ошибок валидатора.
// Каждое нарушение переводится в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "gte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than or equal to %s", err.Field(), err.Param()))
		case "lte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be less than or equal to %s", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ErrorResponse{
		Status: StatusError,
		Kind:   KindValidation,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
