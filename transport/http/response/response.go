package response

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"roomslot/infras/otel"
	"roomslot/shared/constant"
	"roomslot/shared/failure"
	"roomslot/shared/logger"

	"github.com/rs/zerolog/log"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the body of every non-2xx answer. Reason is set for typed failures so
// clients can tell, say, a taken slot from a duplicate booking without parsing text.
type Error struct {
	Error  *string `json:"error,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: &message})
}

func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, Data[any]{Data: &payload})
}

// WithError maps err to its failure code. Anything that is not a typed failure is
// a 500: it gets logged here and the client only sees the status text.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	msg := err.Error()
	if code >= http.StatusInternalServerError {
		logger.ErrorWithStack(err)

		msg = http.StatusText(code)
	}

	write(writer, code, Error{Error: &msg, Reason: failure.GetReason(err)})
}

// Fail records err on the handler span and answers with WithError. Rejected
// requests are logged at debug; WithError logs server faults itself.
func Fail(writer http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)

	if failure.GetCode(err) < http.StatusInternalServerError {
		log.Debug().Err(err).Str("reason", failure.GetReason(err)).Msg("Request rejected")
	}

	WithError(writer, err)
}

// WithRequestLimitExceeded answers 429 and tells the client when the window resets.
func WithRequestLimitExceeded(writer http.ResponseWriter, retryAfter time.Duration) {
	if retryAfter > 0 {
		writer.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(int(retryAfter.Seconds())))
	}

	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
