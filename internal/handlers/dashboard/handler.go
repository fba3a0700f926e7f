package dashboard

import (
	"context"
	"net/http"

	"roomslot/infras/otel"
	"roomslot/internal/domains/dashboard/service"
	"roomslot/shared/constant"
	"roomslot/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) trace(r *http.Request, op string) (context.Context, otel.Scope) {
	return handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/dashboard/summary", handler.GetSummary)
}

// GetSummary counts today's slots per status.
// @Summary Get slot summary
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.SummaryResponse]
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.trace(r, "GetSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx)
	if err != nil {
		response.Fail(w, scope, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}
