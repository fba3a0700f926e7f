package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"

	"roomslot/infras/otel"
	"roomslot/internal/domains/dashboard/model/dto"
	slotService "roomslot/internal/domains/slot/service"
	"roomslot/shared/clock"
	"roomslot/shared/constant"
	gModel "roomslot/shared/model"

	"github.com/rs/zerolog/log"
)

type Dashboard interface {
	Summary(ctx context.Context) (dto.SummaryResponse, error)
}

type serviceImpl struct {
	slots slotService.Slot
	otel  otel.Otel
	clock clock.Clock
}

func New(slots slotService.Slot, otel otel.Otel, clk clock.Clock) Dashboard {
	return &serviceImpl{
		slots: slots,
		otel:  otel,
		clock: clk,
	}
}

// Summary folds today's policy-applied matrix into per-status counts. It is never
// cached since the counts move with the clock.
func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Summary")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	views, err := s.slots.ListForDate(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list room slots for dashboard")

		return res, err //nolint:wrapcheck
	}

	res.Date = gModel.DateOf(s.clock.Now()).String()

	for _, view := range views {
		res.Add(view.RoomSlots)
	}

	return res, nil
}
