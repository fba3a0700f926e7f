package dto

import (
	"net/http"
	"strings"
	"time"

	"roomslot/internal/domains/booking/model"
	slotModel "roomslot/internal/domains/slot/model"
	"roomslot/shared"
	"roomslot/shared/constant"
	gDto "roomslot/shared/dto"
	"roomslot/shared/failure"
	gModel "roomslot/shared/model"
	"roomslot/shared/timezone"
	"roomslot/shared/validator"

	"github.com/google/uuid"
)

const (
	// HistoryOrder lists the newest day first and the windows of a day in order.
	HistoryOrder = "room_bookings.room_date DESC, room_bookings.slot_window ASC"
)

type CreateBookingRequest struct {
	RoomID string           `json:"room_id" validate:"required,notblank"`
	Window slotModel.Window `json:"window"  validate:"required,enum"`
	Reason string           `json:"reason"  validate:"required,notblank,max=500"`
}

func (c *CreateBookingRequest) ToModel(user string, now time.Time) model.Booking {
	return model.Booking{
		ID:       uuid.NewString(),
		UserID:   user,
		RoomID:   c.RoomID,
		Window:   c.Window,
		Reason:   strings.TrimSpace(c.Reason),
		RoomDate: gModel.DateOf(now),
		Status:   model.StatusPending,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type CreateBookingResponse struct {
	ID string `json:"id"`
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) Valid() bool {
	return d == DecisionApprove || d == DecisionReject
}

func (d Decision) InvalidReason() string {
	return "invalid_decision"
}

// Status is the booking status the decision resolves to.
func (d Decision) Status() model.Status {
	if d == DecisionApprove {
		return model.StatusApproved
	}

	return model.StatusRejected
}

type ResolveBookingRequest struct {
	Decision Decision `json:"decision" validate:"required,enum"`
	Comment  *string  `json:"comment"  validate:"omitempty,max=500"`
}

// StoredComment is the comment to persist: only rejections keep one.
func (r *ResolveBookingRequest) StoredComment() *string {
	if r.Decision != DecisionReject {
		return nil
	}

	return shared.TrimToNil(r.Comment)
}

// HistoryFilter narrows booking listings. Zero fields do not filter.
type HistoryFilter struct {
	Statuses []model.Status `json:"statuses"`
	Date     gModel.Date    `json:"date"`
	UserID   string         `json:"user_id"`
}

// FromRequest reads status (comma separated), date (YYYY-MM-DD) and user_id.
func (h *HistoryFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	for _, value := range shared.SplitList(query.Get(constant.RequestParamStatus)) {
		status := model.Status(strings.ToLower(value))
		if !status.Valid() {
			return failure.WithReason(http.StatusBadRequest, validator.ReasonInvalidField, "invalid status: "+value)
		}

		h.Statuses = append(h.Statuses, status)
	}

	if date := query.Get(constant.RequestParamDate); date != constant.Empty {
		day, err := timezone.ParseDay(date)
		if err != nil {
			return failure.WithReason(http.StatusBadRequest, validator.ReasonInvalidField, "invalid date, expected YYYY-MM-DD")
		}

		h.Date = gModel.DateOf(day)
	}

	h.UserID = query.Get(constant.RequestParamUserID)

	return nil
}

func (h *HistoryFilter) ToFilterGroup() gDto.FilterGroup {
	filter := gDto.And()

	if len(h.Statuses) > 0 {
		filter.Add(gDto.In(model.TableName, model.FieldStatus, h.Statuses))
	}

	if h.Date != constant.Empty {
		filter.Add(gDto.Eq(model.TableName, model.FieldRoomDate, h.Date))
	}

	if h.UserID != constant.Empty {
		filter.Add(gDto.Eq(model.TableName, model.FieldUserID, h.UserID))
	}

	return filter
}

type BookingResponse struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	UserName        string           `json:"user_name"`
	RoomID          string           `json:"room_id"`
	RoomNumber      string           `json:"room_number"`
	RoomFloor       string           `json:"room_floor"`
	Window          slotModel.Window `json:"window"`
	WindowLabel     string           `json:"window_label"`
	Reason          string           `json:"reason"`
	Date            string           `json:"date"`
	Status          model.Status     `json:"status"`
	ApproverID      *string          `json:"approver_id"`
	ApproverName    *string          `json:"approver_name"`
	ApproverComment *string          `json:"approver_comment"`
	ResolvedAt      *string          `json:"resolved_at"`
	CreatedAt       string           `json:"created_at"`
}

func (b *BookingResponse) FromModel(view model.BookingView) {
	b.ID = view.ID
	b.UserID = view.UserID
	b.UserName = view.UserName
	b.RoomID = view.RoomID
	b.RoomNumber = view.RoomNumber
	b.RoomFloor = view.RoomFloor
	b.Window = view.Window
	b.WindowLabel = view.Window.Label()
	b.Reason = view.Reason
	b.Date = view.RoomDate.String()
	b.Status = view.Status
	b.ApproverID = view.ApproverID
	b.ApproverName = view.ApproverName
	b.ApproverComment = view.ApproverComment
	b.CreatedAt = timezone.Format(view.CreatedAt, constant.DateFormat)

	if view.ResolvedAt != nil {
		resolved := timezone.Format(*view.ResolvedAt, constant.DateFormat)
		b.ResolvedAt = &resolved
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.BookingView, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type ExportResponse struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
	Rows      int    `json:"rows"`
}
