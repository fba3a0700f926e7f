package dto

import (
	"fmt"
	"net/http"
	"path"
	"slices"
	"strings"
	"time"

	"roomslot/internal/domains/room/model"
	gDto "roomslot/shared/dto"
	"roomslot/shared/failure"
	gModel "roomslot/shared/model"
	"roomslot/shared/validator"

	"github.com/google/uuid"
)

const MaxImageSize = 1 << 20

var imageContentTypes = []string{"image/png", "image/jpeg"}

type CreateRoomRequest struct {
	Number   string `json:"number"   validate:"required,notblank,max=20"`
	Floor    string `json:"floor"    validate:"required,notblank,max=50"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=1000"`
	Image    string `json:"image"    validate:"omitempty,max=255"`
}

func (c *CreateRoomRequest) ToModel(user string, now time.Time) model.Room {
	return model.Room{
		ID:       uuid.NewString(),
		Number:   strings.TrimSpace(c.Number),
		Floor:    strings.TrimSpace(c.Floor),
		Capacity: c.Capacity,
		Image:    c.Image,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type CreateRoomResponse struct {
	ID string `json:"id"`
}

// UpdateRoomRequest only carries the fields staff may change; the floor is fixed.
type UpdateRoomRequest struct {
	Number   string `db:"number"   json:"number"   validate:"omitempty,notblank,max=20"`
	Capacity *int   `db:"capacity" json:"capacity" validate:"omitempty,min=1,max=1000"`
}

func (u *UpdateRoomRequest) Empty() bool {
	return u.Number == "" && u.Capacity == nil
}

type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

func (i *ImageUpload) Validate() error {
	if len(i.Data) == 0 {
		return failure.WithReason(http.StatusBadRequest, validator.ReasonMissingFields, "image is required")
	}

	if len(i.Data) > MaxImageSize {
		return failure.WithReason(http.StatusBadRequest, validator.ReasonInvalidField, "image must be at most 1MB")
	}

	if !slices.Contains(imageContentTypes, i.ContentType) {
		return failure.WithReason(http.StatusBadRequest, validator.ReasonInvalidField, "image must be png or jpeg")
	}

	return nil
}

// ObjectName keeps the original extension behind a fresh name.
func (i *ImageUpload) ObjectName() string {
	name := uuid.NewString()

	if ext := path.Ext(i.FileName); ext != "" {
		name = fmt.Sprintf("%s%s", name, strings.ToLower(ext))
	}

	return name
}

type RoomResponse struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Floor    string `json:"floor"`
	Capacity int    `json:"capacity"`
	Image    string `json:"image"`
	gDto.Audit
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Floor = model.Floor
	r.Capacity = model.Capacity
	r.Image = model.Image
	r.Audit = gDto.NewAudit(model.Metadata)
}
