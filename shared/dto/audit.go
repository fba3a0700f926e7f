package dto

import (
	"roomslot/shared/constant"
	"roomslot/shared/model"
	"roomslot/shared/timezone"
)

// Audit is the created/modified block embedded in entity responses. Timestamps are
// rendered in the application timezone.
type Audit struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func NewAudit(m model.Metadata) Audit {
	audit := Audit{CreatedBy: m.CreatedBy, ModifiedBy: m.ModifiedBy}

	if !m.CreatedAt.IsZero() {
		audit.CreatedAt = timezone.Format(m.CreatedAt, constant.DateFormat)
	}

	if !m.ModifiedAt.IsZero() {
		audit.ModifiedAt = timezone.Format(m.ModifiedAt, constant.DateFormat)
	}

	return audit
}
