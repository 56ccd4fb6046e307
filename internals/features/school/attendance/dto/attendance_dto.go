// file: internals/features/school/attendance/dto/attendance_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"kampusku_backend/internals/features/school/attendance/model"
)

/* =========================
   Requests (trigger job & operasional)
   ========================= */

type RunAggregationRequest struct {
	// Kosong = hari ini.
	ReportDate string `json:"report_date" validate:"omitempty,datetime=2006-01-02"`
}

type RebuildRangeRequest struct {
	TeachingWeek int  `json:"teaching_week" validate:"required,min=1"`
	Weekday      *int `json:"weekday" validate:"omitempty,min=1,max=7"`
}

type MaterializeRosterRequest struct {
	SessionId  uuid.UUID   `json:"session_id" validate:"required"`
	StudentIds []uuid.UUID `json:"student_ids" validate:"required,min=1,dive,required"`
}

type OpenWindowRequest struct {
	SessionId       uuid.UUID `json:"session_id" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,min=1,max=120"`
}

/* =========================
   Responses
   ========================= */

type VerificationWindowResponse struct {
	VerificationWindowId uuid.UUID `json:"verification_window_id"`
	SessionId            uuid.UUID `json:"session_id"`
	Round                int       `json:"round"`
	OpenAt               time.Time `json:"open_at"`
	CloseAt              time.Time `json:"close_at"`
	DurationMinutes      int       `json:"duration_minutes"`
}

func NewVerificationWindowResponse(w *model.VerificationWindowModel) VerificationWindowResponse {
	return VerificationWindowResponse{
		VerificationWindowId: w.VerificationWindowId,
		SessionId:            w.VerificationWindowSessionId,
		Round:                w.VerificationWindowRound,
		OpenAt:               w.VerificationWindowOpenAt,
		CloseAt:              w.CloseAt(),
		DurationMinutes:      w.VerificationWindowDurationMinutes,
	}
}

// StudentSessionStatusResponse: tag kanonik + flag aksi. Layer ini TIDAK
// memformat teks tampilan - konsumen yang menerjemahkan tag.
type StudentSessionStatusResponse struct {
	SessionId       uuid.UUID `json:"session_id"`
	StudentId       uuid.UUID `json:"student_id"`
	Tag             string    `json:"tag"`
	Tier            string    `json:"tier"`
	CanCheckIn      bool      `json:"can_check_in"`
	CanRequestLeave bool      `json:"can_request_leave"`
	SessionStartAt  time.Time `json:"session_start_at"`
	SessionEndAt    time.Time `json:"session_end_at"`

	ActiveWindow *VerificationWindowResponse `json:"active_window,omitempty"`
}
