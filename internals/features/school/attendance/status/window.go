// file: internals/features/school/attendance/status/window.go
package status

import (
	"time"

	"kampusku_backend/internals/features/school/attendance/model"
)

const (
	// Check-in dibuka 10 menit sebelum sesi mulai.
	PreOpenLead = 10 * time.Minute
	// Grace period 10 menit setelah sesi mulai.
	GraceAfterStart = 10 * time.Minute
)

// Windows adalah himpunan interval waktu bernama yang relevan untuk resolve
// status satu sesi. Semua interval setengah terbuka: [from, to).
type Windows struct {
	PreOpen  time.Time // start - 10m
	Start    time.Time
	GraceEnd time.Time // start + 10m
	End      time.Time

	HasMakeup   bool
	MakeupRound int
	MakeupOpen  time.Time
	MakeupEnd   time.Time // open + durasi
}

// ComputeWindows menghitung interval dari jadwal sesi + window susulan
// (boleh nil). Murni aritmetika waktu, tanpa I/O.
func ComputeWindows(session *model.CourseSessionModel, window *model.VerificationWindowModel) Windows {
	w := Windows{
		PreOpen:  session.CourseSessionStartAt.Add(-PreOpenLead),
		Start:    session.CourseSessionStartAt,
		GraceEnd: session.CourseSessionStartAt.Add(GraceAfterStart),
		End:      session.CourseSessionEndAt,
	}
	if window != nil {
		w.HasMakeup = true
		w.MakeupRound = window.VerificationWindowRound
		w.MakeupOpen = window.VerificationWindowOpenAt
		w.MakeupEnd = window.CloseAt()
	}
	return w
}

// InMakeup: true kalau now di dalam [MakeupOpen, MakeupEnd).
func (w Windows) InMakeup(now time.Time) bool {
	return w.HasMakeup && within(now, w.MakeupOpen, w.MakeupEnd)
}

// SessionElapsed: sesi sudah selesai seluruhnya.
func (w Windows) SessionElapsed(now time.Time) bool {
	return !now.Before(w.End)
}

// within: from <= now < to.
func within(now, from, to time.Time) bool {
	return !now.Before(from) && now.Before(to)
}
