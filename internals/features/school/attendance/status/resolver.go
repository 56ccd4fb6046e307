// file: internals/features/school/attendance/status/resolver.go
package status

import (
	"time"

	"kampusku_backend/internals/features/school/attendance/model"
)

// Tag adalah status kanonik hasil resolve. Core ini TIDAK memproduksi teks
// tampilan - layer API yang menerjemahkan tag jadi label/ikon.
type Tag string

const (
	TagCheckinNotRequired                Tag = "checkin_not_required"
	TagPresent                           Tag = "present"
	TagPresentInMakeupWindow             Tag = "present_in_makeup_window"
	TagAbsent                            Tag = "absent"
	TagTruant                            Tag = "truant"
	TagLeave                             Tag = "leave"
	TagLeavePending                      Tag = "leave_pending"
	TagCheckinPendingTeacherConfirmation Tag = "checkin_pending_teacher_confirmation"
	TagNotYetOpen                        Tag = "not_yet_open"
	TagCheckinOpen                       Tag = "checkin_open"
	TagCheckinUrgent                     Tag = "checkin_urgent"
	TagMakeupInProgress                  Tag = "makeup_in_progress"
	TagClosed                            Tag = "closed"
)

// Tier menandai field status mana yang menang (buat audit/debug).
type Tier string

const (
	TierFinal   Tier = "final"
	TierPending Tier = "pending"
	TierLive    Tier = "live"
	TierNone    Tier = "none"
)

// ResolvedState: tag kanonik + flag aksi yang boleh ditawarkan ke mahasiswa.
type ResolvedState struct {
	Tag             Tag  `json:"tag"`
	CanCheckIn      bool `json:"can_check_in"`
	CanRequestLeave bool `json:"can_request_leave"`
	Tier            Tier `json:"tier"`
}

func state(tag Tag, tier Tier) ResolvedState {
	return ResolvedState{Tag: tag, Tier: tier}
}

// Resolve merekonsiliasi tiga field status + waktu jadi satu state kanonik.
// Murni, deterministik, total: input well-formed apa pun selalu menghasilkan
// nilai (fallback TagClosed), tidak pernah error/panic. Prioritas tetap:
// requiresCheckin=false > final > pending > live; recency tidak pernah
// dipakai. Tidak ada state yang di-cache - final yang dihapus admin otomatis
// jatuh lagi ke evaluasi tier bawah pada pemanggilan berikutnya.
func Resolve(
	record *model.AttendanceRecordModel,
	session *model.CourseSessionModel,
	window *model.VerificationWindowModel,
	now time.Time,
) ResolvedState {
	// 1) Sesi tanpa kewajiban check-in: semua sinyal lain tidak bermakna.
	if !session.CourseSessionRequiresCheckin {
		return state(TagCheckinNotRequired, TierNone)
	}

	// 2) Final = keputusan tertutup secara administratif, tidak ditinjau ulang.
	if record.AttendanceRecordFinalStatus != nil {
		return state(mapTerminal(*record.AttendanceRecordFinalStatus), TierFinal)
	}

	// 3) Pending = workflow izin masih berjalan / sesi belum dibuka.
	if record.AttendanceRecordPendingStatus != nil {
		switch *record.AttendanceRecordPendingStatus {
		case model.AttendanceStatusUnstarted:
			s := state(TagNotYetOpen, TierPending)
			s.CanRequestLeave = true // izin boleh diajukan sebelum sesi dibuka
			return s
		default:
			return state(mapTerminal(*record.AttendanceRecordPendingStatus), TierPending)
		}
	}

	// 4) Live + waktu.
	switch record.AttendanceRecordLiveStatus {
	case model.AttendanceStatusLeave:
		return state(TagLeave, TierLive)
	case model.AttendanceStatusLeavePending:
		return state(TagLeavePending, TierLive)
	case model.AttendanceStatusPendingApproval:
		return state(TagCheckinPendingTeacherConfirmation, TierLive)
	}

	w := ComputeWindows(session, window)

	if now.Before(w.PreOpen) {
		s := state(TagNotYetOpen, TierLive)
		s.CanRequestLeave = true
		return s
	}

	if record.AttendanceRecordLiveStatus == model.AttendanceStatusPresent {
		// Klasifikasi check-in susulan dibaca dari sumber check-in yang
		// terekam (ronde window), bukan dievaluasi ulang terhadap now -
		// check-in yang sudah selesai tidak berubah kelas saat window tutup.
		if w.HasMakeup && checkedInWindow(record, w.MakeupRound) {
			return state(TagPresentInMakeupWindow, TierLive)
		}
		return state(TagPresent, TierLive)
	}

	// Live default "unstarted" diperlakukan sama dengan "absent" untuk cabang
	// berbasis waktu: keduanya berarti belum ada check-in.
	notCheckedIn := record.AttendanceRecordLiveStatus == model.AttendanceStatusAbsent ||
		record.AttendanceRecordLiveStatus == model.AttendanceStatusUnstarted

	if notCheckedIn && within(now, w.PreOpen, w.Start) {
		s := state(TagCheckinOpen, TierLive)
		s.CanCheckIn = true
		s.CanRequestLeave = true
		return s
	}

	if notCheckedIn && within(now, w.Start, w.GraceEnd) {
		// Lewat jam mulai: pengajuan izin sudah ditutup.
		s := state(TagCheckinUrgent, TierLive)
		s.CanCheckIn = true
		return s
	}

	if w.InMakeup(now) && !checkedInWindow(record, w.MakeupRound) {
		s := state(TagMakeupInProgress, TierLive)
		s.CanCheckIn = true
		return s
	}

	// Sesi sudah selesai seluruhnya tanpa resolusi → status live apa adanya.
	if w.SessionElapsed(now) {
		switch record.AttendanceRecordLiveStatus {
		case model.AttendanceStatusAbsent:
			return state(TagAbsent, TierLive)
		case model.AttendanceStatusTruant:
			return state(TagTruant, TierLive)
		}
	}

	// Fallback total: kombinasi waktu/status yang tidak dikenal (clock skew,
	// window hilang, nilai korup) - jangan pernah bikin caller gagal render.
	return state(TagClosed, TierNone)
}

// mapTerminal memetakan nilai status tersimpan 1:1 ke tag tanpa aksi.
func mapTerminal(s model.AttendanceStatus) Tag {
	switch s {
	case model.AttendanceStatusPresent:
		return TagPresent
	case model.AttendanceStatusAbsent:
		return TagAbsent
	case model.AttendanceStatusTruant:
		return TagTruant
	case model.AttendanceStatusLeave:
		return TagLeave
	case model.AttendanceStatusLeavePending:
		return TagLeavePending
	case model.AttendanceStatusPendingApproval:
		return TagCheckinPendingTeacherConfirmation
	default:
		return TagClosed
	}
}

// checkedInWindow: check-in record ini dikredit oleh ronde window tsb.
// Mencegah check-in ronde lama dihitung untuk ronde yang sedang berjalan.
func checkedInWindow(record *model.AttendanceRecordModel, round int) bool {
	return record.AttendanceRecordCheckinWindowRound != nil &&
		*record.AttendanceRecordCheckinWindowRound == round
}
