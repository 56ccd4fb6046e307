// file: internals/features/school/attendance/model/attendance_status.go
package model

// AttendanceStatus adalah nilai mentah yang tersimpan di tiga kolom status
// (final / pending / live) pada attendance_records.
type AttendanceStatus string

const (
	AttendanceStatusUnstarted       AttendanceStatus = "unstarted"
	AttendanceStatusPresent         AttendanceStatus = "present"
	AttendanceStatusAbsent          AttendanceStatus = "absent"
	AttendanceStatusTruant          AttendanceStatus = "truant"
	AttendanceStatusLeave           AttendanceStatus = "leave"
	AttendanceStatusLeavePending    AttendanceStatus = "leave_pending"
	AttendanceStatusPendingApproval AttendanceStatus = "pending_approval"
)

// Valid memastikan status merupakan salah satu nilai yang didukung.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusUnstarted,
		AttendanceStatusPresent,
		AttendanceStatusAbsent,
		AttendanceStatusTruant,
		AttendanceStatusLeave,
		AttendanceStatusLeavePending,
		AttendanceStatusPendingApproval:
		return true
	default:
		return false
	}
}
