// file: internals/features/school/attendance/model/course_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CourseSessionModel struct {
	CourseSessionId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:course_session_id" json:"course_session_id"`

	CourseSessionCourseCode string `gorm:"type:varchar(32);not null;index;column:course_session_course_code" json:"course_session_course_code"`
	CourseSessionCourseName string `gorm:"type:varchar(120);not null;column:course_session_course_name"      json:"course_session_course_name"`

	CourseSessionTeacherNames pq.StringArray `gorm:"type:text[];column:course_session_teacher_names" json:"course_session_teacher_names,omitempty"`
	CourseSessionRoom         *string        `gorm:"type:varchar(64);column:course_session_room"     json:"course_session_room,omitempty"`

	CourseSessionStartAt time.Time `gorm:"not null;column:course_session_start_at" json:"course_session_start_at"`
	CourseSessionEndAt   time.Time `gorm:"not null;column:course_session_end_at"   json:"course_session_end_at"`

	// Alamat akademik: pekan ke-N + hari (1=Senin .. 7=Minggu)
	CourseSessionTeachingWeek int `gorm:"type:smallint;not null;index:idx_course_sessions_week_day;column:course_session_teaching_week" json:"course_session_teaching_week"`
	CourseSessionWeekday      int `gorm:"type:smallint;not null;index:idx_course_sessions_week_day;column:course_session_weekday"       json:"course_session_weekday"`

	CourseSessionRequiresCheckin bool `gorm:"not null;default:true;column:course_session_requires_checkin" json:"course_session_requires_checkin"`

	CourseSessionCreatedAt time.Time      `gorm:"column:course_session_created_at;autoCreateTime" json:"course_session_created_at"`
	CourseSessionUpdatedAt *time.Time     `gorm:"column:course_session_updated_at;autoUpdateTime" json:"course_session_updated_at,omitempty"`
	CourseSessionDeletedAt gorm.DeletedAt `gorm:"column:course_session_deleted_at;index"          json:"course_session_deleted_at,omitempty"`
}

func (CourseSessionModel) TableName() string { return "course_sessions" }
