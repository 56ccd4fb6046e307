// file: internals/features/school/attendance/model/term_setting_model.go
package model

import "time"

// TermSettingModel: key-value konfigurasi term dari sinkronisasi akademik.
// Key yang dipakai core ini: "term.start_date" (YYYY-MM-DD) dan
// "term.max_weeks".
type TermSettingModel struct {
	TermSettingKey   string `gorm:"type:varchar(64);primaryKey;column:term_setting_key" json:"term_setting_key"`
	TermSettingValue string `gorm:"type:varchar(255);not null;column:term_setting_value" json:"term_setting_value"`

	TermSettingUpdatedAt *time.Time `gorm:"column:term_setting_updated_at;autoUpdateTime" json:"term_setting_updated_at,omitempty"`
}

func (TermSettingModel) TableName() string { return "term_settings" }

const (
	TermSettingKeyStartDate = "term.start_date"
	TermSettingKeyMaxWeeks  = "term.max_weeks"
)
