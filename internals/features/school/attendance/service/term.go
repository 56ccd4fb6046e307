// file: internals/features/school/attendance/service/term.go
package service

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"kampusku_backend/internals/features/school/attendance/model"
)

// TermConfig adalah nilai eksplisit yang dioper ke job-job batch - bukan
// singleton global - supaya job bisa diuji dengan batas term sembarang.
type TermConfig struct {
	StartDate time.Time
	MaxWeeks  int
}

// TeachingWeekFor: pekan akademik ke-N untuk tanggal tsb (pekan pertama = 1).
// Tanggal sebelum awal term menghasilkan 0 (di luar rentang).
func (c *TermConfig) TeachingWeekFor(date time.Time) int {
	days := int(dateOnly(date).Sub(dateOnly(c.StartDate)) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days/7 + 1
}

// WeekdayFor: hari akademik, 1=Senin .. 7=Minggu. Dihitung dari tanggal
// ternormalisasi yang sama dengan TeachingWeekFor - pasangan kunci
// (pekan, hari) tidak boleh campur tanggal UTC dengan hari zona lokal.
func WeekdayFor(date time.Time) int {
	wd := int(dateOnly(date).Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd
}

// dateOnly memotong ke tengah malam UTC - kunci report_date harus stabil.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LoadTermConfig membaca pasangan key-value term dari DB. Salah satu key
// belum ada = ErrTermConfigMissing - pemanggil menelannya jadi no-op, bukan
// error. Nilai yang ada tapi tidak bisa diparse = korupsi data.
func LoadTermConfig(db *gorm.DB) (*TermConfig, error) {
	var settings []model.TermSettingModel
	if err := db.
		Where("term_setting_key IN ?", []string{model.TermSettingKeyStartDate, model.TermSettingKeyMaxWeeks}).
		Find(&settings).Error; err != nil {
		return nil, err
	}

	kv := make(map[string]string, len(settings))
	for _, s := range settings {
		kv[s.TermSettingKey] = s.TermSettingValue
	}

	rawStart, okStart := kv[model.TermSettingKeyStartDate]
	rawWeeks, okWeeks := kv[model.TermSettingKeyMaxWeeks]
	if !okStart || !okWeeks {
		return nil, ErrTermConfigMissing
	}

	start, err := time.Parse("2006-01-02", rawStart)
	if err != nil {
		return nil, invariantf(err, "term.start_date %q bukan tanggal YYYY-MM-DD", rawStart)
	}
	weeks, err := strconv.Atoi(rawWeeks)
	if err != nil || weeks <= 0 {
		if err == nil {
			err = errors.New("harus > 0")
		}
		return nil, invariantf(err, "term.max_weeks %q tidak valid", rawWeeks)
	}

	return &TermConfig{StartDate: start, MaxWeeks: weeks}, nil
}
