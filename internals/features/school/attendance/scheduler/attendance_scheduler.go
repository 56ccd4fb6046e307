// file: internals/features/school/attendance/scheduler/attendance_scheduler.go
package scheduler

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kampusku_backend/internals/features/school/attendance/service"
	"kampusku_backend/pkg/logger"
)

// Satu run rekap per tanggal pada satu waktu - lock ini dipakai scheduler
// DAN trigger manual dari controller, jadi overlap paling buruk cuma
// buang-buang kerja (insert idempoten), tidak pernah merusak data.
var runMu sync.Mutex

// RunOnce menjalankan rekap harian untuk satu tanggal di bawah lock proses.
// Konfigurasi term yang belum ada bukan error: job jalan dengan cfg nil dan
// jadi no-op sukses.
func RunOnce(ctx context.Context, db *gorm.DB, log *zap.Logger, reportDate time.Time) (service.AggregationSummary, error) {
	runMu.Lock()
	defer runMu.Unlock()

	cfg, err := service.LoadTermConfig(db)
	if err != nil && !errors.Is(err, service.ErrTermConfigMissing) {
		return service.AggregationSummary{}, err
	}
	return service.NewAggregationService(db, log).RunDailyAggregation(ctx, reportDate, cfg)
}

// StartDailyAggregationScheduler menyalakan loop harian. Jam run diambil dari
// env AGGREGATION_HOUR (default 23, waktu lokal). Guard term ada di dalam
// job, jadi loop ini boleh jalan buta sepanjang tahun.
func StartDailyAggregationScheduler(db *gorm.DB, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	hour := 23
	if val := os.Getenv("AGGREGATION_HOUR"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed >= 0 && parsed <= 23 {
			hour = parsed
		}
	}

	go func() {
		for {
			now := time.Now()
			next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
			if !next.After(now) {
				next = next.AddDate(0, 0, 1)
			}
			log.Info("rekap harian dijadwalkan",
				zap.String(logger.FieldJob, "daily_aggregation"),
				zap.Time("next_run", next))
			time.Sleep(time.Until(next))

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			if _, err := RunOnce(ctx, db, log, time.Now()); err != nil {
				// Rollback sudah utuh; run berikutnya (atau trigger manual)
				// aman mengulang berkat insert idempoten.
				log.Error("rekap harian gagal, akan dicoba run berikutnya",
					zap.String(logger.FieldJob, "daily_aggregation"),
					zap.Error(err))
			}
			cancel()
		}
	}()
}
