// file: internals/features/school/attendance/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// ErrTermConfigMissing: konfigurasi term tidak ada. Job harian menelan ini
// jadi no-op sukses supaya scheduler bisa jalan tanpa sadar kalender akademik.
var ErrTermConfigMissing = errors.New("term config missing")

// InvariantError menandai data upstream yang korup (window tanpa sesi,
// nilai status tak dikenal di konfigurasi, dst). Tidak boleh dikoreksi
// diam-diam - harus naik keras ke pemanggil.
type InvariantError struct {
	Msg string
	Err error
}

func (e *InvariantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invariant violated: %s: %v", e.Msg, e.Err)
	}
	return "invariant violated: " + e.Msg
}

func (e *InvariantError) Unwrap() error { return e.Err }

func invariantf(err error, format string, args ...interface{}) error {
	return &InvariantError{Msg: fmt.Sprintf(format, args...), Err: err}
}

// IsInvariant: helper buat pemanggil memilah error korupsi data.
func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}
