// file: internals/features/school/attendance/status/bucket.go
package status

// Bucket adalah ember hitung rekap per sesi (dan tabel rate jangka panjang
// memakai pemetaan yang sama supaya dua agregat selalu sepakat).
type Bucket string

const (
	BucketPresent Bucket = "present"
	BucketAbsent  Bucket = "absent"
	BucketTruant  Bucket = "truant"
	BucketLeave   Bucket = "leave"
)

// CountBucket memetakan tag hasil resolve ke ember hitung.
//
// Keputusan (lihat DESIGN.md): leave + leave_pending dihitung satu ember
// "leave"; check-in yang masih menunggu konfirmasi guru saat rekap berjalan
// dihitung absent (sesi sudah lewat tanpa status terminal), begitu juga tag
// sisa waktu (closed dsb.) - rekap jalan setelah sesi berakhir.
func CountBucket(tag Tag) Bucket {
	switch tag {
	case TagPresent, TagPresentInMakeupWindow, TagCheckinNotRequired:
		return BucketPresent
	case TagLeave, TagLeavePending:
		return BucketLeave
	case TagTruant:
		return BucketTruant
	default:
		return BucketAbsent
	}
}
