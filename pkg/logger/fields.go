package logger

// Standard field names for consistent logging.
const (
	FieldService    = "service"
	FieldJob        = "job"
	FieldError      = "error"
	FieldReportDate = "report_date"
	FieldWeek       = "teaching_week"
	FieldWeekday    = "weekday"
	FieldSessionID  = "session_id"
)
