package dashboard

// TotalPresentToday tetap muncul sebagai null di JSON kalau date tidak dikirim.
type SummaryResponse struct {
	TotalEmployees         int64  `json:"total_employees"`
	TotalAttendanceRecords int64  `json:"total_attendance_records"`
	TotalPresentToday      *int64 `json:"total_present_today"`
}
