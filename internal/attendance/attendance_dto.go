package attendance

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,max=20"`
	Date       string `json:"date" binding:"required"`
	Status     string `json:"status" binding:"required,oneof=Present Absent"`
}

type AttendanceResponse struct {
	ID           uint64 `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type PresentSummaryResponse struct {
	EmployeeID       string `json:"employee_id"`
	FullName         string `json:"full_name"`
	TotalPresentDays int64  `json:"total_present_days"`
}
