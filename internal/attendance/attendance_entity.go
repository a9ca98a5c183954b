package attendance

import (
	"time"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

type Attendance struct {
	ID         uint64       `gorm:"column:id;primaryKey"`
	EmployeeID uint64       `gorm:"column:employee_id;not null;uniqueIndex:uq_attendances_employee_date"`
	Date       time.Time    `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendances_employee_date"`
	Status     string       `gorm:"column:status;type:varchar(10);not null"`
	CreatedAt  time.Time    `gorm:"column:created_at"`
	UpdatedAt  time.Time    `gorm:"column:updated_at"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// EmployeeRef hanya kolom employee yang dibutuhkan listing/summary
type EmployeeRef struct {
	ID         uint64 `gorm:"type:bigint;primaryKey"`
	EmployeeID string `gorm:"column:employee_id"`
	FullName   string `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
