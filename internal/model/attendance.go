package model

// Attendance 考勤 — 对应 attendances
// (employee_id, date) 唯一：每名员工每天至多一条
type Attendance struct {
	BaseModel
	EmployeeID string     `gorm:"type:uuid;not null;uniqueIndex:uk_attendances_employee_date,priority:1" json:"employee_id"`
	Date       Date       `gorm:"not null;uniqueIndex:uk_attendances_employee_date,priority:2"           json:"date"`
	ClockIn    TimeOfDay  `gorm:"not null"                                                               json:"clock_in"`
	ClockOut   *TimeOfDay `json:"clock_out"` // nil 表示仍在岗或忘记签退
	Notes      *string    `gorm:"type:text"                                                              json:"notes"`

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }
