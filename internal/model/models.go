package model

// All 返回需要建表的全部模型（SQLite AutoMigrate 使用，顺序即依赖顺序）
func All() []interface{} {
	return []interface{}{
		&Employee{},
		&PerformanceRecord{},
		&Attendance{},
		&DepartmentSummary{},
		&User{},
	}
}
