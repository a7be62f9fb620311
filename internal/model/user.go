package model

// 账号角色
const (
	RoleAdmin  = "admin"  // 全部权限，含数据重置与汇总重算
	RoleEditor = "editor" // 员工/绩效/考勤的增删改
	RoleViewer = "viewer" // 只读
)

// User API 账号 — 对应 users
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex:uk_users_username" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                              json:"-"`
	Role         string `gorm:"type:varchar(20);not null"                               json:"role"`
	IsActive     bool   `gorm:"not null"                                                json:"is_active"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// ValidRole 角色是否合法
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}
