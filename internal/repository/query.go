package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ── 排序 ──

// OrderFields 排序白名单：请求参数中的字段名 → 数据库列名
type OrderFields map[string]string

// ParseOrdering 解析 "hire_date,-salary" 形式的排序参数
// 前缀 "-" 表示降序；白名单外的字段直接忽略，全部无效时使用 fallback
func ParseOrdering(raw string, allowed OrderFields, fallback ...clause.OrderByColumn) []clause.OrderByColumn {
	var cols []clause.OrderByColumn
	seen := make(map[string]bool)

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		column, ok := allowed[name]
		if !ok || seen[column] {
			continue
		}
		seen[column] = true
		cols = append(cols, clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
	}

	if len(cols) == 0 {
		return fallback
	}
	return cols
}

// Asc 升序列
func Asc(column string) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: column}}
}

// Desc 降序列
func Desc(column string) clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: true}
}

// applyOrdering 应用排序，并以 id 兜底保证分页结果稳定
func applyOrdering(db *gorm.DB, table string, cols []clause.OrderByColumn) *gorm.DB {
	hasID := false
	for _, c := range cols {
		c.Column.Table = table
		db = db.Order(c)
		if c.Column.Name == "id" {
			hasID = true
		}
	}
	if !hasID {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: "id"}})
	}
	return db
}

// ── 分页 ──

// Page 偏移分页参数；Limit <= 0 表示不分页（导出使用）
type Page struct {
	Offset int
	Limit  int
}

func applyPage(db *gorm.DB, p Page) *gorm.DB {
	if p.Limit <= 0 {
		return db
	}
	return db.Offset(p.Offset).Limit(p.Limit)
}

// ── 搜索 ──

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 构造大小写不敏感的子串匹配模式
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// ── 过滤条件 ──

// EmployeeFilter 员工列表过滤条件
type EmployeeFilter struct {
	Department *string
	IsActive   *bool
	Search     string // 匹配 first_name / last_name / email / job_title 任一字段
	Ordering   string
	Page       Page
}

// PerformanceFilter 绩效列表过滤条件
type PerformanceFilter struct {
	EmployeeID string
	ReviewDate string // YYYY-MM-DD
	Ordering   string
	Page       Page
}

// AttendanceFilter 考勤列表过滤条件
type AttendanceFilter struct {
	EmployeeID string
	Date       string // YYYY-MM-DD
	Ordering   string
	Page       Page
}

// SummaryFilter 部门汇总列表条件
type SummaryFilter struct {
	Ordering string
	Page     Page
}
