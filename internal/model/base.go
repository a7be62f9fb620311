package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ── 主键与审计字段 ──

// UUIDModel UUID 主键，由应用侧生成，PostgreSQL 与 SQLite 共用同一套模型
type UUIDModel struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`
}

// BeforeCreate 未指定主键时生成 UUID
func (m *UUIDModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// BaseModel 通用时间戳字段（业务模型嵌入）
type BaseModel struct {
	UUIDModel
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// ── 日期类型 ──

// DateLayout 日期的文本格式
const DateLayout = "2006-01-02"

// Date 不带时分秒的日历日期，对应数据库 DATE 列
type Date time.Time

// NewDate 构造 UTC 零点日期
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf 截取 t 所在的日历日期（按 t 自身时区）
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("无效的日期 %q，格式应为 YYYY-MM-DD", s)
	}
	return Date(t), nil
}

// Time 返回 UTC 零点时间
func (d Date) Time() time.Time { return time.Time(d) }

// IsZero 是否为零值
func (d Date) IsZero() bool { return time.Time(d).IsZero() }

// Before 是否早于 other
func (d Date) Before(other Date) bool { return time.Time(d).Before(time.Time(other)) }

// After 是否晚于 other
func (d Date) After(other Date) bool { return time.Time(d).After(time.Time(other)) }

// AddDays 前后平移若干天
func (d Date) AddDays(n int) Date { return Date(time.Time(d).AddDate(0, 0, n)) }

func (d Date) String() string { return time.Time(d).Format(DateLayout) }

// GormDataType 建表时使用 DATE 类型
func (Date) GormDataType() string { return "date" }

// Value 以 YYYY-MM-DD 文本写入，两种驱动下比较与排序语义一致
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan 兼容 pgx 返回的 time.Time 与 SQLite 返回的文本
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("Date.Scan: unsupported type %T", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("日期必须为字符串: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ── 时刻类型 ──

// TimeOfDay 一天内的时刻（秒精度），对应数据库 TIME 列
type TimeOfDay int32

const secondsPerDay = 24 * 60 * 60

// NewTimeOfDay 由时分秒构造
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60 + second)
}

// ClockOf 取 t 的时分秒
func ClockOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), t.Second())
}

// ParseTimeOfDay 解析 HH:MM 或 HH:MM:SS（忽略小数秒）
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockOf(t), nil
		}
	}
	return 0, fmt.Errorf("无效的时间 %q，格式应为 HH:MM 或 HH:MM:SS", s)
}

// Hour 小时
func (t TimeOfDay) Hour() int { return int(t) / 3600 }

// Minute 分钟
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }

// Second 秒
func (t TimeOfDay) Second() int { return int(t) % 60 }

// Valid 是否落在 [00:00:00, 24:00:00)
func (t TimeOfDay) Valid() bool { return t >= 0 && t < secondsPerDay }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// GormDataType 建表时使用 TIME 类型
func (TimeOfDay) GormDataType() string { return "time" }

// GormDBDataType SQLite 下以 TEXT 存储 "HH:MM:SS"，go-sqlite3 会把 time 列按时间戳解析
func (TimeOfDay) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "time"
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case time.Time:
		*t = ClockOf(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case int64:
		*t = TimeOfDay(v)
		return nil
	default:
		return fmt.Errorf("TimeOfDay.Scan: unsupported type %T", src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("时间必须为字符串: %w", err)
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
