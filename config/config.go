package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"db"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Log         LogConfig         `mapstructure:"log"`
	Pagination  PaginationConfig  `mapstructure:"pagination"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Aggregation AggregationConfig `mapstructure:"aggregation"`
	Seed        SeedConfig        `mapstructure:"seed"`
	Export      ExportConfig      `mapstructure:"export"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port           int        `mapstructure:"port"`
	BodyLimitBytes int64      `mapstructure:"body_limit_bytes"`
	CORS           CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// 支持的数据库驱动
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig 数据库配置
// driver=postgres 用于部署；driver=sqlite 用于本地开发与测试
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	LogLevel        string `mapstructure:"log_level"` // silent | error | warn | info
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 连接最大生命周期（分钟）
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 空闲连接最大存活时间（分钟）
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// SQLiteDSN 生成 SQLite 连接字符串（强制开启外键约束）
func (c *DatabaseConfig) SQLiteDSN() string {
	path := c.SQLitePath
	if path == "" {
		path = "file::memory:?cache=shared"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// RedisConfig Redis 配置（限流与 Token 黑名单）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	Issuer          string        `mapstructure:"issuer"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
	AllowBasicAuth  bool          `mapstructure:"allow_basic_auth"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PaginationConfig 分页配置
type PaginationConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size"`
	MaxPageSize     int `mapstructure:"max_page_size"`
}

// RateLimitConfig 限流配置（每分钟请求数，0 表示不限）
type RateLimitConfig struct {
	UserPerMinute  int `mapstructure:"user_per_minute"`
	AnonPerMinute  int `mapstructure:"anon_per_minute"`
	LoginPerMinute int `mapstructure:"login_per_minute"`
}

// AggregationConfig 部门汇总配置
type AggregationConfig struct {
	// AutoCreateSummaries 为 true 时，全量重算会为员工上出现但没有汇总行的部门补建汇总行
	AutoCreateSummaries bool `mapstructure:"auto_create_summaries"`
}

// SeedConfig 演示数据生成配置
type SeedConfig struct {
	Departments           []string `mapstructure:"departments"`
	Employees             int      `mapstructure:"employees"`
	ReviewsPerEmployee    int      `mapstructure:"reviews_per_employee"`
	AttendancePerEmployee int      `mapstructure:"attendance_per_employee"`
	RandomSeed            int64    `mapstructure:"random_seed"` // 0 表示按当前时间取种子
}

// ExportConfig 导出配置
type ExportConfig struct {
	MaxRows int `mapstructure:"max_rows"`
}

// Load 从 .env、配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 仅用于本地开发，不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 失败: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("EMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit_bytes", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "employee_records")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.sqlite_path", "employee_records.db")
	v.SetDefault("db.log_level", "warn")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "employee-records")
	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "24h")
	v.SetDefault("auth.allow_basic_auth", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("pagination.default_page_size", 10)
	v.SetDefault("pagination.max_page_size", 100)

	v.SetDefault("rate_limit.user_per_minute", 120)
	v.SetDefault("rate_limit.anon_per_minute", 30)
	v.SetDefault("rate_limit.login_per_minute", 10)

	v.SetDefault("aggregation.auto_create_summaries", false)

	v.SetDefault("seed.departments", []string{"Sales", "Marketing", "Engineering", "HR", "Finance"})
	v.SetDefault("seed.employees", 5)
	v.SetDefault("seed.reviews_per_employee", 3)
	v.SetDefault("seed.attendance_per_employee", 20)
	v.SetDefault("seed.random_seed", 0)

	v.SetDefault("export.max_rows", 10000)
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("配置校验失败: 不支持的 db.driver %q", c.Database.Driver)
	}
	if c.Pagination.DefaultPageSize <= 0 || c.Pagination.MaxPageSize < c.Pagination.DefaultPageSize {
		return fmt.Errorf("配置校验失败: pagination.default_page_size 必须大于 0 且不超过 max_page_size")
	}
	if len(c.Seed.Departments) == 0 {
		return fmt.Errorf("配置校验失败: seed.departments 不能为空")
	}
	if c.Seed.Employees < 0 || c.Seed.ReviewsPerEmployee < 0 || c.Seed.AttendancePerEmployee < 0 {
		return fmt.Errorf("配置校验失败: seed 数量不能为负数")
	}
	return nil
}
