package errors

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind 错误分类，决定 HTTP 状态码与是否回滚
type Kind string

const (
	KindUniqueness   Kind = "uniqueness_violation"
	KindValidation   Kind = "validation_error"
	KindNotFound     Kind = "not_found"
	KindTransaction  Kind = "transaction_failure"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindInternal     Kind = "internal"
)

// AppError 带分类与业务码的错误
// 同一个 *AppError 可作为哨兵值被 errors.Is 匹配，Err 保留底层原因
type AppError struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

// New 创建业务错误（通常作为包级哨兵变量）
func New(kind Kind, code int, message string) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is 按 Kind+Code 匹配，使 Wrap 出来的副本仍等价于原哨兵
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// Wrap 基于哨兵错误附加底层原因
func (e *AppError) Wrap(cause error) *AppError {
	return &AppError{Kind: e.Kind, Code: e.Code, Message: e.Message, Err: cause}
}

// WithMessage 基于哨兵错误替换说明文字（Kind/Code 不变）
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Kind: e.Kind, Code: e.Code, Message: message, Err: e.Err}
}

// As 提取错误链中的 *AppError
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf 返回错误分类；非 AppError 一律视为 internal
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

// ── 通用错误 ──

var (
	// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
	ErrOptimisticLock = New(KindTransaction, 50901, "数据已被其他操作修改，请刷新后重试")
	// ErrDuplicate 唯一约束冲突（未归属具体业务时使用）
	ErrDuplicate = New(KindUniqueness, 40901, "违反唯一约束")
	// ErrReference 外键引用的记录不存在
	ErrReference = New(KindNotFound, 40401, "引用的记录不存在")
	// ErrTransaction 事务提交失败或隔离冲突
	ErrTransaction = New(KindTransaction, 50902, "事务执行失败，请重试")
)

// PostgreSQL SQLSTATE
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// IsUniqueViolation 判断是否为唯一约束冲突（兼容 GORM 翻译、pgconn 与 SQLite 原始错误）
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation 判断是否为外键约束冲突
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// IsCheckViolation 判断是否为 CHECK 约束冲突
func IsCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgCheckViolation
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}

// IsSerializationFailure 判断是否为隔离级别冲突或死锁
func IsSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	return false
}

// TranslateDB 将数据库错误转换为 AppError；已是 AppError 或无法识别的错误原样返回
func TranslateDB(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	switch {
	case IsUniqueViolation(err):
		return ErrDuplicate.Wrap(err)
	case IsForeignKeyViolation(err):
		return ErrReference.Wrap(err)
	case IsSerializationFailure(err):
		return ErrTransaction.Wrap(err)
	}
	return err
}
