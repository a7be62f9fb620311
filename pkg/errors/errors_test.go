package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

var errSample = New(KindUniqueness, 11002, "邮箱已存在")

func TestAppError_IsMatchesWrappedCopy(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", errSample.Wrap(gorm.ErrDuplicatedKey))

	assert.True(t, errors.Is(wrapped, errSample))
	assert.True(t, errors.Is(wrapped, gorm.ErrDuplicatedKey))
	assert.False(t, errors.Is(wrapped, ErrDuplicate))
	assert.Equal(t, KindUniqueness, KindOf(wrapped))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindValidation, KindOf(New(KindValidation, 1, "x")))
}

func TestWithMessage(t *testing.T) {
	e := errSample.WithMessage("第 3 行邮箱已存在")
	assert.True(t, errors.Is(e, errSample))
	assert.Equal(t, "第 3 行邮箱已存在", e.Error())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: employees.email")))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(errors.New("other")))
}

func TestTranslateDB(t *testing.T) {
	assert.Nil(t, TranslateDB(nil))
	assert.True(t, errors.Is(TranslateDB(gorm.ErrDuplicatedKey), ErrDuplicate))
	assert.True(t, errors.Is(TranslateDB(&pgconn.PgError{Code: "23503"}), ErrReference))
	assert.True(t, errors.Is(TranslateDB(&pgconn.PgError{Code: "40001"}), ErrTransaction))
	assert.True(t, IsCheckViolation(&pgconn.PgError{Code: "23514"}))

	// 已是业务错误时原样返回
	assert.Same(t, errSample, TranslateDB(errSample))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, TranslateDB(plain))
}
