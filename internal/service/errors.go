package service

import (
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
)

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound = apperrors.New(apperrors.KindNotFound, 40410, "员工不存在")
	ErrEmailExists      = apperrors.New(apperrors.KindUniqueness, 40910, "邮箱已被其他员工使用")
	ErrInvalidSalary    = apperrors.New(apperrors.KindValidation, 40010, "薪资必须大于等于 0 且小于 100000000")
	ErrInvalidEmployee  = apperrors.New(apperrors.KindValidation, 40011, "员工信息不合法")
)

// ── 绩效模块业务错误 ──

var (
	ErrPerformanceRecordNotFound = apperrors.New(apperrors.KindNotFound, 40420, "绩效记录不存在")
	ErrInvalidRating             = apperrors.New(apperrors.KindValidation, 40020, "评分必须在 1 到 5 之间")
	ErrReviewBeforeHire          = apperrors.New(apperrors.KindValidation, 40021, "评审日期不能早于入职日期")
	ErrInvalidReview             = apperrors.New(apperrors.KindValidation, 40022, "绩效记录不合法")
)

// ── 考勤模块业务错误 ──

var (
	ErrAttendanceNotFound    = apperrors.New(apperrors.KindNotFound, 40430, "考勤记录不存在")
	ErrAttendanceExists      = apperrors.New(apperrors.KindUniqueness, 40930, "该员工当天已有考勤记录")
	ErrClockOutBeforeClockIn = apperrors.New(apperrors.KindValidation, 40030, "签退时间不能早于签到时间")
	ErrInvalidAttendance     = apperrors.New(apperrors.KindValidation, 40031, "考勤记录不合法")
)

// ── 部门汇总业务错误 ──

var (
	ErrSummaryNotFound = apperrors.New(apperrors.KindNotFound, 40440, "部门汇总不存在")
)

// ── 演示数据与导出 ──

var (
	ErrSeedFailed        = apperrors.New(apperrors.KindTransaction, 50910, "演示数据生成失败，已全部回滚")
	ErrInvalidSeed       = apperrors.New(apperrors.KindValidation, 40040, "演示数据参数不合法")
	ErrExportTooLarge    = apperrors.New(apperrors.KindValidation, 40050, "导出记录数超过上限，请缩小筛选范围")
	ErrUnsupportedFormat = apperrors.New(apperrors.KindValidation, 40051, "不支持的导出格式")
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = apperrors.New(apperrors.KindUnauthorized, 40101, "用户名或密码错误")
	ErrTokenInvalid       = apperrors.New(apperrors.KindUnauthorized, 40102, "Token 无效或已过期")
	ErrTokenRevoked       = apperrors.New(apperrors.KindUnauthorized, 40103, "Token 已注销")
	ErrUserInactive       = apperrors.New(apperrors.KindForbidden, 40301, "账号已停用")
	ErrUserNotFound       = apperrors.New(apperrors.KindNotFound, 40460, "账号不存在")
	ErrUsernameExists     = apperrors.New(apperrors.KindUniqueness, 40960, "用户名已存在")
	ErrInvalidRole        = apperrors.New(apperrors.KindValidation, 40060, "角色必须是 admin / editor / viewer 之一")
	ErrInvalidUsername    = apperrors.New(apperrors.KindValidation, 40061, "用户名不能为空")
)

// txError 事务内错误：业务错误原样返回，可识别的约束冲突转换为对应分类，其余视为事务失败
func txError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if translated := apperrors.TranslateDB(err); translated != err {
		return translated
	}
	return apperrors.ErrTransaction.Wrap(err)
}
