package dto

// ── 分页请求 ──

// DefaultPageSize 未经 Clamp 时的每页数量
const DefaultPageSize = 10

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1"`
}

// Clamp 按配置补齐默认每页数量，超过上限时截断为上限
func (p *PaginationRequest) Clamp(defaultSize, maxSize int) {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}
	if maxSize < defaultSize {
		maxSize = defaultSize
	}
	if p.PageSize <= 0 {
		p.PageSize = defaultSize
	}
	if p.PageSize > maxSize {
		p.PageSize = maxSize
	}
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return DefaultPageSize
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// ── 分页响应 ──

// PageResult 服务层分页结果
type PageResult[T any] struct {
	List     []T
	Total    int64
	Page     int
	PageSize int
}
