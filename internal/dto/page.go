package dto

// 门户表格默认每页 25 行
const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// PaginationRequest 列表分页参数，缺省时取第 1 页
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Normalize 返回补齐默认值后的页码与每页行数
func (p *PaginationRequest) Normalize() (page, size int) {
	page, size = p.Page, p.PageSize
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// Window 换算为数据库 offset/limit
func (p *PaginationRequest) Window() (offset, limit int) {
	page, size := p.Normalize()
	return (page - 1) * size, size
}
