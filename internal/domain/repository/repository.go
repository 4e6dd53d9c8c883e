// Package repository 定义数据访问层接口
package repository

import (
	"context"
)

// TxKey 事务在 context 中的键，仓储实现据此复用外层事务
type TxKey struct{}

// Transactor 事务边界。嵌套调用复用外层事务。
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination 项目列表分页参数，页码从 1 开始
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination 创建分页参数，越界值收敛到合法范围
func NewPagination(page, pageSize int) Pagination {
	page = max(page, 1)
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Pagination{Page: page, PageSize: min(pageSize, MaxPageSize)}
}

// Offset 计算偏移量
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit 获取限制数量
func (p Pagination) Limit() int {
	return p.PageSize
}

// PagedResult 一页结果及总数
type PagedResult[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

// NewPagedResult 创建分页结果
func NewPagedResult[T any](items []T, total int64, pagination Pagination) *PagedResult[T] {
	return &PagedResult[T]{
		Items:    items,
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}
}
