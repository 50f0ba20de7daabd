package order

import (
	"context"
)

// Repository 订单仓储接口
// 支持事务：实现方从context中取出事务连接
type Repository interface {
	// Create 订单和明细在同一事务中写入
	Create(ctx context.Context, order *Order) error

	// FindByID 包含订单明细，不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// Update 只更新订单头（状态、支付状态），乐观锁
	Update(ctx context.Context, order *Order) error

	// List 按创建时间倒序分页
	List(ctx context.Context, filter ListFilter) ([]*Order, int64, error)
}

// ListFilter 列表过滤条件，零值字段不参与过滤
type ListFilter struct {
	SchoolID    uint // 学校只能看到自己的订单
	PublisherID uint // 发布者看到包含自己图书的订单
	Page        int
	PageSize    int
}
