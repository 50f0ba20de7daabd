package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
type Repository interface {
	// Create ISBN重复返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查询（下单用），不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	ExistsByISBN(ctx context.Context, isbn string) (bool, error)

	FindAll(ctx context.Context) ([]*Book, error)

	FindByPublisherID(ctx context.Context, publisherID uint) ([]*Book, error)

	// Search 标题、作者、学科任一包含关键词（不区分大小写）
	Search(ctx context.Context, keyword string) ([]*Book, error)

	// Update 乐观锁更新，版本不一致返回errors.ErrConcurrentModification
	Update(ctx context.Context, book *Book) error

	// Delete 软删除，不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error
}

// Cache 图书详情缓存
// 实现方出错时只记录日志，调用方把错误当作未命中处理。
type Cache interface {
	Get(ctx context.Context, id uint) (*Book, bool)
	Set(ctx context.Context, book *Book)
	Invalidate(ctx context.Context, id uint)
}
