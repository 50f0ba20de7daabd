package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/educonnect/internal/domain/order"
	apperrors "github.com/xiebiao/educonnect/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 1. Order和OrderItem是聚合关系，一起保存
// 2. 查询时Preload明细，避免N+1
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单，GORM会一并插入Items
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.ErrDatabaseError.WithErr(err)
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 包含订单明细
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := conn(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithErr(err)
	}
	return toOrderEntity(&model), nil
}

// Update 只更新状态字段，不更新Items
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	db := conn(ctx, r.db)
	now := time.Now()

	result := db.Model(&OrderModel{}).
		Where("id = ? AND version = ?", o.ID, o.Version).
		Updates(map[string]interface{}{
			"status":         string(o.Status),
			"payment_status": string(o.PaymentStatus),
			"version":        gorm.Expr("version + 1"),
			"updated_at":     now,
		})
	if result.Error != nil {
		return apperrors.ErrDatabaseError.WithErr(result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&OrderModel{}).Where("id = ?", o.ID).Count(&count).Error; err != nil {
			return apperrors.ErrDatabaseError.WithErr(err)
		}
		if count == 0 {
			return order.ErrOrderNotFound
		}
		return apperrors.ErrConcurrentModification
	}

	o.Version++
	o.UpdatedAt = now
	return nil
}

// List 分页查询
// 发布者过滤：订单明细中存在该发布者的图书
func (r *orderRepository) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, int64, error) {
	db := conn(ctx, r.db)
	query := db.Model(&OrderModel{})

	if filter.SchoolID != 0 {
		query = query.Where("school_id = ?", filter.SchoolID)
	}
	if filter.PublisherID != 0 {
		sub := db.Model(&OrderItemModel{}).Select("order_id").Where("publisher_id = ?", filter.PublisherID)
		query = query.Where("id IN (?)", sub)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithErr(err)
	}

	var models []OrderModel
	offset := (filter.Page - 1) * filter.PageSize
	err := query.Preload("Items").
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithErr(err)
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// =========================================
// 模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:          item.ID,
			OrderID:     item.OrderID,
			BookID:      item.BookID,
			BookTitle:   item.BookTitle,
			PublisherID: item.PublisherID,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return &OrderModel{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		SchoolID:      o.SchoolID,
		SchoolName:    o.SchoolName,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Version:       o.Version,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = order.OrderItem{
			ID:          item.ID,
			OrderID:     item.OrderID,
			BookID:      item.BookID,
			BookTitle:   item.BookTitle,
			PublisherID: item.PublisherID,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	return &order.Order{
		ID:            m.ID,
		OrderNo:       m.OrderNo,
		SchoolID:      m.SchoolID,
		SchoolName:    m.SchoolName,
		Total:         m.Total,
		Status:        order.Status(m.Status),
		PaymentStatus: order.PaymentStatus(m.PaymentStatus),
		Items:         items,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
