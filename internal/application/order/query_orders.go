package order

import (
	"context"

	"github.com/xiebiao/educonnect/internal/domain/order"
	"github.com/xiebiao/educonnect/internal/domain/user"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Viewer 当前查看订单的用户
type Viewer struct {
	UserID uint
	Role   string
}

// CanView 学校只能看自己的订单，发布者只能看包含自己图书的订单
func (v Viewer) CanView(o *order.Order) bool {
	switch user.Role(v.Role) {
	case user.RoleAdmin:
		return true
	case user.RoleSchool:
		return o.IsOwnedBy(v.UserID)
	case user.RolePublisher:
		return o.InvolvesPublisher(v.UserID)
	}
	return false
}

func (v Viewer) filter(page, pageSize int) order.ListFilter {
	f := order.ListFilter{Page: page, PageSize: pageSize}
	switch user.Role(v.Role) {
	case user.RoleSchool:
		f.SchoolID = v.UserID
	case user.RolePublisher:
		f.PublisherID = v.UserID
	}
	return f
}

// ListOrdersUseCase 订单列表，可见范围由角色决定
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 列表请求
type ListOrdersRequest struct {
	Viewer   Viewer
	Page     int
	PageSize int
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) (*OrderPage, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)

	orders, total, err := uc.orderRepo.List(ctx, req.Viewer.filter(page, pageSize))
	if err != nil {
		return nil, err
	}

	items := make([]*OrderDTO, 0, len(orders))
	for _, o := range orders {
		items = append(items, ToOrderDTO(o))
	}
	return &OrderPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// GetOrderUseCase 订单详情
type GetOrderUseCase struct {
	orderRepo order.Repository
}

func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, id uint, viewer Viewer) (*OrderDTO, error) {
	o, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.CanView(o) {
		return nil, order.ErrAccessDenied
	}
	return ToOrderDTO(o), nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
