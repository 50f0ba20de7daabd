package order

import (
	"time"

	"github.com/xiebiao/educonnect/internal/domain/order"
)

// OrderDTO 对外的订单信息
type OrderDTO struct {
	ID            uint            `json:"id"`
	OrderNo       string          `json:"orderNo"`
	SchoolID      uint            `json:"schoolId"`
	SchoolName    string          `json:"schoolName"`
	Total         string          `json:"total"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Items         []*OrderItemDTO `json:"items"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// OrderItemDTO 订单明细
type OrderItemDTO struct {
	BookID      uint   `json:"bookId"`
	BookTitle   string `json:"bookTitle"`
	PublisherID uint   `json:"publisherId"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Subtotal    string `json:"subtotal"`
}

// OrderPage 分页结果
type OrderPage struct {
	Items    []*OrderDTO `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// ToOrderDTO 实体 → DTO
func ToOrderDTO(o *order.Order) *OrderDTO {
	items := make([]*OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, &OrderItemDTO{
			BookID:      it.BookID,
			BookTitle:   it.BookTitle,
			PublisherID: it.PublisherID,
			Quantity:    it.Quantity,
			Price:       it.Price.StringFixed(2),
			Subtotal:    it.Subtotal().StringFixed(2),
		})
	}
	return &OrderDTO{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		SchoolID:      o.SchoolID,
		SchoolName:    o.SchoolName,
		Total:         o.Total.StringFixed(2),
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
