package dto

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Items []CreateOrderItemRequest `json:"items" binding:"required,min=1,max=100,dive"`
}

// CreateOrderItemRequest 订单明细项，单价以库中为准
type CreateOrderItemRequest struct {
	BookID   uint `json:"bookId" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"30"`
}

// UpdateOrderStatusRequest 两个字段至少提供一个
type UpdateOrderStatusRequest struct {
	Status        string `json:"status" binding:"omitempty,oneof=CREATED PAID FULFILLED CANCELLED" example:"PAID"`
	PaymentStatus string `json:"paymentStatus" binding:"omitempty,oneof=PENDING COMPLETED FAILED REFUNDED" example:"COMPLETED"`
}

// ListOrdersQuery 分页参数
type ListOrdersQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// ListNotificationsQuery 通知列表
type ListNotificationsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50" example:"50"`
}
