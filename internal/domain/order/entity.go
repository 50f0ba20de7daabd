package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusPaid      Status = "PAID"
	StatusFulfilled Status = "FULFILLED"
	StatusCancelled Status = "CANCELLED"
)

// 合法的状态流转，终态没有后续状态
var statusTransitions = map[Status][]Status{
	StatusCreated:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusFulfilled, StatusCancelled}, // 已支付取消即退款
	StatusFulfilled: {},
	StatusCancelled: {},
}

// Valid 是否为已知状态
func (s Status) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// PaymentStatus 支付状态，与订单状态独立流转
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:   {PaymentCompleted, PaymentFailed},
	PaymentFailed:    {PaymentPending, PaymentCompleted},
	PaymentCompleted: {PaymentRefunded},
	PaymentRefunded:  {},
}

// Valid 是否为已知支付状态
func (s PaymentStatus) Valid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

// Order 订单实体(聚合根)
// 1. Order是聚合根，OrderItem只能通过Order访问
// 2. Total由明细计算，不接受客户端传入
// 3. SchoolName是下单时的快照
type Order struct {
	ID            uint
	OrderNo       string
	SchoolID      uint
	SchoolName    string
	Total         decimal.Decimal
	Status        Status
	PaymentStatus PaymentStatus
	Items         []OrderItem
	Version       uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem 订单明细项
// BookTitle、Price、PublisherID都是下单时的快照，图书后续修改或删除不影响历史订单
type OrderItem struct {
	ID          uint
	OrderID     uint
	BookID      uint
	BookTitle   string
	PublisherID uint
	Quantity    int
	Price       decimal.Decimal
}

// Subtotal 小计
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrder 创建新订单(工厂方法)
func NewOrder(orderNo string, schoolID uint, schoolName string, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrInvalidOrderItems
	}
	for _, item := range items {
		if item.Quantity < MinQuantity || item.Quantity > MaxQuantity {
			return nil, ErrInvalidQuantity
		}
	}

	now := time.Now()
	o := &Order{
		OrderNo:       orderNo,
		SchoolID:      schoolID,
		SchoolName:    schoolName,
		Status:        StatusCreated,
		PaymentStatus: PaymentPending,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	o.Total = o.CalculateTotal()
	return o, nil
}

const (
	MinQuantity = 1
	MaxQuantity = 999
)

// CalculateTotal 计算订单总金额
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// CanTransitionTo 检查是否可以转换到目标状态
func (o *Order) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换
func (o *Order) TransitionTo(target Status) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// CanChangePaymentTo 检查支付状态能否转换
func (o *Order) CanChangePaymentTo(target PaymentStatus) bool {
	for _, allowed := range paymentTransitions[o.PaymentStatus] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ChangePaymentStatus 支付状态转换
func (o *Order) ChangePaymentStatus(target PaymentStatus) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}
	if !o.CanChangePaymentTo(target) {
		return ErrInvalidStatusTransition
	}
	o.PaymentStatus = target
	o.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 订单是否由该学校下单
func (o *Order) IsOwnedBy(schoolID uint) bool {
	return o.SchoolID == schoolID
}

// InvolvesPublisher 订单中是否包含该发布者的图书
func (o *Order) InvolvesPublisher(publisherID uint) bool {
	for _, item := range o.Items {
		if item.PublisherID == publisherID {
			return true
		}
	}
	return false
}

// PublisherIDs 订单涉及的发布者（去重，保持出现顺序）
func (o *Order) PublisherIDs() []uint {
	seen := make(map[uint]struct{}, len(o.Items))
	ids := make([]uint, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.PublisherID]; ok {
			continue
		}
		seen[item.PublisherID] = struct{}{}
		ids = append(ids, item.PublisherID)
	}
	return ids
}
