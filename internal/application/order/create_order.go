package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/event"
	"github.com/xiebiao/educonnect/internal/domain/order"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/pkg/metrics"
	"github.com/xiebiao/educonnect/pkg/tracing"
)

// Transactor 事务执行器，实现见 persistence/mysql.TxManager
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CreateOrderUseCase 学校下单
// 1. 单价和书名取库中当前值，不信任客户端
// 2. 订单与明细在同一事务中写入
// 3. 提交后通知相关发布者
type CreateOrderUseCase struct {
	orderRepo   order.Repository
	bookRepo    book.Repository
	userService user.Service
	tx          Transactor
	events      event.Publisher
	log         *zap.Logger
}

func NewCreateOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	userService user.Service,
	tx Transactor,
	events event.Publisher,
	log *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo:   orderRepo,
		bookRepo:    bookRepo,
		userService: userService,
		tx:          tx,
		events:      events,
		log:         log,
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	SchoolID uint
	Items    []CreateOrderItem
}

// CreateOrderItem 下单明细
type CreateOrderItem struct {
	BookID   uint
	Quantity int
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (_ *OrderDTO, err error) {
	ctx, span := tracing.Start(ctx, "CreateOrder")
	defer func() { tracing.End(span, err) }()

	if len(req.Items) == 0 {
		return nil, order.ErrInvalidOrderItems
	}
	school, err := uc.userService.GetByID(ctx, req.SchoolID)
	if err != nil {
		return nil, err
	}

	var created *order.Order
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		ids := make([]uint, 0, len(req.Items))
		for _, it := range req.Items {
			ids = append(ids, it.BookID)
		}
		books, err := uc.bookRepo.FindByIDs(txCtx, ids)
		if err != nil {
			return err
		}
		byID := make(map[uint]*book.Book, len(books))
		for _, b := range books {
			byID[b.ID] = b
		}

		items := make([]order.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			b, ok := byID[it.BookID]
			if !ok {
				return order.ErrBookUnavailable
			}
			items = append(items, order.OrderItem{
				BookID:      b.ID,
				BookTitle:   b.Title,
				PublisherID: b.PublisherID,
				Quantity:    it.Quantity,
				Price:       b.Price,
			})
		}

		o, err := order.NewOrder(order.GenerateOrderNo(), school.ID, school.DisplayName(), items)
		if err != nil {
			return err
		}
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	uc.publish(ctx, created)
	return ToOrderDTO(created), nil
}

func (uc *CreateOrderUseCase) publish(ctx context.Context, o *order.Order) {
	payload := event.OrderCreatedPayload{
		OrderID:      o.ID,
		OrderNo:      o.OrderNo,
		SchoolID:     o.SchoolID,
		SchoolName:   o.SchoolName,
		Total:        o.Total.StringFixed(2),
		PublisherIDs: o.PublisherIDs(),
	}
	if err := uc.events.Publish(ctx, event.OrderCreated, payload); err != nil {
		uc.log.Warn("发布下单事件失败", zap.Uint("order_id", o.ID), zap.Error(err))
	}
}
