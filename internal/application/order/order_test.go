package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/event"
	"github.com/xiebiao/educonnect/internal/domain/order"
	"github.com/xiebiao/educonnect/internal/domain/user"
	"github.com/xiebiao/educonnect/internal/mocks"
)

type createFixture struct {
	orders *mocks.OrderRepository
	books  *mocks.BookRepository
	users  *mocks.UserService
	tx     *mocks.Transactor
	events *mocks.EventPublisher
	uc     *CreateOrderUseCase
}

func newCreateFixture() *createFixture {
	f := &createFixture{
		orders: new(mocks.OrderRepository),
		books:  new(mocks.BookRepository),
		users:  new(mocks.UserService),
		tx:     new(mocks.Transactor),
		events: new(mocks.EventPublisher),
	}
	f.uc = NewCreateOrderUseCase(f.orders, f.books, f.users, f.tx, f.events, zap.NewNop())
	return f
}

func school() *user.User {
	return &user.User{ID: 5, Name: "Ann", OrganizationName: "Green Valley", Role: user.RoleSchool, Status: user.StatusApproved}
}

func sampleOrder() *order.Order {
	return &order.Order{
		ID: 1, OrderNo: "EDU1", SchoolID: 5, SchoolName: "Green Valley",
		Total: decimal.RequireFromString("45.50"), Status: order.StatusCreated, PaymentStatus: order.PaymentPending,
		Items: []order.OrderItem{
			{BookID: 1, BookTitle: "Algebra", PublisherID: 10, Quantity: 2, Price: decimal.RequireFromString("20")},
			{BookID: 2, BookTitle: "Physics", PublisherID: 20, Quantity: 1, Price: decimal.RequireFromString("5.5")},
		},
	}
}

func TestCreateOrder_UsesStoredPrices(t *testing.T) {
	f := newCreateFixture()
	f.users.On("GetByID", mock.Anything, uint(5)).Return(school(), nil)
	f.books.On("FindByIDs", mock.Anything, []uint{1, 2}).Return([]*book.Book{
		{ID: 1, Title: "Algebra", Price: decimal.RequireFromString("20"), PublisherID: 10},
		{ID: 2, Title: "Physics", Price: decimal.RequireFromString("5.5"), PublisherID: 20},
	}, nil)
	f.orders.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		args.Get(1).(*order.Order).ID = 99
	}).Return(nil)
	f.events.On("Publish", mock.Anything, event.OrderCreated, mock.MatchedBy(func(p event.OrderCreatedPayload) bool {
		return p.OrderID == 99 && p.Total == "45.50" && len(p.PublisherIDs) == 2
	})).Return(nil)

	dto, err := f.uc.Execute(context.Background(), CreateOrderRequest{
		SchoolID: 5,
		Items:    []CreateOrderItem{{BookID: 1, Quantity: 2}, {BookID: 2, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "45.50", dto.Total)
	assert.Equal(t, "Green Valley", dto.SchoolName)
	assert.Equal(t, "CREATED", dto.Status)
	assert.Equal(t, "40.00", dto.Items[0].Subtotal)
	assert.Equal(t, 1, f.tx.Calls)
	f.events.AssertExpectations(t)
}

func TestCreateOrder_MissingBook(t *testing.T) {
	f := newCreateFixture()
	f.users.On("GetByID", mock.Anything, uint(5)).Return(school(), nil)
	f.books.On("FindByIDs", mock.Anything, []uint{1, 3}).Return([]*book.Book{
		{ID: 1, Title: "Algebra", Price: decimal.RequireFromString("20"), PublisherID: 10},
	}, nil)

	_, err := f.uc.Execute(context.Background(), CreateOrderRequest{
		SchoolID: 5,
		Items:    []CreateOrderItem{{BookID: 1, Quantity: 1}, {BookID: 3, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, order.ErrBookUnavailable))
	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	f := newCreateFixture()
	_, err := f.uc.Execute(context.Background(), CreateOrderRequest{SchoolID: 5})
	assert.True(t, errors.Is(err, order.ErrInvalidOrderItems))
	assert.Equal(t, 0, f.tx.Calls)
}

func TestCreateOrder_PublishFailureIgnored(t *testing.T) {
	f := newCreateFixture()
	f.users.On("GetByID", mock.Anything, uint(5)).Return(school(), nil)
	f.books.On("FindByIDs", mock.Anything, []uint{1}).Return([]*book.Book{
		{ID: 1, Title: "Algebra", Price: decimal.RequireFromString("20"), PublisherID: 10},
	}, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := f.uc.Execute(context.Background(), CreateOrderRequest{SchoolID: 5, Items: []CreateOrderItem{{BookID: 1, Quantity: 1}}})
	assert.NoError(t, err)
}

func TestListOrders_FilterByRole(t *testing.T) {
	tests := []struct {
		name   string
		viewer Viewer
		want   order.ListFilter
	}{
		{"admin sees all", Viewer{UserID: 1, Role: "ADMIN"}, order.ListFilter{Page: 1, PageSize: 20}},
		{"school sees own", Viewer{UserID: 5, Role: "SCHOOL"}, order.ListFilter{SchoolID: 5, Page: 1, PageSize: 20}},
		{"publisher sees involved", Viewer{UserID: 10, Role: "PUBLISHER"}, order.ListFilter{PublisherID: 10, Page: 1, PageSize: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.OrderRepository)
			repo.On("List", mock.Anything, tt.want).Return([]*order.Order{sampleOrder()}, int64(1), nil)

			page, err := NewListOrdersUseCase(repo).Execute(context.Background(), ListOrdersRequest{Viewer: tt.viewer})
			require.NoError(t, err)
			assert.Equal(t, int64(1), page.Total)
			assert.Len(t, page.Items, 1)
			repo.AssertExpectations(t)
		})
	}
}

func TestNormalizePage(t *testing.T) {
	p, s := normalizePage(0, 1000)
	assert.Equal(t, 1, p)
	assert.Equal(t, maxPageSize, s)
}

func TestGetOrder_Visibility(t *testing.T) {
	repo := new(mocks.OrderRepository)
	repo.On("FindByID", mock.Anything, uint(1)).Return(sampleOrder(), nil)
	uc := NewGetOrderUseCase(repo)

	_, err := uc.Execute(context.Background(), 1, Viewer{UserID: 6, Role: "SCHOOL"})
	assert.True(t, errors.Is(err, order.ErrAccessDenied))

	_, err = uc.Execute(context.Background(), 1, Viewer{UserID: 30, Role: "PUBLISHER"})
	assert.True(t, errors.Is(err, order.ErrAccessDenied))

	dto, err := uc.Execute(context.Background(), 1, Viewer{UserID: 20, Role: "PUBLISHER"})
	require.NoError(t, err)
	assert.Equal(t, "EDU1", dto.OrderNo)
}

func TestUpdateStatus_NothingToUpdate(t *testing.T) {
	uc := NewUpdateStatusUseCase(new(mocks.OrderRepository), new(mocks.EventPublisher), zap.NewNop())
	_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Actor: Viewer{UserID: 1, Role: "ADMIN"}})
	assert.True(t, errors.Is(err, order.ErrNothingToUpdate))
}

func TestUpdateStatus_PublisherNotInvolved(t *testing.T) {
	repo := new(mocks.OrderRepository)
	repo.On("FindByID", mock.Anything, uint(1)).Return(sampleOrder(), nil)
	uc := NewUpdateStatusUseCase(repo, new(mocks.EventPublisher), zap.NewNop())

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Actor: Viewer{UserID: 30, Role: "PUBLISHER"}, Status: "PAID"})
	assert.True(t, errors.Is(err, order.ErrAccessDenied))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	repo := new(mocks.OrderRepository)
	repo.On("FindByID", mock.Anything, uint(1)).Return(sampleOrder(), nil)
	uc := NewUpdateStatusUseCase(repo, new(mocks.EventPublisher), zap.NewNop())

	_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Actor: Viewer{UserID: 1, Role: "ADMIN"}, Status: "FULFILLED"})
	assert.True(t, errors.Is(err, order.ErrInvalidStatusTransition))
}

func TestUpdateStatus_PaidAndPublished(t *testing.T) {
	repo := new(mocks.OrderRepository)
	events := new(mocks.EventPublisher)
	repo.On("FindByID", mock.Anything, uint(1)).Return(sampleOrder(), nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	events.On("Publish", mock.Anything, event.OrderStatusChanged, mock.MatchedBy(func(p event.OrderStatusChangedPayload) bool {
		return p.OldStatus == "CREATED" && p.NewStatus == "PAID" && p.NewPaymentStatus == "COMPLETED"
	})).Return(nil)

	uc := NewUpdateStatusUseCase(repo, events, zap.NewNop())
	dto, err := uc.Execute(context.Background(), UpdateStatusRequest{
		OrderID: 1, Actor: Viewer{UserID: 10, Role: "PUBLISHER"}, Status: "PAID", PaymentStatus: "COMPLETED",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", dto.Status)
	assert.Equal(t, "COMPLETED", dto.PaymentStatus)
	events.AssertExpectations(t)
}

func TestUpdateStatus_SameStatusIsNoop(t *testing.T) {
	repo := new(mocks.OrderRepository)
	events := new(mocks.EventPublisher)
	repo.On("FindByID", mock.Anything, uint(1)).Return(sampleOrder(), nil)

	uc := NewUpdateStatusUseCase(repo, events, zap.NewNop())
	_, err := uc.Execute(context.Background(), UpdateStatusRequest{OrderID: 1, Actor: Viewer{UserID: 1, Role: "ADMIN"}, Status: "CREATED"})
	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
