// Package mocks 基于testify/mock的仓储与服务替身，供各层单元测试共用
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/notification"
	"github.com/xiebiao/educonnect/internal/domain/order"
	"github.com/xiebiao/educonnect/internal/domain/user"
)

// UserRepository user.Repository 替身
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) FindAll(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

func (m *UserRepository) FindByRoleAndStatus(ctx context.Context, role user.Role, status user.Status) ([]*user.User, error) {
	args := m.Called(ctx, role, status)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// BookRepository book.Repository 替身
type BookRepository struct {
	mock.Mock
}

func (m *BookRepository) Create(ctx context.Context, b *book.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *BookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	args := m.Called(ctx, ids)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *BookRepository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	args := m.Called(ctx, isbn)
	return args.Bool(0), args.Error(1)
}

func (m *BookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *BookRepository) FindByPublisherID(ctx context.Context, publisherID uint) ([]*book.Book, error) {
	args := m.Called(ctx, publisherID)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *BookRepository) Search(ctx context.Context, keyword string) ([]*book.Book, error) {
	args := m.Called(ctx, keyword)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *BookRepository) Update(ctx context.Context, b *book.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BookRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// OrderRepository order.Repository 替身
type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepository) List(ctx context.Context, filter order.ListFilter) ([]*order.Order, int64, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

// NotificationRepository notification.Repository 替身
type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepository) CreateBatch(ctx context.Context, list []*notification.Notification) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *NotificationRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID, limit)
	list, _ := args.Get(0).([]*notification.Notification)
	return list, args.Error(1)
}

func (m *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) Delete(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
