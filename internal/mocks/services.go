package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/user"
)

// BookCache book.Cache 替身
type BookCache struct {
	mock.Mock
}

func (m *BookCache) Get(ctx context.Context, id uint) (*book.Book, bool) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Bool(1)
}

func (m *BookCache) Set(ctx context.Context, b *book.Book) {
	m.Called(ctx, b)
}

func (m *BookCache) Invalidate(ctx context.Context, id uint) {
	m.Called(ctx, id)
}

// EventPublisher event.Publisher 替身
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, eventType string, payload any) error {
	args := m.Called(ctx, eventType, payload)
	return args.Error(0)
}

// ObjectStore storage.ObjectStore 替身
type ObjectStore struct {
	mock.Mock
}

func (m *ObjectStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *ObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// UserService user.Service 替身
type UserService struct {
	mock.Mock
}

func (m *UserService) Register(ctx context.Context, params user.RegisterParams) (*user.User, error) {
	args := m.Called(ctx, params)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserService) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserService) GetByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserService) ListAll(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

func (m *UserService) ListApprovedPublishers(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

func (m *UserService) UpdateStatus(ctx context.Context, id uint, status user.Status) (*user.User, error) {
	args := m.Called(ctx, id, status)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserService) UpdateProfileImage(ctx context.Context, id uint, url string) (*user.User, error) {
	args := m.Called(ctx, id, url)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *UserService) ChangePassword(ctx context.Context, id uint, oldPassword, newPassword string) error {
	args := m.Called(ctx, id, oldPassword, newPassword)
	return args.Error(0)
}

// BookService book.Service 替身
type BookService struct {
	mock.Mock
}

func (m *BookService) Create(ctx context.Context, isbn string, d book.Details, publisher *user.User) (*book.Book, error) {
	args := m.Called(ctx, isbn, d, publisher)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *BookService) GetByID(ctx context.Context, id uint) (*book.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *BookService) GetByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	args := m.Called(ctx, ids)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *BookService) ListAll(ctx context.Context) ([]*book.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *BookService) ListByPublisher(ctx context.Context, publisherID uint) ([]*book.Book, error) {
	args := m.Called(ctx, publisherID)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *BookService) Search(ctx context.Context, keyword string) ([]*book.Book, error) {
	args := m.Called(ctx, keyword)
	books, _ := args.Get(0).([]*book.Book)
	return books, args.Error(1)
}

func (m *BookService) Update(ctx context.Context, id uint, d book.Details, actor *user.User) (*book.Book, error) {
	args := m.Called(ctx, id, d, actor)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *BookService) ChangeCover(ctx context.Context, id uint, url string, actor *user.User) (*book.Book, error) {
	args := m.Called(ctx, id, url, actor)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

func (m *BookService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BookService) CheckEditable(ctx context.Context, id uint, actor *user.User) (*book.Book, error) {
	args := m.Called(ctx, id, actor)
	b, _ := args.Get(0).(*book.Book)
	return b, args.Error(1)
}

// SessionStore 会话存储替身
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) SaveSession(ctx context.Context, userID uint, data map[string]interface{}, ttl time.Duration) error {
	args := m.Called(ctx, userID, data, ttl)
	return args.Error(0)
}

func (m *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

func (m *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

// RateLimiter 限流器替身
type RateLimiter struct {
	mock.Mock
}

func (m *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// Transactor 直接执行fn，不开启真实事务
type Transactor struct {
	Calls int
}

func (t *Transactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}
