package mysql

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/xiebiao/educonnect/internal/domain/book"
	"github.com/xiebiao/educonnect/internal/domain/order"
	"github.com/xiebiao/educonnect/internal/domain/user"
)

func TestUserMapping(t *testing.T) {
	now := time.Now()
	u := &user.User{
		ID: 1, Name: "Jane", Email: "j@x.com", Password: "hash", Role: user.RolePublisher,
		OrganizationName: "Acme", Status: user.StatusPending, Version: 3, CreatedAt: now, UpdatedAt: now,
	}
	assert.Equal(t, u, toUserEntity(toUserModel(u)))
}

func TestBookMapping(t *testing.T) {
	b := &book.Book{
		ID: 2, Title: "Algebra", Grade: "8", Subject: "Math", Author: "Euler", ISBN: "978",
		Price: decimal.RequireFromString("12.50"), PublisherID: 1, PublisherName: "Acme", Version: 1,
	}
	assert.Equal(t, b, toBookEntity(toBookModel(b)))
}

func TestOrderMapping(t *testing.T) {
	o := &order.Order{
		ID: 3, OrderNo: "EDU1", SchoolID: 4, SchoolName: "GV", Total: decimal.RequireFromString("25.00"),
		Status: order.StatusPaid, PaymentStatus: order.PaymentCompleted, Version: 2,
		Items: []order.OrderItem{{ID: 5, OrderID: 3, BookID: 2, BookTitle: "Algebra", PublisherID: 1, Quantity: 2, Price: decimal.RequireFromString("12.50")}},
	}
	assert.Equal(t, o, toOrderEntity(toOrderModel(o)))
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, isDuplicateError(errors.New("Error 1062 (23000): Duplicate entry 'a@b.com' for key 'users.email'")))
	assert.False(t, isDuplicateError(errors.New("connection refused")))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%algebra%", likePattern("ALGEBRA"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}
