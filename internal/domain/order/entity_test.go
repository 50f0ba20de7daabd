package order

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items() []OrderItem {
	return []OrderItem{
		{BookID: 1, BookTitle: "Algebra", PublisherID: 10, Quantity: 3, Price: decimal.RequireFromString("19.99")},
		{BookID: 2, BookTitle: "Physics", PublisherID: 20, Quantity: 1, Price: decimal.RequireFromString("5.50")},
		{BookID: 3, BookTitle: "Chemistry", PublisherID: 10, Quantity: 2, Price: decimal.RequireFromString("0.10")},
	}
}

func TestNewOrder_Total(t *testing.T) {
	o, err := NewOrder("EDU1", 5, "Green Valley", items())
	require.NoError(t, err)

	assert.Equal(t, "65.67", o.Total.StringFixed(2))
	assert.Equal(t, StatusCreated, o.Status)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
	assert.Equal(t, []uint{10, 20}, o.PublisherIDs())
	assert.True(t, o.InvolvesPublisher(20))
	assert.False(t, o.InvolvesPublisher(30))
}

func TestNewOrder_Validation(t *testing.T) {
	_, err := NewOrder("EDU1", 5, "x", nil)
	assert.True(t, errors.Is(err, ErrInvalidOrderItems))

	bad := items()
	bad[0].Quantity = 0
	_, err = NewOrder("EDU1", 5, "x", bad)
	assert.True(t, errors.Is(err, ErrInvalidQuantity))

	bad[0].Quantity = 1000
	_, err = NewOrder("EDU1", 5, "x", bad)
	assert.True(t, errors.Is(err, ErrInvalidQuantity))
}

func TestTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusCreated, StatusPaid, true},
		{StatusCreated, StatusCancelled, true},
		{StatusCreated, StatusFulfilled, false},
		{StatusPaid, StatusFulfilled, true},
		{StatusPaid, StatusCancelled, true},
		{StatusPaid, StatusCreated, false},
		{StatusFulfilled, StatusCancelled, false},
		{StatusCancelled, StatusPaid, false},
	}
	for _, c := range cases {
		o := &Order{Status: c.from}
		err := o.TransitionTo(c.to)
		if c.ok {
			assert.NoError(t, err, "%s -> %s", c.from, c.to)
			assert.Equal(t, c.to, o.Status)
		} else {
			assert.True(t, errors.Is(err, ErrInvalidStatusTransition), "%s -> %s", c.from, c.to)
			assert.Equal(t, c.from, o.Status)
		}
	}

	o := &Order{Status: StatusCreated}
	assert.True(t, errors.Is(o.TransitionTo("SHIPPED"), ErrInvalidStatus))
}

func TestChangePaymentStatus(t *testing.T) {
	o := &Order{PaymentStatus: PaymentPending}
	require.NoError(t, o.ChangePaymentStatus(PaymentFailed))
	require.NoError(t, o.ChangePaymentStatus(PaymentCompleted))
	require.NoError(t, o.ChangePaymentStatus(PaymentRefunded))
	assert.True(t, errors.Is(o.ChangePaymentStatus(PaymentCompleted), ErrInvalidStatusTransition))
}

func TestGenerateOrderNo(t *testing.T) {
	no := GenerateOrderNo()
	assert.Len(t, no, 3+14+6)
	assert.Equal(t, "EDU", no[:3])
}
