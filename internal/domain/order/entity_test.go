package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	items := []OrderItem{
		{BookID: 1, Quantity: 2, Price: decimal.RequireFromString("10.10")},
		{BookID: 2, Quantity: 3, Price: decimal.RequireFromString("0.10")},
	}

	t.Run("总价精确计算", func(t *testing.T) {
		o, err := NewOrder("BK1", 7, " Kyiv ", items)
		require.NoError(t, err)

		assert.Equal(t, "20.5", o.Total.String())
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, "Kyiv", o.ShippingAddress)
		assert.False(t, o.OrderDate.IsZero())
		assert.Len(t, o.Items, 2)
	})

	t.Run("空明细得到零总价", func(t *testing.T) {
		o, err := NewOrder("BK2", 7, "Kyiv", nil)
		require.NoError(t, err)
		assert.True(t, o.Total.IsZero())
	})

	t.Run("收货地址必填", func(t *testing.T) {
		_, err := NewOrder("BK3", 7, "  ", items)
		assert.ErrorIs(t, err, ErrShippingAddressRequired)
	})

	t.Run("数量必须为正", func(t *testing.T) {
		_, err := NewOrder("BK4", 7, "Kyiv", []OrderItem{{BookID: 1, Quantity: 0, Price: decimal.NewFromInt(1)}})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"PENDING", StatusPending, false},
		{"completed", StatusCompleted, false},
		{" Delivered ", StatusDelivered, false},
		{"PAID", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrder_UpdateStatus_AnyTransition(t *testing.T) {
	o := &Order{Status: StatusDelivered}
	o.UpdateStatus(StatusPending)
	assert.Equal(t, StatusPending, o.Status)
}

func TestOrder_Item(t *testing.T) {
	o := &Order{UserID: 3, Items: []OrderItem{{ID: 10}, {ID: 11}}}

	item, err := o.Item(11)
	require.NoError(t, err)
	assert.Equal(t, uint(11), item.ID)

	_, err = o.Item(12)
	assert.ErrorIs(t, err, ErrOrderItemNotFound)
	assert.True(t, o.IsOwnedBy(3))
	assert.False(t, o.IsOwnedBy(4))
}

func TestGenerateOrderNo(t *testing.T) {
	no := GenerateOrderNo(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.Regexp(t, `^BK20240102030405\d{6}$`, no)
}
