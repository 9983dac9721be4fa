package order_test

import (
	"strings"
	"testing"
	"time"

	"ordermgmt/internal/core/domain/model/kernel"
	"ordermgmt/internal/core/domain/model/order"
	"ordermgmt/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	t.Run("creates a submitted order with fresh identity", func(t *testing.T) {
		before := time.Now().UTC()

		ord, err := order.NewOrder("Ana", "Widget", decimal.RequireFromString("9.99"))

		require.NoError(t, err)
		require.NoError(t, ord.Validate())
		assert.NoError(t, ord.ID().Validate())
		assert.Equal(t, "Ana", ord.Customer())
		assert.Equal(t, "Widget", ord.Product())
		assert.True(t, ord.Amount().Equal(decimal.RequireFromString("9.99")))
		assert.Equal(t, order.Submitted, ord.Status())
		assert.False(t, ord.CreatedAt().Before(before))
		assert.Equal(t, time.UTC, ord.CreatedAt().Location())
	})

	t.Run("assigns unique identifiers", func(t *testing.T) {
		first, err := order.NewOrder("Ana", "Widget", decimal.NewFromInt(1))
		require.NoError(t, err)
		second, err := order.NewOrder("Ana", "Widget", decimal.NewFromInt(1))
		require.NoError(t, err)

		assert.False(t, first.IsEqual(second))
	})

	t.Run("rejects empty customer", func(t *testing.T) {
		_, err := order.NewOrder("", "Widget", decimal.NewFromInt(1))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects customer longer than 100 characters", func(t *testing.T) {
		_, err := order.NewOrder(strings.Repeat("a", 101), "Widget", decimal.NewFromInt(1))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects empty product", func(t *testing.T) {
		_, err := order.NewOrder("Ana", "", decimal.NewFromInt(1))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects product longer than 200 characters", func(t *testing.T) {
		_, err := order.NewOrder("Ana", strings.Repeat("p", 201), decimal.NewFromInt(1))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("accepts names at the boundary", func(t *testing.T) {
		_, err := order.NewOrder(strings.Repeat("a", 100), strings.Repeat("p", 200), decimal.NewFromInt(1))

		require.NoError(t, err)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		for _, raw := range []string{"0", "-0.01", "-10"} {
			_, err := order.NewOrder("Ana", "Widget", decimal.RequireFromString(raw))
			require.Error(t, err, raw)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("rejects amounts with more than two fractional digits", func(t *testing.T) {
		_, err := order.NewOrder("Ana", "Widget", decimal.RequireFromString("9.999"))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("accepts amounts with trailing zeros beyond two digits", func(t *testing.T) {
		_, err := order.NewOrder("Ana", "Widget", decimal.RequireFromString("9.990"))

		require.NoError(t, err)
	})
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	t.Run("restores a persisted order", func(t *testing.T) {
		ord, err := order.RestoreOrder(id, "Ana", "Widget",
			decimal.RequireFromString("9.99"), order.InFulfillment, createdAt)

		require.NoError(t, err)
		assert.True(t, ord.ID().IsEqual(id))
		assert.Equal(t, order.InFulfillment, ord.Status())
		assert.Equal(t, createdAt, ord.CreatedAt())
	})

	t.Run("normalizes the creation timestamp to UTC", func(t *testing.T) {
		local := createdAt.In(time.FixedZone("UTC+5", 5*3600))

		ord, err := order.RestoreOrder(id, "Ana", "Widget",
			decimal.NewFromInt(1), order.Submitted, local)

		require.NoError(t, err)
		assert.Equal(t, time.UTC, ord.CreatedAt().Location())
		assert.True(t, ord.CreatedAt().Equal(createdAt))
	})

	t.Run("rejects invalid identifier", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.UUID{}, "Ana", "Widget",
			decimal.NewFromInt(1), order.Submitted, createdAt)

		require.Error(t, err)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(id, "Ana", "Widget",
			decimal.NewFromInt(1), order.Unknown, createdAt)

		require.Error(t, err)
	})

	t.Run("rejects zero creation timestamp", func(t *testing.T) {
		_, err := order.RestoreOrder(id, "Ana", "Widget",
			decimal.NewFromInt(1), order.Submitted, time.Time{})

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("nil order fails validation", func(t *testing.T) {
		var ord *order.Order
		require.ErrorIs(t, ord.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		ord := &order.Order{}
		require.ErrorIs(t, ord.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	newSubmitted := func(t *testing.T) *order.Order {
		t.Helper()
		ord, err := order.NewOrder("Ana", "Widget", decimal.RequireFromString("9.99"))
		require.NoError(t, err)
		return ord
	}

	t.Run("full lifecycle advances through every stage", func(t *testing.T) {
		ord := newSubmitted(t)

		require.NoError(t, ord.StartFulfillment())
		assert.Equal(t, order.InFulfillment, ord.Status())

		require.NoError(t, ord.Finalize())
		assert.Equal(t, order.Finalized, ord.Status())
	})

	t.Run("cannot skip the fulfillment stage", func(t *testing.T) {
		ord := newSubmitted(t)

		require.Error(t, ord.Finalize())
		assert.Equal(t, order.Submitted, ord.Status())
	})

	t.Run("cannot start fulfillment twice", func(t *testing.T) {
		ord := newSubmitted(t)
		require.NoError(t, ord.StartFulfillment())

		require.Error(t, ord.StartFulfillment())
		assert.Equal(t, order.InFulfillment, ord.Status())
	})

	t.Run("finalized order never transitions again", func(t *testing.T) {
		ord := newSubmitted(t)
		require.NoError(t, ord.StartFulfillment())
		require.NoError(t, ord.Finalize())

		require.Error(t, ord.StartFulfillment())
		require.Error(t, ord.Finalize())
		assert.Equal(t, order.Finalized, ord.Status())
	})
}
