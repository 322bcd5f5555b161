package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/execution"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newOrder(t *testing.T, discounted string, serviceID kernel.UUID, qty int) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "Bundle", money(t, discounted), money(t, discounted),
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	require.NoError(t, o.AddEntitlement(serviceID, qty))
	return o
}

func record(t *testing.T, o *order.Order, serviceID kernel.UUID, price string) *execution.Item {
	t.Helper()
	item, err := execution.NewItem(kernel.NewUUID(), o.ID(), serviceID, "Visit", money(t, price), "",
		time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = o.RecordExecution(item, order.CapOverage)
	require.NoError(t, err)
	return item
}

func TestConsumptionCalculator_ServiceMetrics(t *testing.T) {
	calc := services.NewConsumptionCalculator()

	t.Run("should report progress along an entitlement of three", func(t *testing.T) {
		serviceID := kernel.NewUUID()
		o := newOrder(t, "90.00", serviceID, 3)
		e, _ := o.Entitlement(serviceID)

		m := calc.ServiceMetrics(e, nil)
		assert.Equal(t, 0, m.UsedCount)
		assert.Equal(t, 3, m.RemainingCount)
		assert.Equal(t, "0.0", m.ProgressPercent.StringFixed(1))

		items := []*execution.Item{record(t, o, serviceID, "30.00")}
		m = calc.ServiceMetrics(e, items)
		assert.Equal(t, "33.3", m.ProgressPercent.StringFixed(1))
		assert.Equal(t, "30.00", m.UsedAmount.StringFixed(2))

		items = append(items, record(t, o, serviceID, "30.00"))
		m = calc.ServiceMetrics(e, items)
		assert.Equal(t, "66.7", m.ProgressPercent.StringFixed(1))

		items = append(items, record(t, o, serviceID, "30.00"))
		m = calc.ServiceMetrics(e, items)
		assert.Equal(t, 3, m.UsedCount)
		assert.Equal(t, 0, m.RemainingCount)
		assert.Equal(t, "100.0", m.ProgressPercent.StringFixed(1))
		assert.Equal(t, "90.00", m.UsedAmount.StringFixed(2))
	})

	t.Run("should count free items as zero", func(t *testing.T) {
		serviceID := kernel.NewUUID()
		o := newOrder(t, "10.00", serviceID, 2)
		e, _ := o.Entitlement(serviceID)
		items := []*execution.Item{record(t, o, serviceID, "0")}

		m := calc.ServiceMetrics(e, items)

		assert.True(t, m.UsedAmount.IsZero())
		assert.Equal(t, "50.0", m.ProgressPercent.StringFixed(1))
	})
}

func TestConsumptionCalculator_OrderMetrics(t *testing.T) {
	calc := services.NewConsumptionCalculator()

	t.Run("should measure 30 plus 20 against 100", func(t *testing.T) {
		serviceID := kernel.NewUUID()
		o := newOrder(t, "100.00", serviceID, 5)
		items := []*execution.Item{
			record(t, o, serviceID, "30.00"),
			record(t, o, serviceID, "20.00"),
		}

		m := calc.OrderMetrics(o, items)

		assert.Equal(t, 2, m.UsedCount)
		assert.Equal(t, "50.00", m.UsedAmount.StringFixed(2))
		assert.Equal(t, "50.00", m.RemainingAmount.StringFixed(2))
		assert.Equal(t, "50.0", m.ProgressPercent.StringFixed(1))
		assert.Equal(t, int64(2), m.EstimatedRemainingCount)
	})

	t.Run("should round half estimates to even", func(t *testing.T) {
		serviceID := kernel.NewUUID()
		low := newOrder(t, "90.00", serviceID, 5)
		high := newOrder(t, "110.00", serviceID, 5)

		// 50 / 20 = 2.5 and 70 / 20 = 3.5
		lowMetrics := calc.OrderMetrics(low, []*execution.Item{
			record(t, low, serviceID, "20.00"),
			record(t, low, serviceID, "20.00"),
		})
		highMetrics := calc.OrderMetrics(high, []*execution.Item{
			record(t, high, serviceID, "20.00"),
			record(t, high, serviceID, "20.00"),
		})

		assert.Equal(t, int64(2), lowMetrics.EstimatedRemainingCount)
		assert.Equal(t, int64(4), highMetrics.EstimatedRemainingCount)
	})

	t.Run("should floor the remaining amount at zero", func(t *testing.T) {
		serviceID := kernel.NewUUID()
		o := newOrder(t, "40.00", serviceID, 2)
		items := []*execution.Item{
			record(t, o, serviceID, "30.00"),
			record(t, o, serviceID, "30.00"),
		}

		m := calc.OrderMetrics(o, items)

		assert.True(t, m.RemainingAmount.IsZero())
		assert.Equal(t, int64(0), m.EstimatedRemainingCount)
		assert.Equal(t, "150.0", m.ProgressPercent.StringFixed(1))
	})

	t.Run("should return zeros without items", func(t *testing.T) {
		serviceID := kernel.NewUUID()
		o := newOrder(t, "100.00", serviceID, 1)

		m := calc.OrderMetrics(o, nil)

		assert.True(t, m.UsedAmount.IsZero())
		assert.Equal(t, "100.00", m.RemainingAmount.StringFixed(2))
		assert.Equal(t, int64(0), m.EstimatedRemainingCount)
		assert.True(t, m.ProgressPercent.IsZero())
	})

	t.Run("should not estimate when every item was free", func(t *testing.T) {
		serviceID := kernel.NewUUID()
		o := newOrder(t, "100.00", serviceID, 3)
		items := []*execution.Item{record(t, o, serviceID, "0.00")}

		m := calc.OrderMetrics(o, items)

		assert.Equal(t, int64(0), m.EstimatedRemainingCount)
	})

	t.Run("should report zero progress on a free order", func(t *testing.T) {
		serviceID := kernel.NewUUID()
		o := newOrder(t, "0.00", serviceID, 1)
		items := []*execution.Item{record(t, o, serviceID, "5.00")}

		m := calc.OrderMetrics(o, items)

		assert.True(t, m.ProgressPercent.IsZero())
		assert.True(t, m.RemainingAmount.IsZero())
	})

	t.Run("should round amounts only at the end", func(t *testing.T) {
		serviceID := kernel.NewUUID()
		o := newOrder(t, "10.00", serviceID, 3)
		items := []*execution.Item{
			record(t, o, serviceID, "3.33"),
			record(t, o, serviceID, "3.33"),
			record(t, o, serviceID, "3.33"),
		}

		m := calc.OrderMetrics(o, items)

		assert.Equal(t, "9.99", m.UsedAmount.StringFixed(2))
		assert.Equal(t, "0.01", m.RemainingAmount.StringFixed(2))
		assert.Equal(t, "99.9", m.ProgressPercent.StringFixed(1))
	})
}
