package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id, serviceID := kernel.NewUUID(), kernel.NewUUID()
	lines := []commands.EntitlementLine{{ServiceID: serviceID, Quantity: 3}}

	cmd, err := commands.NewCreateOrderCommand(id, "Spa bundle", money(t, "120.00"), money(t, "100.00"),
		purchasedAt, "gift", lines)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "Spa bundle", cmd.Info())
	assert.Equal(t, "100.00", cmd.DiscountedPrice().String())
	assert.Equal(t, purchasedAt, cmd.PurchasedAt())
	assert.Equal(t, "gift", cmd.Remark())
	assert.Equal(t, lines, cmd.Lines())
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	lines := []commands.EntitlementLine{{ServiceID: kernel.NewUUID(), Quantity: 1}}

	_, err := commands.NewCreateOrderCommand(kernel.UUID{}, "Spa", money(t, "1.00"), money(t, "1.00"),
		purchasedAt, "", lines)

	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_MissingFields(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), " ", kernel.Money{}, kernel.Money{},
		time.Time{}, "", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrInfoIsRequired)
	assert.ErrorIs(t, err, commands.ErrPurchasedAtIsRequired)
	assert.ErrorIs(t, err, commands.ErrEntitlementsAreMissing)
	assert.Contains(t, err.Error(), "discounted_price")
}

func TestNewCreateOrderCommand_InvalidLines(t *testing.T) {
	serviceID := kernel.NewUUID()

	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Spa", money(t, "1.00"), money(t, "1.00"),
			purchasedAt, "", []commands.EntitlementLine{{ServiceID: serviceID, Quantity: 0}})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "services[0].quantity")
	})

	t.Run("should reject a service listed twice", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Spa", money(t, "1.00"), money(t, "1.00"),
			purchasedAt, "", []commands.EntitlementLine{
				{ServiceID: serviceID, Quantity: 1},
				{ServiceID: serviceID, Quantity: 2},
			})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "services[1].service_id")
	})

	t.Run("should reject missing service id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Spa", money(t, "1.00"), money(t, "1.00"),
			purchasedAt, "", []commands.EntitlementLine{{Quantity: 1}})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
