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

func TestNewRecordExecutionCommand_ValidInput(t *testing.T) {
	itemID, orderID, serviceID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewRecordExecutionCommand(itemID, orderID, serviceID, "", money(t, "30.00"), "late", occurredAt)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, itemID, cmd.ItemID())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, serviceID, cmd.ServiceID())
	assert.Empty(t, cmd.Name())
	assert.Equal(t, "30.00", cmd.Price().String())
	assert.Equal(t, "late", cmd.Remark())
	assert.Equal(t, occurredAt, cmd.OccurredAt())
}

func TestNewRecordExecutionCommand_NamesEveryMissingField(t *testing.T) {
	_, err := commands.NewRecordExecutionCommand(kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, "", kernel.Money{}, "", time.Time{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	for _, field := range []string{"id", "order_id", "service_id", "price", "occurred_at"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestRecordExecutionCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.RecordExecutionCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrRecordExecutionCommandIsNotConstructed)
}
