package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "42")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "42", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 42", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("service", "7", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: service, ID is: 7 (cause: record not found)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("price")

		assert.Equal(t, "price", err.ParamName)
		assert.Equal(t, "value is invalid: price", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		err := errs.NewValueIsInvalidErrorWithCause("price", errors.New("-1 is negative"))

		assert.Equal(t, "value is invalid: price (cause: -1 is negative)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("month", 13, 1, 12)

		assert.Equal(t, 13, err.Value)
		assert.Equal(t, "value is invalid: 13 is month, min value is 1, max value is 12", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("quantity", 0, 1, 1000, errors.New("too small"))

		assert.Equal(t,
			"value is invalid: 0 is quantity, min value is 1, max value is 1000 (cause: too small)",
			err.Error())
	})

	t.Run("sanitizes newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("occurred_at")

	assert.Equal(t, "value is required: occurred_at", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("occurred_at", errors.New("zero time"))
	assert.Equal(t, "value is required: occurred_at (cause: zero time)", withCause.Error())
}

func TestNotEntitledError(t *testing.T) {
	err := errs.NewNotEntitledError("order-1", "service-9")

	assert.Equal(t, "service is not entitled: service service-9 on order order-1", err.Error())
	require.ErrorIs(t, err, errs.ErrNotEntitled)
	assert.False(t, errs.IsValidation(err))
}

func TestStoreError(t *testing.T) {
	t.Run("exposes sentinel and cause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewStoreError("orders.get", cause)

		assert.Equal(t, "store failure: orders.get (cause: connection reset)", err.Error())
		require.ErrorIs(t, err, errs.ErrStore)
		require.ErrorIs(t, err, cause)
	})

	t.Run("without cause", func(t *testing.T) {
		err := errs.NewStoreError("commit", nil)

		assert.Equal(t, "store failure: commit", err.Error())
		require.ErrorIs(t, err, errs.ErrStore)
	})

	t.Run("survives wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("record execution: %w", errs.NewStoreError("items.add", nil))
		require.ErrorIs(t, wrapped, errs.ErrStore)
	})
}

func TestIsValidation(t *testing.T) {
	assert.True(t, errs.IsValidation(errs.NewValueIsRequiredError("x")))
	assert.True(t, errs.IsValidation(errs.NewValueIsInvalidError("x")))
	assert.True(t, errs.IsValidation(errs.NewValueIsOutOfRangeError("x", 1, 2, 3)))
	assert.True(t, errs.IsValidation(errors.Join(errs.NewValueIsRequiredError("a"), errors.New("b"))))
	assert.False(t, errs.IsValidation(errs.NewObjectNotFoundError("order", "1")))
	assert.False(t, errs.IsValidation(errs.NewStoreError("op", nil)))
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "service is not entitled", errs.ErrNotEntitled.Error())
	assert.Equal(t, "store failure", errs.ErrStore.Error())
}
