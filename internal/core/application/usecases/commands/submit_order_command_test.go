package commands_test

import (
	"testing"

	"orderservice/internal/core/application/usecases/commands"
	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitOrderCommand(t *testing.T) {
	t.Run("valid_command", func(t *testing.T) {
		cmd, err := commands.NewSubmitOrderCommand("1234567891", 2)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "1234567891", cmd.ISBN())
		assert.Equal(t, 2, cmd.Quantity())
	})

	t.Run("blank_isbn_is_rejected", func(t *testing.T) {
		_, err := commands.NewSubmitOrderCommand("   ", 1)

		require.Error(t, err)
		require.ErrorIs(t, err, commands.ErrISBNIsRequired)
	})

	t.Run("non_positive_quantity_is_rejected", func(t *testing.T) {
		_, err := commands.NewSubmitOrderCommand("1234567891", 0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var cmd commands.SubmitOrderCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrSubmitOrderCommandIsNotConstructed, err)
	})
}
