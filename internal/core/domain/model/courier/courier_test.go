package courier_test

import (
	"testing"

	"courierbot/internal/core/domain/model/courier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	t.Run("normalizes username", func(t *testing.T) {
		c, err := courier.NewCourier(101, " @night_rider ", "Jānis Bērziņš")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, int64(101), c.ID())
		assert.Equal(t, "night_rider", c.Username())
		assert.Equal(t, "Jānis Bērziņš", c.FullName())
	})

	t.Run("rejects non-positive id", func(t *testing.T) {
		_, err := courier.NewCourier(0, "x", "y")

		require.ErrorIs(t, err, courier.ErrIDIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var c courier.Courier

		assert.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}

func TestCourier_DisplayName(t *testing.T) {
	withHandle, _ := courier.NewCourier(1, "rider", "Anna")
	withName, _ := courier.NewCourier(2, "", "Anna")
	bare, _ := courier.NewCourier(3, "", "")

	assert.Equal(t, "@rider", withHandle.DisplayName())
	assert.Equal(t, "Anna", withName.DisplayName())
	assert.Equal(t, "courier 3", bare.DisplayName())
	assert.True(t, withHandle.IsEqual(withHandle))
	assert.False(t, withHandle.IsEqual(withName))
}
