package addressrepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLegacy(t *testing.T) {
	t.Run("four parts", func(t *testing.T) {
		f := parseLegacy("12 Long Street, Cape Town, Western Cape, 8001")

		require.NotNil(t, f)
		assert.Equal(t, "Cape Town", f.City)
		assert.Equal(t, "8001", f.PostalCode)
		assert.True(t, f.IsComplete())
	})

	t.Run("country and extra info", func(t *testing.T) {
		f := parseLegacy("1 Main Rd,Durban,KwaZulu-Natal,4001,South Africa,Unit 4, Block B")

		require.NotNil(t, f)
		assert.Equal(t, "South Africa", f.Country)
		assert.Equal(t, "Unit 4, Block B", f.AdditionalInfo)
	})

	t.Run("too few parts", func(t *testing.T) {
		assert.Nil(t, parseLegacy("Cape Town, 8001"))
		assert.Nil(t, parseLegacy(""))
	})

	t.Run("empty part stays incomplete", func(t *testing.T) {
		f := parseLegacy("1 Main Rd, , Gauteng, 2000")

		require.NotNil(t, f)
		assert.False(t, f.IsComplete())
	})
}
