package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product", func(t *testing.T) {
		p, err := NewProduct("Calamansi Concentrate", "concentrate", "L", decimal.NewFromFloat(120.50))

		require.NoError(t, err)
		assert.Equal(t, "Calamansi Concentrate", p.Name)
		assert.Equal(t, "concentrate", p.Category)
		assert.Equal(t, "L", p.Unit)
		assert.True(t, p.Price.Equal(decimal.NewFromFloat(120.50)))
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := NewProduct("  ", "concentrate", "L", decimal.Zero)
		require.Error(t, err)
	})

	t.Run("requires unit", func(t *testing.T) {
		_, err := NewProduct("Calamansi", "concentrate", "", decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Calamansi", "concentrate", "L", decimal.NewFromInt(-1))
		require.Error(t, err)
	})
}

func TestProduct_Update(t *testing.T) {
	p, err := NewProduct("Calamansi", "concentrate", "L", decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, p.Update("Calamansi Extract", "extract", "mL", decimal.NewFromInt(2)))
	assert.Equal(t, "Calamansi Extract", p.Name)
	assert.Equal(t, "extract", p.Category)
	assert.Equal(t, "mL", p.Unit)

	err = p.Update("", "extract", "mL", decimal.NewFromInt(2))
	require.Error(t, err)
	assert.Equal(t, "Calamansi Extract", p.Name)
}
