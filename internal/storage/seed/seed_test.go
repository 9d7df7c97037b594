package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducts(t *testing.T) {
	products, err := Products()
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "高端护肤套装", products[0].Name)
	assert.Equal(t, "399.00", products[0].OriginalPrice.String())
	assert.Equal(t, "299.00", products[0].CurrentPrice.String())
	assert.Equal(t, "数码产品", products[2].Category)
}

func TestParseProductsRejectsBadPrice(t *testing.T) {
	_, err := parseProducts([]byte("products:\n  - name: x\n    originalPrice: cheap\n    currentPrice: \"1\"\n"))
	assert.ErrorContains(t, err, "originalPrice")
}
