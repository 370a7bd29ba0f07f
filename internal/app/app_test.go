package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehub/warehub/config"
)

func TestInitWithMemoryStore(t *testing.T) {
	cfg := *config.DefaultConfig
	cfg.Database.Type = "memory"

	a := NewApplication(&cfg)
	require.NoError(t, a.Init(&cfg))
	defer a.Release()

	assert.NotNil(t, a.ProductService())
	assert.NotNil(t, a.SupplierService())
	assert.NotNil(t, a.OrderService())
	assert.Nil(t, a.DB())

	// Schema maintenance is a no-op without a database connection.
	assert.NotPanics(t, func() { a.InitDb() })
	assert.NotPanics(t, func() { a.DropAll() })
}
