package equipment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeStatistics_EmptySet(t *testing.T) {
	stats := ComputeStatistics(nil)

	require.Zero(t, stats.TotalItems)
	require.Zero(t, stats.TotalValue)
	require.Empty(t, stats.LowStockItems)
}

func TestComputeStatistics_Valuation(t *testing.T) {
	items := []Equipment{
		{Name: "400W panel", Quantity: 40, UnitPrice: 180, LowStockThreshold: 10},
		{Name: "hybrid inverter", Quantity: 3, UnitPrice: 1200, LowStockThreshold: 5},
		{Name: "roof hook", Quantity: 0, UnitPrice: 4.5, LowStockThreshold: 50},
	}

	stats := ComputeStatistics(items)

	require.Equal(t, 3, stats.TotalItems)
	require.InDelta(t, 40*180+3*1200, stats.TotalValue, 1e-9)
	require.Equal(t, 2, stats.LowStockCount)
	require.Equal(t, 1, stats.OutOfStockCount)
	require.Len(t, stats.LowStockItems, 2)
	require.Equal(t, "hybrid inverter", stats.LowStockItems[0].Name)
	require.Equal(t, "roof hook", stats.LowStockItems[1].Name)
}
