package reports

import (
	"testing"

	"cargas-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shipment(product, origin, destination, originWeight, destWeight, price string) models.Shipment {
	return models.Shipment{
		ProductName:       product,
		Origin:            origin,
		Destination:       destination,
		OriginWeight:      originWeight,
		DestinationWeight: destWeight,
		Price:             price,
	}
}

func TestGroupShipments_SoyExample(t *testing.T) {
	shipments := []models.Shipment{
		shipment("Soy", "A", "B", "102", "100", "2.5"),
		shipment("Soy", "A", "B", "51", "50", "2.5"),
	}

	groups := GroupShipments(shipments)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "Soy", g.ProductName)
	assert.Len(t, g.Shipments, 2)
	assert.True(t, g.SubtotalOriginWeight.Equal(decimal.RequireFromString("153")),
		"origin weight subtotal = %s", g.SubtotalOriginWeight)
	assert.True(t, g.SubtotalDestinationWeight.Equal(decimal.RequireFromString("150")),
		"destination weight subtotal = %s", g.SubtotalDestinationWeight)
	assert.True(t, g.SubtotalMoney.Equal(decimal.RequireFromString("375")),
		"money subtotal = %s", g.SubtotalMoney)
}

func TestGroupShipments_FirstSeenOrder(t *testing.T) {
	shipments := []models.Shipment{
		shipment("Wheat", "C", "D", "10", "10", "1"),
		shipment("Soy", "A", "B", "10", "10", "1"),
		shipment("Wheat", "C", "D", "10", "10", "1"),
		shipment("Corn", "A", "B", "10", "10", "1"),
	}

	groups := GroupShipments(shipments)
	require.Len(t, groups, 3)
	assert.Equal(t, "Wheat", groups[0].ProductName)
	assert.Equal(t, "Soy", groups[1].ProductName)
	assert.Equal(t, "Corn", groups[2].ProductName)
	assert.Len(t, groups[0].Shipments, 2)
}

func TestGroupShipments_Deterministic(t *testing.T) {
	shipments := []models.Shipment{
		shipment("Soy", "A", "B", "100", "90", "2.5"),
		shipment("Corn", "A", "C", "200", "180", "1.75"),
		shipment("Soy", "A", "B", "50", "45", "2.5"),
		shipment("Soy", "X", "B", "70", "60", "3"),
	}

	first := GroupShipments(shipments)
	second := GroupShipments(shipments)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ProductName, second[i].ProductName)
		assert.Equal(t, first[i].Origin, second[i].Origin)
		assert.Equal(t, first[i].Destination, second[i].Destination)
		assert.True(t, first[i].SubtotalMoney.Equal(second[i].SubtotalMoney))
		assert.True(t, first[i].SubtotalOriginWeight.Equal(second[i].SubtotalOriginWeight))
		assert.True(t, first[i].SubtotalDestinationWeight.Equal(second[i].SubtotalDestinationWeight))
	}
}

func TestGroupShipments_NoKeyNormalization(t *testing.T) {
	shipments := []models.Shipment{
		shipment("Soy", "A", "B", "10", "10", "1"),
		shipment("soy", "A", "B", "10", "10", "1"),
		shipment("Soy", "A ", "B", "10", "10", "1"),
	}

	groups := GroupShipments(shipments)
	assert.Len(t, groups, 3)
}

func TestParseAmount_MalformedContributesZero(t *testing.T) {
	shipments := []models.Shipment{
		shipment("Soy", "A", "B", "", "abc", "2.5"),
		shipment("Soy", "A", "B", "100", "50", "not-a-price"),
	}

	var groups []GroupedShipments
	assert.NotPanics(t, func() {
		groups = GroupShipments(shipments)
	})
	require.Len(t, groups, 1)

	g := groups[0]
	assert.True(t, g.SubtotalOriginWeight.Equal(decimal.RequireFromString("100")))
	assert.True(t, g.SubtotalDestinationWeight.Equal(decimal.RequireFromString("50")))
	// "abc" weight drops the first row's money, the bad price drops the second's
	assert.True(t, g.SubtotalMoney.IsZero(), "money subtotal = %s", g.SubtotalMoney)
}

func TestGrandTotals(t *testing.T) {
	groups := GroupShipments([]models.Shipment{
		shipment("Soy", "A", "B", "100", "90", "2"),
		shipment("Corn", "A", "C", "200", "180", "3"),
	})

	totals := GrandTotals(groups)
	assert.True(t, totals.OriginWeight.Equal(decimal.RequireFromString("300")))
	assert.True(t, totals.DestinationWeight.Equal(decimal.RequireFromString("270")))
	assert.True(t, totals.Money.Equal(decimal.RequireFromString("720"))) // 90*2 + 180*3
	assert.Equal(t, 2, RowCount(groups))
}

func TestShipmentTotal_UsesPayrollPrice(t *testing.T) {
	s := shipment("Soy", "A", "B", "100", "100", "2.5")
	s.PayrollPrice = "2.2"

	assert.True(t, ShipmentTotal(s).Equal(decimal.RequireFromString("220")))
}
