package reports

import (
	"cargas-backend/internal/models"

	"github.com/shopspring/decimal"
)

// GroupedShipments aggregates a payroll's shipments by (product, origin,
// destination). Derived on every read, never persisted. Subtotal money
// uses the shipment price; the driver payroll view totals with the
// payroll price instead (see ShipmentPayrollTotal).
type GroupedShipments struct {
	ProductName               string                   `json:"product_name"`
	Origin                    string                   `json:"origin"`
	Destination               string                   `json:"destination"`
	Shipments                 []models.Shipment        `json:"shipments"`
	SubtotalOriginWeight      decimal.Decimal          `json:"subtotal_origin_weight"`
	SubtotalDestinationWeight decimal.Decimal          `json:"subtotal_destination_weight"`
	SubtotalMoney             decimal.Decimal          `json:"subtotal_money"`
}

// Totals are the grand totals across a set of groups
type Totals struct {
	OriginWeight      decimal.Decimal `json:"origin_weight"`
	DestinationWeight decimal.Decimal `json:"destination_weight"`
	Money             decimal.Decimal `json:"money"`
}

type groupKey struct {
	productName string
	origin      string
	destination string
}

// ParseAmount parses a decimal string carried on the wire. Malformed or
// empty input contributes zero to a sum, it never produces an error.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// GroupShipments groups shipments by exact string equality of
// (product name, origin, destination). No key normalization: case or
// whitespace differences produce distinct groups. Groups keep the order
// in which their key is first seen in the input.
func GroupShipments(shipments []models.Shipment) []GroupedShipments {
	groups := make([]GroupedShipments, 0)
	index := make(map[groupKey]int)

	for _, s := range shipments {
		key := groupKey{s.ProductName, s.Origin, s.Destination}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, GroupedShipments{
				ProductName:               s.ProductName,
				Origin:                    s.Origin,
				Destination:               s.Destination,
				SubtotalOriginWeight:      decimal.Zero,
				SubtotalDestinationWeight: decimal.Zero,
				SubtotalMoney:             decimal.Zero,
			})
		}

		destWeight := ParseAmount(s.DestinationWeight)
		groups[i].Shipments = append(groups[i].Shipments, s)
		groups[i].SubtotalOriginWeight = groups[i].SubtotalOriginWeight.Add(ParseAmount(s.OriginWeight))
		groups[i].SubtotalDestinationWeight = groups[i].SubtotalDestinationWeight.Add(destWeight)
		groups[i].SubtotalMoney = groups[i].SubtotalMoney.Add(destWeight.Mul(ParseAmount(s.Price)))
	}

	return groups
}

// GrandTotals sums the per-group subtotals
func GrandTotals(groups []GroupedShipments) Totals {
	t := Totals{
		OriginWeight:      decimal.Zero,
		DestinationWeight: decimal.Zero,
		Money:             decimal.Zero,
	}
	for _, g := range groups {
		t.OriginWeight = t.OriginWeight.Add(g.SubtotalOriginWeight)
		t.DestinationWeight = t.DestinationWeight.Add(g.SubtotalDestinationWeight)
		t.Money = t.Money.Add(g.SubtotalMoney)
	}
	return t
}

// ShipmentTotal is the per-row total the driver payroll view shows:
// destination weight times the payroll price (not the shipment price)
func ShipmentTotal(s models.Shipment) decimal.Decimal {
	return ParseAmount(s.DestinationWeight).Mul(ParseAmount(s.PayrollPrice))
}

// RowCount returns the number of member shipments across all groups
func RowCount(groups []GroupedShipments) int {
	n := 0
	for _, g := range groups {
		n += len(g.Shipments)
	}
	return n
}
