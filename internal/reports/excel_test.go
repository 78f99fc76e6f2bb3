package reports

import (
	"testing"

	"cargas-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShipmentPayrollWorkbook(t *testing.T) {
	payroll := models.ShipmentPayroll{PayrollCode: 12, PayrollTimestamp: 1735689600}
	groups := GroupShipments([]models.Shipment{
		shipment("Soy", "A", "B", "102", "100", "2.5"),
		shipment("Soy", "A", "B", "51", "50", "2.5"),
	})

	f, err := BuildShipmentPayrollWorkbook(payroll, groups)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Planilla")
	require.NoError(t, err)
	// title, blank, header, 2 member rows, subtotal, blank, grand total
	require.GreaterOrEqual(t, len(rows), 7)

	assert.Contains(t, rows[0][0], "Planilla 12")
	assert.Equal(t, "Fecha", rows[2][0])

	subtotal := rows[5]
	assert.Contains(t, subtotal[0], "Subtotal Soy A - B")
	assert.Equal(t, "150", subtotal[9])
	assert.Equal(t, "375", subtotal[11])

	grand := rows[len(rows)-1]
	assert.Equal(t, "TOTAL GENERAL", grand[0])
	assert.Equal(t, "375", grand[11])
}

func TestBuildDriverPayrollWorkbook(t *testing.T) {
	payroll := models.DriverPayroll{PayrollCode: 3, DriverName: "Juan Pérez", PayrollTimestamp: 1735689600}
	s := shipment("Soy", "A", "B", "100", "100", "2.5")
	s.PayrollPrice = "2.2"

	f, err := BuildDriverPayrollWorkbook(payroll, []models.Shipment{s})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Liquidacion")
	require.NoError(t, err)

	grand := rows[len(rows)-1]
	assert.Equal(t, "TOTAL", grand[0])
	assert.Equal(t, "220", grand[8])
}
