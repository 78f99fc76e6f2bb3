package reports

import (
	"fmt"
	"time"

	"cargas-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

var shipmentExportHeader = []string{
	"Fecha", "Chofer", "Chapa", "Producto", "Origen", "Destino",
	"Remisión", "Recepción", "Kg Origen", "Kg Destino", "Precio", "Total",
}

func formatExportDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("02/01/2006")
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

// BuildShipmentPayrollWorkbook renders a collection payroll as one sheet:
// a section per (product, origin, destination) group with its member
// rows, a subtotal row per group and a grand total row at the bottom.
// Figures match the grouping engine exactly; money uses the shipment
// price, as the grouped report does.
func BuildShipmentPayrollWorkbook(payroll models.ShipmentPayroll, groups []GroupedShipments) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Planilla"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	row := 1
	title := fmt.Sprintf("Planilla %d - %s", payroll.PayrollCode, formatExportDate(payroll.PayrollTimestamp))
	if err := setRow(f, sheet, row, []interface{}{title}); err != nil {
		return nil, err
	}
	row += 2

	header := make([]interface{}, len(shipmentExportHeader))
	for i, h := range shipmentExportHeader {
		header[i] = h
	}
	if err := setRow(f, sheet, row, header); err != nil {
		return nil, err
	}
	row++

	for _, g := range groups {
		for _, s := range g.Shipments {
			plate := ""
			if s.TruckPlate != nil {
				plate = *s.TruckPlate
			}
			dispatch := ""
			if s.DispatchCode != nil {
				dispatch = *s.DispatchCode
			}
			receipt := ""
			if s.ReceiptCode != nil {
				receipt = *s.ReceiptCode
			}

			destWeight := ParseAmount(s.DestinationWeight)
			price := ParseAmount(s.Price)
			values := []interface{}{
				formatExportDate(s.ShipmentDate),
				s.DriverName,
				plate,
				s.ProductName,
				s.Origin,
				s.Destination,
				dispatch,
				receipt,
				ParseAmount(s.OriginWeight).InexactFloat64(),
				destWeight.InexactFloat64(),
				price.InexactFloat64(),
				destWeight.Mul(price).InexactFloat64(),
			}
			if err := setRow(f, sheet, row, values); err != nil {
				return nil, err
			}
			row++
		}

		subtotal := []interface{}{
			fmt.Sprintf("Subtotal %s %s - %s", g.ProductName, g.Origin, g.Destination),
			"", "", "", "", "", "", "",
			g.SubtotalOriginWeight.InexactFloat64(),
			g.SubtotalDestinationWeight.InexactFloat64(),
			"",
			g.SubtotalMoney.InexactFloat64(),
		}
		if err := setRow(f, sheet, row, subtotal); err != nil {
			return nil, err
		}
		row += 2
	}

	totals := GrandTotals(groups)
	grand := []interface{}{
		"TOTAL GENERAL",
		"", "", "", "", "", "", "",
		totals.OriginWeight.InexactFloat64(),
		totals.DestinationWeight.InexactFloat64(),
		"",
		totals.Money.InexactFloat64(),
	}
	if err := setRow(f, sheet, row, grand); err != nil {
		return nil, err
	}

	return f, nil
}

// BuildDriverPayrollWorkbook renders a driver payroll (liquidación).
// Row totals here use the payroll price, matching the driver payroll
// detail table rather than the grouped collection report.
func BuildDriverPayrollWorkbook(payroll models.DriverPayroll, shipments []models.Shipment) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Liquidacion"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	row := 1
	title := fmt.Sprintf("Liquidación %d - %s - %s",
		payroll.PayrollCode, payroll.DriverName, formatExportDate(payroll.PayrollTimestamp))
	if err := setRow(f, sheet, row, []interface{}{title}); err != nil {
		return nil, err
	}
	row += 2

	header := []interface{}{
		"Fecha", "Producto", "Origen", "Destino", "Remisión",
		"Kg Origen", "Kg Destino", "Precio Liquidación", "Total",
	}
	if err := setRow(f, sheet, row, header); err != nil {
		return nil, err
	}
	row++

	total := ParseAmount("0")
	totalOrigin := ParseAmount("0")
	totalDest := ParseAmount("0")
	for _, s := range shipments {
		dispatch := ""
		if s.DispatchCode != nil {
			dispatch = *s.DispatchCode
		}

		rowTotal := ShipmentTotal(s)
		values := []interface{}{
			formatExportDate(s.ShipmentDate),
			s.ProductName,
			s.Origin,
			s.Destination,
			dispatch,
			ParseAmount(s.OriginWeight).InexactFloat64(),
			ParseAmount(s.DestinationWeight).InexactFloat64(),
			ParseAmount(s.PayrollPrice).InexactFloat64(),
			rowTotal.InexactFloat64(),
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return nil, err
		}
		row++

		total = total.Add(rowTotal)
		totalOrigin = totalOrigin.Add(ParseAmount(s.OriginWeight))
		totalDest = totalDest.Add(ParseAmount(s.DestinationWeight))
	}

	grand := []interface{}{
		"TOTAL", "", "", "", "",
		totalOrigin.InexactFloat64(),
		totalDest.InexactFloat64(),
		"",
		total.InexactFloat64(),
	}
	if err := setRow(f, sheet, row, grand); err != nil {
		return nil, err
	}

	return f, nil
}
