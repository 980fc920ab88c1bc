package handler

import (
	"customer-service/internal/domain/customer"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheet     = "Customers"
)

var exportHeader = []any{"ID", "Name", "Email", "Phone Number", "Address", "State"}

func buildCustomerWorkbook(customers []*customer.Customer) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name export sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write export header: %w", err)
	}

	for i, c := range customers {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{c.ID, c.Name, c.Email, c.PhoneNumber, c.Address, c.State}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write customer %d: %w", c.ID, err)
		}
	}
	return f, nil
}
