package httpapi

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"dhulbeeg-backend/internal/domain"
)

// PropertyExportHeader column order of the property export sheet.
var PropertyExportHeader = []string{
	"ID",
	"Title",
	"Location",
	"Price",
	"Type",
	"Status",
	"Bedrooms",
	"Bathrooms",
	"Area",
	"Features",
	"Agent",
	"Created",
}

// ClientExportHeader column order of the client export sheet.
var ClientExportHeader = []string{
	"ID",
	"Name",
	"Email",
	"Phone",
	"Type",
	"Assigned Agent",
	"Created",
}

// GeneratePropertyExport renders the property portfolio to an xlsx workbook.
func GeneratePropertyExport(properties []*domain.Property) ([]byte, error) {
	rows := make([][]any, 0, len(properties))
	for _, p := range properties {
		agent := ""
		if p.AgentName.Valid {
			agent = p.AgentName.String
		}
		rows = append(rows, []any{
			p.ID,
			p.Title,
			p.Location,
			p.Price,
			p.PropertyType,
			p.Status,
			p.Bedrooms,
			p.Bathrooms,
			p.Area,
			strings.Join(p.Features, ", "),
			agent,
			p.CreatedAt.Format(time.RFC3339),
		})
	}
	return generateExportExcel("Properties", PropertyExportHeader, rows)
}

// GenerateClientExport renders the client roster to an xlsx workbook.
func GenerateClientExport(clients []*domain.Client) ([]byte, error) {
	rows := make([][]any, 0, len(clients))
	for _, c := range clients {
		agent := ""
		if c.AssignedAgentName.Valid {
			agent = c.AssignedAgentName.String
		}
		rows = append(rows, []any{
			c.ID,
			c.Name,
			c.Email,
			c.Phone,
			c.ClientType,
			agent,
			c.CreatedAt.Format(time.RFC3339),
		})
	}
	return generateExportExcel("Clients", ClientExportHeader, rows)
}

func generateExportExcel(sheetName string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so no deferred Close on the happy path

	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
