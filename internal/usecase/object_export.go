package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/usecase/dto"
)

const exportSheetName = "Objects"

var exportHeaders = []string{
	"ID",
	"Название",
	"Адрес",
	"Тип инфраструктуры",
	"Регион",
	"Широта",
	"Долгота",
	"Телефоны",
	"Сайт",
	"Google Maps",
	"Приоритетные направления",
	"Организации",
	"Опубликован",
	"Статус геокодирования",
}

var exportColumnWidths = []float64{8, 40, 50, 25, 25, 12, 12, 30, 30, 30, 40, 40, 12, 20}

// Export формирует XLSX со списком объектов по фильтру
func (uc *ObjectUseCase) Export(ctx context.Context, filter domain.ObjectFilter) ([]byte, error) {
	objects, err := uc.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data, err := buildObjectsWorkbook(objects)
	if err != nil {
		uc.logger.Error("Failed to build export workbook", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Objects exported", zap.Int("count", len(objects)), zap.Int("bytes", len(data)))
	return data, nil
}

func buildObjectsWorkbook(objects []dto.ObjectResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(exportSheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}

		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheetName, col, col, exportColumnWidths[i]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, o := range objects {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(o)
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(exportSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func exportRow(o dto.ObjectResponse) []interface{} {
	phones := make([]string, 0, len(o.Phones))
	for _, p := range o.Phones {
		phones = append(phones, p.Number)
	}
	directions := make([]string, 0, len(o.PriorityDirections))
	for _, d := range o.PriorityDirections {
		directions = append(directions, d.Name)
	}
	organizations := make([]string, 0, len(o.Organizations))
	for _, org := range o.Organizations {
		organizations = append(organizations, org.Name)
	}

	published := "Нет"
	if o.IsPublished {
		published = "Да"
	}

	return []interface{}{
		o.ID,
		o.Name,
		o.Address,
		o.InfrastructureType.Name,
		o.Region.Name,
		floatOrEmpty(o.Latitude),
		floatOrEmpty(o.Longitude),
		strings.Join(phones, ", "),
		stringOrEmpty(o.Website),
		stringOrEmpty(o.GoogleMapsURL),
		strings.Join(directions, ", "),
		strings.Join(organizations, ", "),
		published,
		o.GeocodingStatus,
	}
}

func floatOrEmpty(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
