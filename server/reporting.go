package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"pricefinder/database"
	apperrors "pricefinder/server/errors"
)

// handlePriceReport отдает Excel-отчет по последним сканированиям
func (s *Server) handlePriceReport(c *gin.Context) {
	if s.history == nil {
		appErr := apperrors.NewServiceUnavailableError("история сканирований отключена", nil)
		sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	records, err := s.history.RecentScans(c.Request.Context(), 100)
	if err != nil {
		appErr := apperrors.NewInternalError("чтение истории для отчета", err)
		log.Printf("[Server] Ошибка чтения истории для отчета: %v", appErr)
		sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	report, err := buildPriceReport(records)
	if err != nil {
		appErr := apperrors.NewInternalError("формирование отчета", err)
		log.Printf("[Server] Ошибка формирования отчета: %v", appErr)
		sendJSONError(c, appErr.StatusCode(), appErr.UserMessage())
		return
	}

	filename := fmt.Sprintf("price_report_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}

// buildPriceReport строит Excel-файл с историей сканирований
func buildPriceReport(records []database.ScanRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Price Scans"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("создание листа: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("удаление листа по умолчанию: %w", err)
	}

	// Стиль заголовков
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("создание стиля заголовков: %w", err)
	}

	headers := []string{
		"Scan ID", "Product", "Search Query", "Best Price", "Currency",
		"Shop", "Link", "Results", "Variants", "Scanned At",
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, record := range records {
		row := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), record.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), record.ProductName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), record.SearchQuery)
		if record.BestPrice != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), record.BestPrice.Price)
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), record.BestPrice.Currency)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), record.BestPrice.Shop)
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), record.BestPrice.Link)
		}
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), len(record.AllResults))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), record.VariantCount)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), record.CreatedAt.Format(time.RFC3339))
	}

	// Автоширина колонок
	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("запись отчета: %w", err)
	}

	return buf.Bytes(), nil
}
