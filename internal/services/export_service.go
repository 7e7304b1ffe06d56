package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"time"

	"github.com/condovia/condovia-api/internal/models"
	"github.com/condovia/condovia-api/internal/money"
	"github.com/condovia/condovia-api/internal/storage"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// ExportService renders statements as CSV, XLSX or PDF. When an archive
// is configured every generated export is also kept on disk.
type ExportService struct {
	archive *storage.ExportArchive
}

func NewExportService(archive *storage.ExportArchive) *ExportService {
	return &ExportService{archive: archive}
}

func (s *ExportService) archiveCopy(data []byte, filename string) {
	if s.archive == nil {
		return
	}
	if _, err := s.archive.Save(data, filename); err != nil {
		slog.Warn("No se pudo archivar la exportación", "filename", filename, "error", err)
	}
}

func statementTitle(st *Statement) string {
	if st.Contract != nil {
		return fmt.Sprintf("Estado de Cuenta - Contrato %s", st.Contract.Folio)
	}
	if st.Community != nil {
		return fmt.Sprintf("Estado de Cuenta - %s", st.Community.Name)
	}
	return "Estado de Cuenta"
}

func statusLabel(status string) string {
	switch status {
	case models.ChargeStatusNotDue:
		return "No Vencido"
	case models.ChargeStatusOverdue:
		return "Vencido"
	case models.ChargeStatusPartiallyPaid:
		return "Pago Parcial"
	case models.ChargeStatusPaid:
		return "Pagado"
	}
	return status
}

func (s *ExportService) ExportCSV(ctx context.Context, st *Statement) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{statementTitle(st), time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Cargos"})
	_ = writer.Write([]string{"Vencimiento", "Monto", "Recargo", "Aplicado", "Pendiente", "Estado"})
	for _, c := range st.Charges {
		_ = writer.Write([]string{
			c.DueDate.Format("2006-01-02"),
			c.AmountDue.StringFixed(2),
			c.Surcharge.StringFixed(2),
			c.Applied.StringFixed(2),
			c.Remaining.StringFixed(2),
			statusLabel(c.Status),
		})
	}
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Pagos"})
	_ = writer.Write([]string{"Fecha", "Referencia", "Monto", "Asignado", "Método"})
	for _, p := range st.Payments {
		_ = writer.Write([]string{
			p.PaidAt.Format("2006-01-02"),
			p.Reference,
			p.Amount.StringFixed(2),
			p.Allocated.StringFixed(2),
			p.Method,
		})
	}

	writer.Flush()

	filename := fmt.Sprintf("estado_cuenta_%s.csv", time.Now().Format("2006-01-02"))
	s.archiveCopy(buf.Bytes(), filename)
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportXLSX(ctx context.Context, st *Statement) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Estado de Cuenta"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", statementTitle(st))
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Cargos")
	headers := []string{"Vencimiento", "Monto", "Recargo", "Aplicado", "Pendiente", "Estado"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = f.SetCellValue(sheet, cell, h)
	}
	row := 5
	for _, c := range st.Charges {
		values := []interface{}{
			c.DueDate.Format("2006-01-02"),
			c.AmountDue.InexactFloat64(),
			c.Surcharge.InexactFloat64(),
			c.Applied.InexactFloat64(),
			c.Remaining.InexactFloat64(),
			statusLabel(c.Status),
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row += 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Pagos")
	row++
	payHeaders := []string{"Fecha", "Referencia", "Monto", "Asignado", "Método"}
	for i, h := range payHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, h)
	}
	row++
	for _, p := range st.Payments {
		values := []interface{}{
			p.PaidAt.Format("2006-01-02"),
			p.Reference,
			p.Amount.InexactFloat64(),
			p.Allocated.InexactFloat64(),
			p.Method,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("estado_cuenta_%s.xlsx", time.Now().Format("2006-01-02"))
	s.archiveCopy(buf.Bytes(), filename)
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportPDF(ctx context.Context, st *Statement) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, statementTitle(st))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Cargos")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.Cell(30, 8, "Vencimiento")
	pdf.Cell(30, 8, "Monto")
	pdf.Cell(25, 8, "Recargo")
	pdf.Cell(30, 8, "Aplicado")
	pdf.Cell(30, 8, "Pendiente")
	pdf.Cell(30, 8, "Estado")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 9)
	for _, c := range st.Charges {
		pdf.Cell(30, 8, c.DueDate.Format("2006-01-02"))
		pdf.Cell(30, 8, c.AmountDue.StringFixed(2))
		pdf.Cell(25, 8, c.Surcharge.StringFixed(2))
		pdf.Cell(30, 8, c.Applied.StringFixed(2))
		pdf.Cell(30, 8, c.Remaining.StringFixed(2))
		pdf.Cell(30, 8, statusLabel(c.Status))
		pdf.Ln(6)
	}

	outstanding := money.Zero
	for _, c := range st.Charges {
		outstanding = outstanding.Add(c.Remaining)
	}
	pdf.SetFont("Arial", "B", 9)
	pdf.Cell(55, 8, "Saldo pendiente")
	pdf.Cell(30, 8, outstanding.StringFixed(2))
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 8, "SON: "+AmountToWords(outstanding))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Pagos")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.Cell(30, 8, "Fecha")
	pdf.Cell(60, 8, "Referencia")
	pdf.Cell(30, 8, "Monto")
	pdf.Cell(30, 8, "Asignado")
	pdf.Cell(30, 8, "Metodo")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 9)
	for _, p := range st.Payments {
		pdf.Cell(30, 8, p.PaidAt.Format("2006-01-02"))
		pdf.Cell(60, 8, p.Reference)
		pdf.Cell(30, 8, p.Amount.StringFixed(2))
		pdf.Cell(30, 8, p.Allocated.StringFixed(2))
		pdf.Cell(30, 8, p.Method)
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("estado_cuenta_%s.pdf", time.Now().Format("2006-01-02"))
	s.archiveCopy(buf.Bytes(), filename)
	return buf.Bytes(), filename, nil
}
