package infra

// pdf.go — printable remit generation using go-pdf/fpdf.
// Generates an A4 remit with:
//   - Remit number, date and hour header
//   - Client block (name, number, address, phone)
//   - Item table (code, name, measurement, quantity, unit price, discount, total)
//   - Amount in words, subtotal and total
//   - Escalating payment schedule (three expiration dates with totals)
//
// The output file is saved to storagePath/remito_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rafamossetto/distributor-api/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateRemitPDF renders a print-ready remit and returns the absolute
// path to the generated file. storagePath is created if needed.
func GenerateRemitPDF(remit *dto.RemitPresentation, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("remito_%d.pdf", remit.RemitNumber)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, fmt.Sprintf("Remito N° %d", remit.RemitNumber), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW/2, 5, "Fecha: "+remit.Date+"  "+remit.Hour, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Entrega: "+remit.DeliveryDate, "", 1, "R", false, 0, "")
	pdf.Ln(3)

	// ── Client block ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s (N° %d)", remit.Client, remit.ClientNumber), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, remit.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Tel: "+remit.PhoneNumber, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(3)

	// ── Items table ──────────────────────────────────────────────────────────
	colCode := contentW * 0.10
	colName := contentW * 0.34
	colMeas := contentW * 0.08
	colQty := contentW * 0.10
	colUnit := contentW * 0.14
	colDisc := contentW * 0.10
	colTotal := contentW * 0.14

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colCode, 6, "Código", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colName, 6, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colMeas, 6, "Med.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colQty, 6, "Cant.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colUnit, 6, "P. Unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colDisc, 6, "Desc.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 6, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range remit.Items {
		name := item.Name
		if len(name) > 40 {
			name = name[:39] + "…"
		}
		pdf.CellFormat(colCode, 5, fmt.Sprintf("%d", item.Code), "", 0, "L", false, 0, "")
		pdf.CellFormat(colName, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colMeas, 5, item.Measurement, "", 0, "C", false, 0, "")
		pdf.CellFormat(colQty, 5, item.Quantity, "", 0, "R", false, 0, "")
		pdf.CellFormat(colUnit, 5, "$"+item.UnitPrice, "", 0, "R", false, 0, "")
		pdf.CellFormat(colDisc, 5, item.Discount, "", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, 5, "$"+item.TotalPrice, "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.72, 5, fmt.Sprintf("Artículos: %d", remit.TotalArticles), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.28, 5, "Subtotal: $"+remit.SubTotal, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.72, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.28, 7, "TOTAL: $"+remit.Total, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(contentW, 4, "Son: "+remit.AmountInLetter, "", "L", false)
	pdf.Ln(4)

	// ── Payment schedule ─────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 5, "Vencimientos", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	schedule := []struct{ date, total string }{
		{remit.FirstExpirationDate, remit.FirstTotal},
		{remit.SecondExpirationDate, remit.SecondTotal},
		{remit.ThirdExpirationDate, remit.ThirdTotal},
	}
	for i, v := range schedule {
		date := v.date
		if date == "" {
			date = "-"
		}
		pdf.CellFormat(contentW*0.5, 4, fmt.Sprintf("%d° vencimiento: %s", i+1, date), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.5, 4, "$"+v.total, "", 1, "R", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
