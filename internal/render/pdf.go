package render

import (
	"bytes"
	"fmt"

	"github.com/fjod/swiftrail/internal/pricing"
	"github.com/go-pdf/fpdf"
)

func renderPDF(v view) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; city names may carry accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr("SwiftRail tickets "+v.OrderReference), false)
	pdf.SetCreator("swiftrail", false)
	pdf.SetCreationDate(v.PurchasedAt)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "SwiftRail", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Order reference: "+v.OrderReference), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Purchased: "+v.PurchasedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	if v.Degraded {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, "Provisional reference. Keep this document as proof of purchase.", "", "L", false)
	}

	for _, g := range v.Groups {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, tr(g.Title), "B", 1, "L", false, 0, "")

		for _, l := range g.Legs {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 7, tr(fmt.Sprintf("%s - ticket %d", l.Label, l.Number)), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)

			if l.Unavailable {
				pdf.MultiCell(0, 5, tr(fmt.Sprintf("Reference unavailable, seat %s. Contact support with your order reference.", l.Seat)), "", "L", false)
				continue
			}

			rows := [][2]string{
				{"Route", l.Departure + " -> " + l.Arrival},
				{"Train", l.TrainRef},
				{"Departure", l.Date + " " + l.Time},
				{"Seat", l.Seat},
				{"Options", optionSummary(l.Options)},
				{"Ticket reference", l.Reference},
				{"Boarding code", l.BoardingCode},
				{"Price", pricing.Format(l.Price) + " EUR"},
			}
			if l.ArrivalTime != "" {
				rows = append(rows[:3], append([][2]string{{"Arrival", l.ArrivalTime}}, rows[3:]...)...)
			}
			for _, row := range rows {
				pdf.CellFormat(40, 5, tr(row[0]), "", 0, "L", false, 0, "")
				pdf.MultiCell(0, 5, tr(row[1]), "", "L", false)
			}
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Total: "+pricing.Format(v.Total)+" EUR", "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
