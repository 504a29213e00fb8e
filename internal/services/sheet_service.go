package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gatepass/internal/domain/models"
	"gatepass/internal/repositories"
	"gatepass/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// SheetService renders a printable A4 gatepass sheet for an issued trip.
type SheetService struct {
	Repo      repositories.TripRepository
	RequestID string

	// Loader overrides trip lookup in tests.
	Loader func(ref string) (models.Trip, []models.TripDocument, error)
}

func (s SheetService) GenerateSheet(ref string) ([]byte, string, error) {
	trip, docs, err := s.load(ref)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "sheet", "generate", fmt.Sprintf("trip_id=%d ref=%s", trip.ID, trip.TripRef))
	return buildSheetPDF(trip, docs)
}

func (s SheetService) load(ref string) (models.Trip, []models.TripDocument, error) {
	if s.Loader != nil {
		return s.Loader(ref)
	}
	trip, err := s.Repo.GetByRef(ref)
	if err != nil {
		return trip, nil, err
	}
	docs, err := s.Repo.DocumentsByTripID(trip.ID)
	return trip, docs, err
}

func buildSheetPDF(t models.Trip, docs []models.TripDocument) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Vehicle Gatepass", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "VEHICLE GATEPASS")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Pass Ref    : %s", safe(t.TripRef, "-")),
		fmt.Sprintf("Driver      : %s", safe(t.DriverName, "-")),
		fmt.Sprintf("Phone       : %s", safe(t.DriverPhone, "-")),
		fmt.Sprintf("Vehicle     : %s", safe(t.VehicleNumber, "-")),
		fmt.Sprintf("Route       : %s -> %s", safe(t.RouteFrom, "-"), safe(t.RouteTo, "-")),
		fmt.Sprintf("Issued      : %s", safe(t.CreatedAt, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	uploaded := map[string]bool{}
	for _, d := range docs {
		uploaded[d.Kind] = true
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Documents:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for _, kind := range models.DocumentKinds {
		mark := "[ ]"
		if uploaded[kind] {
			mark = "[x]"
		}
		pdf.Cell(0, 6, fmt.Sprintf("%s %s", mark, models.DocumentLabels[kind]))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This sheet accompanies the QR gatepass. Present the QR code at every checkpoint.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("GATEPASS_%s.pdf", safeFilenamePart(t.VehicleNumber))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Sprintf("NA_%d", time.Now().Unix())
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
