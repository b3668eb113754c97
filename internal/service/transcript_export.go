package service

import (
	"bytes"
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"medipublish_backend/internal/util"

	"github.com/jung-kurt/gofpdf"
)

func renderCSV(t *Transcript, stateBoard string) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Activity", "Specialty", "Credit Type", "Completed", "Score", "Credits"}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	for _, e := range t.Entries {
		row := []string{
			e.Title,
			e.Specialty,
			e.CreditType,
			e.CompletedAt.Format(util.DateFormat),
			strconv.Itoa(e.Score),
			fmt.Sprintf("%.2f", e.CreditsEarned),
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}

	if err := w.Write([]string{"Total", "", "", "", "", fmt.Sprintf("%.2f", t.TotalCredits)}); err != nil {
		return nil, "", err
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), util.MimeCSV, nil
}

type xmlTranscript struct {
	XMLName      xml.Name   `xml:"transcript"`
	UserID       uint       `xml:"userId,attr"`
	StateBoard   string     `xml:"stateBoard,attr,omitempty"`
	GeneratedAt  string     `xml:"generatedAt,attr"`
	TotalCredits float64    `xml:"totalCredits,attr"`
	Entries      []xmlEntry `xml:"completion"`
}

type xmlEntry struct {
	ActivityID  uint    `xml:"activityId,attr"`
	Title       string  `xml:"title"`
	Specialty   string  `xml:"specialty"`
	CreditType  string  `xml:"creditType"`
	CompletedAt string  `xml:"completedAt"`
	Score       int     `xml:"score"`
	Credits     float64 `xml:"credits"`
}

func renderXML(t *Transcript, stateBoard string) ([]byte, string, error) {
	doc := xmlTranscript{
		UserID:       t.UserID,
		StateBoard:   stateBoard,
		GeneratedAt:  t.GeneratedAt.Format(time.RFC3339),
		TotalCredits: t.TotalCredits,
	}
	for _, e := range t.Entries {
		doc.Entries = append(doc.Entries, xmlEntry{
			ActivityID:  e.ActivityID,
			Title:       e.Title,
			Specialty:   e.Specialty,
			CreditType:  e.CreditType,
			CompletedAt: e.CompletedAt.Format(time.RFC3339),
			Score:       e.Score,
			Credits:     e.CreditsEarned,
		})
	}

	payload, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return append([]byte(xml.Header), payload...), util.MimeXML, nil
}

func renderPDF(t *Transcript, stateBoard string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "CME Transcript")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	if stateBoard != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Prepared for submission to: %s", stateBoard))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", t.GeneratedAt.Format("January 2, 2006")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 9)
	colWidths := []float64{70, 30, 25, 25, 15, 20}
	headers := []string{"Activity", "Specialty", "Credit Type", "Completed", "Score", "Credits"}
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, e := range t.Entries {
		cells := []string{
			e.Title,
			e.Specialty,
			e.CreditType,
			e.CompletedAt.Format(util.DateFormat),
			strconv.Itoa(e.Score),
			fmt.Sprintf("%.2f", e.CreditsEarned),
		}
		for i, c := range cells {
			pdf.CellFormat(colWidths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Ln(4)
	pdf.Cell(0, 7, fmt.Sprintf("Total credits: %.2f", t.TotalCredits))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), util.MimePDF, nil
}
