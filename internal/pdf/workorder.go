package pdf

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"campusfix/internal/models"
)

// Generator renders printable documents.
type Generator interface {
	WorkOrder(w io.Writer, data WorkOrderData) error
}

type WorkOrderData struct {
	Task         *models.Task
	WorkTypeName string
}

// WorkOrderGenerator renders an A4 work order for a maintenance task.
type WorkOrderGenerator struct {
	fontName string
}

func NewWorkOrderGenerator() *WorkOrderGenerator {
	return &WorkOrderGenerator{fontName: "Helvetica"}
}

func (g *WorkOrderGenerator) WorkOrder(w io.Writer, data WorkOrderData) error {
	task := data.Task

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Work Order #%d", task.ID), false)
	pdf.SetAuthor("Campus Maintenance", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// ===== Header
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "WORK ORDER", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("No. WO-%06d  of  %s", task.ID, task.CreatedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== Request
	g.sectionTitle(pdf, "Request")
	g.kvLine(pdf, "Title", task.Title)
	g.kvLine(pdf, "Work type", data.WorkTypeName)
	if task.Area != "" {
		g.kvLine(pdf, "Area", task.Area)
	}
	if task.WorkNature != "" {
		g.kvLine(pdf, "Nature", string(task.WorkNature))
	}
	g.kvLine(pdf, "Status", string(task.Status))
	pdf.Ln(1)

	pdf.SetFont(g.fontName, "", 11)
	pdf.MultiCell(0, 6, task.Description, "", "L", false)
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Assignment
	g.sectionTitle(pdf, "Assignment")
	assigned := task.AssignedTo
	if assigned == "" {
		assigned = "unassigned"
	}
	g.kvLine(pdf, "Assigned to", assigned)
	if task.Manpower != "" {
		g.kvLine(pdf, "Manpower", task.Manpower)
	}
	if task.EstimatedTime != "" {
		g.kvLine(pdf, "Estimated time", task.EstimatedTime)
	}
	if task.ActualTime != "" {
		g.kvLine(pdf, "Actual time", task.ActualTime)
	}
	if len(task.Materials) > 0 {
		pdf.SetFont(g.fontName, "B", 11)
		pdf.CellFormat(0, 6, "Materials:", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 11)
		for i, m := range task.Materials {
			pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, m), "", "L", false)
		}
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== History
	g.sectionTitle(pdf, "Status history")
	pdf.SetFont(g.fontName, "", 11)
	for _, entry := range task.History {
		line := fmt.Sprintf("%s  —  %s", entry.ChangedAt.Format("02.01.2006 15:04"), entry.Status)
		if entry.Remarks != "" {
			line += "  (" + entry.Remarks + ")"
		}
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Sign-off
	g.sectionTitle(pdf, "Sign-off")
	pdf.Ln(6)

	lineY := pdf.GetY()
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(80, 6, "Technician", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(80, 6, "Supervisor", "", 1, "L", false, 0, "")

	pdf.SetLineWidth(0.3)
	pdf.Line(20, lineY+10, 100, lineY+10)
	pdf.SetY(lineY + 12)
	pdf.SetX(20)
	pdf.Cell(80, 5, "(signature, name)")
	pdf.SetY(lineY + 6)
	pdf.SetX(130)
	pdf.Line(130, lineY+10, 190, lineY+10)
	pdf.SetY(lineY + 12)
	pdf.SetX(130)
	pdf.Cell(80, 5, "(signature, name)")

	// ===== Page numbers
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	return pdf.Output(w)
}

// ===== helpers =====

func (g *WorkOrderGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *WorkOrderGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *WorkOrderGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
