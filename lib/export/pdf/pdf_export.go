package pdfexport

import (
	"bytes"
	"fmt"
	payrollapimodels "hr-payroll-backend/models/api/payroll"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

// FontDir каталог со шрифтами Arial для кириллицы. Если шрифтов нет, используется Helvetica
var FontDir = "static/font/"

type PayslipData struct {
	CompanyName    string
	Position       string
	SalaryRate     float64
	Payroll        payrollapimodels.PayrollView
	TaxRate        float64
	InsuranceRate  float64
	RetirementRate float64
	GeneratedAt    time.Time
}

type payslipRow struct {
	label string
	value float64
}

func Payslip(data PayslipData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("Payslip panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", FontDir)
	pdf.AddPage()
	family, tr := setupFont(pdf)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.SetFont(family, "B", 16)
	pdf.CellFormat(0, 10, tr(data.CompanyName), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Payslip for period %s", data.Payroll.Period)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	info := [][2]string{
		{"Employee ID", data.Payroll.EmployeeID},
		{"Name", data.Payroll.EmployeeName},
		{"Department", data.Payroll.Department},
		{"Position", data.Position},
		{"Daily rate", money(data.SalaryRate)},
		{"Days worked", fmt.Sprintf("%d", data.Payroll.ActualDays)},
		{"Overtime hours", fmt.Sprintf("%.2f", data.Payroll.OvertimeHours)},
	}
	for _, item := range info {
		pdf.SetFont(family, "B", 11)
		pdf.CellFormat(50, 7, tr(item[0]), "", 0, "L", false, 0, "")
		pdf.SetFont(family, "", 11)
		pdf.CellFormat(0, 7, tr(item[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	gross := data.Payroll.GrossPay
	earnings := []payslipRow{
		{label: "Base salary", value: data.Payroll.BaseSalary},
		{label: "Overtime", value: data.Payroll.Overtime},
		{label: "Attendance bonus", value: data.Payroll.Bonuses},
	}
	deductions := []payslipRow{
		{label: fmt.Sprintf("Income tax (%.0f%%)", data.TaxRate*100), value: gross * data.TaxRate},
		{label: fmt.Sprintf("Health insurance (%.0f%%)", data.InsuranceRate*100), value: gross * data.InsuranceRate},
		{label: fmt.Sprintf("Retirement fund (%.0f%%)", data.RetirementRate*100), value: gross * data.RetirementRate},
	}
	writeTable(pdf, family, tr, "Earnings", earnings, gross+data.Payroll.Bonuses)
	pdf.Ln(4)
	writeTable(pdf, family, tr, "Deductions", deductions, data.Payroll.Deductions)
	pdf.Ln(6)

	pdf.SetFont(family, "B", 13)
	pdf.CellFormat(130, 10, tr("Net pay"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 10, money(data.Payroll.NetPay), "1", 1, "R", false, 0, "")
	pdf.Ln(8)
	pdf.SetFont(family, "", 9)
	pdf.CellFormat(0, 6, tr("Generated "+data.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "R", false, 0, "")

	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *fpdf.Fpdf, family string, tr func(string) string, title string, rows []payslipRow, total float64) {
	pdf.SetFont(family, "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(130, 8, tr(title), "1", 0, "L", true, 0, "")
	pdf.CellFormat(0, 8, tr("Amount"), "1", 1, "R", true, 0, "")
	pdf.SetFont(family, "", 11)
	for _, row := range rows {
		pdf.CellFormat(130, 7, tr(row.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, money(row.value), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont(family, "B", 11)
	pdf.CellFormat(130, 7, tr("Total"), "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, money(total), "1", 1, "R", false, 0, "")
}

func setupFont(pdf *fpdf.Fpdf) (family string, tr func(string) string) {
	regular := filepath.Join(FontDir, "Arial.ttf")
	bold := filepath.Join(FontDir, "Arial Bold.ttf")
	if fileExists(regular) && fileExists(bold) {
		pdf.AddUTF8Font("Arial", "", "Arial.ttf")
		pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
		return "Arial", func(s string) string { return s }
	}
	return "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
