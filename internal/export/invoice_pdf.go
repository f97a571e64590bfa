package export

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/fadilmartias/freelance-ledger/internal/config"
	"github.com/fadilmartias/freelance-ledger/internal/dto"
	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 20.0
	rowHeight  = 7.0
	// rows past this cursor position continue on a new page
	tableBreakY = pageHeight - 30
	// the terms block starts here on the last page
	termsY = pageHeight - 40
)

// The core PDF fonts have no rupee glyph.
const currencyPrefix = "Rs. "

var (
	brandBlue = [3]int{5, 83, 156}
	greyText  = [3]int{100, 100, 100}
	lightGrey = [3]int{150, 150, 150}
	rowShade  = [3]int{245, 247, 250}
)

type tableColumn struct {
	header string
	width  float64
	align  string
}

var invoiceColumns = []tableColumn{
	{"#", 10, "C"},
	{"Task Description", 33, "L"},
	{"Model", 20, "C"},
	{"Language", 22, "C"},
	{"Start", 18, "C"},
	{"End", 18, "C"},
	{"Days", 12, "C"},
	{"Rate/Day", 22, "R"},
	{"Amount", 25, "R"},
}

var whitespace = regexp.MustCompile(`\s+`)

// InvoicePDF lays out invoices on A4 portrait pages for one issuing company.
type InvoicePDF struct {
	company config.CompanyConfig
}

func NewInvoicePDF(company config.CompanyConfig) *InvoicePDF {
	return &InvoicePDF{company: company}
}

func InvoiceFilename(inv *dto.Invoice) string {
	return fmt.Sprintf("invoice-%s-%s.pdf", whitespace.ReplaceAllString(inv.FreelancerName, "-"), inv.Number)
}

// Render draws the invoice and returns the PDF bytes.
func (g *InvoicePDF) Render(inv *dto.Invoice) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(inv.Number, true)
	pdf.SetCreator(g.company.Name, true)
	pdf.SetFooterFunc(func() {
		pdf.SetFont("Helvetica", "", 10)
		setTextColor(pdf, lightGrey)
		centerText(pdf, pageHeight-6, fmt.Sprintf("Page %d", pdf.PageNo()))
	})

	r := &invoiceRenderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), company: g.company, y: margin}
	pdf.AddPage()
	r.header()
	r.details(inv)
	r.table(inv)
	r.summary(inv)
	r.paymentDetails()
	r.footer()

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type invoiceRenderer struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	company config.CompanyConfig
	y       float64
}

func (r *invoiceRenderer) header() {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 24)
	setTextColor(pdf, brandBlue)
	pdf.Text(margin, r.y, r.tr(r.company.Name))

	if r.company.Tagline != "" {
		pdf.SetFont("Helvetica", "", 10)
		setTextColor(pdf, greyText)
		pdf.Text(margin, r.y+6, r.tr(r.company.Tagline))
	}

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 0, 0)
	rightText(pdf, pageWidth-margin, r.y, "INVOICE")

	r.y += 15
	pdf.SetDrawColor(brandBlue[0], brandBlue[1], brandBlue[2])
	pdf.SetLineWidth(0.5)
	pdf.Line(margin, r.y, pageWidth-margin, r.y)
	r.y += 10
}

func (r *invoiceRenderer) details(inv *dto.Invoice) {
	pdf := r.pdf
	rightColumnX := pageWidth/2 + 10

	pdf.SetFont("Helvetica", "B", 12)
	setTextColor(pdf, brandBlue)
	pdf.Text(margin, r.y, "BILL TO:")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(margin, r.y+6, r.tr(inv.FreelancerName))

	period := fmt.Sprintf("%s - %s",
		util.FormatDate(inv.DateRange.Start, "02 Jan 2006"),
		util.FormatDate(inv.DateRange.End, "02 Jan 2006"))
	rows := [][2]string{
		{"Invoice No:", inv.Number},
		{"Invoice Date:", util.FormatDate(inv.IssuedOn, "02 Jan 2006")},
		{"Period:", period},
	}
	pdf.SetFontSize(10)
	setTextColor(pdf, greyText)
	detailY := r.y
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(rightColumnX, detailY, row[0])
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(rightColumnX+25, detailY, row[1])
		detailY += 5
	}
	r.y = max(r.y+15, detailY+5)
}

func (r *invoiceRenderer) tableHeader() {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(brandBlue[0], brandBlue[1], brandBlue[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.SetXY(margin, r.y)
	for _, c := range invoiceColumns {
		pdf.CellFormat(c.width, rowHeight+1, c.header, "1", 0, "C", true, 0, "")
	}
	r.y += rowHeight + 1
}

func (r *invoiceRenderer) table(inv *dto.Invoice) {
	pdf := r.pdf
	r.tableHeader()
	for i, line := range inv.Tasks {
		if r.y+rowHeight > tableBreakY {
			pdf.AddPage()
			r.y = margin
			r.tableHeader()
		}
		cells := []string{
			fmt.Sprint(i + 1),
			line.Task,
			line.Model,
			line.Language,
			util.FormatDate(line.StartDate, "02/01/06"),
			util.FormatDate(line.CompletionDate, "02/01/06"),
			line.TotalTimeTaken.StringFixed(2),
			currencyPrefix + util.FormatINR(line.PayRatePerDay, -1),
			currencyPrefix + util.FormatINR(line.TotalPayment, -1),
		}
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFillColor(rowShade[0], rowShade[1], rowShade[2])
		pdf.SetXY(margin, r.y)
		for j, c := range invoiceColumns {
			if j == len(invoiceColumns)-1 {
				pdf.SetFont("Helvetica", "B", 9)
			}
			text := fitText(pdf, r.tr, cells[j], c.width-2)
			pdf.CellFormat(c.width, rowHeight, text, "1", 0, c.align, i%2 == 1, 0, "")
		}
		r.y += rowHeight
	}
	r.y += 10
}

func (r *invoiceRenderer) summary(inv *dto.Invoice) {
	pdf := r.pdf
	if r.y+35 > termsY-5 {
		pdf.AddPage()
		r.y = margin
	}
	summaryX := pageWidth - margin - 60

	pdf.SetFillColor(rowShade[0], rowShade[1], rowShade[2])
	pdf.Rect(summaryX-5, r.y-5, 65, 35, "F")

	items := [][2]string{
		{"Subtotal:", currencyPrefix + util.FormatINR(inv.TotalAmount, -1)},
		{fmt.Sprintf("GST (%s%%):", TaxPercent()), currencyPrefix + util.FormatINR(inv.Tax, -1)},
	}
	pdf.SetFont("Helvetica", "", 10)
	setTextColor(pdf, greyText)
	y := r.y
	for _, item := range items {
		pdf.Text(summaryX, y, item[0])
		rightText(pdf, summaryX+55, y, item[1])
		y += 6
	}

	pdf.SetDrawColor(brandBlue[0], brandBlue[1], brandBlue[2])
	pdf.SetLineWidth(0.5)
	pdf.Line(summaryX, y, summaryX+55, y)
	y += 6

	pdf.SetFont("Helvetica", "B", 12)
	setTextColor(pdf, brandBlue)
	pdf.Text(summaryX, y, "TOTAL:")
	rightText(pdf, summaryX+55, y, currencyPrefix+util.FormatINR(inv.GrandTotal, 2))
	r.y = y + 15
}

func (r *invoiceRenderer) paymentDetails() {
	bank := r.company.Bank
	if bank.BankName == "" {
		return
	}
	pdf := r.pdf
	if r.y > pageHeight-60 {
		pdf.AddPage()
		r.y = margin
	}
	pdf.SetFont("Helvetica", "B", 12)
	setTextColor(pdf, brandBlue)
	pdf.Text(margin, r.y, "PAYMENT DETAILS:")
	r.y += 7

	pdf.SetTextColor(0, 0, 0)
	for _, row := range [][2]string{
		{"Bank Name:", bank.BankName},
		{"Account Name:", bank.AccountName},
		{"Account Number:", bank.AccountNumber},
		{"IFSC Code:", bank.IFSCCode},
		{"Branch:", bank.Branch},
	} {
		if row[1] == "" {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(margin, r.y, row[0])
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(margin+30, r.y, r.tr(row[1]))
		r.y += 5
	}
	r.y += 10
}

func (r *invoiceRenderer) footer() {
	pdf := r.pdf
	if r.y > termsY-5 {
		pdf.AddPage()
		r.y = margin
	}
	terms := []string{
		"Terms & Conditions:",
		"1. Payment is due within 30 days from the invoice date.",
		"2. Please include the invoice number in your payment reference.",
		"3. For any queries, please contact us at the details provided above.",
	}
	setTextColor(pdf, lightGrey)
	y := termsY
	for i, line := range terms {
		style := ""
		if i == 0 {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 8)
		pdf.Text(margin, y, line)
		y += 4
	}

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Line(margin, pageHeight-20, pageWidth-margin, pageHeight-20)

	pdf.SetFont("Helvetica", "", 8)
	centerText(pdf, pageHeight-15, "Thank you for your business!")
	var contact []string
	for _, s := range []string{r.company.Email, r.company.Phone} {
		if s != "" {
			contact = append(contact, s)
		}
	}
	if len(contact) > 0 {
		line := contact[0]
		if len(contact) == 2 {
			line += " | " + contact[1]
		}
		centerText(pdf, pageHeight-11, r.tr(line))
	}
}

// TaxRate is the GST added on top of the invoice subtotal.
var TaxRate = decimal.RequireFromString("0.18")

// TaxPercent is the tax rate as a percentage string, e.g. "18".
func TaxPercent() string {
	return TaxRate.Mul(decimal.NewFromInt(100)).String()
}

func setTextColor(pdf *fpdf.Fpdf, c [3]int) {
	pdf.SetTextColor(c[0], c[1], c[2])
}

func rightText(pdf *fpdf.Fpdf, right, y float64, s string) {
	pdf.Text(right-pdf.GetStringWidth(s), y, s)
}

func centerText(pdf *fpdf.Fpdf, y float64, s string) {
	pdf.Text((pageWidth-pdf.GetStringWidth(s))/2, y, s)
}

// fitText translates s and truncates it with an ellipsis so it fits width
// at the current font.
func fitText(pdf *fpdf.Fpdf, tr func(string) string, s string, width float64) string {
	if pdf.GetStringWidth(tr(s)) <= width {
		return tr(s)
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(tr(string(runes)+"...")) > width {
		runes = runes[:len(runes)-1]
	}
	return tr(string(runes) + "...")
}
