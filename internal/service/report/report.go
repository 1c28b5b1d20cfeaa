// Package report renders the filtered client list as CSV or XLSX for download.
package report

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"nexus-dashboard/internal/domain"
	"nexus-dashboard/internal/pkg/i18n"
	"nexus-dashboard/internal/service/analytics"
)

const (
	SheetName = "Clients"
	utf8BOM   = "\uFEFF"
)

var Headers = []string{
	"Project", "Client", "Phone", "Service", "Status", "Date",
	"Total Price", "Paid Amount", "Payment Status",
}

type Row struct {
	Project       string
	Client        string
	Phone         string
	Service       string
	Status        domain.SaleStatus
	Date          domain.Date
	TotalPrice    float64
	PaidAmount    float64
	PaymentStatus analytics.PaymentStatus
	// Display labels for Status and PaymentStatus in the requested locale.
	StatusLabel  string
	PaymentLabel string
}

// Rows lists one row per client whose lead date is inside w, in project order, with status
// columns labelled in locale.
func Rows(projects []domain.Project, w analytics.Window, locale string) []Row {
	clients := analytics.InWindow(projects, w)
	rows := make([]Row, 0, len(clients))
	for _, pc := range clients {
		s := pc.Sale
		rows = append(rows, Row{
			Project:       pc.ProjectName,
			Client:        s.ClientName,
			Phone:         s.PhoneNumber,
			Service:       s.ServiceType,
			Status:        s.Status,
			Date:          s.LeadDate,
			TotalPrice:    analytics.PotentialRevenue(s),
			PaidAmount:    analytics.CollectedRevenue(s),
			PaymentStatus: analytics.PaymentStatusOf(s),
		})
		r := &rows[len(rows)-1]
		r.StatusLabel = i18n.Translate(locale, "SALE_STATUS_"+string(r.Status))
		r.PaymentLabel = i18n.Translate(locale, "PAYMENT_"+string(r.PaymentStatus))
	}
	return rows
}

func (r Row) fields() []string {
	return []string{
		r.Project,
		r.Client,
		r.Phone,
		r.Service,
		r.StatusLabel,
		r.Date.String(),
		formatAmount(r.TotalPrice),
		formatAmount(r.PaidAmount),
		r.PaymentLabel,
	}
}

// WriteCSV writes a UTF-8 BOM, the header and every row with all fields quoted, so spreadsheet
// apps open Arabic text and leading-zero phone numbers intact.
func WriteCSV(out io.Writer, rows []Row) error {
	bw := bufio.NewWriter(out)
	bw.WriteString(utf8BOM)
	writeCSVLine(bw, Headers)
	for _, r := range rows {
		writeCSVLine(bw, r.fields())
	}
	return bw.Flush()
}

func writeCSVLine(bw *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteByte('"')
		bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
		bw.WriteByte('"')
	}
	bw.WriteString("\r\n")
}

func CSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XLSX renders the rows into a single "Clients" sheet.
func XLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, header := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(SheetName, cell, header)
	}

	for i, r := range rows {
		values := []any{
			r.Project, r.Client, r.Phone, r.Service, r.StatusLabel, r.Date.String(),
			r.TotalPrice, r.PaidAmount, r.PaymentLabel,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Filename(now time.Time, ext string) string {
	return "nexus-report-" + now.Format(domain.DateLayout) + "." + ext
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
