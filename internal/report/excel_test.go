package report_test

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/frahmantamala/meal-ticket/internal/report"
)

var _ = Describe("Monthly Workbook", func() {
	entries := []report.MonthlyEntry{
		{
			EmployeeName: "Ivanova",
			IssueDate:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			IssueTime:    time.Date(0, 1, 1, 9, 5, 0, 0, time.UTC),
		},
		{
			EmployeeName: "Petrov",
			IssueDate:    time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			IssueTime:    time.Date(0, 1, 1, 12, 30, 0, 0, time.UTC),
		},
	}

	It("should write a header row and one row per entry", func() {
		data, err := report.MonthlyWorkbookBytes(entries)
		Expect(err).NotTo(HaveOccurred())

		f, err := excelize.OpenReader(bytes.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		rows, err := f.GetRows("Report")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(3))
		Expect(rows[0]).To(Equal([]string{"Employee", "Date", "Time"}))
		Expect(rows[1]).To(Equal([]string{"Ivanova", "2024-03-01", "09:05:00"}))
		Expect(rows[2]).To(Equal([]string{"Petrov", "2024-03-05", "12:30:00"}))
	})

	It("should produce a workbook with only a header for an empty month", func() {
		data, err := report.MonthlyWorkbookBytes(nil)
		Expect(err).NotTo(HaveOccurred())

		f, err := excelize.OpenReader(bytes.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		rows, err := f.GetRows("Report")
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(1))
	})

	It("should name the export after month and year", func() {
		Expect(report.MonthlyFilename(3, 2024)).To(Equal("monthly_report_03_2024.xlsx"))
	})
})
