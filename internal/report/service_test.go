package report_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/meal-ticket/internal/report"
)

func TestReportService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Service Suite")
}

type SQLiteEmployee struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	Code string `gorm:"uniqueIndex;not null"`
}

func (SQLiteEmployee) TableName() string {
	return "employees"
}

type SQLiteTicket struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID int64     `gorm:"column:employee_id;not null"`
	IssueDate  time.Time `gorm:"column:issue_date"`
	IssueTime  time.Time `gorm:"column:issue_time"`
}

func (SQLiteTicket) TableName() string {
	return "tickets"
}

var _ = Describe("Report Service", func() {
	var (
		db      *gorm.DB
		service *report.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	date := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}
	tod := func(hour, minute int) time.Time {
		return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
	}

	addTicket := func(employeeID int64, day, at time.Time) {
		Expect(db.Create(&SQLiteTicket{EmployeeID: employeeID, IssueDate: day, IssueTime: at}).Error).To(Succeed())
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteEmployee{}, &SQLiteTicket{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&SQLiteEmployee{ID: 1, Name: "Ivanova", Code: "1234"}).Error).To(Succeed())
		Expect(db.Create(&SQLiteEmployee{ID: 2, Name: "Petrov", Code: "5678"}).Error).To(Succeed())

		service = report.NewService(db, testLogger)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("DailyReport", func() {
		It("should return an empty slice for a day without issuances", func() {
			entries, err := service.DailyReport(date(2024, 3, 5))
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).NotTo(BeNil())
			Expect(entries).To(BeEmpty())
		})

		It("should return that day's issuances ordered by issue time", func() {
			day := date(2024, 3, 5)
			addTicket(2, day, tod(12, 30))
			addTicket(1, day, tod(9, 5))
			addTicket(1, date(2024, 3, 6), tod(8, 0))

			entries, err := service.DailyReport(day)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].EmployeeName).To(Equal("Ivanova"))
			Expect(entries[0].IssueTime.Format("15:04:05")).To(Equal("09:05:00"))
			Expect(entries[1].EmployeeName).To(Equal("Petrov"))
		})

		It("should not include tickets of a deleted employee", func() {
			day := date(2024, 3, 5)
			addTicket(1, day, tod(9, 5))

			Expect(db.Exec("DELETE FROM tickets WHERE employee_id = ?", 1).Error).To(Succeed())
			Expect(db.Exec("DELETE FROM employees WHERE id = ?", 1).Error).To(Succeed())

			entries, err := service.DailyReport(day)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})
	})

	Describe("MonthlyReport", func() {
		It("should reject an out-of-range month", func() {
			_, err := service.MonthlyReport(13, 2024)
			Expect(err).To(MatchError(report.ErrInvalidMonth))
		})

		It("should return an empty slice for a month without issuances", func() {
			entries, err := service.MonthlyReport(3, 2024)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(BeEmpty())
		})

		It("should order entries by date then time and exclude other months", func() {
			addTicket(1, date(2024, 3, 5), tod(9, 5))
			addTicket(2, date(2024, 3, 1), tod(10, 0))
			addTicket(2, date(2024, 3, 5), tod(8, 0))
			addTicket(1, date(2024, 2, 28), tod(9, 0))
			addTicket(1, date(2024, 4, 1), tod(9, 0))

			entries, err := service.MonthlyReport(3, 2024)
			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(3))

			Expect(entries[0].EmployeeName).To(Equal("Petrov"))
			Expect(entries[0].IssueDate.Format("2006-01-02")).To(Equal("2024-03-01"))
			Expect(entries[1].EmployeeName).To(Equal("Petrov"))
			Expect(entries[1].IssueTime.Format("15:04:05")).To(Equal("08:00:00"))
			Expect(entries[2].EmployeeName).To(Equal("Ivanova"))
			Expect(entries[2].IssueTime.Format("15:04:05")).To(Equal("09:05:00"))
		})
	})
})
