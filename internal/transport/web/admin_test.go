package web_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/meal-ticket/internal"
	"github.com/frahmantamala/meal-ticket/internal/employee"
	employeePostgres "github.com/frahmantamala/meal-ticket/internal/employee/postgres"
	"github.com/frahmantamala/meal-ticket/internal/report"
	"github.com/frahmantamala/meal-ticket/internal/transport/web"
)

func TestAdminWeb(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Admin Web Suite")
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

var _ = Describe("Admin Web", func() {
	var (
		db        *gorm.DB
		router    *chi.Mux
		directory *employee.Service
	)

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	get := func(path string, authed bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authed {
			req.SetBasicAuth("admin", "secret")
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	postForm := func(path string, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.SetBasicAuth("admin", "secret")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	roster := func() []*employee.Employee {
		employees, err := directory.ListEmployees()
		Expect(err).NotTo(HaveOccurred())
		return employees
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteEmployee{}, &SQLiteTicket{})
		Expect(err).NotTo(HaveOccurred())

		directory = employee.NewService(employeePostgres.NewEmployeeRepository(db), testLogger)
		reports := report.NewService(db, testLogger)

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())

		router = chi.NewRouter()
		web.RegisterAllRoutes(
			router,
			sqlDB,
			internal.AdminConfig{Username: "admin", Password: "secret"},
			web.NewAdminHandler(directory),
			web.NewReportHandler(reports, time.UTC),
			testLogger,
		)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("authentication", func() {
		It("should challenge the roster page without credentials", func() {
			rec := get("/", false)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Header().Get("WWW-Authenticate")).To(ContainSubstring("Basic"))
		})

		It("should leave the ping probe open", func() {
			rec := get("/api/v1/ping", false)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("roster page", func() {
		It("should list employees", func() {
			_, err := directory.CreateEmployee(employee.CreateEmployeeDTO{Name: "Ivanova", Code: "1234"})
			Expect(err).NotTo(HaveOccurred())

			rec := get("/", true)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Ivanova"))
			Expect(rec.Body.String()).To(ContainSubstring("1234"))
		})
	})

	Describe("adding employees", func() {
		It("should add an employee and redirect to the listing", func() {
			rec := postForm("/add", url.Values{"name": {"Ivanova"}, "code": {"1234"}})
			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get("Location")).To(Equal("/"))
			Expect(roster()).To(HaveLen(1))
		})

		It("should silently no-op when a field is missing", func() {
			rec := postForm("/add", url.Values{"name": {"Ivanova"}})
			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(roster()).To(BeEmpty())
		})

		It("should silently keep the roster unchanged on a duplicate code", func() {
			Expect(postForm("/add", url.Values{"name": {"Ivanova"}, "code": {"1234"}}).Code).To(Equal(http.StatusSeeOther))

			rec := postForm("/add", url.Values{"name": {"Petrov"}, "code": {"1234"}})
			Expect(rec.Code).To(Equal(http.StatusSeeOther))

			employees := roster()
			Expect(employees).To(HaveLen(1))
			Expect(employees[0].Name).To(Equal("Ivanova"))
		})
	})

	Describe("deleting employees", func() {
		It("should remove the employee and their tickets from reports", func() {
			emp, err := directory.CreateEmployee(employee.CreateEmployeeDTO{Name: "Ivanova", Code: "1234"})
			Expect(err).NotTo(HaveOccurred())

			day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
			Expect(db.Create(&SQLiteTicket{EmployeeID: emp.ID, IssueDate: day}).Error).To(Succeed())

			rec := postForm("/delete/1", nil)
			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(roster()).To(BeEmpty())

			daily := get("/api/v1/reports/daily?date=2024-03-05", true)
			Expect(daily.Code).To(Equal(http.StatusOK))
			Expect(daily.Body.String()).To(ContainSubstring(`"count":0`))
		})
	})

	Describe("report API", func() {
		BeforeEach(func() {
			emp, err := directory.CreateEmployee(employee.CreateEmployeeDTO{Name: "Ivanova", Code: "1234"})
			Expect(err).NotTo(HaveOccurred())
			day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
			at := time.Date(0, 1, 1, 9, 5, 0, 0, time.UTC)
			Expect(db.Create(&SQLiteTicket{EmployeeID: emp.ID, IssueDate: day, IssueTime: at}).Error).To(Succeed())
		})

		It("should serve the daily report as JSON", func() {
			rec := get("/api/v1/reports/daily?date=2024-03-05", true)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Ivanova"))
			Expect(rec.Body.String()).To(ContainSubstring(`"count":1`))
		})

		It("should reject a malformed date", func() {
			rec := get("/api/v1/reports/daily?date=03-05-2024", true)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should require month and year for the monthly report", func() {
			rec := get("/api/v1/reports/monthly", true)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should reject an out-of-range month", func() {
			rec := get("/api/v1/reports/monthly?month=13&year=2024", true)
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should serve the monthly report as JSON", func() {
			rec := get("/api/v1/reports/monthly?month=3&year=2024", true)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Ivanova"))
		})

		It("should serve the monthly report as a spreadsheet download", func() {
			rec := get("/api/v1/reports/monthly?month=3&year=2024&format=xlsx", true)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(ContainSubstring("spreadsheetml"))
			Expect(rec.Header().Get("Content-Disposition")).To(ContainSubstring("monthly_report_03_2024.xlsx"))
		})

		It("should guard the report endpoints", func() {
			rec := get("/api/v1/reports/daily", false)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
