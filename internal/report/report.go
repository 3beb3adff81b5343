package report

import "time"

// DailyEntry is one line of the daily summary.
type DailyEntry struct {
	EmployeeName string    `json:"employee_name" gorm:"column:employee_name"`
	IssueTime    time.Time `json:"issue_time" gorm:"column:issue_time"`
}

// MonthlyEntry is one row of the monthly export.
type MonthlyEntry struct {
	EmployeeName string    `json:"employee_name" gorm:"column:employee_name"`
	IssueDate    time.Time `json:"issue_date" gorm:"column:issue_date"`
	IssueTime    time.Time `json:"issue_time" gorm:"column:issue_time"`
}
