package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/meal-ticket/internal/report"
	"github.com/frahmantamala/meal-ticket/internal/ticket"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	greetingText = "Hello! Please enter your personal code to receive a meal ticket."

	outsideWindowText = "Sorry, tickets are only issued between %s and %s."
	unknownCodeText   = "No employee found with that code. Please check the code and try again."
	alreadyIssuedText = "You have already received your ticket for today. The next one is available tomorrow."
	unavailableText   = "The service is temporarily unavailable. Please try again later."
)

const qrSize = 256

// TicketCaption is the text printed on the ticket and encoded in its QR
// code.
func TicketCaption(name string, issuedAt time.Time) string {
	return fmt.Sprintf(
		"✅ Meal ticket\n\nEmployee: %s\nDate: %s\nIssued at: %s\n\nThis ticket is valid for today.",
		name,
		issuedAt.Format("02.01.2006"),
		issuedAt.Format("15:04:05"),
	)
}

// TicketQR encodes the caption as a scannable PNG.
func TicketQR(caption string) ([]byte, error) {
	return qrcode.Encode(caption, qrcode.Medium, qrSize)
}

// DenialText maps a non-granted decision to its reply.
func DenialText(outcome ticket.Outcome, window ticket.Window) string {
	switch outcome {
	case ticket.OutcomeOutsideWindow:
		return fmt.Sprintf(outsideWindowText, formatOffset(window.Start), formatOffset(window.End))
	case ticket.OutcomeUnknownCode:
		return unknownCodeText
	case ticket.OutcomeAlreadyIssued:
		return alreadyIssuedText
	default:
		return unavailableText
	}
}

// DailyReportMessage renders the admin chat summary for one day.
func DailyReportMessage(day time.Time, entries []report.DailyEntry) string {
	dayStr := day.Format("02.01.2006")
	if len(entries) == 0 {
		return fmt.Sprintf("📄 Daily report for %s\n\nNo tickets were issued today.", dayStr)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📄 Daily report for %s\n\n", dayStr)
	fmt.Fprintf(&b, "Tickets issued: %d\n\n", len(entries))
	b.WriteString("Employees:\n")
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, entry.EmployeeName, entry.IssueTime.Format("15:04:05"))
	}
	return b.String()
}

// MonthlyEmptyMessage is sent instead of a spreadsheet when a month had
// no issuances.
func MonthlyEmptyMessage(month, year int) string {
	return fmt.Sprintf("Monthly report for %02d.%d: no tickets were issued.", month, year)
}

// MonthlyCaption labels the spreadsheet attachment.
func MonthlyCaption(month, year int) string {
	return fmt.Sprintf("📊 Monthly report for %s %d", time.Month(month).String(), year)
}

func formatOffset(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
