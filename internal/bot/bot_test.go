package bot_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/meal-ticket/internal/bot"
	"github.com/frahmantamala/meal-ticket/internal/report"
	"github.com/frahmantamala/meal-ticket/internal/ticket"
)

// Fake Telegram API capturing outbound messages
type fakeAPI struct {
	sent []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeAPI) StopReceivingUpdates() {}

// Fake reporter with canned results
type fakeReporter struct {
	daily      []report.DailyEntry
	monthly    []report.MonthlyEntry
	queryError error
}

func (f *fakeReporter) DailyReport(day time.Time) ([]report.DailyEntry, error) {
	return f.daily, f.queryError
}

func (f *fakeReporter) MonthlyReport(month, year int) ([]report.MonthlyEntry, error) {
	return f.monthly, f.queryError
}

var _ = Describe("Bot report sending", func() {
	var (
		api      *fakeAPI
		reporter *fakeReporter
		b        *bot.Bot
	)

	const adminChatID int64 = 42

	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	BeforeEach(func() {
		api = &fakeAPI{}
		reporter = &fakeReporter{}

		window, err := ticket.ParseWindow("09:00", "18:00")
		Expect(err).NotTo(HaveOccurred())

		b = bot.New(api, nil, reporter, window, time.UTC, adminChatID, testLogger)
	})

	Describe("SendDailyReport", func() {
		It("should message the admin chat with the summary", func() {
			reporter.daily = []report.DailyEntry{
				{EmployeeName: "Ivanova", IssueTime: time.Date(0, 1, 1, 9, 5, 0, 0, time.UTC)},
			}

			err := b.SendDailyReport(time.Date(2024, 3, 5, 18, 10, 0, 0, time.UTC))
			Expect(err).NotTo(HaveOccurred())
			Expect(api.sent).To(HaveLen(1))

			msg, ok := api.sent[0].(tgbotapi.MessageConfig)
			Expect(ok).To(BeTrue())
			Expect(msg.ChatID).To(Equal(adminChatID))
			Expect(msg.Text).To(ContainSubstring("Ivanova"))
		})

		It("should propagate query failures without sending", func() {
			reporter.queryError = errors.New("connection refused")
			err := b.SendDailyReport(time.Now())
			Expect(err).To(HaveOccurred())
			Expect(api.sent).To(BeEmpty())
		})
	})

	Describe("SendMonthlyReport", func() {
		It("should send a plain note for an empty month", func() {
			err := b.SendMonthlyReport(3, 2024)
			Expect(err).NotTo(HaveOccurred())
			Expect(api.sent).To(HaveLen(1))

			msg, ok := api.sent[0].(tgbotapi.MessageConfig)
			Expect(ok).To(BeTrue())
			Expect(msg.Text).To(ContainSubstring("no tickets"))
		})

		It("should attach the spreadsheet for a month with issuances", func() {
			reporter.monthly = []report.MonthlyEntry{
				{
					EmployeeName: "Ivanova",
					IssueDate:    time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
					IssueTime:    time.Date(0, 1, 1, 9, 5, 0, 0, time.UTC),
				},
			}

			err := b.SendMonthlyReport(3, 2024)
			Expect(err).NotTo(HaveOccurred())
			Expect(api.sent).To(HaveLen(1))

			doc, ok := api.sent[0].(tgbotapi.DocumentConfig)
			Expect(ok).To(BeTrue())
			Expect(doc.ChatID).To(Equal(adminChatID))

			file, ok := doc.File.(tgbotapi.FileBytes)
			Expect(ok).To(BeTrue())
			Expect(file.Name).To(Equal("monthly_report_03_2024.xlsx"))
			Expect(file.Bytes).NotTo(BeEmpty())
		})
	})
})
