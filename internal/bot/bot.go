package bot

import (
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/frahmantamala/meal-ticket/internal/report"
	"github.com/frahmantamala/meal-ticket/internal/scheduler"
	"github.com/frahmantamala/meal-ticket/internal/ticket"
)

// API is the slice of tgbotapi.BotAPI the bot depends on.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Issuer decides whether a submitted code gets a ticket.
type Issuer interface {
	RequestTicket(rawInput string, now time.Time) (*ticket.Decision, error)
}

// Reporter runs the ledger queries behind the admin reports.
type Reporter interface {
	DailyReport(day time.Time) ([]report.DailyEntry, error)
	MonthlyReport(month, year int) ([]report.MonthlyEntry, error)
}

// Bot dispatches incoming Telegram messages: /start greets, any other
// text is treated as a personal code, and the admin chat may pull
// reports on demand with /daily and /monthly.
type Bot struct {
	api         API
	issuer      Issuer
	reports     Reporter
	window      ticket.Window
	loc         *time.Location
	adminChatID int64
	logger      *slog.Logger
}

func New(api API, issuer Issuer, reports Reporter, window ticket.Window, loc *time.Location, adminChatID int64, logger *slog.Logger) *Bot {
	return &Bot{
		api:         api,
		issuer:      issuer,
		reports:     reports,
		window:      window,
		loc:         loc,
		adminChatID: adminChatID,
		logger:      logger,
	}
}

// Run consumes the long-polling update stream until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info("bot started")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	b.handleCode(msg)
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, greetingText)
	case "daily":
		if msg.Chat.ID != b.adminChatID {
			return
		}
		if err := b.SendDailyReport(time.Now().In(b.loc)); err != nil {
			b.logger.Error("on-demand daily report failed", "error", err)
		}
	case "monthly":
		if msg.Chat.ID != b.adminChatID {
			return
		}
		month, year := scheduler.PreviousMonth(time.Now().In(b.loc))
		if err := b.SendMonthlyReport(month, year); err != nil {
			b.logger.Error("on-demand monthly report failed", "error", err)
		}
	}
}

func (b *Bot) handleCode(msg *tgbotapi.Message) {
	now := time.Now().In(b.loc)

	decision, err := b.issuer.RequestTicket(msg.Text, now)
	if err != nil {
		b.logger.Error("issuance failed", "error", err, "chat_id", msg.Chat.ID)
		b.reply(msg.Chat.ID, unavailableText)
		return
	}

	if decision.Outcome != ticket.OutcomeGranted {
		b.reply(msg.Chat.ID, DenialText(decision.Outcome, b.window))
		return
	}

	caption := TicketCaption(decision.Employee.Name, now)
	png, err := TicketQR(caption)
	if err != nil {
		// the ticket row exists either way; fall back to plain text
		b.logger.Error("qr encoding failed", "error", err)
		b.reply(msg.Chat.ID, caption)
		return
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  "ticket_qr.png",
		Bytes: png,
	})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		b.logger.Error("failed to send ticket photo", "error", err, "chat_id", msg.Chat.ID)
	}
}

// SendDailyReport pushes the summary for day to the admin chat.
func (b *Bot) SendDailyReport(day time.Time) error {
	entries, err := b.reports.DailyReport(day)
	if err != nil {
		return err
	}

	b.reply(b.adminChatID, DailyReportMessage(day, entries))
	b.logger.Info("daily report sent", "date", day.Format("2006-01-02"), "count", len(entries))
	return nil
}

// SendMonthlyReport pushes the spreadsheet for month/year to the admin
// chat, or a short note when the month is empty.
func (b *Bot) SendMonthlyReport(month, year int) error {
	entries, err := b.reports.MonthlyReport(month, year)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		b.reply(b.adminChatID, MonthlyEmptyMessage(month, year))
		b.logger.Info("monthly report sent (empty)", "month", month, "year", year)
		return nil
	}

	data, err := report.MonthlyWorkbookBytes(entries)
	if err != nil {
		return err
	}

	doc := tgbotapi.NewDocument(b.adminChatID, tgbotapi.FileBytes{
		Name:  report.MonthlyFilename(month, year),
		Bytes: data,
	})
	doc.Caption = MonthlyCaption(month, year)
	if _, err := b.api.Send(doc); err != nil {
		return err
	}

	b.logger.Info("monthly report sent", "month", month, "year", year, "rows", len(entries))
	return nil
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send message", "error", err, "chat_id", chatID)
	}
}
