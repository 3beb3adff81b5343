package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/meal-ticket/internal/bot"
	"github.com/frahmantamala/meal-ticket/internal/employee"
	employeePostgres "github.com/frahmantamala/meal-ticket/internal/employee/postgres"
	"github.com/frahmantamala/meal-ticket/internal/report"
	"github.com/frahmantamala/meal-ticket/internal/scheduler"
	"github.com/frahmantamala/meal-ticket/internal/ticket"
	ticketPostgres "github.com/frahmantamala/meal-ticket/internal/ticket/postgres"
	"github.com/frahmantamala/meal-ticket/pkg/logger"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Start the Telegram bot",
	Long:  `Start the Telegram bot together with the daily and monthly report scheduler`,
	Run: func(cmd *cobra.Command, args []string) {
		startBot()
	},
}

func startBot() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Telegram.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid telegram config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Format, cfg.Logging.Level)
	lg := logger.LoggerWrapper()

	sqlDB, gormDB, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	loc, err := cfg.Schedule.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid timezone: %v\n", err)
		os.Exit(1)
	}

	window, err := ticket.ParseWindow(cfg.Schedule.WindowStart, cfg.Schedule.WindowEnd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid issuance window: %v\n", err)
		os.Exit(1)
	}

	directory := employee.NewService(employeePostgres.NewEmployeeRepository(gormDB), lg)
	issuer := ticket.NewService(ticketPostgres.NewTicketRepository(gormDB), directory, window, loc, lg)
	reports := report.NewService(gormDB, lg)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to Telegram: %v\n", err)
		os.Exit(1)
	}
	slog.Info("authorized on telegram", "account", api.Self.UserName)

	b := bot.New(api, issuer, reports, window, loc, cfg.Telegram.AdminChatID, lg)

	sched, err := scheduler.New(cfg.Schedule, b, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build scheduler: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start()
	if err := b.Run(ctx); err != nil {
		slog.Error("bot exited with error", "error", err)
	}

	sched.Stop()
	if err := sqlDB.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}
	slog.Info("bot stopped")
}
