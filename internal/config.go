package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"http_server"`
	Database DatabaseConfig `mapstructure:"database"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Source       string `mapstructure:"source"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type TelegramConfig struct {
	Token       string `mapstructure:"token"`
	AdminChatID int64  `mapstructure:"admin_chat_id"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ScheduleConfig holds the wall-clock policy: the issuance window and the
// two report triggers, all interpreted in Timezone.
type ScheduleConfig struct {
	Timezone          string `mapstructure:"timezone"`
	WindowStart       string `mapstructure:"window_start"`
	WindowEnd         string `mapstructure:"window_end"`
	DailyReportTime   string `mapstructure:"daily_report_time"`
	MonthlyReportDay  int    `mapstructure:"monthly_report_day"`
	MonthlyReportTime string `mapstructure:"monthly_report_time"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	DefaultTimezone          = "Europe/Moscow"
	DefaultWindowStart       = "09:00"
	DefaultWindowEnd         = "18:00"
	DefaultDailyReportTime   = "18:10"
	DefaultMonthlyReportDay  = 1
	DefaultMonthlyReportTime = "09:00"
)

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsInt64(key string, defaultVal int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds the configuration from environment variables,
// used for Docker deployments. Variable names match the original deployment
// surface (TELEGRAM_BOT_TOKEN, DATABASE_URL, ...).
func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvAsInt("HTTP_PORT", 8080),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Source:       os.Getenv("DATABASE_URL"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		Telegram: TelegramConfig{
			Token:       os.Getenv("TELEGRAM_BOT_TOKEN"),
			AdminChatID: getEnvAsInt64("ADMIN_TELEGRAM_ID", 0),
		},
		Admin: AdminConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Schedule: ScheduleConfig{
			Timezone:          getEnv("TIMEZONE", DefaultTimezone),
			WindowStart:       getEnv("TICKET_WINDOW_START", DefaultWindowStart),
			WindowEnd:         getEnv("TICKET_WINDOW_END", DefaultWindowEnd),
			DailyReportTime:   getEnv("DAILY_REPORT_TIME", DefaultDailyReportTime),
			MonthlyReportDay:  getEnvAsInt("MONTHLY_REPORT_DAY", DefaultMonthlyReportDay),
			MonthlyReportTime: getEnv("MONTHLY_REPORT_TIME", DefaultMonthlyReportTime),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
	return cfg
}

// ApplyDefaults fills schedule defaults for config files that omit them.
func (c *Config) ApplyDefaults() {
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = DefaultTimezone
	}
	if c.Schedule.WindowStart == "" {
		c.Schedule.WindowStart = DefaultWindowStart
	}
	if c.Schedule.WindowEnd == "" {
		c.Schedule.WindowEnd = DefaultWindowEnd
	}
	if c.Schedule.DailyReportTime == "" {
		c.Schedule.DailyReportTime = DefaultDailyReportTime
	}
	if c.Schedule.MonthlyReportDay == 0 {
		c.Schedule.MonthlyReportDay = DefaultMonthlyReportDay
	}
	if c.Schedule.MonthlyReportTime == "" {
		c.Schedule.MonthlyReportTime = DefaultMonthlyReportTime
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Schedule.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("schedule config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *ScheduleConfig) Validate() error {
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	for _, tod := range []string{c.WindowStart, c.WindowEnd, c.DailyReportTime, c.MonthlyReportTime} {
		if _, err := ParseTimeOfDay(tod); err != nil {
			return err
		}
	}
	if c.MonthlyReportDay < 1 || c.MonthlyReportDay > 28 {
		return errors.New("monthly_report_day must be between 1 and 28")
	}
	return nil
}

func (c *TelegramConfig) Validate() error {
	if c.Token == "" {
		return errors.New("token is required")
	}
	if c.AdminChatID == 0 {
		return errors.New("admin_chat_id is required")
	}
	return nil
}

func (c *AdminConfig) Validate() error {
	if c.Username == "" || c.Password == "" {
		return errors.New("username and password are required")
	}
	return nil
}

func (c *ScheduleConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// ParseTimeOfDay parses "15:04" or "15:04:05" into an offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, error) {
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}
