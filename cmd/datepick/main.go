package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"cloudeng.io/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/datepick/internal/api"
	"github.com/terraincognita07/datepick/internal/calendar"
	"github.com/terraincognita07/datepick/internal/cli"
	"github.com/terraincognita07/datepick/internal/db"
	"github.com/terraincognita07/datepick/internal/i18n"
	"github.com/terraincognita07/datepick/internal/services"
)

const (
	insecureSecretPlaceholder = "change_me_in_production"
	exampleSecretPlaceholder  = "replace_with_at_least_32_random_characters"
	minSecretKeyLength        = 32
	defaultSessionMaxAge      = 30 * 24 * time.Hour
)

var promptSecret = func() (string, error) {
	return cli.PromptSecret(os.Stdin, os.Stderr)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "datepick",
		Short:        "Date and date-range picker service",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runServe()
		},
	}
	root.AddCommand(newServeCommand(), newGridCommand(), newPurgeSessionsCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return runServe()
		},
	}
}

func newGridCommand() *cobra.Command {
	input := services.CreatePickerInput{}
	var month string
	command := &cobra.Command{
		Use:   "grid",
		Short: "Print a month grid",
		Long: `
Print the month grid for a picker described by flags. Selected days are shown
in reverse video when stdout is a terminal and marked with "*" otherwise.
Disabled days are dimmed or marked with "-".
`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			if month != "" {
				input.DisplayedDate = month
			}
			manager, err := i18n.NewEmbeddedManager(getEnv("DEFAULT_LANGUAGE", i18n.LangEN))
			if err != nil {
				return fmt.Errorf("i18n init failed: %w", err)
			}
			defaults, err := resolvePickerDefaults(mustLoadLocation(getEnv("TZ", "UTC")))
			if err != nil {
				return err
			}
			out := command.OutOrStdout()
			file, isFile := out.(*os.File)
			return cli.RunGridCommand(out, manager, defaults, input, time.Now, isFile && cli.IsTerminal(file))
		},
	}

	flags := command.Flags()
	flags.StringVar(&month, "month", "", "displayed month (2006-01) or day (2006-01-02)")
	flags.StringVar(&input.Mode, "mode", "single", "single or range")
	flags.StringVar(&input.Date, "date", "", "selected date in single mode")
	flags.StringVar(&input.StartDate, "start", "", "range start")
	flags.StringVar(&input.EndDate, "end", "", "range end")
	flags.StringVar(&input.MinDate, "min", "", "earliest selectable date")
	flags.StringVar(&input.MaxDate, "max", "", "latest selectable date")
	flags.StringVar(&input.WeekStart, "week-start", "", "first weekday (sunday, monday, ... or 0-6)")
	flags.StringVar(&input.Timezone, "timezone", "", "IANA timezone for today and dates")
	flags.StringVar(&input.Language, "lang", "", "label language")
	flags.StringVar(&input.DateAdapter, "adapter", "", "date adapter: time or civil")
	return command
}

func newPurgeSessionsCommand() *cobra.Command {
	var olderThan time.Duration
	command := &cobra.Command{
		Use:   "purge-sessions",
		Short: "Delete picker sessions idle for longer than --older-than",
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return cli.RunPurgeSessionsCommand(resolveDBPath(), olderThan, command.OutOrStdout())
		},
	}
	command.Flags().DurationVar(&olderThan, "older-than", defaultSessionMaxAge, "minimum idle time")
	return command
}

func runServe() error {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey, err := resolveSecretKey()
	if err != nil {
		return err
	}
	port, err := resolvePort()
	if err != nil {
		return err
	}
	defaults, err := resolvePickerDefaults(location)
	if err != nil {
		return err
	}
	sessionMaxAge, err := resolveSessionMaxAge()
	if err != nil {
		return err
	}
	dbPath := resolveDBPath()
	cookieSecure := parseBoolEnv(getEnv("COOKIE_SECURE", "false"))

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	i18nManager, err := i18n.NewEmbeddedManager(getEnv("DEFAULT_LANGUAGE", i18n.LangEN))
	if err != nil {
		return fmt.Errorf("i18n init failed: %w", err)
	}
	if defaults.Language == "" {
		defaults.Language = i18nManager.DefaultLanguage()
	}

	handler, err := api.NewHandler(database, secretKey, i18nManager, defaults, cookieSecure)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "datepick",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	purgeService := services.NewPickerService(db.NewRepositories(database).Sessions, nil, defaults)
	services.NewSessionPurger(purgeService, sessionMaxAge, time.Hour).Start(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("datepick listening on http://0.0.0.0:%s (db: %s, tz: %s, week start: %s)", port, dbPath, location.String(), defaults.WeekStart)
	if err := app.Listen(":" + port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// resolveSecretKey reads SECRET_KEY, prompting for it when unset and stdin is
// a terminal.
func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		prompted, err := promptSecret()
		if err != nil {
			return "", fmt.Errorf("SECRET_KEY is required")
		}
		secret = prompted
	}

	switch {
	case secret == "":
		return "", fmt.Errorf("SECRET_KEY is required")
	case secret == insecureSecretPlaceholder, secret == exampleSecretPlaceholder:
		return "", fmt.Errorf("SECRET_KEY must not use the example placeholder")
	case len(secret) < minSecretKeyLength:
		return "", fmt.Errorf("SECRET_KEY must be at least %d bytes", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := strings.TrimSpace(getEnv("PORT", "8080"))
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveDBPath() string {
	return getEnv("DB_PATH", filepath.Join("data", "datepick.db"))
}

// resolvePickerDefaults reads WEEK_START and DATE_ADAPTER, reporting every
// invalid value at once.
func resolvePickerDefaults(location *time.Location) (services.PickerDefaults, error) {
	errs := errors.M{}

	weekStart, err := calendar.ParseWeekStart(getEnv("WEEK_START", "sunday"))
	errs.Append(err)

	adapter, err := services.NormalizeDateAdapter(getEnv("DATE_ADAPTER", "time"))
	errs.Append(err)

	if err := errs.Err(); err != nil {
		return services.PickerDefaults{}, fmt.Errorf("invalid picker configuration: %w", err)
	}
	return services.PickerDefaults{
		WeekStart:   weekStart,
		Location:    location,
		Language:    strings.TrimSpace(os.Getenv("DEFAULT_LANGUAGE")),
		DateAdapter: adapter,
	}, nil
}

func resolveSessionMaxAge() (time.Duration, error) {
	raw := strings.TrimSpace(getEnv("SESSION_MAX_AGE", defaultSessionMaxAge.String()))
	maxAge, err := time.ParseDuration(raw)
	if err != nil || maxAge < 0 {
		return 0, fmt.Errorf("invalid SESSION_MAX_AGE %q", raw)
	}
	return maxAge, nil
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func parseBoolEnv(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
