package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/datepick/internal/db"
	"github.com/terraincognita07/datepick/internal/services"
)

func RunPurgeSessionsCommand(dbPath string, olderThan time.Duration, out io.Writer) error {
	if olderThan <= 0 {
		return errors.New("--older-than must be positive")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	repositories := db.NewRepositories(database)
	service := services.NewPickerService(repositories.Sessions, nil, services.PickerDefaults{})
	deleted, err := service.PurgeOlderThan(olderThan)
	if err != nil {
		return fmt.Errorf("purge picker sessions: %w", err)
	}

	remaining, err := repositories.Sessions.Count()
	if err != nil {
		return fmt.Errorf("count picker sessions: %w", err)
	}

	fmt.Fprintf(out, "✅ Purged %d picker sessions idle for more than %s\n", deleted, olderThan)
	fmt.Fprintf(out, "%d sessions remain.\n", remaining)
	return nil
}
