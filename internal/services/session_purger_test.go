package services

import (
	"context"
	"testing"
	"time"

	"github.com/terraincognita07/datepick/internal/models"
)

func TestSessionPurgerRunDeletesIdleSessions(t *testing.T) {
	service, repo := newPickerServiceForTest(t)
	repo.sessions["old"] = models.PickerSession{ID: "old", UpdatedAt: serviceTestNow.Add(-48 * time.Hour)}
	repo.sessions["new"] = models.PickerSession{ID: "new", UpdatedAt: serviceTestNow.Add(-time.Hour)}

	purger := NewSessionPurger(service, 24*time.Hour, 0)
	if purger.interval != time.Hour {
		t.Fatalf("expected default interval of one hour, got %s", purger.interval)
	}
	if deleted := purger.run(); deleted != 1 {
		t.Fatalf("expected 1 purged session, got %d", deleted)
	}
	if _, ok := repo.sessions["new"]; !ok {
		t.Fatal("expected recent session to survive")
	}
	if !repo.deletedAt.Equal(serviceTestNow.Add(-24 * time.Hour)) {
		t.Fatalf("unexpected cutoff %s", repo.deletedAt)
	}
}

func TestSessionPurgerDisabledWithoutMaxAge(t *testing.T) {
	service, repo := newPickerServiceForTest(t)
	repo.sessions["old"] = models.PickerSession{ID: "old", UpdatedAt: serviceTestNow.Add(-48 * time.Hour)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	NewSessionPurger(service, 0, time.Millisecond).Start(ctx)

	if _, ok := repo.sessions["old"]; !ok {
		t.Fatal("expected disabled purger to leave sessions alone")
	}
}
