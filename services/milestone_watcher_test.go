package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/RedGhoul/Quitter/internal/addiction"
	"github.com/RedGhoul/Quitter/internal/progress"
	"github.com/RedGhoul/Quitter/internal/records"
	"github.com/RedGhoul/Quitter/internal/types/notification"

	"github.com/google/uuid"
)

var watcherTestNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeNotifier struct {
	mu      sync.Mutex
	created []*notification.CreateNotificationRequest
	failing bool
	muted   bool
	userIDs map[string]uuid.UUID
}

func (f *fakeNotifier) GetUserIDFromClerkID(ctx context.Context, clerkID string) (uuid.UUID, error) {
	if id, ok := f.userIDs[clerkID]; ok {
		return id, nil
	}
	return uuid.Nil, fmt.Errorf("user not found")
}

func (f *fakeNotifier) CreateNotification(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, fmt.Errorf("rate limit exceeded")
	}
	if f.muted {
		// mirrors the service skipping a type the user disabled
		return nil, nil
	}
	f.created = append(f.created, req)
	return &notification.Notification{ID: uuid.New(), UserID: req.UserID, Type: req.Type}, nil
}

func (f *fakeNotifier) byType(t notification.NotificationType) []*notification.CreateNotificationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*notification.CreateNotificationRequest
	for _, req := range f.created {
		if req.Type == t {
			out = append(out, req)
		}
	}
	return out
}

func watcherTestCatalog() []progress.Milestone {
	return []progress.Milestone{
		{DayThreshold: 1, Title: "Day One", Description: "The first day is the hardest."},
		{DayThreshold: 7, Title: "One Week", Description: "A full week behind you."},
		{DayThreshold: 30, Title: "One Month", Description: "Thirty days of progress."},
	}
}

func newTestWatcher(t *testing.T) (*MilestoneWatcher, *records.MemoryStore, *fakeNotifier) {
	t.Helper()
	store := records.NewMemoryStore()
	notifier := &fakeNotifier{userIDs: map[string]uuid.UUID{
		"clerk_watcher": uuid.New(),
	}}
	w := NewMilestoneWatcher(store, notifier, watcherTestCatalog())
	w.now = func() time.Time { return watcherTestNow }
	return w, store, notifier
}

func setQuitDaysAgo(t *testing.T, store records.Store, clerkID, addictionID string, days int) {
	t.Helper()
	raw := watcherTestNow.Add(-time.Duration(days) * 24 * time.Hour).Format(time.RFC3339)
	if err := store.Set(context.Background(), clerkID, addiction.QuitDateKey(addictionID), raw); err != nil {
		t.Fatalf("failed to seed quit date: %v", err)
	}
}

func TestSweepNotifiesNewMilestonesAndTier(t *testing.T) {
	w, store, notifier := newTestWatcher(t)
	ctx := context.Background()

	// quit 8 full days ago puts the user on day 9
	setQuitDaysAgo(t, store, "clerk_watcher", "alcohol", 8)

	w.Sweep(ctx)

	milestones := notifier.byType(notification.NotificationMilestoneReached)
	if len(milestones) != 2 {
		t.Fatalf("expected 2 milestone notifications, got %d", len(milestones))
	}
	for _, req := range milestones {
		if req.Data["addiction_title"] != "Alcohol" {
			t.Errorf("expected addiction_title Alcohol, got %v", req.Data["addiction_title"])
		}
		if req.Data["days_clean"] != 9 {
			t.Errorf("expected days_clean 9, got %v", req.Data["days_clean"])
		}
	}

	tiers := notifier.byType(notification.NotificationTierAdvanced)
	if len(tiers) != 1 {
		t.Fatalf("expected 1 tier notification, got %d", len(tiers))
	}
	if tiers[0].Data["tier_kind"] != "week" {
		t.Errorf("expected tier_kind week, got %v", tiers[0].Data["tier_kind"])
	}

	for _, threshold := range []int{1, 7} {
		key := addiction.NotifiedMilestoneKey("alcohol", threshold)
		if _, err := store.Get(ctx, "clerk_watcher", key); err != nil {
			t.Errorf("expected marker %s to be set: %v", key, err)
		}
	}
	tierMarker, err := store.Get(ctx, "clerk_watcher", addiction.NotifiedTierKey("alcohol"))
	if err != nil {
		t.Fatalf("expected tier marker to be set: %v", err)
	}
	if tierMarker != "week/1" {
		t.Errorf("expected tier marker week/1, got %q", tierMarker)
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	w, store, notifier := newTestWatcher(t)
	ctx := context.Background()

	setQuitDaysAgo(t, store, "clerk_watcher", "smoking", 8)

	w.Sweep(ctx)
	first := len(notifier.created)
	if first == 0 {
		t.Fatal("expected the first sweep to create notifications")
	}

	w.Sweep(ctx)
	if len(notifier.created) != first {
		t.Errorf("expected repeat sweep to create nothing, got %d new", len(notifier.created)-first)
	}
}

func TestSweepAdvancesThroughTime(t *testing.T) {
	w, store, notifier := newTestWatcher(t)
	ctx := context.Background()

	setQuitDaysAgo(t, store, "clerk_watcher", "alcohol", 8)
	w.Sweep(ctx)
	if len(notifier.byType(notification.NotificationTierAdvanced)) != 1 {
		t.Fatal("expected week tier after the first sweep")
	}

	// three weeks later the user crosses day 30 and the month tier
	w.now = func() time.Time { return watcherTestNow.Add(22 * 24 * time.Hour) }
	w.Sweep(ctx)

	milestones := notifier.byType(notification.NotificationMilestoneReached)
	if len(milestones) != 3 {
		t.Fatalf("expected 3 milestone notifications total, got %d", len(milestones))
	}
	last := milestones[len(milestones)-1]
	if last.Data["day_threshold"] != 30 {
		t.Errorf("expected the new milestone to be day 30, got %v", last.Data["day_threshold"])
	}

	tiers := notifier.byType(notification.NotificationTierAdvanced)
	if len(tiers) != 2 {
		t.Fatalf("expected 2 tier notifications, got %d", len(tiers))
	}
	if tiers[1].Data["tier_kind"] != "month" {
		t.Errorf("expected tier_kind month, got %v", tiers[1].Data["tier_kind"])
	}

	tierMarker, _ := store.Get(ctx, "clerk_watcher", addiction.NotifiedTierKey("alcohol"))
	if tierMarker != "month/1" {
		t.Errorf("expected tier marker month/1, got %q", tierMarker)
	}
}

func TestSweepSkipsUnstartedAndUnparseable(t *testing.T) {
	w, store, notifier := newTestWatcher(t)
	ctx := context.Background()

	if err := store.Set(ctx, "clerk_watcher", addiction.QuitDateKey("alcohol"), "not-a-date"); err != nil {
		t.Fatal(err)
	}
	future := watcherTestNow.Add(48 * time.Hour).Format(time.RFC3339)
	if err := store.Set(ctx, "clerk_watcher", addiction.QuitDateKey("smoking"), future); err != nil {
		t.Fatal(err)
	}

	w.Sweep(ctx)

	if len(notifier.created) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifier.created))
	}
}

func TestSweepSkipsUsersWithoutAccount(t *testing.T) {
	w, store, notifier := newTestWatcher(t)
	ctx := context.Background()

	setQuitDaysAgo(t, store, "clerk_deleted", "alcohol", 8)

	w.Sweep(ctx)

	if len(notifier.created) != 0 {
		t.Errorf("expected no notifications for unknown user, got %d", len(notifier.created))
	}
	if _, err := store.Get(ctx, "clerk_deleted", addiction.NotifiedMilestoneKey("alcohol", 1)); err == nil {
		t.Error("expected no marker for unknown user")
	}
}

func TestSweepRetriesAfterNotifierFailure(t *testing.T) {
	w, store, notifier := newTestWatcher(t)
	ctx := context.Background()

	setQuitDaysAgo(t, store, "clerk_watcher", "alcohol", 0)

	notifier.failing = true
	w.Sweep(ctx)
	if len(notifier.created) != 0 {
		t.Fatalf("expected no notifications while failing, got %d", len(notifier.created))
	}
	if _, err := store.Get(ctx, "clerk_watcher", addiction.NotifiedMilestoneKey("alcohol", 1)); err == nil {
		t.Fatal("expected no marker after a failed create")
	}

	notifier.failing = false
	w.Sweep(ctx)
	if len(notifier.byType(notification.NotificationMilestoneReached)) != 1 {
		t.Fatalf("expected the retry sweep to notify day 1, got %d", len(notifier.created))
	}
}

func TestSweepMarksMutedNotificationsAsSeen(t *testing.T) {
	w, store, notifier := newTestWatcher(t)
	ctx := context.Background()

	setQuitDaysAgo(t, store, "clerk_watcher", "alcohol", 0)

	notifier.muted = true
	w.Sweep(ctx)

	if len(notifier.created) != 0 {
		t.Fatalf("expected no notifications while muted, got %d", len(notifier.created))
	}
	// a muted user opted out; the marker still advances so nothing piles up
	if _, err := store.Get(ctx, "clerk_watcher", addiction.NotifiedMilestoneKey("alcohol", 1)); err != nil {
		t.Errorf("expected marker despite muted notifications: %v", err)
	}
}

func TestSweepUsesCustomTrackerTitles(t *testing.T) {
	w, store, notifier := newTestWatcher(t)
	ctx := context.Background()

	customs := []addiction.QuitRecord{{ID: "caffeine-1", Title: "Caffeine"}}
	encoded, err := addiction.EncodeCustomList(customs)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, "clerk_watcher", addiction.CustomListKey, encoded); err != nil {
		t.Fatal(err)
	}
	setQuitDaysAgo(t, store, "clerk_watcher", "caffeine-1", 1)
	setQuitDaysAgo(t, store, "clerk_watcher", "orphaned-id", 1)

	w.Sweep(ctx)

	milestones := notifier.byType(notification.NotificationMilestoneReached)
	if len(milestones) != 2 {
		t.Fatalf("expected 2 milestone notifications, got %d", len(milestones))
	}
	titles := map[any]bool{}
	for _, req := range milestones {
		titles[req.Data["addiction_title"]] = true
	}
	if !titles["Caffeine"] {
		t.Error("expected custom tracker title Caffeine")
	}
	if !titles["orphaned-id"] {
		t.Error("expected orphaned quit key to fall back to its id")
	}
}
