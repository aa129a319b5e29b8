package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/RedGhoul/Quitter/internal/addiction"
	"github.com/RedGhoul/Quitter/internal/progress"
	"github.com/RedGhoul/Quitter/internal/records"
	"github.com/RedGhoul/Quitter/internal/types/notification"

	"github.com/google/uuid"
)

// MilestoneNotifier is the slice of NotificationService the watcher needs.
type MilestoneNotifier interface {
	GetUserIDFromClerkID(ctx context.Context, clerkID string) (uuid.UUID, error)
	CreateNotification(ctx context.Context, req *notification.CreateNotificationRequest) (*notification.Notification, error)
}

// MilestoneWatcher periodically recomputes every user's progress from their
// stored quit dates and creates a notification for each milestone or badge
// tier they have newly reached. Markers in the record store keep the sweep
// idempotent: a threshold is announced at most once per quit date.
type MilestoneWatcher struct {
	store    records.Store
	notifier MilestoneNotifier
	catalog  []progress.Milestone
	interval time.Duration
	now      func() time.Time
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewMilestoneWatcher(store records.Store, notifier MilestoneNotifier, catalog []progress.Milestone) *MilestoneWatcher {
	return &MilestoneWatcher{
		store:    store,
		notifier: notifier,
		catalog:  catalog,
		interval: 15 * time.Minute,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
}

func (w *MilestoneWatcher) Start() {
	w.wg.Add(1)
	go w.run()
	log.Printf("MilestoneWatcher: started, sweeping every %s", w.interval)
}

func (w *MilestoneWatcher) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Sweep(context.Background())
		case <-w.stopChan:
			return
		}
	}
}

func (w *MilestoneWatcher) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	log.Println("MilestoneWatcher: stopped")
}

// Sweep runs one pass over all users with stored records.
func (w *MilestoneWatcher) Sweep(ctx context.Context) {
	users, err := w.store.Users(ctx)
	if err != nil {
		log.Printf("MilestoneWatcher: failed to list users: %v", err)
		return
	}

	for _, clerkID := range users {
		w.sweepUser(ctx, clerkID)
	}
}

func (w *MilestoneWatcher) sweepUser(ctx context.Context, clerkID string) {
	keys, err := w.store.Keys(ctx, clerkID, addiction.QuitDatePrefix)
	if err != nil {
		log.Printf("MilestoneWatcher: failed to list quit dates for %s: %v", clerkID, err)
		return
	}
	if len(keys) == 0 {
		return
	}

	userID, err := w.notifier.GetUserIDFromClerkID(ctx, clerkID)
	if err != nil {
		// records can outlive the user row briefly during account deletion
		return
	}

	titles := w.trackerTitles(ctx, clerkID)
	now := w.now()

	for _, key := range keys {
		addictionID := strings.TrimPrefix(key, addiction.QuitDatePrefix)

		raw, err := w.store.Get(ctx, clerkID, key)
		if err != nil {
			continue
		}
		quitDate, err := progress.ParseQuitDate(raw)
		if err != nil {
			// unparseable dates render as unset, nothing to announce
			continue
		}

		daysClean := progress.DaysClean(quitDate, now)
		if daysClean <= 0 {
			continue
		}

		title, ok := titles[addictionID]
		if !ok {
			title = addictionID
		}

		w.announceMilestones(ctx, clerkID, userID, addictionID, title, daysClean)
		w.announceTier(ctx, clerkID, userID, addictionID, title, daysClean)
	}
}

func (w *MilestoneWatcher) announceMilestones(ctx context.Context, clerkID string, userID uuid.UUID, addictionID, title string, daysClean int) {
	for _, st := range progress.Resolve(daysClean, w.catalog) {
		if !st.Completed {
			continue
		}

		markerKey := addiction.NotifiedMilestoneKey(addictionID, st.Milestone.DayThreshold)
		if _, err := w.store.Get(ctx, clerkID, markerKey); err == nil {
			continue
		} else if !errors.Is(err, records.ErrKeyNotFound) {
			log.Printf("MilestoneWatcher: failed to read marker %s for %s: %v", markerKey, clerkID, err)
			continue
		}

		_, err := w.notifier.CreateNotification(ctx, &notification.CreateNotificationRequest{
			UserID: userID,
			Type:   notification.NotificationMilestoneReached,
			Data: map[string]any{
				"addiction_id":          addictionID,
				"addiction_title":       title,
				"days_clean":            daysClean,
				"milestone_title":       st.Milestone.Title,
				"milestone_description": st.Milestone.Description,
				"day_threshold":         st.Milestone.DayThreshold,
			},
		})
		if err != nil {
			// marker stays unset so the next sweep retries
			log.Printf("MilestoneWatcher: failed to notify %s about day %d for %s: %v",
				clerkID, st.Milestone.DayThreshold, addictionID, err)
			continue
		}

		if err := w.store.Set(ctx, clerkID, markerKey, "1"); err != nil {
			log.Printf("MilestoneWatcher: failed to set marker %s for %s: %v", markerKey, clerkID, err)
		}
	}
}

func (w *MilestoneWatcher) announceTier(ctx context.Context, clerkID string, userID uuid.UUID, addictionID, title string, daysClean int) {
	tier := progress.ResolveTier(daysClean)
	if tier.Kind == progress.TierNone {
		return
	}

	markerKey := addiction.NotifiedTierKey(addictionID)
	var last progress.TierBadge
	if raw, err := w.store.Get(ctx, clerkID, markerKey); err == nil {
		last = decodeTierMarker(raw)
	} else if !errors.Is(err, records.ErrKeyNotFound) {
		log.Printf("MilestoneWatcher: failed to read tier marker for %s: %v", clerkID, err)
		return
	}

	if !tier.Outranks(last) {
		return
	}

	_, err := w.notifier.CreateNotification(ctx, &notification.CreateNotificationRequest{
		UserID: userID,
		Type:   notification.NotificationTierAdvanced,
		Data: map[string]any{
			"addiction_id":    addictionID,
			"addiction_title": title,
			"days_clean":      daysClean,
			"tier_label":      tier.Label(),
			"tier_kind":       string(tier.Kind),
			"tier_count":      tier.Count,
		},
	})
	if err != nil {
		log.Printf("MilestoneWatcher: failed to notify %s about %s tier for %s: %v",
			clerkID, tier.Kind, addictionID, err)
		return
	}

	if err := w.store.Set(ctx, clerkID, markerKey, encodeTierMarker(tier)); err != nil {
		log.Printf("MilestoneWatcher: failed to set tier marker for %s: %v", clerkID, err)
	}
}

// trackerTitles maps every known tracker id to its display title. Unknown
// ids (a quit date whose custom tracker was since deleted) fall back to the
// raw id at the call site.
func (w *MilestoneWatcher) trackerTitles(ctx context.Context, clerkID string) map[string]string {
	titles := make(map[string]string)
	for _, b := range addiction.BuiltIn() {
		titles[b.ID] = b.Title
	}

	raw, err := w.store.Get(ctx, clerkID, addiction.CustomListKey)
	if err != nil {
		return titles
	}
	customs, err := addiction.DecodeCustomList(raw)
	if err != nil {
		return titles
	}
	for _, c := range customs {
		titles[c.ID] = c.Title
	}
	return titles
}

func encodeTierMarker(b progress.TierBadge) string {
	return string(b.Kind) + "/" + strconv.Itoa(b.Count)
}

func decodeTierMarker(raw string) progress.TierBadge {
	kind, countStr, ok := strings.Cut(raw, "/")
	if !ok {
		return progress.TierBadge{Kind: progress.TierNone}
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return progress.TierBadge{Kind: progress.TierNone}
	}
	return progress.TierBadge{Kind: progress.TierKind(kind), Count: count}
}
