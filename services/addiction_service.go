package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/RedGhoul/Quitter/internal/addiction"
	"github.com/RedGhoul/Quitter/internal/progress"
	"github.com/RedGhoul/Quitter/internal/records"

	"github.com/google/uuid"
)

// maxQuitDateSlack is how far ahead of "now" a quit date may sit. Clients in
// other timezones legitimately send dates a few hours ahead; anything beyond
// a day is a typo.
const maxQuitDateSlack = 24 * time.Hour

type AddictionService struct {
	store   records.Store
	catalog []progress.Milestone
	now     func() time.Time
}

func NewAddictionService(store records.Store, catalog []progress.Milestone) *AddictionService {
	return &AddictionService{
		store:   store,
		catalog: catalog,
		now:     time.Now,
	}
}

// Catalog returns the milestone catalog the service resolves against.
func (s *AddictionService) Catalog() []progress.Milestone {
	out := make([]progress.Milestone, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// List returns every tracker the user has: the built-in categories first,
// then custom ones, each with its derived progress fields.
func (s *AddictionService) List(ctx context.Context, clerkID string) ([]addiction.TrackerView, error) {
	custom, err := s.loadCustomList(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	views := make([]addiction.TrackerView, 0, len(custom)+8)
	for _, rec := range addiction.BuiltIn() {
		views = append(views, s.buildView(ctx, clerkID, rec, true))
	}
	for _, rec := range custom {
		views = append(views, s.buildView(ctx, clerkID, rec, false))
	}
	return views, nil
}

// GetProgress returns one tracker with its full milestone timeline.
func (s *AddictionService) GetProgress(ctx context.Context, clerkID, addictionID string) (*addiction.ProgressView, error) {
	rec, builtIn, err := s.findTracker(ctx, clerkID, addictionID)
	if err != nil {
		return nil, err
	}

	view := s.buildView(ctx, clerkID, rec, builtIn)

	var statuses []progress.MilestoneStatus
	if view.Started {
		statuses = progress.Resolve(view.DaysClean, s.catalog)
	} else {
		statuses = progress.ResolveUnset(s.catalog)
	}

	return &addiction.ProgressView{
		TrackerView: view,
		Milestones:  statuses,
	}, nil
}

// CreateCustom adds a user-defined tracker to the custom list.
func (s *AddictionService) CreateCustom(ctx context.Context, clerkID, title string) (*addiction.QuitRecord, error) {
	custom, err := s.loadCustomList(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	rec := addiction.QuitRecord{
		ID:    uuid.New().String(),
		Title: title,
	}
	custom = append(custom, rec)

	if err := s.saveCustomList(ctx, clerkID, custom); err != nil {
		return nil, err
	}

	log.Printf("AddictionService: user %s created custom tracker %s (%q)", clerkID, rec.ID, title)
	return &rec, nil
}

// Rename changes a custom tracker's title. Built-in categories keep their
// fixed names.
func (s *AddictionService) Rename(ctx context.Context, clerkID, addictionID, title string) (*addiction.QuitRecord, error) {
	if addiction.IsBuiltIn(addictionID) {
		return nil, fmt.Errorf("built-in trackers cannot be renamed")
	}

	custom, err := s.loadCustomList(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	for i := range custom {
		if custom[i].ID == addictionID {
			custom[i].Title = title
			if err := s.saveCustomList(ctx, clerkID, custom); err != nil {
				return nil, err
			}
			return &custom[i], nil
		}
	}
	return nil, fmt.Errorf("tracker not found")
}

// DeleteCustom removes a custom tracker together with its quit date and
// notified-milestone markers.
func (s *AddictionService) DeleteCustom(ctx context.Context, clerkID, addictionID string) error {
	if addiction.IsBuiltIn(addictionID) {
		return fmt.Errorf("built-in trackers cannot be deleted")
	}

	custom, err := s.loadCustomList(ctx, clerkID)
	if err != nil {
		return err
	}

	found := false
	kept := custom[:0]
	for _, rec := range custom {
		if rec.ID == addictionID {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		return fmt.Errorf("tracker not found")
	}

	if err := s.saveCustomList(ctx, clerkID, kept); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, clerkID, addiction.QuitDateKey(addictionID)); err != nil {
		return err
	}
	return s.clearNotifiedMarkers(ctx, clerkID, addictionID)
}

// SetQuitDate stores a new quit date for a tracker, replacing any previous
// one. Replacing resets the streak, so notified-milestone markers are
// cleared and every milestone can fire again.
func (s *AddictionService) SetQuitDate(ctx context.Context, clerkID, addictionID, raw string) (*addiction.TrackerView, error) {
	rec, builtIn, err := s.findTracker(ctx, clerkID, addictionID)
	if err != nil {
		return nil, err
	}

	quitDate, err := progress.ParseQuitDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid quit date: %w", err)
	}
	if quitDate.After(s.now().Add(maxQuitDateSlack)) {
		return nil, fmt.Errorf("quit date cannot be in the future")
	}

	if err := s.store.Set(ctx, clerkID, addiction.QuitDateKey(addictionID), raw); err != nil {
		return nil, err
	}
	if err := s.clearNotifiedMarkers(ctx, clerkID, addictionID); err != nil {
		return nil, err
	}

	log.Printf("AddictionService: user %s set quit date for %s", clerkID, addictionID)
	view := s.buildView(ctx, clerkID, rec, builtIn)
	return &view, nil
}

// ClearQuitDate puts a tracker back into the "not started" state.
func (s *AddictionService) ClearQuitDate(ctx context.Context, clerkID, addictionID string) error {
	if _, _, err := s.findTracker(ctx, clerkID, addictionID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, clerkID, addiction.QuitDateKey(addictionID)); err != nil {
		return err
	}
	return s.clearNotifiedMarkers(ctx, clerkID, addictionID)
}

func (s *AddictionService) loadCustomList(ctx context.Context, clerkID string) ([]addiction.QuitRecord, error) {
	raw, err := s.store.Get(ctx, clerkID, addiction.CustomListKey)
	if err == records.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	custom, err := addiction.DecodeCustomList(raw)
	if err != nil {
		// A corrupt list is unrecoverable from the client's side; render it
		// empty instead of failing every addiction endpoint.
		log.Printf("AddictionService: user %s has a corrupt custom list, treating as empty: %v", clerkID, err)
		return nil, nil
	}
	return custom, nil
}

func (s *AddictionService) saveCustomList(ctx context.Context, clerkID string, custom []addiction.QuitRecord) error {
	encoded, err := addiction.EncodeCustomList(custom)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, clerkID, addiction.CustomListKey, encoded)
}

func (s *AddictionService) findTracker(ctx context.Context, clerkID, addictionID string) (addiction.QuitRecord, bool, error) {
	for _, rec := range addiction.BuiltIn() {
		if rec.ID == addictionID {
			return rec, true, nil
		}
	}

	custom, err := s.loadCustomList(ctx, clerkID)
	if err != nil {
		return addiction.QuitRecord{}, false, err
	}
	for _, rec := range custom {
		if rec.ID == addictionID {
			return rec, false, nil
		}
	}
	return addiction.QuitRecord{}, false, fmt.Errorf("tracker not found")
}

// buildView assembles the derived fields for one tracker. Unparseable or
// future quit dates render as "not started"; the raw value stays in the
// store untouched so the user can correct it by setting a new date.
func (s *AddictionService) buildView(ctx context.Context, clerkID string, rec addiction.QuitRecord, builtIn bool) addiction.TrackerView {
	view := addiction.TrackerView{
		QuitRecord: rec,
		BuiltIn:    builtIn,
		Tier:       progress.ResolveTier(0),
	}

	raw, err := s.store.Get(ctx, clerkID, addiction.QuitDateKey(rec.ID))
	if err == records.ErrKeyNotFound {
		// legacy lists carried the quit date inline
		if rec.QuitDate == nil {
			return view
		}
		raw = *rec.QuitDate
	} else if err != nil {
		log.Printf("AddictionService: failed to read quit date for user %s tracker %s: %v", clerkID, rec.ID, err)
		view.QuitDate = nil
		return view
	}

	view.QuitDate = &raw

	quitDate, err := progress.ParseQuitDate(raw)
	if err != nil {
		log.Printf("AddictionService: user %s tracker %s has unparseable quit date %q, rendering as not started", clerkID, rec.ID, raw)
		view.QuitDate = nil
		return view
	}

	daysClean := progress.DaysClean(quitDate, s.now())
	if daysClean <= 0 {
		return view
	}

	view.Started = true
	view.DaysClean = daysClean
	view.Tier = progress.ResolveTier(daysClean)

	statuses := progress.Resolve(daysClean, s.catalog)
	view.NextMilestone = progress.NextMilestone(statuses)
	view.Progress = progress.Fraction(statuses)
	return view
}

func (s *AddictionService) clearNotifiedMarkers(ctx context.Context, clerkID, addictionID string) error {
	keys, err := s.store.Keys(ctx, clerkID, addiction.NotifiedPrefix+addictionID+"/")
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.store.Delete(ctx, clerkID, key); err != nil {
			return err
		}
	}
	return nil
}
