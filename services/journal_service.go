package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RedGhoul/Quitter/internal/journal"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JournalService struct {
	db *pgxpool.Pool
}

func NewJournalService(db *pgxpool.Pool) *JournalService {
	return &JournalService{db: db}
}

func (s *JournalService) resolveUserID(ctx context.Context, clerkID string) (string, error) {
	var userID string
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("user not found")
		}
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}
	return userID, nil
}

func (s *JournalService) CreateEntry(ctx context.Context, clerkID string, req *journal.CreateEntryRequest) (*journal.JournalEntry, error) {
	userID, err := s.resolveUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	INSERT INTO journal_entries (id, user_id, title, body, mood, craving_level)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, user_id, title, body, mood, craving_level, created_at, updated_at
	`

	entry := &journal.JournalEntry{}
	err = s.db.QueryRow(ctx, query,
		uuid.New(), userID, req.Title, req.Body, req.Mood, req.CravingLevel,
	).Scan(
		&entry.ID, &entry.UserID, &entry.Title, &entry.Body,
		&entry.Mood, &entry.CravingLevel, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	return entry, nil
}

func (s *JournalService) GetEntries(ctx context.Context, clerkID string, page, pageSize int) (*journal.EntryListResponse, error) {
	userID, err := s.resolveUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	query := `
	SELECT id, user_id, title, body, mood, craving_level, created_at, updated_at
	FROM journal_entries
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`

	rows, err := s.db.Query(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*journal.JournalEntry
	for rows.Next() {
		entry := &journal.JournalEntry{}
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.Title, &entry.Body,
			&entry.Mood, &entry.CravingLevel, &entry.CreatedAt, &entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, entry)
	}

	var totalCount int
	s.db.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE user_id = $1`, userID).Scan(&totalCount)

	return &journal.EntryListResponse{
		Entries:    entries,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *JournalService) GetEntry(ctx context.Context, clerkID string, entryID uuid.UUID) (*journal.JournalEntry, error) {
	userID, err := s.resolveUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, user_id, title, body, mood, craving_level, created_at, updated_at
	FROM journal_entries
	WHERE id = $1 AND user_id = $2
	`

	entry := &journal.JournalEntry{}
	err = s.db.QueryRow(ctx, query, entryID, userID).Scan(
		&entry.ID, &entry.UserID, &entry.Title, &entry.Body,
		&entry.Mood, &entry.CravingLevel, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journal entry not found")
		}
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	return entry, nil
}

func (s *JournalService) UpdateEntry(ctx context.Context, clerkID string, entryID uuid.UUID, req *journal.UpdateEntryRequest) (*journal.JournalEntry, error) {
	userID, err := s.resolveUserID(ctx, clerkID)
	if err != nil {
		return nil, err
	}

	updates := []string{}
	args := []interface{}{entryID, userID}
	argCount := 3

	if req.Title != nil {
		updates = append(updates, fmt.Sprintf("title = $%d", argCount))
		args = append(args, *req.Title)
		argCount++
	}
	if req.Body != nil {
		updates = append(updates, fmt.Sprintf("body = $%d", argCount))
		args = append(args, *req.Body)
		argCount++
	}
	if req.Mood != nil {
		updates = append(updates, fmt.Sprintf("mood = $%d", argCount))
		args = append(args, *req.Mood)
		argCount++
	}
	if req.CravingLevel != nil {
		updates = append(updates, fmt.Sprintf("craving_level = $%d", argCount))
		args = append(args, *req.CravingLevel)
		argCount++
	}

	if len(updates) == 0 {
		return s.GetEntry(ctx, clerkID, entryID)
	}

	query := fmt.Sprintf(`
	UPDATE journal_entries
	SET %s, updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING id, user_id, title, body, mood, craving_level, created_at, updated_at
	`, strings.Join(updates, ", "))

	entry := &journal.JournalEntry{}
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&entry.ID, &entry.UserID, &entry.Title, &entry.Body,
		&entry.Mood, &entry.CravingLevel, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("journal entry not found")
		}
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	return entry, nil
}

func (s *JournalService) DeleteEntry(ctx context.Context, clerkID string, entryID uuid.UUID) error {
	userID, err := s.resolveUserID(ctx, clerkID)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1 AND user_id = $2`, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("journal entry not found")
	}
	return nil
}
