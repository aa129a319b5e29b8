package tests

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/RedGhoul/Quitter/internal/records"
	"github.com/RedGhoul/Quitter/internal/types/notification"
	"github.com/RedGhoul/Quitter/internal/user"
	"github.com/RedGhoul/Quitter/services"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	if err := godotenv.Load("../.env"); err != nil {
		_ = godotenv.Load()
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping notification flow test")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	if err := services.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}
	if err := records.NewPostgresStore(db).EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to ensure record store schema: %v", err)
	}
	return db
}

func TestNotificationFlow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	userService := services.NewUserService(db, records.NewPostgresStore(db))
	svc := services.NewNotificationService(db)
	defer svc.Dispatcher().Stop()

	ctx := context.Background()

	clerkID := "user_test_notifflow_" + time.Now().Format("20060102150405")
	u, err := userService.CreateUser(ctx, &user.CreateUserRequest{
		ClerkID: clerkID,
		Email:   "test.notifflow@example.com",
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	defer db.Exec(ctx, "DELETE FROM users WHERE clerk_id = $1", clerkID)

	userID, err := svc.GetUserIDFromClerkID(ctx, clerkID)
	if err != nil {
		t.Fatalf("Failed to resolve user id: %v", err)
	}

	req := &notification.CreateNotificationRequest{
		UserID:   userID,
		Type:     notification.NotificationMilestoneReached,
		Priority: notification.PriorityHigh,
		Data: map[string]any{
			"milestone_title":       "One Week",
			"milestone_description": "A full week clean.",
			"addiction_title":       "Alcohol",
			"days_clean":            7,
		},
	}

	notif, err := svc.CreateNotification(ctx, req)
	if err != nil {
		t.Fatalf("Failed to create notification: %v", err)
	}
	if notif == nil {
		t.Fatal("Notification was unexpectedly muted by preferences")
	}
	t.Logf("Created notification %s for user %s", notif.ID, u.ID)

	if notif.Title != "Milestone reached: One Week" {
		t.Errorf("Template did not render title, got %q", notif.Title)
	}

	// The dispatcher delivers asynchronously; without a push provider the
	// in-app copy alone marks it sent.
	time.Sleep(1 * time.Second)

	var status notification.NotificationStatus
	err = db.QueryRow(ctx, "SELECT status FROM notifications WHERE id = $1", notif.ID).Scan(&status)
	if err != nil {
		t.Fatalf("Failed to query status: %v", err)
	}
	if status != notification.StatusSent {
		t.Errorf("Expected status 'sent', got '%s'", status)
	}

	if err := svc.MarkAsRead(ctx, notif.ID, clerkID); err != nil {
		t.Fatalf("Failed to mark as read: %v", err)
	}

	count, err := svc.GetUnreadCount(ctx, clerkID)
	if err != nil {
		t.Fatalf("Failed to get unread count: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected unread count 0, got %d", count)
	}
}
