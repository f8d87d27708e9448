package circulation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"library-management/pkg/database"
	"library-management/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		UserUid:  uuid.New().String(),
		Username: username,
		Email:    username + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestBook(t *testing.T, db *gorm.DB, isbn string) models.Book {
	t.Helper()
	book := models.Book{
		BookUid:   uuid.New().String(),
		Title:     "Test Book",
		Author:    "Test Author",
		Isbn:      isbn,
		Category:  "Fiction",
		Available: true,
	}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to create test book: %v", err)
	}
	return book
}

// fixedClock pins the service clock to a settable instant.
type fixedClock struct {
	current time.Time
}

func (c *fixedClock) now() time.Time {
	return c.current
}

func newTestService(db *gorm.DB, at time.Time) (*Service, *fixedClock) {
	clock := &fixedClock{current: at}
	return NewServiceWithClock(db, clock.now), clock
}
