package circulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"library-management/pkg/models"
)

func TestReserveStampsExpiration(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	book := createTestBook(t, db, "9780000000001")

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(db, at)

	reservation, err := svc.Reserve(user.UserUid, book.BookUid)
	assert.NoError(t, err)
	assert.Equal(t, at, reservation.ReservedAt)
	assert.Equal(t, at.AddDate(0, 0, 21), reservation.ExpirationAt)
	assert.False(t, reservation.IsConfirmed)
}

func TestReserveUnknownReferences(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	book := createTestBook(t, db, "9780000000001")

	svc, _ := newTestService(db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.Reserve("b3c8b29a-3c04-4d4b-b6e5-3f0dd4e0b7a1", book.BookUid)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Reserve(user.UserUid, "b3c8b29a-3c04-4d4b-b6e5-3f0dd4e0b7a1")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestConfirmReservationBlocksBook(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	book := createTestBook(t, db, "9780000000001")

	svc, clock := newTestService(db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	reservation, err := svc.Reserve(user.UserUid, book.BookUid)
	assert.NoError(t, err)

	clock.current = clock.current.AddDate(0, 0, 10)

	confirmed, err := svc.ConfirmReservation(reservation.ReservationUid)
	assert.NoError(t, err)
	assert.True(t, confirmed.IsConfirmed)

	var updatedBook models.Book
	db.First(&updatedBook, book.ID)
	assert.False(t, updatedBook.Available)
}

func TestConfirmReservationAfterExpiration(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	book := createTestBook(t, db, "9780000000001")

	// Reserved 2024-01-01, expires 2024-01-22; confirm attempted on the 23rd.
	svc, clock := newTestService(db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	reservation, err := svc.Reserve(user.UserUid, book.BookUid)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), reservation.ExpirationAt)

	clock.current = time.Date(2024, 1, 23, 0, 0, 0, 0, time.UTC)

	_, err = svc.ConfirmReservation(reservation.ReservationUid)
	assert.ErrorIs(t, err, ErrReservationExpired)

	var stored models.Reservation
	db.First(&stored, reservation.ID)
	assert.False(t, stored.IsConfirmed)
}

func TestConfirmReservationTwiceIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	book := createTestBook(t, db, "9780000000001")

	svc, _ := newTestService(db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	reservation, err := svc.Reserve(user.UserUid, book.BookUid)
	assert.NoError(t, err)

	first, err := svc.ConfirmReservation(reservation.ReservationUid)
	assert.NoError(t, err)

	second, err := svc.ConfirmReservation(reservation.ReservationUid)
	assert.NoError(t, err)
	assert.Equal(t, first.ReservationUid, second.ReservationUid)
	assert.True(t, second.IsConfirmed)
}

func TestConfirmReservationNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newTestService(db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.ConfirmReservation("b3c8b29a-3c04-4d4b-b6e5-3f0dd4e0b7a1")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelReservation(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	book := createTestBook(t, db, "9780000000001")

	svc, _ := newTestService(db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	reservation, err := svc.Reserve(user.UserUid, book.BookUid)
	assert.NoError(t, err)

	err = svc.CancelReservation(reservation.ReservationUid)
	assert.NoError(t, err)

	_, err = svc.GetReservation(reservation.ReservationUid)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	err = svc.CancelReservation(reservation.ReservationUid)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelConfirmedReservationRestoresAvailability(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	book := createTestBook(t, db, "9780000000001")

	svc, _ := newTestService(db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	reservation, err := svc.Reserve(user.UserUid, book.BookUid)
	assert.NoError(t, err)
	_, err = svc.ConfirmReservation(reservation.ReservationUid)
	assert.NoError(t, err)

	err = svc.CancelReservation(reservation.ReservationUid)
	assert.NoError(t, err)

	var updatedBook models.Book
	db.First(&updatedBook, book.ID)
	assert.True(t, updatedBook.Available)
}

func TestCancelConfirmedReservationKeepsBorrowedBookBlocked(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	book := createTestBook(t, db, "9780000000001")

	svc, _ := newTestService(db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	reservation, err := svc.Reserve(alice.UserUid, book.BookUid)
	assert.NoError(t, err)
	_, err = svc.ConfirmReservation(reservation.ReservationUid)
	assert.NoError(t, err)

	// Force an open borrow on the same book; cancelling the reservation
	// must not free it.
	db.Model(&models.Book{}).Where("id = ?", book.ID).Update("available", true)
	_, err = svc.BorrowBook(bob.UserUid, book.BookUid)
	assert.NoError(t, err)

	err = svc.CancelReservation(reservation.ReservationUid)
	assert.NoError(t, err)

	var updatedBook models.Book
	db.First(&updatedBook, book.ID)
	assert.False(t, updatedBook.Available)
}

func TestReservationQueries(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	bookOne := createTestBook(t, db, "9780000000001")
	bookTwo := createTestBook(t, db, "9780000000002")

	svc, _ := newTestService(db, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	reservation, err := svc.Reserve(alice.UserUid, bookOne.BookUid)
	assert.NoError(t, err)
	_, err = svc.Reserve(bob.UserUid, bookTwo.BookUid)
	assert.NoError(t, err)

	byID, err := svc.GetReservation(reservation.ReservationUid)
	assert.NoError(t, err)
	assert.Equal(t, alice.UserUid, byID.User.UserUid)

	all, err := svc.AllReservations()
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	byUser, err := svc.ReservationsByUser(bob.UserUid)
	assert.NoError(t, err)
	assert.Len(t, byUser, 1)

	byBook, err := svc.ReservationsByBook(bookOne.BookUid)
	assert.NoError(t, err)
	assert.Len(t, byBook, 1)
	assert.Equal(t, reservation.ReservationUid, byBook[0].ReservationUid)
}
