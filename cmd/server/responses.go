package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-management/pkg/catalog"
	"library-management/pkg/circulation"
	"library-management/pkg/models"
)

const dateFormat = time.RFC3339

// writeError maps core errors onto the transport taxonomy: missing
// records are 404, policy violations 400 or 409, conflicts 409.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, circulation.ErrUserNotFound),
		errors.Is(err, circulation.ErrBookNotFound),
		errors.Is(err, circulation.ErrBorrowNotFound),
		errors.Is(err, circulation.ErrReservationNotFound),
		errors.Is(err, circulation.ErrFineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, circulation.ErrNoFineApplicable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, circulation.ErrBookUnavailable),
		errors.Is(err, circulation.ErrAlreadyReturned),
		errors.Is(err, circulation.ErrReservationExpired),
		errors.Is(err, catalog.ErrDuplicateIsbn),
		errors.Is(err, catalog.ErrDuplicateUser):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func userResponse(user *models.User) gin.H {
	return gin.H{
		"userUid":  user.UserUid,
		"username": user.Username,
		"email":    user.Email,
	}
}

func bookResponse(book *models.Book) gin.H {
	return gin.H{
		"bookUid":   book.BookUid,
		"title":     book.Title,
		"author":    book.Author,
		"isbn":      book.Isbn,
		"category":  book.Category,
		"available": book.Available,
	}
}

func borrowResponse(borrow *models.Borrow) gin.H {
	item := gin.H{
		"borrowUid":  borrow.BorrowUid,
		"borrowedAt": borrow.BorrowedAt.Format(dateFormat),
		"dueDate":    borrow.DueDate.Format(dateFormat),
		"isReturned": borrow.IsReturned,
	}
	if borrow.ReturnedAt != nil {
		item["returnedAt"] = borrow.ReturnedAt.Format(dateFormat)
	}
	if borrow.User.UserUid != "" {
		item["userUid"] = borrow.User.UserUid
	}
	if borrow.Book.BookUid != "" {
		item["bookUid"] = borrow.Book.BookUid
	}
	return item
}

func reservationResponse(reservation *models.Reservation) gin.H {
	item := gin.H{
		"reservationUid": reservation.ReservationUid,
		"reservedAt":     reservation.ReservedAt.Format(dateFormat),
		"expirationAt":   reservation.ExpirationAt.Format(dateFormat),
		"isConfirmed":    reservation.IsConfirmed,
	}
	if reservation.User.UserUid != "" {
		item["userUid"] = reservation.User.UserUid
	}
	if reservation.Book.BookUid != "" {
		item["bookUid"] = reservation.Book.BookUid
	}
	return item
}

func fineResponse(fine *models.Fine) gin.H {
	item := gin.H{
		"fineUid":   fine.FineUid,
		"amount":    fine.Amount,
		"dueDate":   fine.DueDate.Format(dateFormat),
		"paid":      fine.Paid,
		"createdAt": fine.CreatedAt.Format(dateFormat),
	}
	if fine.Borrow.BorrowUid != "" {
		item["borrowUid"] = fine.Borrow.BorrowUid
	}
	return item
}
