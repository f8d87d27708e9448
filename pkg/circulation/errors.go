package circulation

import "errors"

// Typed errors returned by the circulation engine. The HTTP layer maps
// them to status codes; the engine itself never formats responses.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrBookNotFound        = errors.New("book not found")
	ErrBorrowNotFound      = errors.New("borrow record not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrFineNotFound        = errors.New("fine not found")

	// ErrBookUnavailable: the book already has an open borrow or is
	// blocked by a confirmed reservation.
	ErrBookUnavailable = errors.New("book is not available")

	// ErrAlreadyReturned: return was called on a closed borrow. The
	// returnedAt stamp is written exactly once.
	ErrAlreadyReturned = errors.New("borrow already returned")

	// ErrReservationExpired: confirm was attempted after expirationAt.
	ErrReservationExpired = errors.New("reservation has expired")

	// ErrNoFineApplicable: the borrow is not overdue, so no fine record
	// may be created.
	ErrNoFineApplicable = errors.New("no fine applicable: borrow is not overdue")
)
