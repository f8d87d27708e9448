package circulation

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"library-management/pkg/models"
)

// BorrowBook opens a borrow for the given user and book. The borrow and
// due timestamps are stamped from the service clock, never from the
// caller. The book must be available; a successful borrow marks it
// unavailable. Fails with ErrUserNotFound, ErrBookNotFound or
// ErrBookUnavailable.
func (s *Service) BorrowBook(userUid, bookUid string) (*models.Borrow, error) {
	now := s.now()
	var borrow models.Borrow

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("user_uid = ?", userUid).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var book models.Book
		if err := tx.Where("book_uid = ?", bookUid).First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		if !book.Available {
			return ErrBookUnavailable
		}

		var open int64
		if err := tx.Model(&models.Borrow{}).
			Where("book_id = ? AND is_returned = ?", book.ID, false).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrBookUnavailable
		}

		borrow = models.Borrow{
			BorrowUid:  uuid.New().String(),
			UserID:     user.ID,
			BookID:     book.ID,
			BorrowedAt: now,
			DueDate:    now.AddDate(0, 0, LoanPeriodDays),
			IsReturned: false,
			ReturnedAt: nil,
		}
		if err := tx.Create(&borrow).Error; err != nil {
			// The partial unique index on open borrows catches the
			// race the count check cannot.
			return ErrBookUnavailable
		}

		return setAvailability(tx, book.ID, false)
	})
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

// ReturnBook closes an open borrow, stamping returnedAt once and
// restoring the book's availability. A second return is an explicit
// conflict, not a silent overwrite.
func (s *Service) ReturnBook(borrowUid string) (*models.Borrow, error) {
	now := s.now()
	var borrow models.Borrow

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("borrow_uid = ?", borrowUid).First(&borrow).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBorrowNotFound
			}
			return err
		}

		if borrow.IsReturned {
			return ErrAlreadyReturned
		}

		borrow.IsReturned = true
		borrow.ReturnedAt = &now
		if err := tx.Save(&borrow).Error; err != nil {
			return err
		}

		// A confirmed, unexpired reservation keeps the book blocked
		// after the return.
		var blocking int64
		if err := tx.Model(&models.Reservation{}).
			Where("book_id = ? AND is_confirmed = ? AND expiration_at > ?", borrow.BookID, true, now).
			Count(&blocking).Error; err != nil {
			return err
		}
		if blocking > 0 {
			return nil
		}

		return setAvailability(tx, borrow.BookID, true)
	})
	if err != nil {
		return nil, err
	}
	return &borrow, nil
}

func (s *Service) GetBorrow(borrowUid string) (*models.Borrow, error) {
	var borrow models.Borrow
	err := s.db.Preload("User").Preload("Book").
		Where("borrow_uid = ?", borrowUid).First(&borrow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBorrowNotFound
		}
		return nil, err
	}
	return &borrow, nil
}

func (s *Service) AllBorrows() ([]models.Borrow, error) {
	var borrows []models.Borrow
	err := s.db.Preload("User").Preload("Book").Find(&borrows).Error
	return borrows, err
}

func (s *Service) BorrowsByUser(userUid string) ([]models.Borrow, error) {
	var borrows []models.Borrow
	err := s.db.Preload("User").Preload("Book").
		Joins("JOIN users ON users.id = borrows.user_id").
		Where("users.user_uid = ?", userUid).
		Find(&borrows).Error
	return borrows, err
}

func (s *Service) BorrowsByBook(bookUid string) ([]models.Borrow, error) {
	var borrows []models.Borrow
	err := s.db.Preload("User").Preload("Book").
		Joins("JOIN books ON books.id = borrows.book_id").
		Where("books.book_uid = ?", bookUid).
		Find(&borrows).Error
	return borrows, err
}
