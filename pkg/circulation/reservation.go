package circulation

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"library-management/pkg/models"
)

// Reserve creates a pending reservation for the given user and book.
// Expiration is the same 21-day term as a loan.
func (s *Service) Reserve(userUid, bookUid string) (*models.Reservation, error) {
	now := s.now()
	var reservation models.Reservation

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

		reservation = models.Reservation{
			ReservationUid: uuid.New().String(),
			UserID:         user.ID,
			BookID:         book.ID,
			ReservedAt:     now,
			ExpirationAt:   now.AddDate(0, 0, LoanPeriodDays),
			IsConfirmed:    false,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// ConfirmReservation marks a pending reservation confirmed and blocks
// the book. Confirming after expiration fails with
// ErrReservationExpired; confirming twice is a no-op.
func (s *Service) ConfirmReservation(reservationUid string) (*models.Reservation, error) {
	now := s.now()
	var reservation models.Reservation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("reservation_uid = ?", reservationUid).First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		if reservation.IsConfirmed {
			return nil
		}

		if now.After(reservation.ExpirationAt) {
			return ErrReservationExpired
		}

		reservation.IsConfirmed = true
		if err := tx.Save(&reservation).Error; err != nil {
			return err
		}

		return setAvailability(tx, reservation.BookID, false)
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// CancelReservation deletes the reservation. If it had been confirmed,
// the book becomes available again unless an open borrow still holds it.
func (s *Service) CancelReservation(reservationUid string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Where("reservation_uid = ?", reservationUid).First(&reservation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}

		if err := tx.Delete(&reservation).Error; err != nil {
			return err
		}

		if !reservation.IsConfirmed {
			return nil
		}

		var open int64
		if err := tx.Model(&models.Borrow{}).
			Where("book_id = ? AND is_returned = ?", reservation.BookID, false).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return nil
		}

		return setAvailability(tx, reservation.BookID, true)
	})
}

func (s *Service) GetReservation(reservationUid string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.Preload("User").Preload("Book").
		Where("reservation_uid = ?", reservationUid).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (s *Service) AllReservations() ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("User").Preload("Book").Find(&reservations).Error
	return reservations, err
}

func (s *Service) ReservationsByUser(userUid string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("User").Preload("Book").
		Joins("JOIN users ON users.id = reservations.user_id").
		Where("users.user_uid = ?", userUid).
		Find(&reservations).Error
	return reservations, err
}

func (s *Service) ReservationsByBook(bookUid string) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.Preload("User").Preload("Book").
		Joins("JOIN books ON books.id = reservations.book_id").
		Where("books.book_uid = ?", bookUid).
		Find(&reservations).Error
	return reservations, err
}
