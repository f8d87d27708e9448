package circulation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"library-management/pkg/models"
)

// CalculateFineAmount is the pure accrual formula: one daily rate per
// full 24-hour day elapsed past the due date, never negative. Usable
// for previews without touching storage.
func CalculateFineAmount(dueDate, now time.Time) float64 {
	if !now.After(dueDate) {
		return 0
	}
	daysOverdue := int(now.Sub(dueDate).Hours() / 24)
	return float64(daysOverdue) * DailyFineRate
}

// RequestFine creates the fine for an overdue borrow. Creation is
// idempotent: if a fine already exists for the borrow it is returned
// unchanged and created is false. A borrow that is not overdue yields
// ErrNoFineApplicable and no record.
func (s *Service) RequestFine(borrowUid string) (*models.Fine, bool, error) {
	now := s.now()
	var record models.Fine
	var created bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var borrow models.Borrow
		if err := tx.Where("borrow_uid = ?", borrowUid).First(&borrow).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBorrowNotFound
			}
			return err
		}

		lookupErr := tx.Where("borrow_id = ?", borrow.ID).First(&record).Error
		if lookupErr == nil {
			return nil
		}
		if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return lookupErr
		}

		amount := CalculateFineAmount(borrow.DueDate, now)
		if amount <= 0 {
			return ErrNoFineApplicable
		}

		record = models.Fine{
			FineUid:   uuid.New().String(),
			BorrowID:  borrow.ID,
			Amount:    amount,
			DueDate:   borrow.DueDate,
			Paid:      false,
			CreatedAt: now,
		}
		created = true
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &record, created, nil
}

// PayFine marks the fine paid. Re-paying an already-paid fine is a
// no-op returning the record unchanged.
func (s *Service) PayFine(fineUid string) (*models.Fine, error) {
	var fine models.Fine

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fine_uid = ?", fineUid).First(&fine).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFineNotFound
			}
			return err
		}

		if fine.Paid {
			return nil
		}

		fine.Paid = true
		return tx.Save(&fine).Error
	})
	if err != nil {
		return nil, err
	}
	return &fine, nil
}

func (s *Service) DeleteFine(fineUid string) error {
	result := s.db.Where("fine_uid = ?", fineUid).Delete(&models.Fine{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFineNotFound
	}
	return nil
}

func (s *Service) GetFine(fineUid string) (*models.Fine, error) {
	var fine models.Fine
	err := s.db.Preload("Borrow").Where("fine_uid = ?", fineUid).First(&fine).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFineNotFound
		}
		return nil, err
	}
	return &fine, nil
}

func (s *Service) AllFines() ([]models.Fine, error) {
	var fines []models.Fine
	err := s.db.Preload("Borrow").Find(&fines).Error
	return fines, err
}

func (s *Service) FinesByBorrow(borrowUid string) ([]models.Fine, error) {
	var fines []models.Fine
	err := s.db.Preload("Borrow").
		Joins("JOIN borrows ON borrows.id = fines.borrow_id").
		Where("borrows.borrow_uid = ?", borrowUid).
		Find(&fines).Error
	return fines, err
}
