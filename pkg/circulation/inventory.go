package circulation

import (
	"errors"

	"gorm.io/gorm"

	"library-management/pkg/models"
)

// InventoryLedger owns the Book availability flag. It holds no policy
// of its own; the lifecycle components decide when to flip it.
type InventoryLedger struct {
	db *gorm.DB
}

func NewInventoryLedger(db *gorm.DB) *InventoryLedger {
	return &InventoryLedger{db: db}
}

func (l *InventoryLedger) SetAvailability(bookID uint, available bool) error {
	return setAvailability(l.db, bookID, available)
}

func (l *InventoryLedger) IsAvailable(bookID uint) (bool, error) {
	var book models.Book
	if err := l.db.First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrBookNotFound
		}
		return false, err
	}
	return book.Available, nil
}

// setAvailability is the tx-aware variant used inside lifecycle
// transactions.
func setAvailability(tx *gorm.DB, bookID uint, available bool) error {
	result := tx.Model(&models.Book{}).Where("id = ?", bookID).Update("available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}
