package circulation

import (
	"time"

	"gorm.io/gorm"
)

const (
	// LoanPeriodDays is the borrow term; the reservation hold period
	// uses the same constant.
	LoanPeriodDays = 21

	// DailyFineRate is the fine accrued per full overdue day.
	DailyFineRate = 3.0
)

// Service is the circulation facade: the single entry point for borrow,
// reservation and fine transitions. Every mutating call runs in one
// database transaction and reads the clock exactly once, so the stamps
// written within a call are mutually consistent.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// NewServiceWithClock injects the time source used for borrowedAt,
// dueDate, expiration and overdue computations.
func NewServiceWithClock(db *gorm.DB, now func() time.Time) *Service {
	return &Service{db: db, now: now}
}

// Ledger returns the inventory ledger bound to the same database.
func (s *Service) Ledger() *InventoryLedger {
	return &InventoryLedger{db: s.db}
}
