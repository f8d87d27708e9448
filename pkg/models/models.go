package models

import (
	"time"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	UserUid   string `gorm:"type:uuid;uniqueIndex;not null"`
	Username  string `gorm:"size:80;not null;uniqueIndex"`
	Email     string `gorm:"size:120;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Book struct {
	ID        uint   `gorm:"primaryKey"`
	BookUid   string `gorm:"type:uuid;uniqueIndex;not null"`
	Title     string `gorm:"not null"`
	Author    string `gorm:"not null"`
	Isbn      string `gorm:"size:13;uniqueIndex;not null"`
	Category  string
	Available bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Borrow struct {
	ID         uint   `gorm:"primaryKey"`
	BorrowUid  string `gorm:"type:uuid;uniqueIndex;not null"`
	UserID     uint   `gorm:"not null;index"`
	BookID     uint   `gorm:"not null;index"`
	BorrowedAt time.Time
	DueDate    time.Time
	ReturnedAt *time.Time
	IsReturned bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User User `gorm:"foreignKey:UserID"`
	Book Book `gorm:"foreignKey:BookID"`
}

type Reservation struct {
	ID             uint   `gorm:"primaryKey"`
	ReservationUid string `gorm:"type:uuid;uniqueIndex;not null"`
	UserID         uint   `gorm:"not null;index"`
	BookID         uint   `gorm:"not null;index"`
	ReservedAt     time.Time
	ExpirationAt   time.Time
	IsConfirmed    bool `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	User User `gorm:"foreignKey:UserID"`
	Book Book `gorm:"foreignKey:BookID"`
}

// BorrowID carries a unique index: at most one fine per borrow is
// enforced by the schema, not by application checks alone.
type Fine struct {
	ID        uint    `gorm:"primaryKey"`
	FineUid   string  `gorm:"type:uuid;uniqueIndex;not null"`
	BorrowID  uint    `gorm:"not null;uniqueIndex"`
	Amount    float64 `gorm:"not null"`
	DueDate   time.Time
	Paid      bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Borrow Borrow `gorm:"foreignKey:BorrowID"`
}

type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Message   string `gorm:"not null"`
	Delivered bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
