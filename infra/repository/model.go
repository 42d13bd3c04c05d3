package repository

import (
	"time"

	"github.com/google/uuid"
)

// Account is the database record backing a ledger account.
type Account struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Number    string    `gorm:"size:20;uniqueIndex;not null"`
	Type      string    `gorm:"type:varchar(16);not null;default:'current'"`
	Status    string    `gorm:"type:varchar(16);not null;default:'active'"`
	Balance   int64     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transaction is the database record of one balance mutation. Sequence is a
// bigserial and doubles as the stable tie-break key for history ordering.
type Transaction struct {
	Sequence        int64      `gorm:"primaryKey;autoIncrement"`
	ID              uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	AccountID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	Kind            string     `gorm:"type:varchar(16);not null"`
	Amount          int64      `gorm:"not null"`
	TargetAccountID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
}
