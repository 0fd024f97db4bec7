package models

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

type Transaction struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"not null;index"`
	GameID        uint      `json:"game_id" gorm:"not null"`
	UserGameID    string    `json:"user_game_id" gorm:"size:100;not null"`
	ItemName      string    `json:"item_name" gorm:"size:150;not null"`
	Amount        int       `json:"amount" gorm:"not null"`
	PaymentMethod string    `json:"payment_method" gorm:"size:100;not null"`
	Status        string    `json:"status" gorm:"type:enum('pending','confirmed','canceled');not null;default:'pending'"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
