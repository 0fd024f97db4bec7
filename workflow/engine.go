package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Gamescriptsy/Gradegame/models"

	"gorm.io/gorm"
)

// Engine drives the transaction lifecycle: pending at creation, then
// confirmed or canceled by a manager. In the default mode a manager update
// overwrites the status unconditionally (confirmed -> canceled included);
// strict mode restricts updates to transitions out of pending.
type Engine struct {
	db     *gorm.DB
	strict bool
}

type Option func(*Engine)

// WithStrictTransitions enables the pending-only transition guard.
func WithStrictTransitions() Option {
	return func(e *Engine) { e.strict = true }
}

func NewEngine(db *gorm.DB, opts ...Option) *Engine {
	e := &Engine{db: db}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TopUpInput carries the customer-submitted top-up form.
type TopUpInput struct {
	GameName      string
	UserGameID    string
	ItemName      string
	Amount        int
	PaymentMethod string
}

// CreateTopUp inserts a pending transaction for the customer. Banned
// customers and non-catalog games are rejected before any write; a failed
// insert is rolled back and surfaced as ErrPersistence.
func (e *Engine) CreateTopUp(ctx context.Context, customer *models.User, in TopUpInput) (*models.Transaction, error) {
	if customer.IsBanned {
		return nil, ErrAccountBanned
	}

	gameID, ok := GameID(in.GameName)
	if !ok {
		return nil, ErrUnknownGame
	}

	trx := models.Transaction{
		UserID:        customer.ID,
		GameID:        gameID,
		UserGameID:    in.UserGameID,
		ItemName:      in.ItemName,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Status:        models.StatusPending,
	}

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&trx).Error
	})
	if err != nil {
		log.Printf("[workflow] create top-up user=%d game=%s: %v", customer.ID, in.GameName, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return &trx, nil
}

// SetTransactionStatus overwrites the status of an existing transaction.
// The posted status value is not validated beyond what the form supplies;
// the pending/confirmed/canceled set is enforced by the column enum only.
func (e *Engine) SetTransactionStatus(ctx context.Context, id uint, status string) (*models.Transaction, error) {
	var trx models.Transaction
	if err := e.db.WithContext(ctx).First(&trx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if e.strict && trx.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, trx.Status, status)
	}

	if err := e.db.WithContext(ctx).Model(&trx).Update("status", status).Error; err != nil {
		log.Printf("[workflow] update status id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	trx.Status = status
	return &trx, nil
}
