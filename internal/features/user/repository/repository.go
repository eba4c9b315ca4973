package repository

import (
	"context"
	"errors"

	"lll-backend/internal/features/user/models"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateKey is returned when an insert loses a uniqueness race
	// (telegram id or referral code). The caller recovers by retrying as
	// an update.
	ErrDuplicateKey = errors.New("duplicate key")
)

// UserRepository is the persistent user directory. Uniqueness of
// telegram_id and referral_code is enforced by the store, not by callers.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error)
	GetByReferralCode(ctx context.Context, code string) (*models.User, error)

	// CreateWithReferrer inserts the record and, when referrerID is set,
	// increments that record's referral counter in the same transaction.
	CreateWithReferrer(ctx context.Context, user *models.User, referrerID *string) error

	// UpdateProfile overwrites display fields, bot chat id and referral
	// code from the given record.
	UpdateProfile(ctx context.Context, user *models.User) error

	// UpdateWallet overwrites the wallet address and returns the updated
	// record.
	UpdateWallet(ctx context.Context, id, walletAddress string) (*models.User, error)

	UpdateBotChatID(ctx context.Context, id, botChatID string) error
}
