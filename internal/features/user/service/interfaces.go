package service

import (
	"context"

	"lll-backend/internal/common/session"
	"lll-backend/internal/features/user/models"
)

// AuthResult couples the persisted record with the verified claim so the
// caller can issue a session bound to both.
type AuthResult struct {
	User  *models.User
	Claim session.Claim
}

// UserService covers authentication and the session-gated user flows.
type UserService interface {
	// Authenticate verifies the launch payload and upserts the user record.
	Authenticate(ctx context.Context, rawInitData string) (*AuthResult, error)

	// CheckIn refreshes the user's bot chat id and returns the value stored.
	CheckIn(ctx context.Context, userID, botChatID string) (string, error)

	// LinkWallet overwrites the wallet address.
	LinkWallet(ctx context.Context, userID, walletAddress string) (*models.User, error)

	// Profile returns the current record, or nil when the user no longer
	// exists. An unknown user is not an error here.
	Profile(ctx context.Context, userID string) (*models.User, error)
}
