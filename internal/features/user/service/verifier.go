package service

import (
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"

	"lll-backend/internal/common/apperrors"
)

// Verifier validates a raw launch payload against the bot token and decodes
// the identity claim. The signature scheme itself is the library's.
type Verifier struct {
	token string
	expIn time.Duration
}

// NewVerifier builds a verifier. expIn bounds the accepted payload age;
// zero disables the expiration check.
func NewVerifier(token string, expIn time.Duration) *Verifier {
	return &Verifier{token: token, expIn: expIn}
}

// Verify checks the payload signature and returns the decoded claim.
// A missing bot token is an operator fault and is reported distinctly from
// a bad signature.
func (v *Verifier) Verify(raw string) (initdata.InitData, *apperrors.AppError) {
	if raw == "" {
		return initdata.InitData{}, apperrors.NewBadRequest("Missing initData")
	}
	if v.token == "" {
		return initdata.InitData{}, apperrors.NewConfigError("BOT_TOKEN is not set")
	}

	if err := initdata.Validate(raw, v.token, v.expIn); err != nil {
		return initdata.InitData{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "Invalid Telegram payload signature")
	}

	data, err := initdata.Parse(raw)
	if err != nil {
		return initdata.InitData{}, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Failed to parse init data")
	}
	if data.User.ID == 0 {
		return initdata.InitData{}, apperrors.NewBadRequest("Missing Telegram user payload")
	}

	return data, nil
}
