package models

import "time"

// User is the persistent identity record, keyed internally by a generated
// uuid and externally by the Telegram user id.
type User struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	TelegramID string `gorm:"type:text;uniqueIndex;not null" json:"telegram_id"`

	Username  string `gorm:"type:text" json:"username"`
	FirstName string `gorm:"type:text" json:"first_name"`
	LastName  string `gorm:"type:text" json:"last_name"`
	PhotoURL  string `gorm:"type:text" json:"photo_url"`

	// LanguageCode defaults at creation and is not refreshed on later logins.
	LanguageCode string `gorm:"type:text;not null;default:en" json:"language_code"`

	// BotChatID is the chat the bot uses for server-initiated messages.
	BotChatID string `gorm:"type:text" json:"bot_chat_id"`

	ReferralCode string `gorm:"type:text;uniqueIndex;not null" json:"referral_code"`

	// ReferredBy points at the referrer's User.ID. Set at creation only,
	// never reassigned.
	ReferredBy    *string `gorm:"type:uuid;index" json:"referred_by"`
	ReferralCount int64   `gorm:"not null;default:0" json:"referral_count"`

	WalletAddress string `gorm:"type:text" json:"wallet_address"`
	IsAdmin       bool   `gorm:"not null;default:false" json:"is_admin"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// UserResponse is the public projection returned by the auth endpoint.
type UserResponse struct {
	ID            string `json:"id"`
	TelegramID    string `json:"telegramId"`
	Username      string `json:"username,omitempty"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	PhotoURL      string `json:"photoUrl,omitempty"`
	ReferralCode  string `json:"referralCode"`
	WalletAddress string `json:"walletAddress,omitempty"`
}

// ProfileResponse is the safe field set served by the profile endpoint.
type ProfileResponse struct {
	ID            string    `json:"id"`
	TelegramID    string    `json:"telegramId"`
	Username      string    `json:"username,omitempty"`
	FirstName     string    `json:"firstName,omitempty"`
	LastName      string    `json:"lastName,omitempty"`
	PhotoURL      string    `json:"photoUrl,omitempty"`
	LanguageCode  string    `json:"languageCode"`
	BotChatID     string    `json:"botChatId,omitempty"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	ReferralCode  string    `json:"referralCode"`
	ReferredBy    *string   `json:"referredBy"`
	ReferralCount int64     `json:"referralCount"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToUserResponse projects the record for the auth endpoint.
func ToUserResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		TelegramID:    u.TelegramID,
		Username:      u.Username,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PhotoURL:      u.PhotoURL,
		ReferralCode:  u.ReferralCode,
		WalletAddress: u.WalletAddress,
	}
}

// ToProfileResponse projects the record for the profile endpoint.
func ToProfileResponse(u *User) *ProfileResponse {
	return &ProfileResponse{
		ID:            u.ID,
		TelegramID:    u.TelegramID,
		Username:      u.Username,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		PhotoURL:      u.PhotoURL,
		LanguageCode:  u.LanguageCode,
		BotChatID:     u.BotChatID,
		WalletAddress: u.WalletAddress,
		ReferralCode:  u.ReferralCode,
		ReferredBy:    u.ReferredBy,
		ReferralCount: u.ReferralCount,
		IsAdmin:       u.IsAdmin,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
