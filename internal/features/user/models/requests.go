package models

// AuthRequest carries the signed launch payload.
type AuthRequest struct {
	InitData string `json:"initData" binding:"required"`
}

// CheckInRequest optionally carries an explicit chat id supplied by the
// client.
type CheckInRequest struct {
	BotChatID string `json:"botChatId" binding:"omitempty,min=1"`
}

// LinkWalletRequest carries the wallet address to store. Length limits per
// the linking contract; no address-scheme validation happens here.
type LinkWalletRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required,min=10,max=120"`
}

// ErrorResponse is the error body shape.
type ErrorResponse struct {
	Error string `json:"error"`
}
