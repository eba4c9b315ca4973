package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lll-backend/internal/common/middleware"
	"lll-backend/internal/common/session"
	"lll-backend/internal/features/user/models"
	"lll-backend/internal/features/user/service"
)

type UserHandler struct {
	service  service.UserService
	sessions *session.Manager
}

func NewUserHandler(service service.UserService, sessions *session.Manager) *UserHandler {
	return &UserHandler{
		service:  service,
		sessions: sessions,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth", h.Authenticate)
	router.GET("/auth", h.GetSession)
	router.GET("/profile", h.GetProfile)

	authed := router.Group("")
	authed.Use(middleware.RequireSession())
	{
		authed.POST("/checkin", h.CheckIn)
		authed.POST("/link-wallet", h.LinkWallet)
	}
}

// SessionResponse mirrors the cookie contents for the client. Absent fields
// are null, meaning unauthenticated.
type SessionResponse struct {
	Profile    *session.Profile `json:"profile"`
	TelegramID *string          `json:"telegramId"`
	UserID     *string          `json:"userId"`
}

// @Summary Authenticate via Telegram init data
// @Description Verifies the signed launch payload, upserts the user record and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.AuthRequest true "Launch payload"
// @Success 200 {object} models.UserResponse "Authenticated user"
// @Failure 400 {object} models.ErrorResponse "Missing or malformed payload"
// @Failure 401 {object} models.ErrorResponse "Invalid signature"
// @Failure 500 {object} models.ErrorResponse "Server misconfiguration or internal error"
// @Router /auth [post]
func (h *UserHandler) Authenticate(c *gin.Context) {
	var input models.AuthRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing initData"})
		return
	}

	result, err := h.service.Authenticate(c.Request.Context(), input.InitData)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	user := result.User
	state := session.State{
		UserID:     user.ID,
		TelegramID: user.TelegramID,
		Claim:      &result.Claim,
		Profile: &session.Profile{
			Username:     result.Claim.User.Username,
			FirstName:    result.Claim.User.FirstName,
			LastName:     result.Claim.User.LastName,
			PhotoURL:     result.Claim.User.PhotoURL,
			LanguageCode: result.Claim.User.LanguageCode,
		},
	}
	if err := h.sessions.Issue(c.Writer, state); err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": models.ToUserResponse(user)})
}

// @Summary Read the current session
// @Description Returns the cached profile and identifiers from the session cookie, or nulls when unauthenticated.
// @Tags auth
// @Produce json
// @Success 200 {object} SessionResponse "Session contents"
// @Router /auth [get]
func (h *UserHandler) GetSession(c *gin.Context) {
	s := middleware.GetSession(c)
	c.JSON(http.StatusOK, SessionResponse{
		Profile:    s.Profile,
		TelegramID: optional(s.TelegramID),
		UserID:     optional(s.UserID),
	})
}

// @Summary Check in
// @Description Refreshes the chat id used for notifications, defaulting to the session's Telegram id.
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.CheckInRequest false "Optional explicit chat id"
// @Success 200 {object} map[string]interface{} "Resolved chat id"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Router /checkin [post]
func (h *UserHandler) CheckIn(c *gin.Context) {
	s := middleware.GetSession(c)

	// A malformed body is tolerated: the session's Telegram id is a valid
	// chat id for the 1:1 bot conversation.
	var input models.CheckInRequest
	_ = c.ShouldBindJSON(&input)

	botChatID := input.BotChatID
	if botChatID == "" {
		botChatID = s.TelegramID
	}

	resolved, err := h.service.CheckIn(c.Request.Context(), s.UserID, botChatID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "botChatId": resolved})
}

// @Summary Link a wallet address
// @Description Stores the supplied wallet address on the authenticated user.
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.LinkWalletRequest true "Wallet address (10-120 chars)"
// @Success 200 {object} map[string]interface{} "Updated identifiers"
// @Failure 400 {object} models.ErrorResponse "Invalid payload"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Router /link-wallet [post]
func (h *UserHandler) LinkWallet(c *gin.Context) {
	s := middleware.GetSession(c)

	var input models.LinkWalletRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	user, err := h.service.LinkWallet(c.Request.Context(), s.UserID, input.WalletAddress)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{
		"id":            user.ID,
		"telegramId":    user.TelegramID,
		"walletAddress": user.WalletAddress,
	}})
}

// @Summary Get the current user's profile
// @Description Returns the stored user record, or a null user when unauthenticated.
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{} "Profile or null user"
// @Router /profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	s := middleware.GetSession(c)
	if !s.Authenticated() {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	user, err := h.service.Profile(c.Request.Context(), s.UserID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": models.ToProfileResponse(user)})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
