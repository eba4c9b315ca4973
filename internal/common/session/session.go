package session

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	"lll-backend/internal/common/apperrors"
	"lll-backend/internal/common/config"
)

// CookieName is the session cookie carried by the client.
const CookieName = "tg_session"

// Claim is a snapshot of the identity claim presented at the last
// authentication.
type Claim struct {
	User     initdata.User  `json:"user"`
	Chat     *initdata.Chat `json:"chat,omitempty"`
	AuthDate int64          `json:"auth_date,omitempty"`
}

// Profile is a cached display-profile snapshot. It is a point-in-time copy
// and may drift from the stored user record.
type Profile struct {
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// State is the session payload. The zero value means unauthenticated.
type State struct {
	UserID     string   `json:"userId,omitempty"`
	TelegramID string   `json:"telegramId,omitempty"`
	Claim      *Claim   `json:"tg,omitempty"`
	Profile    *Profile `json:"profile,omitempty"`
}

// Authenticated reports whether the state identifies a user.
func (s State) Authenticated() bool {
	return s.UserID != "" && s.TelegramID != ""
}

// Manager issues and reads encrypted, integrity-protected session cookies.
// The server keeps no session table: the cookie is the session.
type Manager struct {
	codec  *securecookie.SecureCookie
	maxAge time.Duration
	secure bool
}

// NewManager derives the cookie hash and encryption keys from secret.
// A secret shorter than the configured minimum is a hard failure, not a
// silent fallback.
func NewManager(secret string, maxAge time.Duration, secure bool) (*Manager, error) {
	if len(secret) < config.MinSessionSecretLength {
		return nil, apperrors.NewConfigError("SESSION_SECRET must be at least 32 characters long")
	}

	hashKey := sha256.Sum256([]byte(secret))
	blockKey := sha256.Sum256([]byte(secret + ":block"))

	codec := securecookie.New(hashKey[:], blockKey[:])
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(maxAge.Seconds()))

	return &Manager{codec: codec, maxAge: maxAge, secure: secure}, nil
}

// Issue serializes state into the session cookie on w.
func (m *Manager) Issue(w http.ResponseWriter, state State) error {
	encoded, err := m.codec.Encode(CookieName, state)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to encode session")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read decodes the session cookie from r. A missing, corrupt, or expired
// cookie yields the zero State: unauthenticated, never an error.
func (m *Manager) Read(r *http.Request) State {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return State{}
	}

	var s State
	if err := m.codec.Decode(CookieName, c.Value, &s); err != nil {
		return State{}
	}
	return s
}
