package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lll-backend/internal/features/notify/service"
	"lll-backend/internal/features/user/models"
	"lll-backend/internal/features/user/repository"
)

type fixedDirectory struct {
	user *models.User
}

func (d *fixedDirectory) GetByTelegramID(context.Context, string) (*models.User, error) {
	if d.user == nil {
		return nil, repository.ErrUserNotFound
	}
	return d.user, nil
}

type recordingTransport struct {
	chatID string
	text   string
	err    error
}

func (t *recordingTransport) SendMessage(_ context.Context, chatID, text string) error {
	t.chatID = chatID
	t.text = text
	return t.err
}

func newTestRouter(transport *recordingTransport) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewService(&fixedDirectory{}, transport, "hook-secret", "lll_bot")

	router := gin.New()
	NewNotifyHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notify", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestNotifyDispatches(t *testing.T) {
	transport := &recordingTransport{}
	router := newTestRouter(transport)

	rec := post(router, `{"secret":"hook-secret","kind":"deposit","chatId":"42","payload":{"amount":"100"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "42", transport.chatID)
	assert.Contains(t, transport.text, "Deposit received")
}

func TestNotifyValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"missing secret", `{"kind":"generic","chatId":"42"}`},
		{"missing kind", `{"secret":"hook-secret","chatId":"42"}`},
		{"unknown kind", `{"secret":"hook-secret","kind":"surprise","chatId":"42"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(newTestRouter(&recordingTransport{}), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "Invalid payload")
		})
	}
}

func TestNotifyWrongSecret(t *testing.T) {
	rec := post(newTestRouter(&recordingTransport{}), `{"secret":"wrong","kind":"generic","chatId":"42"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotifyNoTarget(t *testing.T) {
	rec := post(newTestRouter(&recordingTransport{}), `{"secret":"hook-secret","kind":"generic"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotifyTransportFailure(t *testing.T) {
	transport := &recordingTransport{err: assert.AnError}
	rec := post(newTestRouter(transport), `{"secret":"hook-secret","kind":"generic","chatId":"42"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
