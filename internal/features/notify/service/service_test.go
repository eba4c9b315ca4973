package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lll-backend/internal/common/apperrors"
	"lll-backend/internal/features/user/models"
	"lll-backend/internal/features/user/repository"
)

const testWebhookSecret = "hook-secret"

type stubDirectory struct {
	users map[string]*models.User
	err   error
}

func (d *stubDirectory) GetByTelegramID(_ context.Context, telegramID string) (*models.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	if u, ok := d.users[telegramID]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

type recordingTransport struct {
	chatID string
	text   string
	calls  int
	err    error
}

func (t *recordingTransport) SendMessage(_ context.Context, chatID, text string) error {
	t.calls++
	t.chatID = chatID
	t.text = text
	return t.err
}

func newTestService(dir *stubDirectory, transport *recordingTransport) *Service {
	if dir == nil {
		dir = &stubDirectory{}
	}
	return NewService(dir, transport, testWebhookSecret, "lll_bot")
}

func TestDispatchRejectsWrongSecret(t *testing.T) {
	transport := &recordingTransport{}
	svc := newTestService(nil, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret: "wrong",
		ChatID: "42",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, appErr.Code)
	assert.Zero(t, transport.calls)
}

func TestDispatchWithoutConfiguredSecret(t *testing.T) {
	transport := &recordingTransport{}
	svc := NewService(&stubDirectory{}, transport, "", "lll_bot")

	err := svc.Dispatch(context.Background(), DispatchRequest{Secret: "", ChatID: "42"})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeConfig, appErr.Code)
	assert.Zero(t, transport.calls)
}

func TestDispatchExplicitChatIDWins(t *testing.T) {
	dir := &stubDirectory{users: map[string]*models.User{
		"42": {TelegramID: "42", BotChatID: "777"},
	}}
	transport := &recordingTransport{}
	svc := newTestService(dir, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret:     testWebhookSecret,
		TelegramID: "42",
		ChatID:     "999",
	})

	require.NoError(t, err)
	assert.Equal(t, "999", transport.chatID)
}

func TestDispatchUsesStoredBotChatID(t *testing.T) {
	dir := &stubDirectory{users: map[string]*models.User{
		"42": {TelegramID: "42", BotChatID: "777"},
	}}
	transport := &recordingTransport{}
	svc := newTestService(dir, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret:     testWebhookSecret,
		TelegramID: "42",
	})

	require.NoError(t, err)
	assert.Equal(t, "777", transport.chatID)
}

func TestDispatchFallsBackToTelegramID(t *testing.T) {
	tests := []struct {
		name string
		dir  *stubDirectory
	}{
		{"unknown user", &stubDirectory{}},
		{"user without bot chat", &stubDirectory{users: map[string]*models.User{
			"42": {TelegramID: "42"},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &recordingTransport{}
			svc := newTestService(tt.dir, transport)

			err := svc.Dispatch(context.Background(), DispatchRequest{
				Secret:     testWebhookSecret,
				TelegramID: "42",
			})

			require.NoError(t, err)
			assert.Equal(t, "42", transport.chatID)
		})
	}
}

func TestDispatchWithoutAnyTarget(t *testing.T) {
	transport := &recordingTransport{}
	svc := newTestService(nil, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{Secret: testWebhookSecret})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeBadRequest, appErr.Code)
	assert.Zero(t, transport.calls)
}

func TestDispatchDirectoryFailure(t *testing.T) {
	dir := &stubDirectory{err: errors.New("connection refused")}
	transport := &recordingTransport{}
	svc := newTestService(dir, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret:     testWebhookSecret,
		TelegramID: "42",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeDatabase, appErr.Code)
	assert.Zero(t, transport.calls)
}

func TestDispatchTransportFailure(t *testing.T) {
	transport := &recordingTransport{err: errors.New("telegram api: chat not found")}
	svc := newTestService(nil, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret: testWebhookSecret,
		ChatID: "42",
	})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeTelegramAPI, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus())
}

func TestDispatchCustomMessageSkipsTemplate(t *testing.T) {
	transport := &recordingTransport{}
	svc := newTestService(nil, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret:  testWebhookSecret,
		ChatID:  "42",
		Kind:    KindWinner,
		Message: "custom text",
		Payload: map[string]string{"ignored": "yes"},
	})

	require.NoError(t, err)
	assert.Equal(t, "custom text", transport.text)
}

func TestDispatchTemplates(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindWinner, "Congratulations"},
		{KindDeposit, "Deposit received"},
		{KindWithdrawal, "Withdrawal queued"},
		{KindGeneric, "LLL update"},
		{Kind("something-else"), "LLL update"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			transport := &recordingTransport{}
			svc := newTestService(nil, transport)

			err := svc.Dispatch(context.Background(), DispatchRequest{
				Secret: testWebhookSecret,
				ChatID: "42",
				Kind:   tt.kind,
			})

			require.NoError(t, err)
			assert.Contains(t, transport.text, tt.want)
		})
	}
}

func TestDispatchWinnerIncludesBotLink(t *testing.T) {
	transport := &recordingTransport{}
	svc := newTestService(nil, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret: testWebhookSecret,
		ChatID: "42",
		Kind:   KindWinner,
	})

	require.NoError(t, err)
	assert.Contains(t, transport.text, "https://t.me/lll_bot")

	transport = &recordingTransport{}
	svc = NewService(&stubDirectory{}, transport, testWebhookSecret, "")
	require.NoError(t, svc.Dispatch(context.Background(), DispatchRequest{
		Secret: testWebhookSecret,
		ChatID: "42",
		Kind:   KindWinner,
	}))
	assert.NotContains(t, transport.text, "https://t.me/")
}

func TestDispatchRendersPayload(t *testing.T) {
	transport := &recordingTransport{}
	svc := newTestService(nil, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret:  testWebhookSecret,
		ChatID:  "42",
		Kind:    KindDeposit,
		Payload: map[string]string{"amount": "100"},
	})

	require.NoError(t, err)
	assert.Contains(t, transport.text, `<code>{"amount":"100"}</code>`)
}

func TestDispatchTruncatesLargePayload(t *testing.T) {
	transport := &recordingTransport{}
	svc := newTestService(nil, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret:  testWebhookSecret,
		ChatID:  "42",
		Payload: map[string]string{"blob": strings.Repeat("x", 2000)},
	})

	require.NoError(t, err)

	start := strings.Index(transport.text, "<code>")
	end := strings.Index(transport.text, "</code>")
	require.True(t, start >= 0 && end > start)
	assert.Len(t, transport.text[start+len("<code>"):end], maxPayloadRender)
}

func TestDispatchTruncatesPayloadOnRuneBoundary(t *testing.T) {
	transport := &recordingTransport{}
	svc := newTestService(nil, transport)

	// Two-byte runes guarantee the byte limit falls inside a rune.
	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret:  testWebhookSecret,
		ChatID:  "42",
		Payload: map[string]string{"blob": strings.Repeat("é", 1000)},
	})

	require.NoError(t, err)

	start := strings.Index(transport.text, "<code>")
	end := strings.Index(transport.text, "</code>")
	require.True(t, start >= 0 && end > start)

	rendered := transport.text[start+len("<code>") : end]
	assert.True(t, utf8.ValidString(rendered))
	assert.LessOrEqual(t, len(rendered), maxPayloadRender)
	assert.Greater(t, len(rendered), maxPayloadRender-utf8.UTFMax)
}

func TestDispatchSkipsUnserializablePayload(t *testing.T) {
	transport := &recordingTransport{}
	svc := newTestService(nil, transport)

	err := svc.Dispatch(context.Background(), DispatchRequest{
		Secret:  testWebhookSecret,
		ChatID:  "42",
		Payload: func() {},
	})

	require.NoError(t, err)
	assert.NotContains(t, transport.text, "<code>")
}
