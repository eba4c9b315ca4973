package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"lll-backend/internal/common/apperrors"
	"lll-backend/internal/features/user/models"
	"lll-backend/internal/features/user/repository"
)

// Kind selects a message template when no explicit message is supplied.
type Kind string

const (
	KindGeneric    Kind = "generic"
	KindWinner     Kind = "winner"
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// maxPayloadRender bounds the diagnostic payload rendering appended to
// templated messages.
const maxPayloadRender = 800

// DispatchRequest describes one server-to-server notification.
type DispatchRequest struct {
	Secret     string
	Kind       Kind
	TelegramID string
	ChatID     string
	Message    string
	Payload    interface{}
}

// UserDirectory is the lookup the dispatcher needs to resolve a stored chat
// endpoint.
type UserDirectory interface {
	GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error)
}

// Transport delivers messages to a chat endpoint.
type Transport interface {
	SendMessage(ctx context.Context, chatID, text string) error
}

// Service forwards notification messages through the bot transport, gated
// by a shared secret.
type Service struct {
	users         UserDirectory
	transport     Transport
	webhookSecret string
	botUsername   string
}

func NewService(users UserDirectory, transport Transport, webhookSecret, botUsername string) *Service {
	return &Service{
		users:         users,
		transport:     transport,
		webhookSecret: webhookSecret,
		botUsername:   botUsername,
	}
}

// Dispatch validates the shared secret, resolves the target chat endpoint
// and delivers the message. Transport failures surface to the caller.
func (s *Service) Dispatch(ctx context.Context, req DispatchRequest) error {
	if s.webhookSecret == "" {
		return apperrors.NewConfigError("WEBHOOK_SECRET is not set")
	}
	if req.Secret != s.webhookSecret {
		return apperrors.NewUnauthorized("Invalid secret")
	}

	chatID, err := s.resolveChatID(ctx, req)
	if err != nil {
		return err
	}

	message := req.Message
	if message == "" {
		message = s.templateFor(req.Kind)
		if rendered := renderPayload(req.Payload); rendered != "" {
			message += "\n\n<code>" + rendered + "</code>"
		}
	}

	if err := s.transport.SendMessage(ctx, chatID, message); err != nil {
		return apperrors.NewTelegramAPIError("sendMessage", err)
	}
	return nil
}

// resolveChatID picks the target endpoint: an explicit chat id wins, then
// the user's stored bot chat id, then the Telegram id itself (valid for 1:1
// chats once the user has started the bot).
func (s *Service) resolveChatID(ctx context.Context, req DispatchRequest) (string, error) {
	if req.ChatID != "" {
		return req.ChatID, nil
	}
	if req.TelegramID == "" {
		return "", apperrors.NewBadRequest("Missing chatId (or user.botChatId not set yet)")
	}

	user, err := s.users.GetByTelegramID(ctx, req.TelegramID)
	switch {
	case err == nil && user.BotChatID != "":
		return user.BotChatID, nil
	case err == nil || errors.Is(err, repository.ErrUserNotFound):
		return req.TelegramID, nil
	default:
		return "", apperrors.NewDatabaseError("lookup user for notification", err)
	}
}

func (s *Service) templateFor(kind Kind) string {
	switch kind {
	case KindWinner:
		message := "🎉 <b>Congratulations!</b>\n\nYou have a prize to claim in LLL.\n\nOpen the mini app to claim."
		if s.botUsername != "" {
			message += fmt.Sprintf("\n\nhttps://t.me/%s", s.botUsername)
		}
		return message
	case KindDeposit:
		return "✅ <b>Deposit received</b>\n\nYour LLL position has been updated."
	case KindWithdrawal:
		return "⏳ <b>Withdrawal queued</b>\n\nYour withdrawal request is in the queue."
	default:
		return "🔔 <b>LLL update</b>"
	}
}

// renderPayload produces a truncated JSON rendering of an arbitrary
// payload. Unserializable payloads are silently skipped.
func renderPayload(payload interface{}) string {
	if payload == nil {
		return ""
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	rendered := string(b)
	if len(rendered) > maxPayloadRender {
		// Cut on a rune boundary so the Bot API never sees broken UTF-8.
		cut := maxPayloadRender
		for cut > 0 && !utf8.RuneStart(rendered[cut]) {
			cut--
		}
		rendered = rendered[:cut]
	}
	return rendered
}
