package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	usercache "lll-backend/internal/cache/redis"
	"lll-backend/internal/common/apperrors"
	"lll-backend/internal/common/logger"
	"lll-backend/internal/common/session"
	"lll-backend/internal/features/user/models"
	"lll-backend/internal/features/user/repository"
)

const defaultLanguageCode = "en"

const (
	walletAddressMinLength = 10
	walletAddressMaxLength = 120
)

type userService struct {
	repo     repository.UserRepository
	verifier *Verifier
	cache    *usercache.UserCache
}

// NewUserService builds the user service. cache may be nil, in which case
// reads always hit the directory.
func NewUserService(repo repository.UserRepository, verifier *Verifier, cache *usercache.UserCache) UserService {
	return &userService{
		repo:     repo,
		verifier: verifier,
		cache:    cache,
	}
}

func (s *userService) Authenticate(ctx context.Context, rawInitData string) (*AuthResult, error) {
	data, appErr := s.verifier.Verify(rawInitData)
	if appErr != nil {
		return nil, appErr
	}

	telegramID := strconv.FormatInt(data.User.ID, 10)

	user, err := s.repo.GetByTelegramID(ctx, telegramID)
	switch {
	case err == nil:
		user, err = s.refreshExisting(ctx, user, data)
	case errors.Is(err, repository.ErrUserNotFound):
		user, err = s.createFromClaim(ctx, telegramID, data, rawInitData)
	default:
		return nil, apperrors.NewDatabaseError("lookup user", err)
	}
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, user)

	return &AuthResult{User: user, Claim: claimSnapshot(data)}, nil
}

// createFromClaim handles the first login. A lost uniqueness race against a
// concurrent first login is retried as a returning-user update.
func (s *userService) createFromClaim(ctx context.Context, telegramID string, data initdata.InitData, rawInitData string) (*models.User, error) {
	referrerID := s.resolveReferral(ctx, rawInitData)

	user := &models.User{
		ID:           uuid.NewString(),
		TelegramID:   telegramID,
		Username:     data.User.Username,
		FirstName:    data.User.FirstName,
		LastName:     data.User.LastName,
		PhotoURL:     data.User.PhotoURL,
		LanguageCode: data.User.LanguageCode,
		BotChatID:    chatIDFromClaim(data),
		ReferralCode: generateReferralCode(),
		ReferredBy:   referrerID,
	}
	if user.LanguageCode == "" {
		user.LanguageCode = defaultLanguageCode
	}

	err := s.repo.CreateWithReferrer(ctx, user, referrerID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrDuplicateKey) {
		return nil, apperrors.NewDatabaseError("create user", err)
	}

	existing, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("resolve create conflict", err)
	}
	return s.refreshExisting(ctx, existing, data)
}

// refreshExisting overwrites display fields with the latest claim values.
// ReferredBy, ReferralCount, ID and TelegramID are never touched here.
func (s *userService) refreshExisting(ctx context.Context, user *models.User, data initdata.InitData) (*models.User, error) {
	user.Username = data.User.Username
	user.FirstName = data.User.FirstName
	user.LastName = data.User.LastName
	user.PhotoURL = data.User.PhotoURL
	if chatID := chatIDFromClaim(data); chatID != "" {
		user.BotChatID = chatID
	}
	// Defensive backfill for records predating referral codes.
	if user.ReferralCode == "" {
		user.ReferralCode = generateReferralCode()
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, apperrors.NewDatabaseError("update user profile", err)
	}
	return user, nil
}

func (s *userService) CheckIn(ctx context.Context, userID, botChatID string) (string, error) {
	if err := s.repo.UpdateBotChatID(ctx, userID, botChatID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperrors.New(apperrors.ErrCodeNotFound, "User not found")
		}
		return "", apperrors.NewDatabaseError("update bot chat id", err)
	}
	s.cacheInvalidate(ctx, userID)
	return botChatID, nil
}

func (s *userService) LinkWallet(ctx context.Context, userID, walletAddress string) (*models.User, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	// Bounds apply to the trimmed value.
	if len(walletAddress) < walletAddressMinLength || len(walletAddress) > walletAddressMaxLength {
		return nil, apperrors.NewBadRequest("Invalid wallet address length")
	}

	user, err := s.repo.UpdateWallet(ctx, userID, walletAddress)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "User not found")
		}
		return nil, apperrors.NewDatabaseError("update wallet address", err)
	}
	s.cacheSet(ctx, user)
	return user, nil
}

func (s *userService) Profile(ctx context.Context, userID string) (*models.User, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetByID(ctx, userID); err == nil {
			return cached, nil
		}
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("get user", err)
	}
	s.cacheSet(ctx, user)
	return user, nil
}

func (s *userService) cacheSet(ctx context.Context, user *models.User) {
	if s.cache == nil || user == nil {
		return
	}
	if err := s.cache.Set(ctx, user); err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to cache user")
	}
}

func (s *userService) cacheInvalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if cached, err := s.cache.GetByID(ctx, userID); err == nil {
		if err := s.cache.Invalidate(ctx, cached); err != nil {
			logger.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate user cache")
		}
	}
}

func chatIDFromClaim(data initdata.InitData) string {
	if data.Chat.ID == 0 {
		return ""
	}
	return strconv.FormatInt(data.Chat.ID, 10)
}

func claimSnapshot(data initdata.InitData) session.Claim {
	claim := session.Claim{
		User:     data.User,
		AuthDate: int64(data.AuthDateRaw),
	}
	if data.Chat.ID != 0 {
		chat := data.Chat
		claim.Chat = &chat
	}
	return claim
}
