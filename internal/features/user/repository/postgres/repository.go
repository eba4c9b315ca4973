package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lll-backend/internal/features/user/models"
	"lll-backend/internal/features/user/repository"
)

type postgresRepository struct {
	db *gorm.DB
}

func NewPostgresRepository(db *gorm.DB) repository.UserRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *postgresRepository) GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by telegram id: %w", err)
	}
	return &user, nil
}

func (r *postgresRepository) GetByReferralCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by referral code: %w", err)
	}
	return &user, nil
}

// CreateWithReferrer runs the insert and the referrer counter increment in
// one transaction, so an interrupted first login cannot leave a dangling
// referral.
func (r *postgresRepository) CreateWithReferrer(ctx context.Context, user *models.User, referrerID *string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if referrerID != nil {
			if err := tx.Model(&models.User{}).
				Where("id = ?", *referrerID).
				UpdateColumn("referral_count", gorm.Expr("referral_count + 1")).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repository.ErrDuplicateKey
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	// Map update so that empty claim fields really clear stored values.
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"username":      user.Username,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"photo_url":     user.PhotoURL,
			"bot_chat_id":   user.BotChatID,
			"referral_code": user.ReferralCode,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update user profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) UpdateWallet(ctx context.Context, id, walletAddress string) (*models.User, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("wallet_address", walletAddress)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update wallet address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, repository.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepository) UpdateBotChatID(ctx context.Context, id, botChatID string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("bot_chat_id", botChatID)
	if res.Error != nil {
		return fmt.Errorf("failed to update bot chat id: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}
