package gormdb

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// AccountRepository implements ports.AccountRepository on the account table.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) ports.AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).First(&a, "account_id = ?", id).Error; err != nil {
		return nil, translate(err, domain.ErrAccountNotFound)
	}
	return &a, nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).First(&a, "account_email = ?", email).Error; err != nil {
		return nil, translate(err, domain.ErrAccountNotFound)
	}
	return &a, nil
}

func (r *AccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&domain.Account{}).Where("account_email = ?", email).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	created := *account
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, translate(err, domain.ErrAccountNotFound)
	}
	return &created, nil
}

func (r *AccountRepository) UpdateProfile(ctx context.Context, id uint, firstName, lastName, email string) error {
	res := r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("account_id = ?", id).
		Updates(map[string]any{
			"account_firstname": firstName,
			"account_lastname":  lastName,
			"account_email":     email,
		})
	if res.Error != nil {
		return translate(res.Error, domain.ErrAccountNotFound)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&domain.Account{}).
		Where("account_id = ?", id).
		Update("account_password", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// translate maps gorm sentinels onto domain errors. Account writes are the
// only ones that can hit a unique index (account_email).
func translate(err error, notFound error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrEmailExists
	default:
		return fmt.Errorf("db: %w", err)
	}
}
