package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/accounts_admin/internal/models"
)

var ErrNotFound = errors.New("account not found")

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func (r *GormRepo) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.DB.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *GormRepo) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Create stores the email lower-cased. Columns are selected explicitly so an
// inactive account is not replaced by the column default.
func (r *GormRepo) Create(ctx context.Context, account *models.Account) error {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	return r.DB.WithContext(ctx).
		Select("Email", "Role", "Password", "IsActive").
		Create(account).Error
}

// SeedAdmin inserts the admin account only while the table is empty.
func (r *GormRepo) SeedAdmin(ctx context.Context, email, passwordHash string) (bool, error) {
	created := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&models.Account{}).Count(&total).Error; err != nil {
			return err
		}
		if total > 0 {
			return nil
		}

		admin := models.Account{
			Email:    strings.ToLower(strings.TrimSpace(email)),
			Role:     models.RoleAdmin,
			Password: &passwordHash,
			IsActive: true,
		}
		if err := tx.Select("Email", "Role", "Password", "IsActive").Create(&admin).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
