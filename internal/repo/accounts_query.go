package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/accounts_admin/internal/models"
)

// AccountFilter is the store-level shape of a listing request. Zero values
// mean "no condition".
type AccountFilter struct {
	ID          uint
	Email       string
	SearchEmail string
	EmailLike   string
	Roles       []models.Role
	IsActive    *bool

	OrderField string
	Desc       bool

	Offset int
	Limit  int
}

var orderColumns = map[string]string{
	"id":       "id",
	"email":    "email",
	"role":     "role",
	"isActive": "is_active",
}

func OrderColumn(field string) (string, bool) {
	col, ok := orderColumns[field]
	return col, ok
}

// EscapeLike escapes the LIKE wildcards so user input only ever matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func filterScope(f AccountFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.ID != 0 {
			db = db.Where("id = ?", f.ID)
		}
		if f.Email != "" {
			db = db.Where("email = ?", strings.ToLower(f.Email))
		}
		if f.SearchEmail != "" {
			db = db.Where("email = ?", strings.ToLower(f.SearchEmail))
		}
		if f.EmailLike != "" {
			db = db.Where(`LOWER(email) LIKE ? ESCAPE '\'`, "%"+EscapeLike(strings.ToLower(f.EmailLike))+"%")
		}
		if len(f.Roles) > 0 {
			roles := make([]string, len(f.Roles))
			for i, role := range f.Roles {
				roles[i] = string(role)
			}
			db = db.Where("role IN ?", roles)
		}
		if f.IsActive != nil {
			db = db.Where("is_active = ?", *f.IsActive)
		}
		return db
	}
}

func orderScope(f AccountFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		col, ok := OrderColumn(f.OrderField)
		if !ok {
			col = "id"
		}
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: f.Desc})
		if col != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
		}
		return db
	}
}

func paginate(offset, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}

func (r *GormRepo) ListAccounts(ctx context.Context, f AccountFilter) ([]models.Account, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Account{}).
		Scopes(filterScope(f)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]models.Account, 0, f.Limit)
	if total == 0 {
		return items, 0, nil
	}

	if err := r.DB.WithContext(ctx).
		Model(&models.Account{}).
		Scopes(filterScope(f), orderScope(f), paginate(f.Offset, f.Limit)).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
