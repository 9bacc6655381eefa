package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/accounts_admin/internal/db"
	"github.com/Skotchmaster/accounts_admin/internal/hash"
	"github.com/Skotchmaster/accounts_admin/internal/models"
)

// NewDB opens a migrated in-memory sqlite database that lives for the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), db.SQLitePrefix+":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background(), gdb))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

// CreateAccount inserts an account with a bcrypt hash of password. An empty
// password stores NULL.
func CreateAccount(t *testing.T, gdb *gorm.DB, email string, role models.Role, password string, active bool) models.Account {
	t.Helper()

	account := models.Account{Email: email, Role: role, IsActive: active}
	if password != "" {
		h, err := hash.HashPassword(password)
		require.NoError(t, err)
		account.Password = &h
	}

	require.NoError(t, gdb.Select("Email", "Role", "Password", "IsActive").Create(&account).Error)
	require.NotZero(t, account.ID)
	return account
}

// SeedUsers inserts n active USER accounts named user01@example.com, user02@...
// Passwords are left NULL to keep bcrypt out of bulk setups.
func SeedUsers(t *testing.T, gdb *gorm.DB, n int) []models.Account {
	t.Helper()

	out := make([]models.Account, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, CreateAccount(t, gdb, fmt.Sprintf("user%02d@example.com", i), models.RoleUser, "", true))
	}
	return out
}
