package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/accounts_admin/internal/events"
	"github.com/Skotchmaster/accounts_admin/internal/models"
	"github.com/Skotchmaster/accounts_admin/internal/repo"
	"github.com/Skotchmaster/accounts_admin/internal/testutil"
	"github.com/Skotchmaster/accounts_admin/internal/tokens"
	"github.com/Skotchmaster/accounts_admin/internal/transport"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, ev events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type authEnv struct {
	svc    *AuthService
	issuer *tokens.Issuer
	events *recorder
	admin  models.Account
}

func newAuthEnv(t *testing.T) *authEnv {
	t.Helper()

	gdb := testutil.NewDB(t)
	issuer := tokens.NewIssuer([]byte("test-jwt-secret"), time.Hour)
	rec := &recorder{}

	env := &authEnv{
		issuer: issuer,
		events: rec,
		admin:  testutil.CreateAccount(t, gdb, "admin@example.com", models.RoleAdmin, "secret", true),
		svc: &AuthService{
			Repo:   repo.New(gdb),
			Tokens: issuer,
			Events: rec,
		},
	}
	testutil.CreateAccount(t, gdb, "idle@example.com", models.RoleUser, "secret", false)
	testutil.CreateAccount(t, gdb, "nopass@example.com", models.RoleUser, "", true)
	return env
}

func TestAuthService_Login_Success(t *testing.T) {
	env := newAuthEnv(t)

	res, err := env.svc.Login(context.Background(), "ADMIN@Example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, env.admin.ID, res.Account.ID)
	assert.EqualValues(t, 3600, res.Token.ExpiresIn)

	claims, err := env.issuer.Parse(res.Token.AccessToken)
	require.NoError(t, err)
	id, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, env.admin.ID, id)

	assert.Equal(t, []string{events.TypeAccountLoggedIn}, env.events.types())
}

func TestAuthService_Login_Failures(t *testing.T) {
	env := newAuthEnv(t)

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{name: "empty email", email: "", password: "secret", want: ErrValidation},
		{name: "empty password", email: "admin@example.com", password: "", want: ErrValidation},
		{name: "unknown account", email: "ghost@example.com", password: "secret", want: ErrNotFoundAccount},
		{name: "inactive account", email: "idle@example.com", password: "secret", want: ErrNotFoundAccount},
		{name: "wrong password", email: "admin@example.com", password: "Secret", want: ErrInvalidCredentials},
		{name: "no stored password", email: "nopass@example.com", password: "secret", want: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := env.svc.Login(context.Background(), tt.email, tt.password)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, env.events.types())
}

func TestAuthService_Login_PublishFailureIgnored(t *testing.T) {
	env := newAuthEnv(t)
	env.events.err = errors.New("broker down")

	res, err := env.svc.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token.AccessToken)
}

func TestAuthService_LogoutAndMe(t *testing.T) {
	env := newAuthEnv(t)
	ctx := context.Background()

	env.svc.Logout(ctx, &env.admin)
	assert.Equal(t, []string{events.TypeAccountLoggedOut}, env.events.types())

	me, err := env.svc.Me(ctx, env.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", me.Email)

	_, err = env.svc.Me(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFoundAccount)
}

func TestClassifySearch(t *testing.T) {
	tests := []struct {
		term string
		kind SearchKind
		id   uint
	}{
		{term: "", kind: SearchNone},
		{term: "42", kind: SearchID, id: 42},
		{term: "0", kind: SearchSubstring},
		{term: "-1", kind: SearchSubstring},
		{term: "admin@example.com", kind: SearchEmail},
		{term: "admin", kind: SearchSubstring},
		{term: "%_", kind: SearchSubstring},
	}

	for _, tt := range tests {
		kind, id := ClassifySearch(tt.term)
		assert.Equal(t, tt.kind, kind, tt.term)
		assert.Equal(t, tt.id, id, tt.term)
	}
}

func TestBuildFilter(t *testing.T) {
	opts := transport.DefaultPageOptions()
	opts.Page = 3
	opts.Take = 20
	opts.Order = transport.OrderDESC
	opts.OrderField = "email"
	opts.Search = "ali"

	f := BuildFilter(opts)
	assert.Equal(t, 40, f.Offset)
	assert.Equal(t, 20, f.Limit)
	assert.True(t, f.Desc)
	assert.Equal(t, "email", f.OrderField)
	assert.Equal(t, "ali", f.EmailLike)
	assert.Zero(t, f.ID)

	opts.Search = "7"
	f = BuildFilter(opts)
	assert.EqualValues(t, 7, f.ID)
	assert.Empty(t, f.EmailLike)

	opts.Search = "bob@example.com"
	f = BuildFilter(opts)
	assert.Equal(t, "bob@example.com", f.SearchEmail)
}

func newAccountService(t *testing.T) (*AccountService, []models.Account) {
	t.Helper()

	gdb := testutil.NewDB(t)
	users := testutil.SeedUsers(t, gdb, 25)
	return &AccountService{Repo: repo.New(gdb)}, users
}

func TestAccountService_GetAccounts_SecondPage(t *testing.T) {
	svc, users := newAccountService(t)

	opts := transport.DefaultPageOptions()
	opts.Page = 2
	opts.Take = 10

	page, err := svc.GetAccounts(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	assert.Equal(t, users[10].ID, page.Items[0].ID)
	assert.Equal(t, users[19].ID, page.Items[9].ID)
	assert.Equal(t, transport.PageMeta{
		Page:            2,
		Take:            10,
		TotalItems:      25,
		PageCount:       3,
		HasPreviousPage: true,
		HasNextPage:     true,
	}, page.Meta)
}

func TestAccountService_GetAccounts_UnknownEmailIsEmpty(t *testing.T) {
	svc, _ := newAccountService(t)

	opts := transport.DefaultPageOptions()
	opts.Search = "nobody@example.com"

	page, err := svc.GetAccounts(context.Background(), opts)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.EqualValues(t, 0, page.Meta.TotalItems)
	assert.False(t, page.Meta.HasNextPage)
}

func TestAccountService_GetAccounts_SearchByID(t *testing.T) {
	svc, users := newAccountService(t)

	opts := transport.DefaultPageOptions()
	opts.Search = "5"

	page, err := svc.GetAccounts(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, users[4].ID, page.Items[0].ID)
}

func TestAccountService_GetAccounts_InvalidOptions(t *testing.T) {
	svc, _ := newAccountService(t)

	opts := transport.DefaultPageOptions()
	opts.Take = 1000

	_, err := svc.GetAccounts(context.Background(), opts)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAccountService_GetAccount(t *testing.T) {
	svc, users := newAccountService(t)
	ctx := context.Background()

	acc, err := svc.GetAccount(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "user01@example.com", acc.Email)

	_, err = svc.GetAccount(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFoundAccount)

	_, err = svc.GetAccount(ctx, 0)
	assert.ErrorIs(t, err, ErrNotFoundAccount)
}
