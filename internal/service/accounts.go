package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/Skotchmaster/accounts_admin/internal/models"
	"github.com/Skotchmaster/accounts_admin/internal/repo"
	"github.com/Skotchmaster/accounts_admin/internal/transport"
	"github.com/Skotchmaster/accounts_admin/internal/util"
)

type AccountLister interface {
	ListAccounts(ctx context.Context, f repo.AccountFilter) ([]models.Account, int64, error)
	FindByID(ctx context.Context, id uint) (*models.Account, error)
}

type AccountService struct {
	Repo AccountLister
}

func (s *AccountService) GetAccounts(ctx context.Context, opts transport.PageOptions) (*transport.AccountsPage, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	filter := BuildFilter(opts)
	items, total, err := s.Repo.ListAccounts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	page := &transport.AccountsPage{
		Items: make([]transport.AccountDTO, 0, len(items)),
		Meta:  transport.NewPageMeta(opts.Page, opts.Take, total),
	}
	for _, it := range items {
		page.Items = append(page.Items, transport.ToAccountDTO(it))
	}
	return page, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id uint) (*models.Account, error) {
	if id == 0 {
		return nil, ErrNotFoundAccount
	}
	account, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFoundAccount
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

type SearchKind int

const (
	SearchNone SearchKind = iota
	SearchID
	SearchEmail
	SearchSubstring
)

// ClassifySearch decides how a free-text search term is matched: a positive
// integer is an id, a well-formed address is an exact email, anything else a
// substring of the email.
func ClassifySearch(term string) (SearchKind, uint) {
	if term == "" {
		return SearchNone, 0
	}
	if n, err := strconv.ParseUint(term, 10, 0); err == nil && n > 0 {
		return SearchID, uint(n)
	}
	if validation.Validate(term, is.Email) == nil {
		return SearchEmail, 0
	}
	return SearchSubstring, 0
}

func BuildFilter(opts transport.PageOptions) repo.AccountFilter {
	offset, limit := util.Calculate(opts.Page, opts.Take)

	f := repo.AccountFilter{
		Email:      opts.Email,
		Roles:      opts.Roles,
		IsActive:   opts.IsActive,
		OrderField: opts.OrderField,
		Desc:       opts.Order == transport.OrderDESC,
		Offset:     offset,
		Limit:      limit,
	}

	switch kind, id := ClassifySearch(opts.Search); kind {
	case SearchID:
		f.ID = id
	case SearchEmail:
		f.SearchEmail = opts.Search
	case SearchSubstring:
		f.EmailLike = opts.Search
	}
	return f
}
