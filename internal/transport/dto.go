package transport

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/Skotchmaster/accounts_admin/internal/models"
	"github.com/Skotchmaster/accounts_admin/internal/util"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type AccountDTO struct {
	ID       uint        `json:"id"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	IsActive bool        `json:"isActive"`
}

func ToAccountDTO(a models.Account) AccountDTO {
	return AccountDTO{
		ID:       a.ID,
		Email:    strings.ToLower(a.Email),
		Role:     a.Role,
		IsActive: a.IsActive,
	}
}

type AuthAccountInfoDTO struct {
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	IsActive bool        `json:"isActive"`
}

func ToAuthAccountInfoDTO(a models.Account) AuthAccountInfoDTO {
	return AuthAccountInfoDTO{
		Email:    strings.ToLower(a.Email),
		Role:     a.Role,
		IsActive: a.IsActive,
	}
}

type TokenPayloadDTO struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type LoginPayloadDTO struct {
	Account AccountDTO      `json:"account"`
	Token   TokenPayloadDTO `json:"token"`
}

type PageMeta struct {
	Page            int   `json:"page"`
	Take            int   `json:"take"`
	TotalItems      int64 `json:"totalItems"`
	PageCount       int64 `json:"pageCount"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

func NewPageMeta(page, take int, total int64) PageMeta {
	count := util.PageCount(total, take)
	return PageMeta{
		Page:            page,
		Take:            take,
		TotalItems:      total,
		PageCount:       count,
		HasPreviousPage: page > 1,
		HasNextPage:     int64(page) < count,
	}
}

type AccountsPage struct {
	Items []AccountDTO `json:"items"`
	Meta  PageMeta     `json:"meta"`
}
