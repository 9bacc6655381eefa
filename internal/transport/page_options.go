package transport

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/Skotchmaster/accounts_admin/internal/models"
	"github.com/Skotchmaster/accounts_admin/internal/util"
)

const (
	OrderASC  = "ASC"
	OrderDESC = "DESC"
)

// Sortable fields of the accounts listing, as accepted in orderField.
var OrderFields = []string{"id", "email", "role", "isActive"}

type PageOptions struct {
	Page       int           `json:"page"`
	Take       int           `json:"take"`
	Search     string        `json:"search"`
	Roles      []models.Role `json:"roles"`
	Email      string        `json:"email"`
	IsActive   *bool         `json:"isActive"`
	Order      string        `json:"order"`
	OrderField string        `json:"orderField"`
}

func DefaultPageOptions() PageOptions {
	return PageOptions{
		Page:       util.DefaultPage,
		Take:       util.DefaultTake,
		Order:      OrderASC,
		OrderField: "id",
	}
}

func (o PageOptions) Skip() int {
	return (o.Page - 1) * o.Take
}

// ParsePageOptions reads the listing query string. Malformed numbers and
// booleans are reported per field together with the rule violations.
func ParsePageOptions(q url.Values) (PageOptions, error) {
	opts := DefaultPageOptions()
	parseErrs := validation.Errors{}

	if v := strings.TrimSpace(q.Get("page")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs["page"] = errors.New("must be an integer")
		}
		opts.Page = n
	}
	if v := strings.TrimSpace(q.Get("take")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs["take"] = errors.New("must be an integer")
		}
		opts.Take = n
	}
	if v := strings.TrimSpace(q.Get("isActive")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			parseErrs["isActive"] = errors.New("must be a boolean")
		} else {
			opts.IsActive = &b
		}
	}
	if v := strings.TrimSpace(q.Get("order")); v != "" {
		opts.Order = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(q.Get("orderField")); v != "" {
		opts.OrderField = v
	}

	opts.Search = strings.TrimSpace(q.Get("search"))
	opts.Email = strings.ToLower(strings.TrimSpace(q.Get("email")))
	opts.Roles = ParseRoles(q.Get("roles"))

	err := opts.Validate()
	if len(parseErrs) > 0 {
		var ruleErrs validation.Errors
		if errors.As(err, &ruleErrs) {
			for k, v := range ruleErrs {
				if _, ok := parseErrs[k]; !ok {
					parseErrs[k] = v
				}
			}
		}
		return opts, parseErrs
	}
	return opts, err
}

// ParseRoles splits a comma list. Blank entries are dropped; a list without
// any names yields nil, meaning no role filter.
func ParseRoles(raw string) []models.Role {
	var out []models.Role
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part != "" {
			out = append(out, models.Role(part))
		}
	}
	return out
}

func (o PageOptions) Validate() error {
	orderFields := make([]interface{}, len(OrderFields))
	for i, f := range OrderFields {
		orderFields[i] = f
	}

	return validation.ValidateStruct(&o,
		validation.Field(&o.Page, validation.By(atLeast(1)), validation.Max(util.MaxPage)),
		validation.Field(&o.Take, validation.By(atLeast(1)), validation.Max(util.MaxTake)),
		validation.Field(&o.Roles, validation.By(knownRoles)),
		validation.Field(&o.Email, is.Email),
		validation.Field(&o.Order, validation.In(OrderASC, OrderDESC)),
		validation.Field(&o.OrderField, validation.In(orderFields...)),
	)
}

// atLeast differs from validation.Min in that zero is not skipped as empty.
func atLeast(min int) validation.RuleFunc {
	return func(value interface{}) error {
		n, _ := value.(int)
		if n < min {
			return fmt.Errorf("must be no less than %d", min)
		}
		return nil
	}
}

func knownRoles(value interface{}) error {
	roles, _ := value.([]models.Role)
	for _, r := range roles {
		if !r.IsValid() {
			return fmt.Errorf("unknown role %q", string(r))
		}
	}
	return nil
}
