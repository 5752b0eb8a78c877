package auth

import (
	"github.com/smartworld/smartdesk/internal/core/common/validation"
)

type LoginDTO struct {
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("role", d.Role).Required().OneOf(RoleAdmin, RoleUser)
	if d.Role == RoleAdmin {
		v.Field("password", d.Password).Required()
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (d RefreshTokenDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type MeResponse struct {
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
}
