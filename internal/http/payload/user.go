package payload

import (
	"authapi/internal/core"

	"github.com/jellydator/validation"
	"github.com/jellydator/validation/is"
)

type UserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (u *UserRequest) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Email, validation.Required, validation.Length(3, 100), is.EmailFormat),
		validation.Field(&u.Password, validation.Required),
	)
}

func (u UserRequest) ToCredentials() core.Credentials {
	return core.Credentials{
		Email:    u.Email,
		Password: u.Password,
	}
}
