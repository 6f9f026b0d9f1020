package mapping

import (
	v1 "github.com/eslsoft/keymantra/api/keymantra/v1"
	"github.com/eslsoft/keymantra/internal/entity"
)

func ToPbUser(in *entity.User) *v1.User {
	if in == nil {
		return nil
	}
	return &v1.User{
		Id:         in.ID,
		Email:      in.Email,
		Name:       in.Name,
		CreateTime: in.CreatedAt,
		UpdateTime: in.UpdatedAt,
	}
}
