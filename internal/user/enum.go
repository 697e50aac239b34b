package user

import "github.com/saulo-duarte/aptitude-lambda/internal/auth"

type Role string

const (
	RoleStudent Role = auth.RoleStudent
	RoleAdmin   Role = auth.RoleAdmin
	RoleMentor  Role = auth.RoleMentor
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleMentor:
		return true
	}
	return false
}
