package user

import (
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
	"github.com/saulo-duarte/aptitude-lambda/internal/result"
	"gorm.io/gorm"
)

type Container struct {
	Handler *Handler
	Service UserService
}

func NewContainer(db *gorm.DB, results result.ResultService, sessions *auth.SessionManager, cookies auth.CookieConfig) *Container {
	repo := NewRepository(db)
	service := NewService(repo)

	return &Container{
		Handler: NewHandler(service, results, sessions, cookies),
		Service: service,
	}
}
