package result

import "gorm.io/gorm"

type Container struct {
	Handler *Handler
	Service ResultService
}

func NewContainer(db *gorm.DB) *Container {
	repo := NewRepository(db)
	service := NewService(repo)

	return &Container{
		Handler: NewHandler(service),
		Service: service,
	}
}
