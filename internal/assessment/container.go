package assessment

import (
	"github.com/saulo-duarte/aptitude-lambda/internal/auth"
)

type Container struct {
	Handler *Handler
	Manager *Manager
}

func NewContainer(source QuestionSource, sink ResultSink, sessions *auth.SessionManager, opts Options) *Container {
	manager := NewManager(source, sink, opts)
	sessions.OnTeardown(manager.DiscardOwner)

	return &Container{
		Handler: NewHandler(manager),
		Manager: manager,
	}
}
