package main

import (
	"context"

	"github.com/saulo-duarte/aptitude-lambda/internal/config"
	"github.com/saulo-duarte/aptitude-lambda/internal/question"
)

func main() {
	ctx := context.Background()
	settings := config.Init()
	log := config.WithContext(ctx)

	if err := config.Connect(ctx, settings.DatabaseDSN); err != nil {
		log.WithError(err).Fatal("Failed to connect to DB")
	}
	if err := config.Migrate(ctx, &question.Question{}); err != nil {
		log.WithError(err).Fatal("Failed to migrate questions table")
	}

	questions, err := question.LoadSeed()
	if err != nil {
		log.WithError(err).Fatal("Invalid seed file")
	}

	svc := question.NewService(question.NewRepository(config.DB))
	if err := svc.ReplaceBank(ctx, questions); err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
	log.Infof("Seeded %d questions", len(questions))
}
