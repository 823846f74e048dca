package main

import (
	"log"

	"exercise-tracker/internal/config"
	"exercise-tracker/internal/db"
	"exercise-tracker/internal/handler"
	"exercise-tracker/internal/hub"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/router"
	"exercise-tracker/internal/service"
)

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	exerciseRepo := repository.NewExerciseRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)

	wsHub := hub.New(notificationRepo)
	go wsHub.Run()

	notificationService := service.NewNotificationService(notificationRepo, wsHub)
	exerciseService := service.NewExerciseService(exerciseRepo, notificationService)

	exerciseHandler := handler.NewExerciseHandler(exerciseService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	engine := router.New(exerciseHandler, notificationHandler, wsHub, cfg.CORSOrigins)
	log.Printf("backend listening on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
