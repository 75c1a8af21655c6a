package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/am3lue/ProjectManagementSystem/internal/component"
	"github.com/am3lue/ProjectManagementSystem/internal/directory"
	"github.com/am3lue/ProjectManagementSystem/internal/project"
	"github.com/am3lue/ProjectManagementSystem/internal/session"
	"github.com/am3lue/ProjectManagementSystem/internal/storage"
	"github.com/am3lue/ProjectManagementSystem/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the record store with sample data",
	Long:  `Seed the record store with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
		slogger := logger.L()

		stores, _, err := initStores(cfg.Storage)
		if err != nil {
			log.Fatalf("failed to init record stores: %v", err)
		}

		ctx := context.Background()

		if clearData {
			for _, key := range []string{storage.KeyUsers, storage.KeyComponents, storage.KeyProjects} {
				if err := stores.Durable().Delete(ctx, key); err != nil {
					log.Fatalf("failed to clear %s: %v", key, err)
				}
			}
			fmt.Println("Cleared existing users, components and projects")
		}

		dir := directory.New(stores.Durable(), slogger)
		sessions := session.NewManager(stores, slogger)

		demoEmail := "demo@mail.com"
		demo, exists := dir.FindByEmail(ctx, demoEmail)
		if exists {
			fmt.Println("demo user already exists:", demoEmail)
		} else {
			rec := directory.UserRecord{
				ID:         time.Now().UnixMilli(),
				FirstName:  "Demo",
				LastName:   "User",
				Email:      demoEmail,
				Password:   "password",
				Role:       "user",
				CreatedAt:  time.Now(),
				Components: []directory.EmbeddedComponent{},
				Projects:   []directory.EmbeddedProject{},
			}
			if err := dir.Insert(ctx, rec); err != nil {
				log.Fatalf("failed to insert demo user: %v", err)
			}
			demo = &rec
			fmt.Println("Seeded demo user:", demoEmail)
		}

		// Components and projects go through the services so validation
		// and creator stamping behave like the API.
		if err := sessions.Login(ctx, *demo, true); err != nil {
			log.Fatalf("failed to open seeding session: %v", err)
		}
		defer func() {
			if err := sessions.Logout(ctx); err != nil {
				log.Printf("failed to close seeding session: %v", err)
			}
		}()

		components := component.NewService(stores.Durable(), sessions, slogger)
		if len(components.List(ctx)) == 0 {
			for _, dto := range []component.ComponentDTO{
				{Name: "AS5600 Magnetic Encoder", Type: "magnetic-sensor", Specs: "12-bit contactless angle sensor, I2C", Status: "available"},
				{Name: "ESP32-WROOM-32", Type: "microcontroller", Specs: "Dual-core 240MHz, WiFi + BT", Status: "in-use"},
				{Name: "SSD1306 OLED", Type: "display", Specs: "128x64 monochrome, I2C", Status: "testing"},
			} {
				if _, err := components.Create(ctx, dto); err != nil {
					log.Fatalf("failed to seed component %q: %v", dto.Name, err)
				}
			}
			fmt.Println("Seeded sample components")
		}

		projects := project.NewService(stores.Durable(), slogger)
		if len(projects.List(ctx)) == 0 {
			for _, dto := range []project.ProjectDTO{
				{Name: "Rotary Position Tracker", Description: "Shaft angle logging with magnetic encoders", Status: "in-progress", Progress: 45, StartDate: "2026-06-01"},
				{Name: "Bench Power Monitor", Description: "Current and voltage telemetry for the lab bench", Status: "planning", Progress: 0},
			} {
				if _, err := projects.Create(ctx, dto); err != nil {
					log.Fatalf("failed to seed project %q: %v", dto.Name, err)
				}
			}
			fmt.Println("Seeded sample projects")
		}
	},
}
