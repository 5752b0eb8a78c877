package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/smartworld/smartdesk/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Reset the meeting-room catalog and insert the demo alerts and sample policies.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(configDir)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		initLogger(cfg)
		lg := logger.LoggerWrapper()

		a, err := buildApp(ctx, cfg, lg)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer a.Close(ctx, lg)
		p := a.Portal

		if err := p.Hierarchy.Init(ctx); err != nil {
			log.Fatalf("failed to load hierarchy: %v", err)
		}

		if clearData {
			n, err := p.Hierarchy.Clear(ctx)
			if err != nil {
				log.Fatalf("failed to clear hierarchy: %v", err)
			}
			fmt.Printf("Cleared %d hierarchy relations\n", n)

			for _, table := range []string{"alerts", "policies", "employee_images"} {
				res := a.Gorm.Exec("DELETE FROM " + table)
				if res.Error != nil {
					log.Fatalf("failed to clear %s: %v", table, res.Error)
				}
				fmt.Printf("Cleared %d rows from %s\n", res.RowsAffected, table)
			}
		}

		if err := p.Rooms.Init(ctx); err != nil {
			log.Fatalf("failed to load meeting rooms: %v", err)
		}
		rooms, err := p.Rooms.Reinitialize(ctx)
		if err != nil {
			log.Fatalf("failed to reset meeting rooms: %v", err)
		}
		fmt.Printf("Seeded %d meeting rooms\n", rooms)

		alerts, err := p.Alerts.SeedDemo(ctx)
		if err != nil {
			log.Fatalf("failed to seed alerts: %v", err)
		}
		if alerts == 0 {
			fmt.Println("alerts already present; skipped demo alerts")
		} else {
			fmt.Printf("Seeded %d demo alerts\n", alerts)
		}

		policies, err := p.Policies.SeedSamples(ctx)
		if err != nil {
			log.Fatalf("failed to seed policies: %v", err)
		}
		if policies == 0 {
			fmt.Println("policies already present; skipped sample policies")
		} else {
			fmt.Printf("Seeded %d sample policies\n", policies)
		}
	},
}
