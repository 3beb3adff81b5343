package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/meal-ticket/internal/employee"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a sample roster",
	Long:  `Seed the database with sample employees for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, gormDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		sample := []employee.Employee{
			{Name: "Ivanova", Code: "1234"},
			{Name: "Petrov", Code: "5678"},
			{Name: "Sidorova", Code: "9012"},
		}

		for _, emp := range sample {
			var existing employee.Employee
			err := gormDB.Where("code = ?", emp.Code).First(&existing).Error
			if err == nil {
				fmt.Printf("employee with code %s already exists, skipping\n", emp.Code)
				continue
			}
			if err := gormDB.Create(&emp).Error; err != nil {
				log.Fatalf("failed to seed employee %s: %v", emp.Name, err)
			}
			fmt.Printf("seeded employee %s (code %s)\n", emp.Name, emp.Code)
		}
	},
}
