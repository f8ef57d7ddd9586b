package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/frahmantamala/kpi-portal/internal/auth"
	"github.com/frahmantamala/kpi-portal/internal/core/datamodel"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
	workgroupDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/workgroup"
)

const seedPassword = "password"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample users and a workgroup for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, _, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if err := seed(ctx, db, cfg.Security.BCryptCost, clearData); err != nil {
			log.Fatalf("seed: %v", err)
		}
	},
}

type seedUser struct {
	Email             string
	Name              string
	IsAdmin           bool
	IsTechnicalDeputy bool
	Role              string
}

var seedUsers = []seedUser{
	{Email: "admin@kpi.local", Name: "Portal Admin", IsAdmin: true},
	{Email: "deputy@kpi.local", Name: "Technical Deputy", IsTechnicalDeputy: true},
	{Email: "strategist@kpi.local", Name: "Sara Strategist", Role: workgroupDatamodel.RoleStrategist},
	{Email: "writer@kpi.local", Name: "Reza Writer", Role: workgroupDatamodel.RoleWriter},
}

const seedWorkgroupName = "Editorial"

// seed is idempotent: rows that already exist are left untouched.
func seed(ctx context.Context, db *gorm.DB, bcryptCost int, clearFirst bool) error {
	hash, err := auth.HashPassword(seedPassword, bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if clearFirst {
			if err := clearTables(tx); err != nil {
				return err
			}
			fmt.Println("Cleared existing data")
		}

		wg := workgroupDatamodel.Workgroup{}
		if err := tx.Where("name = ?", seedWorkgroupName).
			Attrs(workgroupDatamodel.Workgroup{
				Name:        seedWorkgroupName,
				Description: "Sample content workgroup",
				IsActive:    true,
			}).
			FirstOrCreate(&wg).Error; err != nil {
			return fmt.Errorf("failed to seed workgroup: %w", err)
		}
		fmt.Println("Seeded workgroup:", wg.Name)

		for _, su := range seedUsers {
			u := userDatamodel.User{}
			if err := tx.Where("email = ?", su.Email).
				Attrs(userDatamodel.User{
					Email:             su.Email,
					Name:              su.Name,
					PasswordHash:      hash,
					IsAdmin:           su.IsAdmin,
					IsTechnicalDeputy: su.IsTechnicalDeputy,
					IsActive:          true,
				}).
				FirstOrCreate(&u).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", su.Email, err)
			}
			fmt.Println("Seeded user:", su.Email)

			if su.Role == "" {
				continue
			}
			m := workgroupDatamodel.WorkgroupMember{}
			if err := tx.Where("workgroup_id = ? AND user_id = ? AND role = ?", wg.ID, u.ID, su.Role).
				Attrs(workgroupDatamodel.WorkgroupMember{WorkgroupID: wg.ID, UserID: u.ID, Role: su.Role}).
				FirstOrCreate(&m).Error; err != nil {
				return fmt.Errorf("failed to seed membership for %s: %w", su.Email, err)
			}
		}

		fmt.Printf("All seed users share the password %q\n", seedPassword)
		return nil
	})
}

// clearTables empties every table, children first.
func clearTables(tx *gorm.DB) error {
	models := datamodel.All()
	for i := len(models) - 1; i >= 0; i-- {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(models[i]).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", models[i], err)
		}
	}
	return nil
}
