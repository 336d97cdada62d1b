// internal/seed/seed.go
package seed

import (
	"context"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/Sudharmabg/taskhive/internal/repository"
	"github.com/Sudharmabg/taskhive/internal/types"
)

// SeedData creates the demo company and admin account for local development.
// It is idempotent: an existing company means the database is already seeded.
func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	count, err := repos.CompanyRepo.Count(ctx)
	if err != nil {
		log.Printf("[Seed] ❌ Failed to check existing data: %v", err)
		return
	}
	if count > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating demo company and admin account...")

	company := &repository.Company{
		Name: "TaskHive Demo",
		Code: "EMP",
	}
	if err := repos.CompanyRepo.Create(ctx, company); err != nil {
		log.Printf("[Seed] ❌ Failed to create company: %v", err)
		return
	}

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	password, _ := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)

	admin := &repository.User{
		CompanyID:  company.ID,
		EmployeeID: "EMP001",
		Name:       "Admin User",
		Email:      "admin@taskhive.local",
		Password:   string(password),
		Role:       types.RoleAdmin,
		Status:     types.UserActive,
	}
	if err := repos.UserRepo.Create(ctx, admin); err != nil {
		log.Printf("[Seed] ❌ Failed to create admin user: %v", err)
		return
	}

	log.Printf("✅ [Seed] Created company %s with admin %s", company.Code, admin.Email)
}
