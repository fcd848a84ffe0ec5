package config

import (
	"log"

	"equiptrack/internal/adapters/persistence/models"
	"equiptrack/internal/core/domain"
	"equiptrack/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedRoles(); err != nil {
		return err
	}
	if err := s.seedSuperadmin(); err != nil {
		log.Printf("⚠️ Superadmin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedRoles creates the three fixed roles if missing
func (s *Seeder) seedRoles() error {
	names := []string{
		domain.RoleSuperadmin,
		domain.RoleAdminInventory,
		domain.RoleUser,
	}

	for _, name := range names {
		var count int64
		if err := s.db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.db.Create(&models.Role{Name: name}).Error; err != nil {
			return err
		}
		log.Printf("✅ Role created: %s", name)
	}

	return nil
}

// seedSuperadmin seeds the default superadmin user.
// This is for development/testing only; in production, create the first
// superadmin through a secure process and change this password immediately.
func (s *Seeder) seedSuperadmin() error {
	var role models.Role
	if err := s.db.Where("name = ?", domain.RoleSuperadmin).First(&role).Error; err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("role_id = ?", role.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Superadmin already exists
	}

	hashedPassword, err := password.Hash("superadmin123")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:    "superadmin@equiptrack.internal",
		Password: hashedPassword,
		RoleID:   role.ID,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Superadmin user created: %s", admin.Email)
	return nil
}
