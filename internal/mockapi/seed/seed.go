package seed

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/diplomas-2025/agro-market/internal/mockapi/auth"
	"github.com/diplomas-2025/agro-market/internal/mockapi/domain"
)

//go:embed seed.yaml
var catalogue []byte

type Catalogue struct {
	Categories []CategorySeed `yaml:"categories"`
}

type CategorySeed struct {
	Name     string        `yaml:"name"`
	Products []ProductSeed `yaml:"products"`
}

type ProductSeed struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Stock       int     `yaml:"stock"`
	Image       string  `yaml:"image"`
}

// Parse decodes a catalogue document.
func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("parse catalogue: category without name")
		}
	}
	return &c, nil
}

// Default is the embedded catalogue.
func Default() (*Catalogue, error) { return Parse(catalogue) }

// Apply inserts the catalogue unless products already exist, then makes sure
// the admin account is present.
func Apply(ctx context.Context, db *gorm.DB, c *Catalogue, adminEmail, adminPassword string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Product{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			for _, cs := range c.Categories {
				cat := domain.Category{Name: cs.Name}
				if err := tx.Where(domain.Category{Name: cs.Name}).FirstOrCreate(&cat).Error; err != nil {
					return fmt.Errorf("seed category %q: %w", cs.Name, err)
				}
				for _, ps := range cs.Products {
					p := domain.Product{
						Name:        ps.Name,
						Description: ps.Description,
						Price:       ps.Price,
						Stock:       ps.Stock,
						Image:       ps.Image,
						CategoryID:  cat.ID,
					}
					if err := tx.Create(&p).Error; err != nil {
						return fmt.Errorf("seed product %q: %w", ps.Name, err)
					}
				}
			}
		}

		if adminEmail == "" {
			return nil
		}
		var admins int64
		if err := tx.Model(&domain.User{}).Where("email = ?", adminEmail).Count(&admins).Error; err != nil {
			return err
		}
		if admins > 0 {
			return nil
		}
		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return err
		}
		return tx.Create(&domain.User{Username: "admin", Email: adminEmail, PasswordHash: hash, IsAdmin: true}).Error
	})
}
