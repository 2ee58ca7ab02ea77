package seed

import (
	_ "embed"
	"errors"
	"fmt"

	"blogicum/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed catalog.yml
var catalogYAML []byte

// CatalogCategory is one built-in category.
type CatalogCategory struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Hidden      bool   `yaml:"hidden"`
}

// CatalogLocation is one built-in location.
type CatalogLocation struct {
	Name   string `yaml:"name"`
	Hidden bool   `yaml:"hidden"`
}

// Catalog is the set of categories and locations a fresh install starts with.
type Catalog struct {
	Categories []CatalogCategory `yaml:"categories"`
	Locations  []CatalogLocation `yaml:"locations"`
}

// LoadCatalog decodes the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	return parseCatalog(catalogYAML)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	seen := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if cat.Slug == "" || cat.Title == "" {
			return nil, fmt.Errorf("catalog category %q: title and slug are required", cat.Slug)
		}
		if seen[cat.Slug] {
			return nil, fmt.Errorf("catalog category %q listed twice", cat.Slug)
		}
		seen[cat.Slug] = true
	}
	return &c, nil
}

// SeedCatalog upserts the built-in categories (by slug) and locations (by
// name). Running it again refreshes titles and visibility without duplicating rows.
func SeedCatalog(db *gorm.DB) ([]models.Category, []models.Location, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return nil, nil, err
	}

	categories := make([]models.Category, 0, len(catalog.Categories))
	for _, item := range catalog.Categories {
		category := models.Category{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
			IsPublished: !item.Hidden,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "is_published"}),
		}).Create(&category).Error
		if err != nil {
			return nil, nil, fmt.Errorf("seed category %s: %w", item.Slug, err)
		}
		if err := db.Where("slug = ?", item.Slug).First(&category).Error; err != nil {
			return nil, nil, fmt.Errorf("reload category %s: %w", item.Slug, err)
		}
		categories = append(categories, category)
	}

	locations := make([]models.Location, 0, len(catalog.Locations))
	for _, item := range catalog.Locations {
		var location models.Location
		err := db.Where("name = ?", item.Name).First(&location).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			location = models.Location{Name: item.Name, IsPublished: !item.Hidden}
			if err := db.Create(&location).Error; err != nil {
				return nil, nil, fmt.Errorf("seed location %s: %w", item.Name, err)
			}
		case err != nil:
			return nil, nil, fmt.Errorf("seed location %s: %w", item.Name, err)
		default:
			if location.IsPublished == item.Hidden {
				location.IsPublished = !item.Hidden
				if err := db.Model(&location).Update("is_published", location.IsPublished).Error; err != nil {
					return nil, nil, fmt.Errorf("seed location %s: %w", item.Name, err)
				}
			}
		}
		locations = append(locations, location)
	}

	return categories, locations, nil
}
