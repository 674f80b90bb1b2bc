package category

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrEmptyName is returned when a category is created without a name
var ErrEmptyName = errors.New("category name required")

// Service handles category-related business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new category service instance
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List retrieves all categories ordered by name, each with its video count
func (s *Service) List() ([]WithCount, error) {
	var categories []Category
	if err := s.db.Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	type countRow struct {
		CategoryID uint
		Count      int64
	}
	var counts []countRow
	err := s.db.Table("videos").
		Select("category_id, count(*) as count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count videos per category: %w", err)
	}

	countByID := make(map[uint]int64, len(counts))
	for _, row := range counts {
		countByID[row.CategoryID] = row.Count
	}

	result := make([]WithCount, 0, len(categories))
	for _, cat := range categories {
		result = append(result, WithCount{Category: cat, Count: countByID[cat.ID]})
	}
	return result, nil
}

// Create inserts a new category
func (s *Service) Create(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	cat := &Category{Name: name}
	if err := s.db.Create(cat).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return cat, nil
}

// Delete removes a category. Videos referencing it fall back to a null
// category id and surface under the default category on the next upload.
func (s *Service) Delete(id uint) error {
	var cat Category
	if err := s.db.First(&cat, id).Error; err != nil {
		return err
	}

	if err := s.db.Table("videos").Where("category_id = ?", id).
		Update("category_id", nil).Error; err != nil {
		return fmt.Errorf("failed to detach videos: %w", err)
	}

	return s.db.Delete(&cat).Error
}

// EnsureDefault returns the id of the fallback category, creating it on
// first use.
func (s *Service) EnsureDefault() (uint, error) {
	var cat Category
	err := s.db.Where("name = ?", DefaultName).
		FirstOrCreate(&cat, Category{Name: DefaultName}).Error
	if err != nil {
		return 0, fmt.Errorf("failed to ensure default category: %w", err)
	}
	return cat.ID, nil
}
