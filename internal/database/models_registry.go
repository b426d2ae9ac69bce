package database

import "readable/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.Category{},
		&models.Post{},
		&models.Comment{},
	}
}
