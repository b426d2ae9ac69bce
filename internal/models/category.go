// Package models contains data structures for the application's domain models.
package models

// Category groups posts under a URL path segment. Categories are created by
// seeding and never change afterwards.
type Category struct {
	Name string `gorm:"size:32;not null" json:"name" yaml:"name"`
	Path string `gorm:"primaryKey;size:32" json:"path" yaml:"path"`
}
