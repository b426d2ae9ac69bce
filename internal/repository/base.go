package repository

import (
	"errors"
	"fmt"

	"readable/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// byTimestamp orders listings oldest first with id as a tiebreaker.
var byTimestamp = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "timestamp"}},
	{Column: clause.Column{Name: "id"}},
}}

// notFoundOr maps gorm.ErrRecordNotFound to a NOT_FOUND AppError and wraps
// anything else with the failing operation.
func notFoundOr(err error, resource, id, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return fmt.Errorf("%s %s: %w", op, resource, err)
}

// passThrough returns AppErrors unchanged and wraps everything else.
func passThrough(err error, op string) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
