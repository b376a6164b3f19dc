package repository

import (
	"strings"

	"github.com/ikkim/brandsite-backend/pkg/logger"
	"gorm.io/gorm"
)

// deleteByID hard-deletes one row and reports gorm.ErrRecordNotFound when nothing matched,
// so a repeated delete of the same id fails instead of silently succeeding.
func deleteByID(db *gorm.DB, value interface{}, id uint, entity string) error {
	logger.Debug("Deleting row from database", map[string]interface{}{
		"entity": entity,
		"id":     id,
	})

	result := db.Delete(value, id)
	if result.Error != nil {
		logger.Error("Failed to delete row from database", result.Error, map[string]interface{}{
			"entity": entity,
			"id":     id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term literally; pair it with ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
