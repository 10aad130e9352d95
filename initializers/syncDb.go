package initializers

import (
	"github.com/Kariqs/prostore-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.Cart{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return err
	}
	log.Info("Database synced successfully.")
	return nil
}
