package migration

import (
	"fmt"
	"log"

	"foodgram-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Ingredient{}, &entities.Tag{}); err != nil {
		log.Fatalf("Error migrating catalog database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}, &entities.RecipeIngredient{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Favorite{}, &entities.ShoppingCart{}, &entities.Follow{}); err != nil {
		log.Fatalf("Error migrating relation database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
