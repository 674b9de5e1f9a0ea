package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Available   bool               `bson:"available" json:"available"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// DefaultCatalogue is seeded when the menu collection is empty on first start.
func DefaultCatalogue() []MenuItem {
	return []MenuItem{
		{Name: "Masala Dosa", Category: "South Indian", Price: 120, Available: true, Description: "Crisp rice crepe with spiced potato filling"},
		{Name: "Idli Sambar", Category: "South Indian", Price: 80, Available: true, Description: "Steamed rice cakes with lentil stew"},
		{Name: "Paneer Butter Masala", Category: "Main Course", Price: 220, Available: true, Description: "Cottage cheese in tomato butter gravy"},
		{Name: "Veg Biryani", Category: "Main Course", Price: 180, Available: true, Description: "Fragrant basmati rice with vegetables"},
		{Name: "Butter Naan", Category: "Breads", Price: 45, Available: true},
		{Name: "Masala Chai", Category: "Beverages", Price: 30, Available: true},
		{Name: "Fresh Lime Soda", Category: "Beverages", Price: 50, Available: true},
		{Name: "Gulab Jamun", Category: "Desserts", Price: 70, Available: true, Description: "Milk dumplings in cardamom syrup"},
	}
}
