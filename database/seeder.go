package database

import (
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foodshare/foodshare-app/models"
	"github.com/foodshare/foodshare-app/utils"
)

var sampleTitles = []string{
	"Fresh Vegetable Box", "Surplus Bread Loaves", "Cooked Rice Trays",
	"Fruit Basket", "Canned Goods Bundle", "Dairy Assortment",
	"Packed Lunch Boxes", "Bakery Leftovers",
}

var sampleLocations = []string{
	"12 Market Street, Springfield", "45 Oak Avenue, Rivertown",
	"7 Station Road, Hillview", "89 Harbor Lane, Eastport",
}

// Seed wipes and repopulates users and listings with demo data. Only runs
// when SEED_DB=true; never meant for a live database.
func Seed(db *gorm.DB) error {
	if err := db.Exec("DELETE FROM notifications").Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM listings").Error; err != nil {
		return err
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var donors []models.User
	for i := 1; i <= 8; i++ {
		role := models.RoleDonor
		phone, address := "", ""
		if i%2 == 0 {
			role = models.RoleReceiver
			phone = fmt.Sprintf("+1-555-01%02d", i)
			address = sampleLocations[i%len(sampleLocations)]
		}
		user := models.User{
			Name:     fmt.Sprintf("Demo User %d", i),
			Email:    fmt.Sprintf("demo%d@foodshare.dev", i),
			Password: string(hashed),
			Role:     role,
			Phone:    phone,
			Address:  address,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		if role == models.RoleDonor {
			donors = append(donors, user)
		}
	}

	for i := 0; i < 16; i++ {
		donor := donors[rand.Intn(len(donors))]
		listing := models.Listing{
			Title:    sampleTitles[rand.Intn(len(sampleTitles))],
			Quantity: 5 + rand.Intn(16),
			Location: sampleLocations[rand.Intn(len(sampleLocations))],
			Price:    float64(rand.Intn(51)),
			ImageURL: fmt.Sprintf("https://picsum.photos/seed/food%d/400/300", i),
			Quality:  models.QualityGood,
			Verified: rand.Intn(2) == 0,
			Status:   models.ListingStatusAvailable,
			DonorID:  donor.ID,
		}
		if err := db.Create(&listing).Error; err != nil {
			return err
		}
	}

	utils.InfoLogger.Println("Database seeded with demo users and listings")
	return nil
}
