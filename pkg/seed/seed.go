package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"easyhousing_backend/internal/model"
)

// SeedLocations loads the state/city reference data used by the
// registration dropdowns. FirstOrCreate keeps restarts idempotent.
func SeedLocations(db *gorm.DB) {
	locations := map[string][]string{
		"Karnataka":   {"Bangalore", "Mysore", "Mangalore"},
		"Maharashtra": {"Mumbai", "Pune", "Nagpur"},
		"Tamil Nadu":  {"Chennai", "Coimbatore", "Madurai"},
		"Telangana":   {"Hyderabad", "Warangal"},
		"Delhi":       {"New Delhi"},
	}

	for stateName, cityNames := range locations {
		state := model.State{Name: stateName}
		if err := db.FirstOrCreate(&state, model.State{Name: stateName}).Error; err != nil {
			log.Printf("Error seeding state %s: %v", stateName, err)
			continue
		}
		for _, cityName := range cityNames {
			city := model.City{StateID: state.ID, Name: cityName}
			if err := db.FirstOrCreate(&city, model.City{StateID: state.ID, Name: cityName}).Error; err != nil {
				log.Printf("Error seeding city %s: %v", cityName, err)
			}
		}
	}

	log.Println("Location reference data seeded successfully!")
}

// SeedAdmin creates the moderation account if it does not exist yet.
// An empty password skips seeding so production deploys must set one.
func SeedAdmin(db *gorm.DB, username, password string) {
	if password == "" {
		log.Println("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing model.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	admin := model.User{
		Username: username,
		Password: string(hashed),
		UserType: model.UserTypeAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin user: %v", err)
		return
	}

	log.Printf("Admin user %q seeded successfully!", username)
}
