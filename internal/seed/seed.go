package seed

import (
	"log"

	"cityshare/internal/models"

	"gorm.io/gorm"
)

// Seeder populates the development database with a plausible neighborhood.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll wipes every application table. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.Rating{},
		&models.WishlistEntry{},
		&models.Message{},
		&models.Booking{},
		&models.ImpactStats{},
		&models.Item{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	log.Println("Cleared all tables")
	return nil
}

// Run seeds numUsers users, each with a few items, then scatters bookings
// and conversations across them.
func (s *Seeder) Run(numUsers, itemsPerUser int) error {
	if numUsers < 2 {
		numUsers = 2
	}

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))

	var items []*models.Item
	for _, user := range users {
		for i := 0; i < itemsPerUser; i++ {
			item, err := s.factory.CreateItem(user)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
	}
	log.Printf("Seeded %d items", len(items))

	bookings := 0
	for i, item := range items {
		borrower := users[(i+1)%len(users)]
		if borrower.ID == item.OwnerID {
			continue
		}
		if _, err := s.factory.CreateBooking(item, borrower); err != nil {
			return err
		}
		bookings++
	}
	log.Printf("Seeded %d bookings", bookings)

	messages := 0
	for i := 0; i+1 < len(users); i += 2 {
		a, b := users[i], users[i+1]
		if _, err := s.factory.CreateMessage(a, b); err != nil {
			return err
		}
		if _, err := s.factory.CreateMessage(b, a); err != nil {
			return err
		}
		messages += 2
	}
	log.Printf("Seeded %d messages", messages)

	return nil
}
