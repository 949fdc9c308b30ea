package stub

import (
	"log"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// Connect opens the stub's sqlite database. ":memory:" is what the test
// suites use; cmd/apistub points it at a file so seeded data survives
// restarts.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == ":memory:" {
		log.Println("Using in-memory SQLite")
	} else {
		log.Println("Using SQLite:", dsn)
	}

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&User{}, &Venue{}, &Booking{}); err != nil {
		return nil, err
	}
	return db, nil
}
