package dao

import (
	"context"
	"fmt"

	"gastroguide/model"
)

var schema = map[Dialect][]string{
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			customer TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			guests INTEGER NOT NULL,
			table_pref TEXT,
			status TEXT DEFAULT 'confirmed',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT,
			price REAL NOT NULL,
			image TEXT,
			available BOOLEAN DEFAULT 1
		)`,
	},
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS bookings (
			id TEXT PRIMARY KEY,
			customer TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			guests INTEGER NOT NULL,
			table_pref TEXT,
			status TEXT DEFAULT 'confirmed',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS menu_items (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT,
			price DOUBLE PRECISION NOT NULL,
			image TEXT,
			available BOOLEAN DEFAULT TRUE
		)`,
	},
}

// InitSchema creates the tables if they do not exist.
func (s *SQLStore) InitSchema(ctx context.Context) error {
	stmts, ok := schema[s.dialect]
	if !ok {
		return fmt.Errorf("%w: unsupported dialect %q", ErrInvalidParam, s.dialect)
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}
	}
	return nil
}

var seedBookings = []model.Booking{
	{ID: "BK001", Customer: "Ajeet Gupta", Email: "ajeetgupta80045@gmail.com", Phone: "+91 8787095611", Date: "2025-12-18", Time: "19:00", Guests: 4, TablePref: "Window-5", Status: model.BookingConfirmed},
	{ID: "BK002", Customer: "Shiv Bhukta", Email: "shivbhukta@gmail.com", Phone: "+91 9876565463", Date: "2025-12-18", Time: "20:30", Guests: 2, TablePref: "Booth-3", Status: model.BookingConfirmed},
}

var seedMenu = []model.MenuItem{
	{Name: "Mediterranean Mezze Platter", Category: "Appetizers", Description: "Hummus, baba ganoush, tzatziki, olives, and pita bread", Price: 12.99, Image: "mezze.jpg"},
	{Name: "Crispy Calamari", Category: "Appetizers", Description: "Lightly fried squid rings with aioli dipping sauce", Price: 14.99, Image: "mezze.jpg"},
	{Name: "Bruschetta Trio", Category: "Appetizers", Description: "Classic tomato, mushroom pâté, and olive tapenade", Price: 10.99, Image: "mezze.jpg"},

	{Name: "Seafood Paella", Category: "Main Course", Description: "Traditional Spanish rice dish with prawns, mussels, and saffron", Price: 28.99, Image: "paella.jpg"},
	{Name: "Lamb Tagine", Category: "Main Course", Description: "Slow-cooked Moroccan lamb with apricots and almonds", Price: 26.99, Image: "tagine.jpg"},
	{Name: "Grilled Sea Bass", Category: "Main Course", Description: "Fresh Mediterranean sea bass with lemon herb butter", Price: 32.99, Image: "seabass.jpg"},
	{Name: "Mushroom Risotto", Category: "Main Course", Description: "Creamy arborio rice with wild mushrooms and parmesan", Price: 22.99, Image: "risotto.jpg"},

	{Name: "Baklava", Category: "Desserts", Description: "Layered phyllo pastry with honey and pistachios", Price: 8.99, Image: "baklava.jpg"},
	{Name: "Tiramisu", Category: "Desserts", Description: "Classic Italian coffee-flavored dessert", Price: 9.99, Image: "baklava.jpg"},
	{Name: "Chocolate Lava Cake", Category: "Desserts", Description: "Warm chocolate cake with molten center and vanilla ice cream", Price: 10.99, Image: "baklava.jpg"},

	{Name: "Fresh Lemonade", Category: "Drinks", Description: "Homemade mint lemonade", Price: 4.99, Image: "mezze.jpg"},
	{Name: "Turkish Coffee", Category: "Drinks", Description: "Traditional strong coffee", Price: 5.99, Image: "mezze.jpg"},
	{Name: "House Sangria", Category: "Drinks", Description: "Red wine with fresh fruits", Price: 8.99, Image: "mezze.jpg"},
}

// Seed inserts the sample bookings and, when the menu is empty, the sample menu.
func (s *SQLStore) Seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, b := range seedBookings {
		_, err := tx.ExecContext(ctx, s.rebind(
			`INSERT INTO bookings (id, customer, email, phone, date, time, guests, table_pref, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT (id) DO NOTHING`),
			b.ID, b.Customer, b.Email, b.Phone, b.Date, b.Time, b.Guests, b.TablePref, string(b.Status))
		if err != nil {
			return fmt.Errorf("seed booking %s: %w", b.ID, err)
		}
	}

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return fmt.Errorf("seed: count menu items: %w", err)
	}
	if count == 0 {
		for _, item := range seedMenu {
			_, err := tx.ExecContext(ctx, s.rebind(
				`INSERT INTO menu_items (name, category, description, price, image, available) VALUES (?, ?, ?, ?, ?, ?)`),
				item.Name, item.Category, item.Description, item.Price, item.Image, true)
			if err != nil {
				return fmt.Errorf("seed menu item %s: %w", item.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	s.logger.Info("database seeded", map[string]interface{}{"menu_seeded": count == 0})
	return nil
}
