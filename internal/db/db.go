package db

import (
	"database/sql"
	"log"

	_ "github.com/go-sql-driver/mysql"
)

func InitDB(dbURL string) *sql.DB {
	db, err := sql.Open("mysql", dbURL)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	err = db.Ping()
	if err != nil {
		log.Fatal("Database is not responding:", err)
	}

	log.Println("Connected to database")
	return db
}

func RunMigrations(db *sql.DB) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(100) NOT NULL,
			email VARCHAR(100) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			speaker_status VARCHAR(20) NOT NULL DEFAULT 'none',
			speaker_bio TEXT,
			speaker_topics TEXT,
			speaker_image VARCHAR(500),
			speaker_request_date DATETIME NULL,
			speaker_approval_date DATETIME NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY users_email_unique (email),
			UNIQUE KEY users_username_unique (username)
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			date DATE NOT NULL,
			start_time CHAR(5) NOT NULL,
			end_time CHAR(5) NOT NULL,
			location VARCHAR(200) NOT NULL,
			address VARCHAR(300),
			image VARCHAR(500),
			is_free BOOLEAN NOT NULL DEFAULT FALSE,
			price_amount BIGINT NOT NULL DEFAULT 0,
			price_currency VARCHAR(8),
			category VARCHAR(50),
			organizer_name VARCHAR(100) NOT NULL,
			organizer_image VARCHAR(500),
			organizer_description TEXT,
			organizer_id INT NOT NULL,
			description TEXT,
			long_description TEXT,
			capacity INT NOT NULL,
			room_number INT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			is_upcoming BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			INDEX idx_room_date (room_number, date),
			INDEX idx_organizer (organizer_id),
			FOREIGN KEY (organizer_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS event_schedule (
			id INT AUTO_INCREMENT PRIMARY KEY,
			event_id INT NOT NULL,
			time CHAR(5) NOT NULL,
			title VARCHAR(200) NOT NULL,
			description TEXT,
			FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS tickets (
			id INT AUTO_INCREMENT PRIMARY KEY,
			event_id INT NOT NULL,
			user_id INT NOT NULL,
			ticket_code CHAR(36) NOT NULL,
			qr_code_url MEDIUMTEXT,
			purchase_date DATETIME DEFAULT CURRENT_TIMESTAMP,
			is_paid BOOLEAN NOT NULL DEFAULT FALSE,
			is_free_ticket BOOLEAN NOT NULL DEFAULT FALSE,
			check_in_status VARCHAR(20) NOT NULL DEFAULT 'pending',
			check_in_time DATETIME NULL,
			UNIQUE KEY tickets_code_unique (ticket_code),
			UNIQUE KEY tickets_event_user_unique (event_id, user_id),
			FOREIGN KEY (event_id) REFERENCES events(id),
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS discount_codes (
			id INT AUTO_INCREMENT PRIMARY KEY,
			code VARCHAR(50) NOT NULL,
			value BIGINT NOT NULL,
			type VARCHAR(20) NOT NULL,
			expiration_date DATETIME NULL,
			usage_limit INT NULL,
			times_used INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_by INT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY discount_codes_code_unique (code),
			FOREIGN KEY (created_by) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS speaker_invitations (
			id INT AUTO_INCREMENT PRIMARY KEY,
			event_id INT NOT NULL,
			speaker_id INT NOT NULL,
			organizer_id INT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			invitation_date DATETIME DEFAULT CURRENT_TIMESTAMP,
			response_date DATETIME NULL,
			message TEXT,
			UNIQUE KEY invitations_unique (event_id, speaker_id, organizer_id),
			FOREIGN KEY (event_id) REFERENCES events(id) ON DELETE CASCADE,
			FOREIGN KEY (speaker_id) REFERENCES users(id),
			FOREIGN KEY (organizer_id) REFERENCES users(id)
		);`,
	}

	for _, q := range queries {
		_, err := db.Exec(q)
		if err != nil {
			log.Fatal("Migration failed:", err)
		}
	}
	log.Println("Migrations completed")
}
