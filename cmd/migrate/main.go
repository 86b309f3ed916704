package main

import (
	"log"
	"os"

	"noter-be/internal/model"
	"noter-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate all models
	log.Println("Step 1: Running AutoMigrate...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 4. Foreign keys. The services delete dependants explicitly inside a
	// transaction; the cascades keep manual deletes consistent as well.
	log.Println("Step 2: Ensuring foreign key constraints...")
	constraintSQL := []string{
		`ALTER TABLE user_providers DROP CONSTRAINT IF EXISTS fk_user_providers_user;`,
		`ALTER TABLE user_providers ADD CONSTRAINT fk_user_providers_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`,
		`ALTER TABLE folders DROP CONSTRAINT IF EXISTS fk_folders_author;`,
		`ALTER TABLE folders ADD CONSTRAINT fk_folders_author FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE;`,
		`ALTER TABLE folders DROP CONSTRAINT IF EXISTS fk_folders_parent;`,
		`ALTER TABLE folders ADD CONSTRAINT fk_folders_parent FOREIGN KEY (parent_id) REFERENCES folders(id) ON DELETE CASCADE;`,
		`ALTER TABLE notes DROP CONSTRAINT IF EXISTS fk_notes_author;`,
		`ALTER TABLE notes ADD CONSTRAINT fk_notes_author FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE;`,
		`ALTER TABLE notes DROP CONSTRAINT IF EXISTS fk_notes_folder;`,
		`ALTER TABLE notes ADD CONSTRAINT fk_notes_folder FOREIGN KEY (folder_id) REFERENCES folders(id) ON DELETE CASCADE;`,
		`ALTER TABLE bookmarks DROP CONSTRAINT IF EXISTS fk_bookmarks_user;`,
		`ALTER TABLE bookmarks ADD CONSTRAINT fk_bookmarks_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE;`,
		`ALTER TABLE bookmarks DROP CONSTRAINT IF EXISTS fk_bookmarks_note;`,
		`ALTER TABLE bookmarks ADD CONSTRAINT fk_bookmarks_note FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE CASCADE;`,
	}

	for _, sql := range constraintSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Fatalf("Error: Failed to execute constraint SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
