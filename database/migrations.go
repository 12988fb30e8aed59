package database

import (
	"fmt"
)

func RunMigrations() error {
	usersTableSQL := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		is_admin BOOLEAN DEFAULT FALSE,
		bio TEXT,
		location TEXT,
		profile_pic VARCHAR(255),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := DB.Exec(usersTableSQL)
	if err != nil {
		return fmt.Errorf("failed to run users migration: %w", err)
	}

	// Migration for users tables created before profile fields existed
	DO_USERS := `
	DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='users' AND column_name='bio') THEN
			ALTER TABLE users ADD COLUMN bio TEXT;
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='users' AND column_name='location') THEN
			ALTER TABLE users ADD COLUMN location TEXT;
		END IF;
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name='users' AND column_name='profile_pic') THEN
			ALTER TABLE users ADD COLUMN profile_pic VARCHAR(255);
		END IF;
	END $$;
	`
	_, err = DB.Exec(DO_USERS)
	if err != nil {
		return fmt.Errorf("failed to run users column migration: %w", err)
	}

	// No ON DELETE CASCADE on purpose: comment cleanup is an explicit
	// application-level step of post deletion so file cleanup can be
	// sequenced with it.
	postsTableSQL := `
	CREATE TABLE IF NOT EXISTS posts (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		kind VARCHAR(10) NOT NULL CHECK (kind IN ('text', 'photo')),
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id);
	`
	_, err = DB.Exec(postsTableSQL)
	if err != nil {
		return fmt.Errorf("failed to run posts migration: %w", err)
	}

	commentsTableSQL := `
	CREATE TABLE IF NOT EXISTS comments (
		id SERIAL PRIMARY KEY,
		post_id INTEGER NOT NULL,
		user_id INTEGER NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);
	CREATE INDEX IF NOT EXISTS idx_comments_user_id ON comments(user_id);
	`
	_, err = DB.Exec(commentsTableSQL)
	if err != nil {
		return fmt.Errorf("failed to run comments migration: %w", err)
	}

	return nil
}
