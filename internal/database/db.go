package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection. The database may
// still be starting when the server boots, so the initial ping is retried
// with backoff for up to a minute before giving up.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := waitForDB(db, time.Minute); err != nil {
		return nil, err
	}
	return db, nil
}

// waitForDB pings the database until it answers or the deadline passes.
// Each attempt is bounded by a short timeout so a hung connection does not
// consume the whole budget.
func waitForDB(db *sql.DB, deadline time.Duration) error {
	var err error
	started := time.Now()
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			return nil
		}
		if time.Since(started) > deadline {
			return fmt.Errorf("database unavailable after %s: %w", deadline, err)
		}
		log.Printf("database not ready: %v; retrying", err)
		time.Sleep(time.Second)
	}
}
