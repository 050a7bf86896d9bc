package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// OpenDB creates and configures a MySQL connection pool for the given DSN
// and verifies it with a ping.
func OpenDB(ctx context.Context, dsn string, log logrus.FieldLogger) (*sql.DB, error) {
	// 1. Open a new connection pool.
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql pool")
	}

	// 2. Configure the connection pool settings.
	// The storefront only touches one row per cart write, so the pool stays small.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 3. Ping the database to verify the connection.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping mysql")
	}

	log.Info("database connection pool established")
	return db, nil
}
