package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-service/src/pkg/log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
)

// DBInterface hides the concrete connection so repositories can be handed a
// sqlmock-backed instance in tests.
type DBInterface interface {
	GetDB() (*sqlx.DB, error)
}

type Database struct {
	db *sqlx.DB
}

func InitConnection(v *viper.Viper, logger log.Log) (DBInterface, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		v.GetString("mysql.user"),
		v.GetString("mysql.password"),
		v.GetString("mysql.host"),
		v.GetInt("mysql.port"),
		v.GetString("mysql.database"),
	)

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		logger.Error("mysql-init", err.Error(), "open", "")
		return nil, err
	}

	maxOpen := v.GetInt("mysql.max_open_conns")
	if maxOpen == 0 {
		maxOpen = 20
	}
	maxIdle := v.GetInt("mysql.max_idle_conns")
	if maxIdle == 0 {
		maxIdle = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("mysql-init", err.Error(), "ping", "")
		return nil, err
	}

	logger.Info("mysql-init", "connected to database", "init", v.GetString("mysql.database"))
	return &Database{db: db}, nil
}

// NewFromDB wraps an already opened connection, used by tests.
func NewFromDB(db *sqlx.DB) DBInterface {
	return &Database{db: db}
}

func (d *Database) GetDB() (*sqlx.DB, error) {
	if d == nil || d.db == nil {
		return nil, errors.New("database connection is not initialized")
	}
	return d.db, nil
}
