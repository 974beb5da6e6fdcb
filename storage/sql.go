package storage

import (
	"fmt"
	"time"

	"github.com/alex-pricope/event-judging-system/logging"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverDynamo = "dynamo"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// OpenSQL connects to a sqlite or mysql database and migrates the schema.
func OpenSQL(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(logging.Log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if driver == DriverSQLite {
		// sqlite allows a single writer; in-memory databases live on one connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&Team{}, &Judge{}, &Admin{}, &Evaluation{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logging.Log.Infof("STORAGE: %s database ready", driver)
	return db, nil
}
