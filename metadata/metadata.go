// Package metadata provides the song catalog.
//
// It loads the static song dataset, mirrors it into an SQLite database
// for the browse APIs (/songs, /moods), and hands the immutable snapshot
// of all songs to the recommender.
package metadata

import (
	"fmt"

	"github.com/yugank-123/Mood2music/model"

	"github.com/cdfmlr/crud/log"
	"github.com/cdfmlr/crud/orm"
	"github.com/gin-gonic/gin"

	"github.com/glebarez/sqlite" // pure go sqlite driver
	"gorm.io/gorm"
)

var logger = log.ZoneLogger("mood2music/metadata")

// DefaultDSN keeps the catalog in memory: the dataset file is the only
// thing that persists.
const DefaultDSN = "file:mood2music?mode=memory&cache=shared"

// Start the metadata module: connect the database, register the Song
// model and the browse routes.
//
// There should be only one metadata module in a program.
// The metadata module should be started before audiofilestore modules.
func Start(dbDSN string, router gin.IRouter) error {
	if dbDSN == "" {
		dbDSN = DefaultDSN
	}
	if err := connectDB(dbDSN); err != nil {
		return err
	}

	orm.RegisterModel(&model.Song{})

	if router != nil {
		registerRoutes(router)
	}

	logger.WithField("dsn", dbDSN).Info("Start: catalog database ready")
	return nil
}

func connectDB(dsn string) error {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: log.Logger4Gorm,
	})
	if err != nil {
		return fmt.Errorf("metadata: open %s: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	// an in-memory database lives as long as its last connection:
	// keep exactly one and never recycle it.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	orm.DB = db
	return nil
}
