package database

import (
	"github.com/pkg/errors"
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/sqlite"
	"os"
	"path/filepath"
	"vincit.fi/image-viewer/common/logger"
)

type Database struct {
	session db.Session
	dbPath  string
}

func NewInMemoryDatabase() *Database {
	logger.Info.Printf("Initializing in-memory database")
	var settings = sqlite.ConnectionURL{
		Database: "memory.db",
		Options: map[string]string{
			"mode": "memory",
		},
	}

	session, err := sqlite.Open(settings)
	if err != nil {
		logger.Error.Fatal("Error opening database ", err)
	}

	database := Database{session: session, dbPath: ":memory:"}

	if _, err := database.Migrate(); err != nil {
		logger.Error.Fatal("Error while running migrations ", err)
	}

	return &database
}

func NewDatabase() *Database {
	return &Database{}
}

// InitializeForFile opens (or creates) the database file and its directory.
func (s *Database) InitializeForFile(dbPath string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return errors.Wrapf(err, "could not create directory for '%s'", dbPath)
	}

	s.dbPath = dbPath
	logger.Info.Printf("Initializing database %s", s.dbPath)
	var settings = sqlite.ConnectionURL{
		Database: s.dbPath,
	}

	session, err := sqlite.Open(settings)
	if err != nil {
		return errors.Wrapf(err, "could not open database '%s'", dbPath)
	}

	s.session = session
	var version map[string]interface{}
	if err = s.session.SQL().Select(db.Func("sqlite_version")).One(&version); err == nil {
		logger.Info.Printf("Database initialized. Using SQLite version %s", version["sqlite_version()"])
	}

	return nil
}

func (s *Database) Migrate() (TableExist, error) {
	logger.Info.Printf("Running migrations")
	tablesExists := s.doesTablesExists()

	if !tablesExists {
		logger.Info.Print("Initial databases don't exist. Creating...")
		err := s.session.Tx(func(session db.Session) error {
			_, err := session.SQL().Exec(`
				CREATE TABLE migration (
					id TEXT PRIMARY KEY
				)
			`)
			return err
		})

		if err != nil {
			return TableNotExist, errors.Wrap(err, "could not create migration table")
		}
	}

	logger.Info.Print("Start migrations...")
	if err := s.migrate(); err != nil {
		return TableNotExist, err
	}
	logger.Info.Print("All migrations done")

	if tablesExists {
		return TableExists, nil
	} else {
		return TableNotExist, nil
	}
}

func (s *Database) doesTablesExists() bool {
	rows, err := s.session.SQL().Query(`
		SELECT name FROM sqlite_master WHERE type='table' AND name= 'migration';
	`)

	if err != nil {
		return false
	}

	defer rows.Close()
	return rows.Next()
}

func (s *Database) Session() db.Session {
	return s.session
}

func (s *Database) migrate() error {
	return s.session.Tx(func(session db.Session) error {
		if migrationStatusesById, err := s.findAlreadyRunMigrations(session); err != nil {
			return err
		} else {
			for _, migration := range migrations {
				if err := s.runMigration(session, migration, migrationStatusesById); err != nil {
					logger.Error.Print("Failed to run migration ", err)
					return err
				}
			}

			logger.Debug.Printf("Commit migrations")
			return nil
		}
	})
}

func (s *Database) runMigration(session db.Session, migration migration, migrationStatusesById map[MigrationId]bool) error {
	migrationId := migration.id
	if _, found := migrationStatusesById[migrationId]; found {
		logger.Debug.Printf("Migration %d is already done", migrationId)
		return nil
	}

	logger.Info.Printf("Running migration %d: %s", migrationId, migration.description)
	if _, err := session.SQL().Exec(`INSERT INTO migration (id) VALUES (?)`, migrationId); err != nil {
		return errors.Wrapf(err, "could not mark migration %d", migrationId)
	}
	if _, err := session.SQL().Exec(migration.query); err != nil {
		return errors.Wrapf(err, "migration %d failed", migrationId)
	}
	return nil
}

func (s *Database) findAlreadyRunMigrations(session db.Session) (map[MigrationId]bool, error) {
	var runMigrationIds []Migration
	if err := session.Collection("migration").Find().All(&runMigrationIds); err != nil {
		return nil, err
	} else {
		var migrationStatusesById = map[MigrationId]bool{}
		for _, migration := range runMigrationIds {
			migrationStatusesById[migration.Id] = true
		}
		return migrationStatusesById, nil
	}
}

func (s *Database) Close() error {
	logger.Info.Printf("Closing database %s", s.dbPath)
	if s.session != nil {
		if err := s.session.Close(); err != nil {
			logger.Error.Print("Error while trying to close database ", err)
			return err
		}
		s.session = nil
	} else {
		logger.Warn.Printf("No database instance to close")
	}
	return nil
}
