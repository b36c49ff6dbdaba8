package settings

import (
	"github.com/pkg/errors"
	"time"
	"vincit.fi/image-viewer/api"
	"vincit.fi/image-viewer/backend/database"
	"vincit.fi/image-viewer/common/config"
	"vincit.fi/image-viewer/common/logger"
)

type Store struct {
	database *database.Database
	settings *database.SettingStore
	status   *database.StatusStore
	sender   api.Sender

	api.SettingsStore
}

func NewStore(db *database.Database, sender api.Sender) *Store {
	return &Store{
		database: db,
		settings: database.NewSettingStore(db),
		status:   database.NewStatusStore(db),
		sender:   sender,
	}
}

// Load returns the stored settings on top of the defaults. Values that can't
// be parsed are logged and replaced by their defaults.
func (s *Store) Load() (*config.Settings, error) {
	settings := config.NewDefaultSettings()
	values, err := s.settings.GetAll()
	if err != nil {
		return settings, errors.Wrap(err, "could not load settings")
	}
	for _, decodeErr := range decode(settings, values) {
		logger.Warn.Printf("Ignoring stored value: %s", decodeErr)
	}
	settings.Sanitize()
	logger.Debug.Printf("Loaded %d stored settings", len(values))
	return settings, nil
}

func (s *Store) Save(settings *config.Settings) error {
	saved := settings.Copy()
	saved.Sanitize()
	if err := s.settings.PutAll(encode(saved)); err != nil {
		return errors.Wrap(err, "could not save settings")
	}
	if err := s.status.UpdateTimestamp(database.SettingsSaved, time.Now()); err != nil {
		logger.Warn.Printf("Could not update save timestamp: %s", err)
	}
	logger.Debug.Printf("Settings saved")

	if s.sender != nil {
		s.sender.SendCommandToTopic(api.SettingsChanged, &api.SettingsChangedCommand{
			Settings: saved.Copy(),
		})
	}
	return nil
}

// LastSaved returns the time of the latest successful Save.
func (s *Store) LastSaved() (time.Time, bool) {
	status, err := s.status.GetStatus(database.SettingsSaved)
	if err != nil {
		return time.Time{}, false
	}
	return status.Timestamp, true
}

func (s *Store) Close() {
	if err := s.database.Close(); err != nil {
		logger.Error.Print("Error while closing settings ", err)
	}
}
