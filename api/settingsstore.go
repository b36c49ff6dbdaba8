package api

import "vincit.fi/image-viewer/common/config"

type SettingsStore interface {
	Load() (*config.Settings, error)
	Save(*config.Settings) error
	Close()
}
