package common

import (
	"os"
	"path/filepath"
)

const defaultSettingsFile = ".image-viewer/settings.db"

type Params struct {
	logLevel     string
	settingsFile string
	inMemory     bool
	filePath     string
}

func NewEmptyParams() *Params {
	return &Params{
		logLevel:     "",
		settingsFile: "",
		inMemory:     false,
		filePath:     "",
	}
}

func NewParams(logLevel string, settingsFile string, inMemory bool, filePath string) *Params {
	if settingsFile == "" {
		settingsFile = DefaultSettingsFile()
	}
	return &Params{
		logLevel:     logLevel,
		settingsFile: settingsFile,
		inMemory:     inMemory,
		filePath:     filePath,
	}
}

// DefaultSettingsFile is in the user's home directory, or in the working
// directory if the home directory is not known.
func DefaultSettingsFile() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, defaultSettingsFile)
	}
	return defaultSettingsFile
}

func (s *Params) LogLevel() string {
	return s.logLevel
}

func (s *Params) SettingsFile() string {
	return s.settingsFile
}

func (s *Params) InMemory() bool {
	return s.inMemory
}

func (s *Params) FilePath() string {
	return s.filePath
}
