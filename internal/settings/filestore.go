package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/ini.v1"
)

// iniSection is the section holding the launcher settings keys.
const iniSection = "launcher"

// FileStore is an INI-backed Store.
//
// File location:
//   - Windows: %USERPROFILE%\.config\launchersync\settings.ini
//   - Unix: ~/.config/launchersync/settings.ini
//
// Reads and writes go through an in-memory INI document; Save flushes it to
// disk. Missing files and missing keys are not errors.
type FileStore struct {
	path string
	file *ini.File
}

// DefaultStorePath returns the default path for the settings file.
func DefaultStorePath() (string, error) {
	var configDir string

	if runtime.GOOS == "windows" {
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("USERPROFILE environment variable not set")
		}
		configDir = filepath.Join(userProfile, ".config", "launchersync")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config", "launchersync")
	}

	return filepath.Join(configDir, "settings.ini"), nil
}

// OpenFileStore loads the settings file at path. An empty path selects the
// default location. A missing file yields an empty store and no error.
func OpenFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultStorePath()
		if err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &FileStore{path: path, file: ini.Empty()}, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings file: %w", err)
	}

	return &FileStore{path: path, file: file}, nil
}

// Path returns the file this store reads from and saves to.
func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Get(key string) string {
	return fs.file.Section(iniSection).Key(key).String()
}

func (fs *FileStore) GetInt(key string) int {
	return fs.file.Section(iniSection).Key(key).MustInt(0)
}

func (fs *FileStore) Set(key, value string) {
	fs.file.Section(iniSection).Key(key).SetValue(value)
}

func (fs *FileStore) SetInt(key string, value int) {
	fs.file.Section(iniSection).Key(key).SetValue(strconv.Itoa(value))
}

// Save writes the store to disk, creating parent directories as needed.
// The file may hold API tokens, so permissions are restricted to the user.
// Write goes through a temporary file plus rename for atomicity.
func (fs *FileStore) Save() error {
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmpPath := fs.path + ".tmp"
	if err := fs.file.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0600); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("failed to set settings permissions: %w", err)
		}
	}

	if err := os.Rename(tmpPath, fs.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save settings: %w", err)
	}

	return nil
}
