package config

import (
	"log"

	"github.com/spf13/afero"
)

// Initialize writes a default configuration to the directory, keeping any
// file that already exists, then loads the result.
func Initialize(path string, logger *log.Logger) (*Configuration, error) {
	return initialize(afero.NewBasePathFs(afero.NewOsFs(), path), logger)
}

func initialize(fs afero.Fs, logger *log.Logger) (*Configuration, error) {
	exists, err := afero.Exists(fs, ConfigurationName)
	if err != nil {
		return nil, err
	}

	if exists {
		logger.Printf("Keeping existing %s", ConfigurationName)
	} else {
		if err := afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0644); err != nil {
			return nil, err
		}
		logger.Printf("Created %s", ConfigurationName)
	}

	return load(fs)
}
