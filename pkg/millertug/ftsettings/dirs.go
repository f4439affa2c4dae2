package ftsettings

import (
	"os"
	"path/filepath"
)

const appDirName = "millertug"

var osUserConfigDir = os.UserConfigDir
var osUserCacheDir = os.UserCacheDir

// GetConfigFilePath returns the default config file location.
func GetConfigFilePath() (string, error) {
	dir, err := osUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, "config.yaml"), nil
}

// GetLogFilePath returns the default log file location.
func GetLogFilePath() (string, error) {
	dir, err := osUserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, appDirName+".log"), nil
}
