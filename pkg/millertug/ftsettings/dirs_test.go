package ftsettings

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigFilePath(t *testing.T) {
	saved := osUserConfigDir
	defer func() {
		osUserConfigDir = saved
	}()

	osUserConfigDir = func() (string, error) {
		return "/home/u/.config", nil
	}
	path, err := GetConfigFilePath()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u/.config", "millertug", "config.yaml"), path)

	osUserConfigDir = func() (string, error) {
		return "", errors.New("no config dir")
	}
	_, err = GetConfigFilePath()
	assert.EqualError(t, err, "no config dir")
}

func TestGetLogFilePath(t *testing.T) {
	saved := osUserCacheDir
	defer func() {
		osUserCacheDir = saved
	}()

	osUserCacheDir = func() (string, error) {
		return "/home/u/.cache", nil
	}
	path, err := GetLogFilePath()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/u/.cache", "millertug", "millertug.log"), path)

	osUserCacheDir = func() (string, error) {
		return "", errors.New("no cache dir")
	}
	_, err = GetLogFilePath()
	assert.Error(t, err)
}
