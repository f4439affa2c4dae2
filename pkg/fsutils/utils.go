package fsutils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var osUserHomeDir = os.UserHomeDir

// Decoder decodes
type Decoder interface {
	Decode(o interface{}) error
}

// ReadYAMLFile decodes a YAML document into o, rejecting unknown fields.
// An empty file leaves o untouched.
func ReadYAMLFile(filePath string, required bool, o interface{}) error {
	yamlDecoderFactory := func(r io.Reader) Decoder {
		decoder := yaml.NewDecoder(r)
		decoder.KnownFields(true)
		return emptyTolerant{decoder}
	}
	return ReadFile(filePath, required, o, yamlDecoderFactory)
}

type emptyTolerant struct {
	Decoder
}

func (d emptyTolerant) Decode(o interface{}) error {
	if err := d.Decoder.Decode(o); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func ReadFile(filePath string, required bool, o interface{}, newDecoder func(r io.Reader) Decoder) (err error) {
	if filePath == "" {
		if required {
			return fmt.Errorf("file path is required: %w", os.ErrNotExist)
		}
		return nil
	}
	var file *os.File
	if file, err = os.Open(filePath); err != nil {
		if os.IsNotExist(err) && !required {
			err = nil
		}
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close file %v: %w", filePath, closeErr))
		}
	}()
	if err = newDecoder(file).Decode(o); err != nil {
		return fmt.Errorf("failed to decode %v: %w", filePath, err)
	}
	return nil
}

func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// ExpandHome expands leading ~ to the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := osUserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
}
