package fsutils

import (
	"io"
	"os"
)

// ReadFileData reads a file. max == 0 reads everything, max > 0 reads
// the first max bytes and max < 0 reads the last -max bytes.
func ReadFileData(filePath string, max int) (data []byte, err error) {
	if max == 0 {
		return os.ReadFile(filePath)
	}
	var file *os.File
	if file, err = os.Open(filePath); err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	if max > 0 {
		return io.ReadAll(io.LimitReader(file, int64(max)))
	}
	var info os.FileInfo
	if info, err = file.Stat(); err != nil {
		return nil, err
	}
	tail := int64(-max)
	if size := info.Size(); tail < size {
		if _, err = file.Seek(size-tail, io.SeekStart); err != nil {
			return nil, err
		}
	}
	return io.ReadAll(file)
}
