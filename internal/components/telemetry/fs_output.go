package telemetry

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"metascrape/internal/components/assert"
)

// FilesystemOutput is a MessageOutput that writes each message to its own file in a directory.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput writes messages into `dir`, creating it if needed. Nothing in
// `dir` is ever removed, if it already has files in it the messages go into a new
// timestamped subdirectory instead.
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	assert.NotEmptyStr(dir)

	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return FilesystemOutput{}, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	if len(entries) == 0 {
		return FilesystemOutput{directory: dir}, nil
	}

	sub, err := os.MkdirTemp(dir, time.Now().Format("20060102-150405-"))
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: sub}, nil
}

// Directory is where the messages are written.
func (o FilesystemOutput) Directory() string {
	return o.directory
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
