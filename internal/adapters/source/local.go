package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/remtori/image-resize/internal/core/domain"
	"github.com/rs/zerolog/log"
)

// LocalSource serves files from a directory on disk. Lookups are confined to
// the directory; traversal segments are cleaned out of the path before
// joining.
type LocalSource struct {
	dir string
}

func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{dir: dir}
}

// Fetch reads the file at path relative to the configured directory. A
// missing file returns fs.ErrNotExist untouched; any other read error is
// logged before returning since those point at a misconfigured folder.
func (s *LocalSource) Fetch(_ context.Context, path string) ([]byte, error) {
	full := filepath.Join(s.dir, filepath.Clean("/"+path))

	buf, err := os.ReadFile(full)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", full).Msg("unexpected local read error")
		}
		return nil, err
	}

	return buf, nil
}

func (s *LocalSource) Type() domain.SourceType {
	return domain.SourceLocal
}
