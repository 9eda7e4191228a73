package storage

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Disk stores files under a single base directory that is writable by
// the current process. Paths passed in are always relative to it.
type Disk struct {
	BasePath string
	dirs     cmap.ConcurrentMap[string, bool]
}

func NewDisk(basePath string) (*Disk, error) {
	if err := os.MkdirAll(basePath, 0777); err != nil {
		return nil, err
	}
	return &Disk{
		BasePath: basePath,
		dirs:     cmap.New[bool](),
	}, nil
}

func (s *Disk) GetFullPath(path string) string {
	return filepath.Join(s.BasePath, path)
}

func (s *Disk) EnsureDirExists(dir string) error {
	full := s.GetFullPath(dir)
	if _, ok := s.dirs.Get(full); ok {
		return nil
	}
	if err := os.MkdirAll(full, 0777); err != nil {
		return err
	}
	s.dirs.Set(full, true)
	return nil
}

func (s *Disk) Exists(path string) bool {
	_, err := os.Stat(s.GetFullPath(path))
	return err == nil
}

func (s *Disk) Save(path string, reader io.Reader) (int64, error) {
	fileName := s.GetFullPath(path)
	if err := os.MkdirAll(filepath.Dir(fileName), 0777); err != nil {
		return 0, err
	}
	file, err := os.Create(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(file, reader)
	file.Close()
	return result, err
}

func (s *Disk) Load(path string, writer io.Writer) (int64, error) {
	fileName := s.GetFullPath(path)
	file, err := os.Open(fileName)
	if err != nil {
		return 0, err
	}
	result, err := io.Copy(writer, file)
	file.Close()
	return result, err
}

func (s *Disk) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	fileName := s.GetFullPath(path)
	http.ServeFile(writer, request, fileName)
}

func (s *Disk) Delete(path string) error {
	return os.Remove(s.GetFullPath(path))
}

// DeleteDir removes every file in dir and then the directory itself.
// Cleanup is best-effort: a missing file or directory is not an error,
// the first other failure is reported after the remaining entries have
// been tried.
func (s *Disk) DeleteDir(dir string) error {
	full := s.GetFullPath(dir)
	s.dirs.Remove(full)
	entries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var firstErr error
	for _, entry := range entries {
		err = os.Remove(filepath.Join(full, entry.Name()))
		if err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	if err = os.Remove(full); err != nil && !os.IsNotExist(err) && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// ClassifyError buckets a file-system error for the cleanup warning log.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case os.IsNotExist(err):
		return "not-found"
	case os.IsPermission(err):
		return "permission"
	default:
		return "io"
	}
}
