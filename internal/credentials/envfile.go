package credentials

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// EnvFile keeps keys in a project scoped .env file. Unrelated variables in
// the file are preserved and the process environment is never modified.
type EnvFile struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

func NewEnvFile(path string, logger *slog.Logger) *EnvFile {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EnvFile{path: path, logger: logger}
}

// Path returns the file backing the store.
func (e *EnvFile) Path() string { return e.path }

func (e *EnvFile) Load(provider string) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	values, err := e.read()
	if err != nil {
		e.logger.Warn("read credentials file", slog.String("path", e.path), slog.String("error", err.Error()))
		return ""
	}
	return values[EnvVariable(provider)]
}

func (e *EnvFile) Save(provider, key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	values, err := e.read()
	if err != nil {
		e.logger.Warn("read credentials file", slog.String("path", e.path), slog.String("error", err.Error()))
		return false
	}
	values[EnvVariable(provider)] = key
	return e.write(values)
}

func (e *EnvFile) Delete(provider string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	values, err := e.read()
	if err != nil {
		e.logger.Warn("read credentials file", slog.String("path", e.path), slog.String("error", err.Error()))
		return false
	}
	name := EnvVariable(provider)
	if _, ok := values[name]; !ok {
		return true
	}
	delete(values, name)
	return e.write(values)
}

func (e *EnvFile) read() (map[string]string, error) {
	values, err := godotenv.Read(e.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (e *EnvFile) write(values map[string]string) bool {
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			e.logger.Warn("create credentials directory", slog.String("path", dir), slog.String("error", err.Error()))
			return false
		}
	}
	if err := godotenv.Write(values, e.path); err != nil {
		e.logger.Warn("write credentials file", slog.String("path", e.path), slog.String("error", err.Error()))
		return false
	}
	if err := os.Chmod(e.path, 0o600); err != nil {
		e.logger.Debug("restrict credentials file", slog.String("path", e.path), slog.String("error", err.Error()))
	}
	return true
}
