package auth

import (
	"os"
	"path/filepath"

	"github.com/dydra/dydra/pkg/auth/status"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// DefaultCredentialsFile is the location of the credentials file, relative to the user home directory
const DefaultCredentialsFile = ".dydra/credentials.yaml"

var _ Authable = &FileStore{}

// FileStore persists credentials as a YAML file
type FileStore struct {
	fs   afero.Fs
	path string
}

// StoreOption configures a FileStore
type StoreOption func(*FileStore)

// WithFs sets the file system used to persist credentials (the default is the OS file system)
func WithFs(fs afero.Fs) StoreOption {
	return func(s *FileStore) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithPath sets the credentials file location
func WithPath(path string) StoreOption {
	return func(s *FileStore) {
		if path != "" {
			s.path = path
		}
	}
}

// NewFileStore builds a credentials store backed by a file.
//
// By default, credentials are located at $HOME/.dydra/credentials.yaml.
func NewFileStore(opts ...StoreOption) *FileStore {
	s := &FileStore{
		fs: afero.NewOsFs(),
	}
	for _, apply := range opts {
		apply(s)
	}
	if s.path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		s.path = filepath.Join(home, DefaultCredentialsFile)
	}
	return s
}

// Path to the credentials file
func (s *FileStore) Path() string {
	return s.path
}

// Credentials reads the stored credentials
func (s *FileStore) Credentials() (Credentials, error) {
	var c Credentials
	content, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, status.ErrNoCredentials.Wrapf("no credentials file at %s", s.path)
		}
		return c, status.ErrInvalidCredentials.Wrap(err)
	}
	if err = yaml.Unmarshal(content, &c); err != nil {
		return c, status.ErrInvalidCredentials.Wrap(err)
	}
	return c, nil
}

// Save credentials, replacing any previously stored ones.
// The file is only readable by its owner.
func (s *FileStore) Save(c Credentials) error {
	content, err := yaml.Marshal(c)
	if err != nil {
		return status.ErrCredentialStore.Wrap(err)
	}
	if err = s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return status.ErrCredentialStore.Wrap(err)
	}
	if err = afero.WriteFile(s.fs, s.path, content, 0o600); err != nil {
		return status.ErrCredentialStore.Wrap(err)
	}
	return nil
}

// Remove stored credentials. Removing absent credentials is not an error.
func (s *FileStore) Remove() error {
	err := s.fs.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return status.ErrCredentialStore.Wrap(err)
	}
	return nil
}
