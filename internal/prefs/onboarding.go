package prefs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const onboardingFile = "onboarding.toml"

// Onboarding records that the carousel was finished. Carousel position is
// not stored.
type Onboarding struct {
	Completed   bool      `toml:"completed"`
	CompletedAt time.Time `toml:"completed_at"`
	Session     string    `toml:"session"`
}

// Store reads and writes the onboarding marker under Dir.
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir, or the user config dir when empty.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("user config dir: %w", err)
		}
		dir = filepath.Join(base, "onboard")
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.Dir, onboardingFile)
}

// Load returns the saved marker. A missing file is the zero value.
func (s *Store) Load() (Onboarding, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return Onboarding{}, nil
		}
		return Onboarding{}, fmt.Errorf("read onboarding prefs: %w", err)
	}
	var o Onboarding
	if err := toml.Unmarshal(data, &o); err != nil {
		return Onboarding{}, fmt.Errorf("parse onboarding prefs: %w", err)
	}
	return o, nil
}

// MarkCompleted records completion for session at the given time.
func (s *Store) MarkCompleted(session string, at time.Time) error {
	return s.save(Onboarding{Completed: true, CompletedAt: at.UTC(), Session: session})
}

// Reset removes the marker so onboarding shows again.
func (s *Store) Reset() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove onboarding prefs: %w", err)
	}
	return nil
}

func (s *Store) save(o Onboarding) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("mkdir prefs dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(o); err != nil {
		return fmt.Errorf("encode onboarding prefs: %w", err)
	}
	path := s.path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write onboarding prefs: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename onboarding prefs: %w", err)
	}
	return nil
}
