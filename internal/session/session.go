// Package session holds the state shared by the views: the display name and
// the card collection of the current run.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/grimoire/internal/card"
	"github.com/arcanaland/grimoire/internal/config"
)

// MinNameLength is the shortest display name accepted
const MinNameLength = 3

var (
	ErrNameRequired  = errors.New("Please fill out this field")
	ErrNameTooShort  = fmt.Errorf("Please use at least %d characters", MinNameLength)
	ErrNameUppercase = errors.New("The first character should be an Uppercase Letter")
)

// Session is the application state passed to the views
type Session struct {
	Name  string
	Cards []card.Card
}

// ValidateName checks a display name before it is submitted.
// The returned error text is meant to be shown to the user as is.
func ValidateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	first, _ := utf8.DecodeRuneInString(name)
	if first < 'A' || first > 'Z' {
		return ErrNameUppercase
	}
	if utf8.RuneCountInString(name) < MinNameLength {
		return ErrNameTooShort
	}
	return nil
}

// state is the on-disk layout of the state file
type state struct {
	Name string `toml:"name"`
}

// Store persists the display name between runs
type Store struct {
	path string
}

// NewStore returns a store backed by the default state file
func NewStore() *Store {
	return &Store{path: config.GetStateFilePath()}
}

// NewStoreAt returns a store backed by the file at path
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// LoadName returns the saved name. ok is false when nothing was saved yet.
func (s *Store) LoadName() (name string, ok bool, err error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return "", false, nil
	}

	var st state
	md, err := toml.DecodeFile(s.path, &st)
	if err != nil {
		return "", false, fmt.Errorf("error decoding state file: %w", err)
	}
	return st.Name, md.IsDefined("name"), nil
}

// SaveName writes name to the state file
func (s *Store) SaveName(name string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("error creating state directory: %w", err)
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("error creating state file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(state{Name: name}); err != nil {
		return fmt.Errorf("error encoding state: %w", err)
	}
	return nil
}

// Restore fills in the session name from the store when it is empty,
// as happens on a fresh start
func (s *Session) Restore(store *Store) error {
	if s.Name != "" {
		return nil
	}
	name, ok, err := store.LoadName()
	if err != nil {
		return err
	}
	if ok {
		s.Name = name
	}
	return nil
}
