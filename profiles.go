package ledgerline

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile is a named, reusable import configuration: once a dataset shape has
// been mapped by hand, saving it as a profile makes the next import of the
// same export one command.
type Profile struct {
	Name   string `yaml:"name"`
	Format Format `yaml:"format"`

	Wide *WideConversionConfig `yaml:"wide,omitempty"`
	Long *LongMapping          `yaml:"long,omitempty"`

	Options ReportOptions `yaml:"options"`
}

// Validate checks the profile's internal consistency.
func (p Profile) Validate() error {
	if p.Name == "" {
		return ConfigurationError{Reason: "profile has no name"}
	}
	switch p.Format {
	case FormatWide:
		if p.Wide == nil {
			return ConfigurationError{Reason: fmt.Sprintf("profile %q is wide but has no wide config", p.Name)}
		}
		return p.Wide.Validate()
	case FormatLong:
		if p.Long == nil {
			return ConfigurationError{Reason: fmt.Sprintf("profile %q is long but has no column mapping", p.Name)}
		}
		return p.Long.Validate()
	default:
		return ConfigurationError{Reason: fmt.Sprintf("profile %q has unknown format %q", p.Name, p.Format)}
	}
}

// ProfileStore holds profiles keyed by name, persisted as a single YAML file.
type ProfileStore struct {
	profiles map[string]Profile
}

// NewProfileStore returns an empty store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{profiles: make(map[string]Profile)}
}

// Get returns the named profile.
func (s *ProfileStore) Get(name string) (Profile, bool) {
	p, ok := s.profiles[name]
	return p, ok
}

// Put validates and stores a profile, replacing any previous one of the same
// name.
func (s *ProfileStore) Put(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.profiles[p.Name] = p
	return nil
}

// Delete removes the named profile, reporting whether it existed.
func (s *ProfileStore) Delete(name string) bool {
	_, ok := s.profiles[name]
	delete(s.profiles, name)
	return ok
}

// Names returns all profile names in alphabetical order.
func (s *ProfileStore) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadProfiles reads a profile store from a YAML file. A missing file is an
// empty store, not an error.
func LoadProfiles(path string) (*ProfileStore, error) {
	store := NewProfileStore()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read profiles file %q: %w", path, err)
	}

	var list []Profile
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("could not parse profiles file %q: %w", path, err)
	}
	for _, p := range list {
		if err := store.Put(p); err != nil {
			return nil, fmt.Errorf("profiles file %q: %w", path, err)
		}
	}
	return store, nil
}

// SaveProfiles writes the store to a YAML file, profiles in name order.
func SaveProfiles(path string, store *ProfileStore) error {
	list := make([]Profile, 0, len(store.profiles))
	for _, name := range store.Names() {
		list = append(list, store.profiles[name])
	}
	data, err := yaml.Marshal(list)
	if err != nil {
		return fmt.Errorf("could not marshal profiles: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write profiles file %q: %w", path, err)
	}
	return nil
}
