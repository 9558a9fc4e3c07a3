package timezone

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"

	"tzbot/config"
)

//go:embed zones.txt
var embeddedNames string

var ErrUnknownZone = errors.New("timezone is not recognized")

type Validator interface {
	IsValid(candidate string) bool
	Location(name string) (*time.Location, error)
	Names() []string
}

type validatorImpl struct {
	names     map[string]struct{}
	sorted    []string
	locations sync.Map
}

// New builds a Validator over a fixed list of identifiers.
func New(names []string) Validator {
	v := &validatorImpl{
		names: make(map[string]struct{}, len(names)),
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if _, ok := v.names[name]; ok {
			continue
		}

		v.names[name] = struct{}{}
		v.sorted = append(v.sorted, name)
	}

	slices.Sort(v.sorted)

	return v
}

// NewFromConfig reads the recognized set from Store.ZoneinfoDir when configured,
// otherwise from the embedded list.
func NewFromConfig(cfg *config.Config) (Validator, error) {
	dir := cfg.Store.ZoneinfoDir
	if dir == "" {
		names := EmbeddedNames()
		log.Info().Int("zones", len(names)).Msg("Loaded embedded timezone list")

		return New(names), nil
	}

	names, err := NamesFromDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read zoneinfo directory %s: %w", dir, err)
	}

	log.Info().Str("dir", dir).Int("zones", len(names)).Msg("Loaded timezone list from zoneinfo directory")

	return New(names), nil
}

// IsValid reports whether candidate is exactly one of the recognized identifiers.
func (v *validatorImpl) IsValid(candidate string) bool {
	_, ok := v.names[candidate]

	return ok
}

// Location resolves a recognized identifier. Identifiers outside the set, or
// ones the tz database can no longer load, return ErrUnknownZone.
func (v *validatorImpl) Location(name string) (*time.Location, error) {
	if !v.IsValid(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}

	if loc, ok := v.locations.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownZone, name, err)
	}

	v.locations.Store(name, loc)

	return loc, nil
}

func (v *validatorImpl) Names() []string {
	return slices.Clone(v.sorted)
}

// EmbeddedNames returns the identifiers bundled with the binary.
func EmbeddedNames() []string {
	return strings.Fields(embeddedNames)
}

// NamesFromDir walks a zoneinfo tree and returns every file that time.LoadLocation
// accepts, relative to dir.
func NamesFromDir(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}

	var names []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			switch d.Name() {
			case "posix", "right":
				return fs.SkipDir
			}

			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		name := filepath.ToSlash(rel)
		if !isZoneName(name) {
			return nil
		}

		if _, err := time.LoadLocation(name); err != nil {
			return nil
		}

		names = append(names, name)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return names, nil
}

func isZoneName(name string) bool {
	base := filepath.Base(name)
	if strings.Contains(base, ".") {
		return false
	}

	switch base {
	case "Factory", "posixrules", "localtime", "leapseconds", "README", "SECURITY", "VERSION":
		return false
	}

	return base[0] >= 'A' && base[0] <= 'Z'
}
