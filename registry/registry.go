// Package registry operates the global registry of camera file formats.
package registry

import (
	"sort"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/fbranschke/camorph/format"
)

// A CreateFormat creates a format handler.
type CreateFormat func(logger golog.Logger, opts format.Options) format.Handler

var formatRegistry = map[string]CreateFormat{}

// RegisterFormat registers a format name to a creator.
func RegisterFormat(name string, creator CreateFormat) {
	_, old := formatRegistry[name]
	if old {
		panic(errors.Errorf("trying to register two formats with same name %s", name))
	}
	if creator == nil {
		panic(errors.Errorf("cannot register a nil creator for format %s", name))
	}
	formatRegistry[name] = creator
}

// FormatLookup looks up a format creator by the given name. nil is returned if
// there is no creator registered.
func FormatLookup(name string) CreateFormat {
	return formatRegistry[name]
}

// NewFormat creates the handler registered under name.
func NewFormat(name string, logger golog.Logger, opts format.Options) (format.Handler, error) {
	creator := FormatLookup(name)
	if creator == nil {
		return nil, errors.Errorf("unknown format %q, registered formats are %v", name, RegisteredFormats())
	}
	return creator(logger, opts), nil
}

// RegisteredFormats returns the sorted names of all registered formats.
func RegisteredFormats() []string {
	names := lo.Keys(formatRegistry)
	sort.Strings(names)
	return names
}
