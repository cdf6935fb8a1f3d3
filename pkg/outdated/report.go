package outdated

import (
	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/pinlock/pkg/manifest"
)

// Update is one dependency with a newer upstream version.
type Update struct {
	Name      string           `json:"name"`
	Section   manifest.Section `json:"section"`
	Current   string           `json:"current"`
	Latest    string           `json:"latest"`
	Suggested string           `json:"suggested"`
}

// Skip is one dependency that was not checked.
type Skip struct {
	Name   string `json:"name"`
	Spec   string `json:"spec"`
	Reason string `json:"reason"`
}

// Report is the result of an update check, in manifest order.
type Report struct {
	Path    string   `json:"path"`
	Checked int      `json:"checked"`
	Updates []Update `json:"updates"`
	Skipped []Skip   `json:"skipped,omitempty"`
}

// Upgraded returns the "name -> suggested spec" map in manifest order.
func (r *Report) Upgraded() *orderedmap.OrderedMap {
	out := orderedmap.New()
	out.SetEscapeHTML(false)
	for _, u := range r.Updates {
		out.Set(u.Name, u.Suggested)
	}
	return out
}

// HasUpdates reports whether any dependency can be upgraded.
func (r *Report) HasUpdates() bool {
	return len(r.Updates) > 0
}
