package outdated

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/ajxudir/pinlock/pkg/errors"
	"github.com/ajxudir/pinlock/pkg/manifest"
	"github.com/ajxudir/pinlock/pkg/registry"
	"github.com/ajxudir/pinlock/pkg/verbose"
	"github.com/ajxudir/pinlock/pkg/warnings"
)

const (
	reasonUnsupported = "not a plain semver spec"
	reasonNotFound    = "not found in registry"
)

// LatestFetcher resolves the latest published version of a package.
type LatestFetcher interface {
	Latest(ctx context.Context, name string) (string, error)
}

// Checker compares declared versions with the registry.
type Checker struct {
	// Registry answers latest-version lookups.
	Registry LatestFetcher

	// Concurrency bounds parallel lookups; values below 1 mean 1.
	Concurrency int
}

type lookup struct {
	dep        manifest.Declared
	constraint Constraint
	latest     string
	err        error
}

// Check loads the manifest at path and checks every declared dependency.
//
// Parameters:
//   - ctx: Cancels outstanding lookups
//   - path: Manifest file
//
// Returns:
//   - *Report: Upgrades and skipped entries in manifest order
//   - error: manifest load failure, or *errors.RegistryError for the first
//     failed lookup in manifest order
func (c *Checker) Check(ctx context.Context, path string) (*Report, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return c.CheckManifest(ctx, m)
}

// CheckManifest checks the dependencies of an already loaded manifest.
func (c *Checker) CheckManifest(ctx context.Context, m *manifest.Manifest) (*Report, error) {
	report := &Report{Path: m.Path(), Updates: []Update{}}

	var pending []*lookup
	for _, dep := range m.Declared() {
		constraint, ok := ParseConstraint(dep.Spec)
		if !ok {
			verbose.PackageFiltered(dep.Name, reasonUnsupported+" ("+dep.Spec+")")
			report.Skipped = append(report.Skipped, Skip{Name: dep.Name, Spec: dep.Spec, Reason: reasonUnsupported})
			continue
		}
		pending = append(pending, &lookup{dep: dep, constraint: constraint})
	}

	if err := c.fetchAll(ctx, pending); err != nil {
		return nil, err
	}

	for _, l := range pending {
		if l.err != nil {
			if errors.Is(l.err, registry.ErrNotFound) {
				warnings.Warnf("%s %s; skipping", l.dep.Name, reasonNotFound)
				report.Skipped = append(report.Skipped, Skip{Name: l.dep.Name, Spec: l.dep.Spec, Reason: reasonNotFound})
				continue
			}
			return nil, &apperrors.RegistryError{Package: l.dep.Name, Err: l.err}
		}

		report.Checked++
		if !IsNewer(l.latest, l.constraint.Version) {
			continue
		}
		suggested := l.constraint.WithVersion(l.latest)
		verbose.VersionSelected(l.dep.Name, l.dep.Spec, suggested, "latest dist-tag")
		report.Updates = append(report.Updates, Update{
			Name:      l.dep.Name,
			Section:   l.dep.Section,
			Current:   l.dep.Spec,
			Latest:    l.latest,
			Suggested: suggested,
		})
	}

	return report, nil
}

// fetchAll resolves every lookup with bounded parallelism. Per-package
// failures are stored on the lookup so the caller can report them in
// manifest order; only cancellation of ctx is returned.
func (c *Checker) fetchAll(ctx context.Context, pending []*lookup) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Concurrency, 1))

	for _, l := range pending {
		l := l
		g.Go(func() error {
			l.latest, l.err = c.Registry.Latest(gctx, l.dep.Name)
			return nil
		})
	}

	_ = g.Wait()
	return ctx.Err()
}
