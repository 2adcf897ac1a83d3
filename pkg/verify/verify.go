package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	bshttp "github.com/vakoc/buildstamp/pkg/http"
	"github.com/vakoc/buildstamp/pkg/inspect"
	"github.com/vakoc/buildstamp/pkg/stamperrors"
)

// verifyConcurrency bounds parallel artifact reads in [All].
const verifyConcurrency = 4

// Policy describes what a shipped artifact must look like. Zero-value fields
// are not checked; the zero Policy accepts everything.
type Policy struct {
	// ModulePath is the exact main module path the artifact must report.
	ModulePath string
	// Constraint is a semver range the artifact version must satisfy.
	Constraint string
	// Revision is a full or prefix VCS commit the artifact must be built from.
	Revision string
	// MinGo is the minimum toolchain version.
	MinGo string
	// RequireVCS requires a recorded VCS revision.
	RequireVCS bool
	// ForbidDirty rejects builds with uncommitted changes.
	ForbidDirty bool
}

// Validate reports whether the policy itself can be evaluated.
func (p Policy) Validate() error {
	if p.Constraint != "" {
		if _, err := semver.NewConstraint(p.Constraint); err != nil {
			return fmt.Errorf("%w: constraint %q: %w", stamperrors.ErrInvalidPolicy, p.Constraint, err)
		}
	}

	if p.MinGo != "" {
		if _, err := semver.NewVersion(p.MinGo); err != nil {
			return fmt.Errorf("%w: min go %q: %w", stamperrors.ErrInvalidPolicy, p.MinGo, err)
		}
	}

	return nil
}

// Verify checks the report against the policy, aggregating every violation.
// A nil result means the artifact passes.
func (p Policy) Verify(r *inspect.Report) error {
	if err := p.Validate(); err != nil {
		return err
	}

	var merr *multierror.Error

	if p.ModulePath != "" && r.MainPath != p.ModulePath {
		merr = multierror.Append(merr,
			fmt.Errorf("module path %q does not match %q", r.MainPath, p.ModulePath))
	}

	if p.Constraint != "" {
		if err := p.checkConstraint(r); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if p.Revision != "" && !strings.HasPrefix(r.Revision, p.Revision) {
		merr = multierror.Append(merr,
			fmt.Errorf("revision %q does not match %q", r.Revision, p.Revision))
	}

	if p.RequireVCS && r.Revision == "" {
		merr = multierror.Append(merr, errors.New("no VCS revision recorded"))
	}

	if p.ForbidDirty && r.Dirty {
		merr = multierror.Append(merr, errors.New("built from a dirty working tree"))
	}

	if p.MinGo != "" {
		if err := p.checkMinGo(r); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if err := merr.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %s: %w", stamperrors.ErrVerification, r.Target, err)
	}

	return nil
}

func (p Policy) checkConstraint(r *inspect.Report) error {
	c, err := semver.NewConstraint(p.Constraint)
	if err != nil {
		return fmt.Errorf("%w: constraint %q: %w", stamperrors.ErrInvalidPolicy, p.Constraint, err)
	}

	// Prefer the module version; fall back to the stamped version, which is
	// the only comparable identity for "(devel)" builds.
	for _, candidate := range []string{r.MainVersion, stampedVersion(r)} {
		sv, err := semver.NewVersion(candidate)
		if err != nil {
			continue
		}

		if c.Check(sv) {
			return nil
		}

		return fmt.Errorf("version %q does not satisfy %q", candidate, p.Constraint)
	}

	return fmt.Errorf("no comparable version for constraint %q", p.Constraint)
}

func (p Policy) checkMinGo(r *inspect.Report) error {
	minVer, err := semver.NewVersion(p.MinGo)
	if err != nil {
		return fmt.Errorf("%w: min go %q: %w", stamperrors.ErrInvalidPolicy, p.MinGo, err)
	}

	gv, err := semver.NewVersion(strings.TrimPrefix(r.GoVersion, "go"))
	if err != nil {
		return fmt.Errorf("unparsable go version %q", r.GoVersion)
	}

	if gv.LessThan(minVer) {
		return fmt.Errorf("go version %q is older than %q", r.GoVersion, p.MinGo)
	}

	return nil
}

func stampedVersion(r *inspect.Report) string {
	if r.Stamp == nil {
		return ""
	}

	return r.Stamp.Version
}

// Result is the verification outcome for one target.
type Result struct {
	Report *inspect.Report
	Err    error
	Target string
}

// Passed reports whether the target was read and verified successfully.
func (r Result) Passed() bool {
	return r.Err == nil
}

// All inspects and verifies each target concurrently, returning results in
// input order. Per-target failures are recorded on the Result, not returned.
func All(ctx context.Context, client *bshttp.Client, p Policy, targets []string) ([]Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	results := make([]Result, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)

	for i, target := range targets {
		g.Go(func() error {
			rep, err := inspect.Any(ctx, client, target)
			if err == nil {
				err = p.Verify(rep)
			}

			results[i] = Result{Target: target, Report: rep, Err: err}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("verification aborted: %w", err)
	}

	return results, nil
}

// Failed counts the results that did not pass.
func Failed(results []Result) int {
	n := 0

	for _, r := range results {
		if !r.Passed() {
			n++
		}
	}

	return n
}
