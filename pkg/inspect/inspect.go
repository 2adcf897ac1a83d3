package inspect

import (
	"archive/tar"
	"bytes"
	"context"
	"debug/buildinfo"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"

	bshttp "github.com/vakoc/buildstamp/pkg/http"
	"github.com/vakoc/buildstamp/pkg/stamperrors"
	"github.com/vakoc/buildstamp/pkg/version"
)

const defaultFetchTimeout = 30 * time.Second

// Report is the build identity of a single artifact.
type Report struct {
	// ID uniquely identifies this report.
	ID string `json:"id"`
	// Target is the path or URL the report was produced from.
	Target string `json:"target"`
	// MainPath is the module path of the artifact's main module.
	MainPath string `json:"mainPath"`
	// MainVersion is the module version of the artifact's main module.
	MainVersion string `json:"mainVersion"`
	// MainSum is the module checksum, when recorded.
	MainSum string `json:"mainSum,omitempty"`
	// GoVersion is the toolchain version that produced the artifact.
	GoVersion string `json:"goVersion"`
	// Revision is the VCS commit the artifact was built from.
	Revision string `json:"revision,omitempty"`
	// RevisionTime is the commit timestamp.
	RevisionTime string `json:"revisionTime,omitempty"`
	// Dirty reports whether the build had uncommitted changes.
	Dirty bool `json:"dirty"`
	// Settings holds the remaining recorded build settings.
	Settings map[string]string `json:"settings,omitempty"`
	// Deps is the number of module dependencies recorded in the artifact.
	Deps int `json:"deps"`
	// Stamp carries ldflags-injected identity, only known for the running
	// process.
	Stamp *version.Info `json:"stamp,omitempty"`
}

func fromBuildInfo(bi *buildinfo.BuildInfo, target string) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		Target:      target,
		MainPath:    bi.Main.Path,
		MainVersion: bi.Main.Version,
		MainSum:     bi.Main.Sum,
		GoVersion:   bi.GoVersion,
		Deps:        len(bi.Deps),
	}

	settings := map[string]string{}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			r.Revision = s.Value
		case "vcs.time":
			r.RevisionTime = s.Value
		case "vcs.modified":
			r.Dirty = s.Value == "true"
		default:
			if s.Value != "" {
				settings[s.Key] = s.Value
			}
		}
	}

	if len(settings) > 0 {
		r.Settings = settings
	}

	return r
}

// File reads the build identity embedded in a compiled Go binary.
func File(path string) (*Report, error) {
	bi, err := buildinfo.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", stamperrors.ErrNoBuildInfo, path, err)
	}

	return fromBuildInfo(bi, path), nil
}

// Read reads the build identity from any binary image.
func Read(r io.ReaderAt, target string) (*Report, error) {
	bi, err := buildinfo.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", stamperrors.ErrNoBuildInfo, target, err)
	}

	return fromBuildInfo(bi, target), nil
}

// Archive reads the build identity of the first Go binary found inside a
// gzipped release archive (.tar.gz, .tgz, or .gz).
func Archive(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file.

	switch {
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		return fromTarGz(f, path)
	case strings.HasSuffix(path, ".gz"):
		return fromGz(f, path)
	}

	return nil, fmt.Errorf("%w: %s", stamperrors.ErrUnsupportedArchive, path)
}

func fromTarGz(r io.Reader, target string) (*Report, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read gzip: %w", err)
	}

	tr := tar.NewReader(gz)

	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read tar: %w", err)
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("failed to read tar entry: %w", err)
		}

		rep, err := Read(bytes.NewReader(data), target)
		if err == nil {
			return rep, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", stamperrors.ErrEmptyArchive, target)
}

func fromGz(r io.Reader, target string) (*Report, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read gzip: %w", err)
	}

	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return Read(bytes.NewReader(data), target)
}

// URL fetches a remote artifact and reads its build identity. A nil client
// uses a default with a 30s timeout.
func URL(ctx context.Context, client *bshttp.Client, url string) (*Report, error) {
	if client == nil {
		client = bshttp.NewClient(defaultFetchTimeout)
	}

	data, err := client.GetOK(ctx, url)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(url, ".tar.gz"), strings.HasSuffix(url, ".tgz"):
		return fromTarGz(bytes.NewReader(data), url)
	case strings.HasSuffix(url, ".gz"):
		return fromGz(bytes.NewReader(data), url)
	}

	return Read(bytes.NewReader(data), url)
}

// Any dispatches to [URL], [Archive], or [File] based on the target.
func Any(ctx context.Context, client *bshttp.Client, target string) (*Report, error) {
	switch {
	case strings.HasPrefix(target, "http://"), strings.HasPrefix(target, "https://"):
		return URL(ctx, client, target)
	case strings.HasSuffix(target, ".tar.gz"),
		strings.HasSuffix(target, ".tgz"),
		strings.HasSuffix(target, ".gz"):
		return Archive(target)
	}

	return File(target)
}

// Self reports the build identity of the running process, including the
// stamped version values.
func Self() (*Report, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, fmt.Errorf("%w: running process", stamperrors.ErrNoBuildInfo)
	}

	r := fromBuildInfo(bi, "self")
	info := version.Get()
	r.Stamp = &info

	return r, nil
}
