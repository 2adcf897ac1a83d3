package version

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"

	"github.com/Masterminds/semver/v3"
)

// Build metadata, overridden via ldflags during release builds.
// Defaults cover local development builds.
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"

	// Revision is the VCS commit of the build. When not stamped, it is
	// resolved from the embedded build info.
	Revision = "none"

	// BuildDate is the timestamp of the build. When not stamped, it is
	// resolved from the embedded build info.
	BuildDate = "unknown"
)

// Info is a build identity record. All fields are fixed at build time.
type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

var get = sync.OnceValue(func() Info {
	info := Info{
		Version:   Version,
		Revision:  Revision,
		BuildDate: BuildDate,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.GoVersion = bi.GoVersion

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Revision == "none" {
				info.Revision = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		}
	}

	return info
})

// Get returns the build identity of the running process. Repeated calls
// return identical values.
func Get() Info {
	return get()
}

// String renders the human-readable version line.
func (i Info) String() string {
	return fmt.Sprintf("%s (%s) built %s", i.Version, i.Revision, i.BuildDate)
}

// Number encodes the major and minor components of the version as a float,
// e.g. "1.2.3" yields 1.2. It returns 0 when the version does not parse.
func (i Info) Number() float64 {
	sv, err := semver.NewVersion(i.Version)
	if err != nil {
		return 0
	}

	n, err := strconv.ParseFloat(fmt.Sprintf("%d.%d", sv.Major(), sv.Minor()), 64)
	if err != nil {
		return 0
	}

	return n
}

// CString returns the version string as a NUL-terminated byte sequence.
// The result is a fresh copy on every call.
func (i Info) CString() []byte {
	b := make([]byte, 0, len(i.Version)+1)
	b = append(b, i.Version...)
	b = append(b, 0)

	return b
}

// GetVersionString returns the human-readable version line for the running
// process.
func GetVersionString() string {
	return Get().String()
}
