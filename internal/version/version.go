// Package version resolves and validates the version string reported by unc.
package version

import (
	"fmt"
	"regexp"
	"runtime/debug"
	"strconv"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// Dev is reported when no release version is known.
const Dev = "dev"

var semverPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z]+(?:\.[0-9A-Za-z]+)*))?(?:\+([0-9A-Za-z]+(?:\.[0-9A-Za-z]+)*))?$`)

// Semver is a parsed release version.
type Semver struct {
	Major, Minor, Patch int
	Prerelease          string
	Build               string
}

// Validate reports whether version is a bare semantic version.
func Validate(version string) error {
	_, err := Parse(version)
	return err
}

// Parse splits a bare semantic version ("1.2.3-rc.1+abc") into its parts.
func Parse(version string) (*Semver, error) {
	m := semverPattern.FindStringSubmatch(version)
	if m == nil {
		return nil, cerr.Newf("invalid semver format: %q", version)
	}
	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return nil, cerr.Wrapf(err, "invalid semver component in %q", version)
		}
		parts[i] = n
	}
	return &Semver{Major: parts[0], Minor: parts[1], Patch: parts[2], Prerelease: m[4], Build: m[5]}, nil
}

// String formats s the way unc --version prints it. Numeric parts lose
// leading zeros.
func (s *Semver) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d.%d", s.Major, s.Minor, s.Patch)
	if s.Prerelease != "" {
		b.WriteString("-" + s.Prerelease)
	}
	if s.Build != "" {
		b.WriteString("+" + s.Build)
	}
	return b.String()
}

// Resolve returns the version to report. A valid stamped version (set with
// -ldflags, optionally "v"-prefixed) wins; otherwise the main module version
// recorded by "go install" is used; otherwise Dev.
func Resolve(stamped string) string {
	return resolve(stamped, debug.ReadBuildInfo)
}

func resolve(stamped string, buildInfo func() (*debug.BuildInfo, bool)) string {
	if v, ok := normalize(stamped); ok {
		return v
	}
	if info, ok := buildInfo(); ok && info != nil {
		if v, ok := normalize(info.Main.Version); ok {
			return v
		}
	}
	return Dev
}

func normalize(v string) (string, bool) {
	s, err := Parse(strings.TrimPrefix(strings.TrimSpace(v), "v"))
	if err != nil {
		return "", false
	}
	return s.String(), true
}
