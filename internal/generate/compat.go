package generate

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/aio-labs/aio/internal/meta"
	"github.com/cockroachdb/errors"
)

// ErrIncompatible marks documents whose aio_version constraint excludes the
// running tool.
var ErrIncompatible = errors.New("document requires a different aio version")

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
}

// isDevBuild reports whether toolVersion carries no release number.
func isDevBuild(toolVersion string) bool {
	v := strings.TrimSpace(toolVersion)
	return v == "" || v == "dev"
}

// checkCompatibility validates the version keys of cfg. An unsatisfied
// aio_version constraint is an error; malformed values are warnings.
func checkCompatibility(cfg *meta.Config, toolVersion string) (warnings []string, err error) {
	if raw, ok := cfg.Lookup(meta.KeyAioVersion); ok {
		constraint, cerr := semver.NewConstraint(raw.String())
		switch {
		case cerr != nil:
			warnings = append(warnings, "aio_version "+quote(raw.String())+" is not a valid constraint: "+cerr.Error())
		case isDevBuild(toolVersion):
		default:
			tv, verr := parseSemver(toolVersion)
			if verr != nil {
				warnings = append(warnings, "tool version "+quote(toolVersion)+" is not semver; aio_version not checked")
				break
			}
			if !constraint.Check(tv) {
				return warnings, errors.Mark(
					errors.Newf("aio_version %q does not allow %s", raw.String(), tv.String()),
					ErrIncompatible)
			}
		}
	}

	if raw, ok := cfg.Lookup(meta.KeyVersion); ok {
		if _, verr := parseSemver(raw.String()); verr != nil {
			warnings = append(warnings, "version "+quote(raw.String())+" is not a semantic version")
		}
	}
	return warnings, nil
}

func quote(s string) string { return `"` + s + `"` }
