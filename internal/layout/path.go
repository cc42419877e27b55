package layout

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const minDeviceSegments = 3

// ErrInvalidRequest is returned when a setting path is not part of the
// repository layout.
var ErrInvalidRequest = errors.New("invalid setting request")

// SettingPath returns the path of the setting file named by segments inside
// root. Requests under devices/ need a hostname and a HostSpec entry; every
// other request must name an entry of RepoSpec.
func SettingPath(root string, segments []string) (string, error) {
	if len(segments) == 0 {
		return "", errors.Wrap(ErrInvalidRequest, "empty path")
	}

	if segments[0] == DevicesDir {
		if len(segments) < minDeviceSegments {
			return "", errors.Wrapf(ErrInvalidRequest,
				"device settings need %s/<hostname>/<file>", DevicesDir)
		}

		if !ValidHostname(segments[1]) {
			return "", errors.Wrapf(ErrInvalidRequest, "invalid hostname %q", segments[1])
		}

		if !KeyPathExists(HostSpec, segments[2:]) {
			return "", errors.Wrapf(ErrInvalidRequest, "%v is not defined in the repository layout", segments)
		}
	} else if !KeyPathExists(RepoSpec, segments) {
		return "", errors.Wrapf(ErrInvalidRequest, "%v is not defined in the repository layout", segments)
	}

	return filepath.Join(append([]string{root}, segments...)...), nil
}
