package gnomext

import (
	"fmt"
	"strconv"
	"strings"
)

// Resolution is the negotiated (catalog pk, version tag) for one extension.
// Resolved per run and discarded after use.
type Resolution struct {
	// ShellVersion is the map key the resolution came from.
	ShellVersion string

	// VersionTag identifies the downloadable package.
	VersionTag int

	// Version is the extension's own version number.
	Version int
}

// Resolve picks the package version for the running shell. An exact match
// on the shell version wins; otherwise the highest mapped shell version is
// used. The fallback is an explicit maximum over the keys, never map or
// insertion order, since the catalog does not sort the map.
func Resolve(entry *CatalogEntry, shellVersion string) (Resolution, error) {
	if len(entry.ShellVersionMap) == 0 {
		return Resolution{}, fmt.Errorf("%s: catalog entry has no shell versions", entry.UUID)
	}

	if v, ok := entry.ShellVersionMap[shellVersion]; ok {
		return Resolution{ShellVersion: shellVersion, VersionTag: v.PK, Version: v.Version}, nil
	}

	var bestKey string
	for key := range entry.ShellVersionMap {
		if bestKey == "" || compareVersions(key, bestKey) > 0 {
			bestKey = key
		}
	}

	v := entry.ShellVersionMap[bestKey]
	return Resolution{ShellVersion: bestKey, VersionTag: v.PK, Version: v.Version}, nil
}

// compareVersions compares dotted numeric versions ("3.38" < "40" < "48").
// Non-numeric components compare as zero.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			if av > bv {
				return 1
			}
			return -1
		}
	}
	return 0
}
