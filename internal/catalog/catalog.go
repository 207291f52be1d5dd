// Package catalog lists the mod loaders and game versions an instance can use.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/mod/semver"
)

const (
	LoaderVanilla = "vanilla"
	LoaderFabric  = "fabric"
	LoaderForge   = "forge"
)

// Loaders in display order
var Loaders = []string{LoaderVanilla, LoaderFabric, LoaderForge}

var gameVersions = []string{"1.8.9", "1.21.10"}

// DefaultGameVersion is used by fresh settings
const DefaultGameVersion = "1.8.9"

// GameVersions returns the supported game versions, newest first
func GameVersions() []string {
	out := make([]string, len(gameVersions))
	copy(out, gameVersions)
	SortVersions(out)
	return out
}

// SortVersions orders Minecraft versions newest first
func SortVersions(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		return CompareVersions(versions[i], versions[j]) > 0
	})
}

// CompareVersions compares two dotted versions ("1.21.10" > "1.8.9").
// Strings that are not semver sort after valid ones.
func CompareVersions(a, b string) int {
	va, vb := canonical(a), canonical(b)
	switch {
	case va == "" && vb == "":
		return strings.Compare(a, b)
	case va == "":
		return -1
	case vb == "":
		return 1
	}
	return semver.Compare(va, vb)
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

// IsLoader reports whether name is a supported loader
func IsLoader(name string) bool {
	for _, l := range Loaders {
		if l == name {
			return true
		}
	}
	return false
}

// IsGameVersion reports whether version is supported
func IsGameVersion(version string) bool {
	for _, v := range gameVersions {
		if v == version {
			return true
		}
	}
	return false
}
