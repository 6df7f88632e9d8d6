// Package bundle converts archive members into fixed-shape .npy bundles.
package bundle

import (
	"path"
	"strings"
)

// Member identifies one convertible archive member.
type Member struct {
	// Name is the full path inside the archive.
	Name string

	// Base is the file name without directories or extension, e.g.
	// "Coffee_TRAIN". Output files keep this name.
	Base string

	// Dataset is Base with the _TRAIN/_TEST suffix stripped, used to
	// match the include list.
	Dataset string

	// Split is "TRAIN" or "TEST".
	Split string
}

// splitMember classifies an archive member path. ok is false when the
// member is not a train/test file of the wanted extension.
func splitMember(name, wantExt string) (Member, bool) {
	ext := path.Ext(name)
	if !strings.EqualFold(ext, wantExt) {
		return Member{}, false
	}

	base := strings.TrimSuffix(path.Base(name), ext)
	var split string
	switch {
	case strings.HasSuffix(base, "_TRAIN"):
		split = "TRAIN"
	case strings.HasSuffix(base, "_TEST"):
		split = "TEST"
	default:
		return Member{}, false
	}

	return Member{
		Name:    name,
		Base:    base,
		Dataset: strings.TrimSuffix(base, "_"+split),
		Split:   split,
	}, true
}

// included reports whether dataset is in the include list.
func included(dataset string, include []string) bool {
	for _, name := range include {
		if name == dataset {
			return true
		}
	}
	return false
}
