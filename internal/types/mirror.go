package types

import "strings"

// MirrorEntry is one APT source line. Entries with a Comment render as a
// shell/APT comment and carry no source.
type MirrorEntry struct {
	Comment    string
	Options    []string
	URI        string
	Suite      string
	Components []string
}

func (e MirrorEntry) Line() string {
	if e.Comment != "" {
		return "# " + e.Comment
	}
	parts := []string{"deb"}
	if len(e.Options) > 0 {
		parts = append(parts, "["+strings.Join(e.Options, " ")+"]")
	}
	parts = append(parts, e.URI)
	if e.Suite != "" {
		parts = append(parts, e.Suite)
	}
	parts = append(parts, e.Components...)
	return ReplaceLocalMachine(strings.Join(parts, " "))
}

// Trusted reports whether the entry's options grant trust without signature
// checking.
func (e MirrorEntry) Trusted() bool {
	return HasTrustOverride(e.Options)
}

// HasTrustOverride reports whether options contain trusted=yes.
func HasTrustOverride(options []string) bool {
	for _, opt := range options {
		if strings.Contains(opt, "trusted=yes") {
			return true
		}
	}
	return false
}

// MirrorSet is the resolver output: source entries in resolution order and
// the armored keys APT must import.
type MirrorSet struct {
	Entries []MirrorEntry
	Keys    []string
}

func (s MirrorSet) Lines() []string {
	lines := make([]string, 0, len(s.Entries))
	for _, entry := range s.Entries {
		lines = append(lines, entry.Line())
	}
	return lines
}
