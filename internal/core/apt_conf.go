package core

import (
	"strings"

	"xbuildenv/internal/types"
)

var allowUntrustedLines = []string{
	// pbuilder-satisfydepends does not pass --force-yes to apt-get.
	`APT::Get::force-yes "true";`,
	`APT::Get::AllowUnauthenticated "true";`,
	// unsigned repositories produce warnings instead of errors
	`Acquire::AllowInsecureRepositories "true";`,
	`Aptitude::CmdLine::Ignore-Trust-Violations "true";`,
}

// RenderAptTrustOverride returns the apt.conf fragment for projects that
// disable authentication. The second value is false when no fragment should
// be written.
func RenderAptTrustOverride(desc types.Descriptor) (string, bool) {
	if !desc.Project.NoAuth() {
		return "", false
	}
	return strings.Join(allowUntrustedLines, "\n") + "\n", true
}
