package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"xbuildenv/internal/types"
)

const (
	qemuHelperDir   = "/usr/share/elbe/qemu-elbe"
	ccacheHelperDir = "/usr/lib/ccache"
	noCheckGPG      = "--no-check-gpg"
	forceCheckGPG   = "--force-check-gpg"
)

// DefaultBootstrapOptions mirrors the DEBOOTSTRAPOPTS pbuilder ships in its
// system-wide configuration.
var DefaultBootstrapOptions = []string{"--variant=buildd", forceCheckGPG}

type BuilderConfigRequest struct {
	BuildDir   string
	Descriptor types.Descriptor
	Variant    types.Variant
	NoCCache   bool
	// HostArch is the architecture of the machine running pbuilder.
	HostArch string
	// BootstrapOptions replaces DefaultBootstrapOptions as the base option
	// list when non-nil.
	BootstrapOptions []string
}

// bootstrapPlan records the decisions that shape DEBOOTSTRAPOPTS before any
// option is assembled.
type bootstrapPlan struct {
	foreignArch string
	noAuth      bool
}

type BuilderConfigEmitter struct{}

func NewBuilderConfigEmitter() BuilderConfigEmitter {
	return BuilderConfigEmitter{}
}

// Render returns the shell-sourceable pbuilder configuration for the
// request's variant.
func (e BuilderConfigEmitter) Render(ctx context.Context, req BuilderConfigRequest) string {
	assert.NotEmpty(ctx, req.BuildDir, "build directory must be set")
	layout := types.LayoutFor(req.Variant)
	prj := req.Descriptor.Project
	suite := prj.SuiteName()
	base := layout.BaseDir(req.BuildDir)

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("set -e\n")
	fmt.Fprintf(&b, "MIRRORSITE=\"%s\"\n", prj.PrimaryMirror(layout.HostSysrootMirror))
	fmt.Fprintf(&b, "OTHERMIRROR=\"%s\"\n", LocalMirrorEntry(req.BuildDir, suite).Line())
	fmt.Fprintf(&b, "BASETGZ=\"%s\"\n", filepath.Join(base, "base.tgz"))
	fmt.Fprintf(&b, "DISTRIBUTION=\"%s\"\n", suite)
	fmt.Fprintf(&b, "BUILDRESULT=\"%s\"\n", filepath.Join(base, "result"))
	fmt.Fprintf(&b, "APTCACHE=\"%s\"\n", filepath.Join(base, "aptcache"))
	fmt.Fprintf(&b, "HOOKDIR=\"%s\"\n", layout.HookDir(req.BuildDir))
	fmt.Fprintf(&b, "PATH=\"%s:$PATH\"\n", qemuHelperDir)

	plan := planBootstrap(layout, prj, req.HostArch)
	if plan.foreignArch != "" {
		fmt.Fprintf(&b, "ARCHITECTURE=\"%s\"\n", plan.foreignArch)
		b.WriteString("DEBOOTSTRAP=\"qemu-debootstrap\"\n")
	}
	if line := bootstrapOptionsLine(req.BootstrapOptions, plan); line != "" {
		b.WriteString(line + "\n")
	}
	if plan.noAuth {
		b.WriteString("export ALLOWUNTRUSTED=\"yes\"\n")
	}

	fmt.Fprintf(&b, "PBUILDERSATISFYDEPENDSCMD=%s\n", layout.SatisfyDependsCmd)

	if !req.NoCCache {
		ccache := filepath.Join(req.BuildDir, types.CCacheDir)
		fmt.Fprintf(&b, "export CCACHE_DIR=\"%s\"\n", ccache)
		fmt.Fprintf(&b, "export PATH=\"%s:${PATH}\"\n", ccacheHelperDir)
		b.WriteString("EXTRAPACKAGES=ccache\n")
		fmt.Fprintf(&b, "export CCACHE_CONFIGPATH=\"%s\"\n", filepath.Join(ccache, "ccache.conf"))
		b.WriteString("BINDMOUNTS=\"${CCACHE_DIR}\"\n")
	}
	return b.String()
}

func planBootstrap(layout types.VariantLayout, prj *types.Project, hostArch string) bootstrapPlan {
	plan := bootstrapPlan{noAuth: prj.NoAuth()}
	if strings.TrimSpace(hostArch) == "" {
		hostArch = types.DefaultArch
	}
	if layout.ForeignArchBootstrap && prj.Arch() != hostArch {
		plan.foreignArch = prj.Arch()
	}
	return plan
}

// bootstrapOptionsLine returns the DEBOOTSTRAPOPTS assignment for the plan,
// or "" when the inherited options need no change. A foreign arch alone is
// appended to the inherited array. A configured base or disabled
// authentication replaces the array, since --force-check-gpg cannot be
// removed from options pbuilder has not loaded yet.
func bootstrapOptionsLine(configured []string, plan bootstrapPlan) string {
	if configured == nil && !plan.noAuth {
		if plan.foreignArch == "" {
			return ""
		}
		return fmt.Sprintf("DEBOOTSTRAPOPTS=(\"${DEBOOTSTRAPOPTS[@]}\" %s)", shellArray([]string{"--arch=" + plan.foreignArch}))
	}
	return fmt.Sprintf("DEBOOTSTRAPOPTS=(%s)", shellArray(assembleBootstrapOptions(baseOptions(configured), plan)))
}

// assembleBootstrapOptions builds the final option list in one pass from the
// plan. With authentication disabled, --force-check-gpg is never carried
// over.
func assembleBootstrapOptions(base []string, plan bootstrapPlan) []string {
	options := make([]string, 0, len(base)+2)
	for _, opt := range base {
		if plan.noAuth && opt == forceCheckGPG {
			continue
		}
		options = append(options, opt)
	}
	if plan.foreignArch != "" {
		options = append(options, "--arch="+plan.foreignArch)
	}
	if plan.noAuth {
		options = append(options, noCheckGPG)
	}
	return options
}

func baseOptions(configured []string) []string {
	if configured == nil {
		return DefaultBootstrapOptions
	}
	var out []string
	for _, opt := range configured {
		if value := strings.TrimSpace(opt); value != "" {
			out = append(out, value)
		}
	}
	return out
}

func shellArray(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, value := range values {
		quoted = append(quoted, "\""+strings.ReplaceAll(value, "\"", "\\\"")+"\"")
	}
	return strings.Join(quoted, " ")
}
