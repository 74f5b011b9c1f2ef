package core

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xbuildenv/internal/types"
)

func TestBuilderConfigNativeSameArch(t *testing.T) {
	prj := baseProject()
	prj.BuildImage.Arch = "amd64"

	got := NewBuilderConfigEmitter().Render(t.Context(), BuilderConfigRequest{
		BuildDir:   "/var/cache/elbe/build",
		Descriptor: types.Descriptor{Project: prj},
		Variant:    types.VariantNative,
		HostArch:   "amd64",
	})

	want := strings.Join([]string{
		"#!/bin/sh",
		"set -e",
		`MIRRORSITE="http://deb.debian.org/debian"`,
		`OTHERMIRROR="deb http://127.0.0.1:8080/var/cache/elbe/build/repo bookworm main"`,
		`BASETGZ="/var/cache/elbe/build/pbuilder/base.tgz"`,
		`DISTRIBUTION="bookworm"`,
		`BUILDRESULT="/var/cache/elbe/build/pbuilder/result"`,
		`APTCACHE="/var/cache/elbe/build/pbuilder/aptcache"`,
		`HOOKDIR="/var/cache/elbe/build/pbuilder/hooks.d"`,
		`PATH="/usr/share/elbe/qemu-elbe:$PATH"`,
		"PBUILDERSATISFYDEPENDSCMD=/usr/lib/pbuilder/pbuilder-satisfydepends-experimental",
		`export CCACHE_DIR="/var/cache/elbe/build/ccache"`,
		`export PATH="/usr/lib/ccache:${PATH}"`,
		"EXTRAPACKAGES=ccache",
		`export CCACHE_CONFIGPATH="/var/cache/elbe/build/ccache/ccache.conf"`,
		`BINDMOUNTS="${CCACHE_DIR}"`,
	}, "\n") + "\n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected pbuilderrc (-want +got):\n%s", diff)
	}
}

func TestBuilderConfigForeignArch(t *testing.T) {
	got := NewBuilderConfigEmitter().Render(t.Context(), BuilderConfigRequest{
		BuildDir:   "/build",
		Descriptor: types.Descriptor{Project: baseProject()},
		Variant:    types.VariantNative,
		HostArch:   "amd64",
	})

	assert.Contains(t, got, "ARCHITECTURE=\"armhf\"\nDEBOOTSTRAP=\"qemu-debootstrap\"\n")
	assert.Contains(t, got, "DEBOOTSTRAPOPTS=(\"${DEBOOTSTRAPOPTS[@]}\" \"--arch=armhf\")\n")
	assert.NotContains(t, got, forceCheckGPG)
}

func TestBuilderConfigKeepsInheritedBootstrapOptions(t *testing.T) {
	sameArch := baseProject()
	sameArch.BuildImage.Arch = "amd64"

	tests := []struct {
		name    string
		prj     *types.Project
		variant types.Variant
	}{
		{name: "native same arch", prj: sameArch, variant: types.VariantNative},
		{name: "cross", prj: baseProject(), variant: types.VariantCross},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBuilderConfigEmitter().Render(t.Context(), BuilderConfigRequest{
				BuildDir:   "/build",
				Descriptor: types.Descriptor{Project: tt.prj},
				Variant:    tt.variant,
				HostArch:   "amd64",
			})
			assert.NotContains(t, got, "DEBOOTSTRAPOPTS")
		})
	}
}

func TestBootstrapOptionsLine(t *testing.T) {
	tests := []struct {
		name       string
		configured []string
		plan       bootstrapPlan
		want       string
	}{
		{
			name: "nothing to change",
			want: "",
		},
		{
			name: "foreign arch appends",
			plan: bootstrapPlan{foreignArch: "arm64"},
			want: `DEBOOTSTRAPOPTS=("${DEBOOTSTRAPOPTS[@]}" "--arch=arm64")`,
		},
		{
			name: "noauth rebuilds from defaults",
			plan: bootstrapPlan{noAuth: true},
			want: `DEBOOTSTRAPOPTS=("--variant=buildd" "--no-check-gpg")`,
		},
		{
			name:       "configured base replaces",
			configured: []string{"--variant=minbase"},
			want:       `DEBOOTSTRAPOPTS=("--variant=minbase")`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bootstrapOptionsLine(tt.configured, tt.plan))
		})
	}
}

func TestBuilderConfigNoAuth(t *testing.T) {
	prj := baseProject()
	prj.NoAuthFlag = &types.Marker{}

	tests := []struct {
		name    string
		variant types.Variant
		base    []string
		opts    string
	}{
		{
			name:    "native foreign arch",
			variant: types.VariantNative,
			opts:    `DEBOOTSTRAPOPTS=("--variant=buildd" "--arch=armhf" "--no-check-gpg")`,
		},
		{
			name:    "cross",
			variant: types.VariantCross,
			opts:    `DEBOOTSTRAPOPTS=("--variant=buildd" "--no-check-gpg")`,
		},
		{
			name:    "configured base keeps other options",
			variant: types.VariantCross,
			base:    []string{" --force-check-gpg ", "--include=ca-certificates", ""},
			opts:    `DEBOOTSTRAPOPTS=("--include=ca-certificates" "--no-check-gpg")`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBuilderConfigEmitter().Render(t.Context(), BuilderConfigRequest{
				BuildDir:         "/build",
				Descriptor:       types.Descriptor{Project: prj},
				Variant:          tt.variant,
				HostArch:         "amd64",
				BootstrapOptions: tt.base,
			})
			assert.Contains(t, got, tt.opts+"\n")
			assert.Contains(t, got, "export ALLOWUNTRUSTED=\"yes\"\n")
			assert.NotContains(t, got, forceCheckGPG)
		})
	}
}

func TestBuilderConfigCross(t *testing.T) {
	prj := baseProject()
	prj.Mirror.Host = "http://LOCALMACHINE:3142/debian"

	got := NewBuilderConfigEmitter().Render(t.Context(), BuilderConfigRequest{
		BuildDir:   "/build",
		Descriptor: types.Descriptor{Project: prj},
		Variant:    types.VariantCross,
		HostArch:   "amd64",
	})

	assert.Contains(t, got, "MIRRORSITE=\"http://10.0.2.2:3142/debian\"\n")
	assert.Contains(t, got, "BASETGZ=\"/build/pbuilder_cross/base.tgz\"\n")
	assert.Contains(t, got, "HOOKDIR=\"/build/pbuilder_cross/hooks.d\"\n")
	assert.Contains(t, got, "PBUILDERSATISFYDEPENDSCMD=/usr/lib/pbuilder/pbuilder-satisfydepends-apt\n")
	assert.NotContains(t, got, "ARCHITECTURE=")
	assert.NotContains(t, got, "qemu-debootstrap")
	assert.NotContains(t, got, "ALLOWUNTRUSTED")
}

func TestBuilderConfigNoCCache(t *testing.T) {
	got := NewBuilderConfigEmitter().Render(t.Context(), BuilderConfigRequest{
		BuildDir:   "/build",
		Descriptor: types.Descriptor{Project: baseProject()},
		Variant:    types.VariantNative,
		NoCCache:   true,
	})

	assert.NotContains(t, got, "CCACHE")
	assert.NotContains(t, got, "EXTRAPACKAGES")
	assert.NotContains(t, got, "BINDMOUNTS")
	assert.True(t, strings.HasSuffix(got, "pbuilder-satisfydepends-experimental\n"))
}

func TestBuilderConfigWithoutPrimaryHost(t *testing.T) {
	prj := baseProject()
	prj.Mirror = &types.Mirror{CDROM: cdromPath("/cdrom")}

	got := NewBuilderConfigEmitter().Render(t.Context(), BuilderConfigRequest{
		BuildDir:   "/build",
		Descriptor: types.Descriptor{Project: prj},
		Variant:    types.VariantNative,
		HostArch:   "armhf",
	})

	require.True(t, strings.HasPrefix(got, "#!/bin/sh\nset -e\nMIRRORSITE=\"\"\n"))
	assert.NotContains(t, got, "ARCHITECTURE=")
}

func TestAssembleBootstrapOptions(t *testing.T) {
	tests := []struct {
		name string
		base []string
		plan bootstrapPlan
		want []string
	}{
		{
			name: "defaults",
			base: DefaultBootstrapOptions,
			want: []string{"--variant=buildd", "--force-check-gpg"},
		},
		{
			name: "foreign arch and noauth",
			base: DefaultBootstrapOptions,
			plan: bootstrapPlan{foreignArch: "arm64", noAuth: true},
			want: []string{"--variant=buildd", "--arch=arm64", "--no-check-gpg"},
		},
		{
			name: "empty base",
			base: []string{},
			plan: bootstrapPlan{noAuth: true},
			want: []string{"--no-check-gpg"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assembleBootstrapOptions(tt.base, tt.plan)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected options (-want +got):\n%s", diff)
			}
		})
	}
	assert.Equal(t, []string{"--variant=buildd", "--force-check-gpg"}, DefaultBootstrapOptions)
}
