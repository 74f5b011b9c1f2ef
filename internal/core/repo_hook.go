package core

import (
	"context"
	"fmt"
	"strings"

	"xbuildenv/internal/ports"
	"xbuildenv/internal/types"
)

// Hook names sort so that the sources hook runs before the plain update.
const (
	AptSourcesHookName = "G10elbe_apt_sources"
	AptUpdateHookName  = "H10elbe_apt_update"
)

type RepoHookEmitter struct {
	Resolver MirrorResolver
}

func NewRepoHookEmitter(resolver MirrorResolver) RepoHookEmitter {
	return RepoHookEmitter{Resolver: resolver}
}

// Render resolves the mirrors of variant and returns both hook scripts in
// execution order.
func (e RepoHookEmitter) Render(ctx context.Context, desc types.Descriptor, buildDir string, variant types.Variant) ([]ports.HookScript, error) {
	set, err := e.Resolver.Resolve(ctx, desc, buildDir, variant)
	if err != nil {
		return nil, err
	}
	return []ports.HookScript{
		{Name: AptSourcesHookName, Content: RenderSourcesHook(set)},
		{Name: AptUpdateHookName, Content: "#!/bin/sh\napt update\n"},
	}, nil
}

// RenderSourcesHook installs set as /etc/apt/sources.list, imports its keys
// and refreshes the package index.
func RenderSourcesHook(set types.MirrorSet) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "cat -> /etc/apt/sources.list <<EOF\n%s\nEOF\n",
		types.ReplaceLocalMachine(strings.Join(set.Lines(), "\n")))
	for _, key := range set.Keys {
		fmt.Fprintf(&b, "cat << EOF | apt-key add -\n%s\nEOF\n", key)
	}
	b.WriteString("apt-get update\n")
	return b.String()
}
