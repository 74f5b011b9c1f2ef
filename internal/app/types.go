package app

import "xbuildenv/internal/types"

type ConfigureRequest struct {
	DescriptorPath   string
	BuildDir         string
	Cross            bool
	NoCCache         bool
	HostArch         string
	BootstrapOptions []string
}

type ConfigureResult struct {
	Files []string
}

type MirrorsRequest struct {
	DescriptorPath string
	BuildDir       string
	Cross          bool
}

type KeySummary struct {
	Fingerprints []string `yaml:"fingerprints,omitempty"`
	Armored      string   `yaml:"armored"`
}

type MirrorsResult struct {
	Variant types.Variant `yaml:"variant"`
	Lines   []string      `yaml:"lines"`
	Keys    []KeySummary  `yaml:"keys"`
}

type ValidateRequest struct {
	DescriptorPath string
}
