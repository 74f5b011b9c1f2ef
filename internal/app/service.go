package app

import (
	"xbuildenv/internal/adapters"
	"xbuildenv/internal/ports"
)

type Service struct {
	Descriptors  ports.DescriptorPort
	LocalKeys    ports.LocalKeyPort
	KeyFetcher   ports.KeyFetcherPort
	Keyring      ports.KeyringPort
	Writer       ports.BuildEnvWriterPort
	Preprocessor ports.PreprocessorPort
	SchemaEngine ports.SchemaEnginePort
}

// ServiceOptions selects the external tools the service talks to.
type ServiceOptions struct {
	SchemaLocation    string
	PreprocessCommand []string
}

func NewService(opts ServiceOptions) Service {
	return Service{
		Descriptors:  adapters.NewDescriptorXMLAdapter(),
		LocalKeys:    adapters.NewLocalRepoKeyAdapter(),
		KeyFetcher:   adapters.NewHTTPKeyFetcherAdapter(),
		Keyring:      adapters.NewOpenPGPKeyringAdapter(),
		Writer:       adapters.NewBuildEnvFileAdapter(),
		Preprocessor: adapters.NewCommandPreprocessorAdapter(opts.PreprocessCommand),
		SchemaEngine: adapters.NewXSDSchemaEngineAdapter(opts.SchemaLocation),
	}
}
