package ports

import "xbuildenv/internal/types"

// DescriptorPort decodes project descriptors. Callers hand it descriptors
// that have already been preprocessed.
type DescriptorPort interface {
	Load(path string) (types.Descriptor, error)
	Decode(data []byte) (types.Descriptor, error)
}
