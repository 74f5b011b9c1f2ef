package adapters

import (
	"bytes"
	"encoding/xml"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"golang.org/x/net/html/charset"

	"xbuildenv/internal/ports"
	"xbuildenv/internal/types"
)

type DescriptorXMLAdapter struct {
	mu    sync.Mutex
	cache map[string]descriptorCacheEntry
}

type descriptorCacheEntry struct {
	modTime    time.Time
	descriptor types.Descriptor
}

func NewDescriptorXMLAdapter() *DescriptorXMLAdapter {
	return &DescriptorXMLAdapter{cache: map[string]descriptorCacheEntry{}}
}

func (a *DescriptorXMLAdapter) Load(path string) (types.Descriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read descriptor").
			WithCause(err)
	}
	a.mu.Lock()
	if entry, ok := a.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		a.mu.Unlock()
		return entry.descriptor, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read descriptor").
			WithCause(err)
	}
	desc, err := a.Decode(content)
	if err != nil {
		return types.Descriptor{}, err
	}

	a.mu.Lock()
	a.cache[path] = descriptorCacheEntry{modTime: info.ModTime(), descriptor: desc}
	a.mu.Unlock()
	return desc, nil
}

func (a *DescriptorXMLAdapter) Decode(data []byte) (types.Descriptor, error) {
	var desc types.Descriptor
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&desc); err != nil {
		return types.Descriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse descriptor").
			WithCause(err)
	}
	normalizeDescriptor(&desc)
	return desc, nil
}

// normalizeDescriptor strips the indentation XML text nodes pick up from the
// document layout. Raw keys keep their node text; the resolver drops the
// wrapping lines itself.
func normalizeDescriptor(desc *types.Descriptor) {
	if desc.Target != nil && desc.Target.DebootstrapVariant != nil {
		v := desc.Target.DebootstrapVariant
		v.Value = strings.TrimSpace(v.Value)
	}
	prj := desc.Project
	if prj == nil || prj.Mirror == nil {
		return
	}
	if prj.Mirror.CDROM != nil {
		cdrom := strings.TrimSpace(*prj.Mirror.CDROM)
		prj.Mirror.CDROM = &cdrom
	}
	for i := range prj.Mirror.URLs {
		url := &prj.Mirror.URLs[i]
		url.Binary = strings.TrimSpace(url.Binary)
		url.Source = strings.TrimSpace(url.Source)
		url.Key = strings.TrimSpace(url.Key)
	}
}

var _ ports.DescriptorPort = (*DescriptorXMLAdapter)(nil)
