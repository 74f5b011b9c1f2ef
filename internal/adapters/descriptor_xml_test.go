package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xbuildenv/internal/core"
	"xbuildenv/internal/types"
	"xbuildenv/tests/testutil"
)

const testDescriptorXML = `<?xml version="1.0" encoding="UTF-8"?>
<ns0:RBCDEF xmlns:ns0="https://www.linutronix.de/projects/Elbe" created="2009-05-20T08:50:56" revision="6">
  <project>
    <name>armhf-bookworm</name>
    <buildtype>armhf</buildtype>
    <suite>bookworm</suite>
    <mirror>
      <primary_host>deb.debian.org</primary_host>
      <primary_path>/debian</primary_path>
      <primary_proto>http</primary_proto>
      <host>http://LOCALMACHINE:3142/debian</host>
      <options>
        <option>check-valid-until=no</option>
      </options>
      <url-list>
        <url>
          <binary>
            http://LOCALMACHINE/extra bookworm main
          </binary>
          <source>http://LOCALMACHINE/extra bookworm main</source>
          <key>
            http://LOCALMACHINE/extra/repo.pub
          </key>
        </url>
        <url>
          <binary>https://secure.example/debian bookworm main</binary>
          <options><option>trusted=yes</option></options>
        </url>
      </url-list>
      <cdrom>
        /media/cdrom
      </cdrom>
    </mirror>
    <noauth/>
    <buildimage>
      <arch>armhf</arch>
      <sdkarch>amd64</sdkarch>
    </buildimage>
  </project>
  <target>
    <debootstrapvariant includepkgs="gnupg,apt-transport-https">
      minbase
    </debootstrapvariant>
  </target>
</ns0:RBCDEF>
`

func TestDescriptorXMLAdapter_Decode(t *testing.T) {
	desc, err := NewDescriptorXMLAdapter().Decode([]byte(testDescriptorXML))
	require.NoError(t, err)

	prj := desc.Project
	require.NotNil(t, prj)
	assert.Equal(t, "armhf-bookworm", prj.Name)
	assert.Equal(t, "bookworm", prj.SuiteName())
	assert.True(t, prj.NoAuth())
	assert.Equal(t, "armhf", prj.Arch())
	assert.Equal(t, "amd64", prj.SDKArch())
	assert.Equal(t, "http://deb.debian.org/debian", prj.PrimaryMirror(false))
	assert.Equal(t, "http://10.0.2.2:3142/debian", prj.PrimaryMirror(true))
	assert.Equal(t, []string{"check-valid-until=no"}, prj.Mirror.Options)

	require.Len(t, prj.Mirror.URLs, 2)
	assert.Equal(t, "http://LOCALMACHINE/extra bookworm main", prj.Mirror.URLs[0].Binary)
	assert.Equal(t, "http://LOCALMACHINE/extra/repo.pub", prj.Mirror.URLs[0].Key)
	assert.Equal(t, []string{"trusted=yes"}, prj.Mirror.URLs[1].Options)
	require.True(t, prj.HasCDROM())
	assert.Equal(t, "/media/cdrom", *prj.Mirror.CDROM)

	variant := desc.Variant()
	require.NotNil(t, variant)
	assert.Equal(t, "minbase", variant.Value)
	assert.True(t, variant.Includes("apt-transport-https"))
}

func TestDescriptorXMLAdapter_DecodeMinimal(t *testing.T) {
	desc, err := NewDescriptorXMLAdapter().Decode([]byte(`<RBCDEF><project><suite>bullseye</suite></project></RBCDEF>`))
	require.NoError(t, err)
	assert.False(t, desc.Project.HasMirror())
	assert.False(t, desc.Project.NoAuth())
	assert.Nil(t, desc.Variant())
}

func TestDescriptorXMLAdapter_DecodeLatin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><RBCDEF><project><name>caf\xe9</name></project></RBCDEF>"
	desc, err := NewDescriptorXMLAdapter().Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "café", desc.Project.Name)
}

func TestDescriptorXMLAdapter_DecodeMalformed(t *testing.T) {
	_, err := NewDescriptorXMLAdapter().Decode([]byte("<RBCDEF><project>"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestDescriptorXMLAdapter_LoadCachesByModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<RBCDEF><project><suite>bookworm</suite></project></RBCDEF>`), 0644))

	adapter := NewDescriptorXMLAdapter()
	first, err := adapter.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bookworm", first.Project.SuiteName())

	require.NoError(t, os.WriteFile(path, []byte(`<RBCDEF><project><suite>trixie</suite></project></RBCDEF>`), 0644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	second, err := adapter.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "trixie", second.Project.SuiteName())
}

func TestDescriptorXMLAdapter_LoadMissing(t *testing.T) {
	_, err := NewDescriptorXMLAdapter().Load(filepath.Join(t.TempDir(), "missing.xml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

const rawKeyDescriptorXML = `<RBCDEF>
  <project>
    <suite>bookworm</suite>
    <mirror>
      <url-list>
        <url>
          <binary>http://LOCALMACHINE/signed bookworm main</binary>
          <raw-key>
            -----BEGIN PGP PUBLIC KEY BLOCK-----

            mDMEZQAAABYJKwYBBAHaRw8BAQdA
            =abcd
            -----END PGP PUBLIC KEY BLOCK-----
          </raw-key>
        </url>
      </url-list>
    </mirror>
  </project>
</RBCDEF>`

func TestDescriptorXMLAdapter_RawKeyKeepsArmor(t *testing.T) {
	desc, err := NewDescriptorXMLAdapter().Decode([]byte(rawKeyDescriptorXML))
	require.NoError(t, err)

	resolver := core.NewMirrorResolver(NewLocalRepoKeyAdapter(), NewHTTPKeyFetcherAdapter())
	set, err := resolver.Resolve(t.Context(), desc, testutil.NewBuildDir(t), types.VariantNative)
	require.NoError(t, err)

	require.Len(t, set.Keys, 2)
	assert.Equal(t, "-----BEGIN PGP PUBLIC KEY BLOCK-----\n\nmDMEZQAAABYJKwYBBAHaRw8BAQdA\n=abcd\n-----END PGP PUBLIC KEY BLOCK-----", set.Keys[1])
}
