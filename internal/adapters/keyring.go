package adapters

import (
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"xbuildenv/internal/ports"
)

// OpenPGPKeyringAdapter reads armored public keys with go-crypto.
type OpenPGPKeyringAdapter struct{}

func NewOpenPGPKeyringAdapter() OpenPGPKeyringAdapter {
	return OpenPGPKeyringAdapter{}
}

func (a OpenPGPKeyringAdapter) Fingerprints(armored string) ([]string, error) {
	entities, err := openpgp.ReadArmoredKeyRing(strings.NewReader(armored))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read armored key").
			WithCause(err)
	}
	if len(entities) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no keys found in armored key")
	}
	fingerprints := make([]string, 0, len(entities))
	for _, entity := range entities {
		fingerprints = append(fingerprints, fmt.Sprintf("%X", entity.PrimaryKey.Fingerprint))
	}
	return fingerprints, nil
}

var _ ports.KeyringPort = OpenPGPKeyringAdapter{}
