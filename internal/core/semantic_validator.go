package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"xbuildenv/internal/types"
)

const (
	gpgPackage            = "gnupg"
	httpsTransportPackage = "apt-transport-https"
)

const (
	msgMirrorKeyNeedsGPG = "\nThe XML contains a custom mirror key. " +
		"Use debootstrapvariant's attribute includepkgs " +
		"to make gnupg available in debootstrap.\n"
	msgHTTPSNeedsTransport = "\nThe XML contains an HTTPS mirror. " +
		"Use debootstrapvariant's attribute includepkgs " +
		"to make apt-transport-https available in debootstrap.\n"
)

// SemanticValidator checks cross-field rules the schema cannot express. It
// expects a schema-valid descriptor.
type SemanticValidator struct{}

func NewSemanticValidator() SemanticValidator {
	return SemanticValidator{}
}

func (v SemanticValidator) Validate(ctx context.Context, desc types.Descriptor) []string {
	var errs []string
	variant := desc.Variant()
	urls := desc.Project.MirrorURLs()

	if variant != nil && strings.Contains(variant.Value, "minbase") &&
		!variant.Includes(gpgPackage) && hasCustomKey(urls) {
		errs = append(errs, msgMirrorKeyNeedsGPG)
	}

	https := desc.Project.PrimaryProto() == "https"
	if !https && !variant.Includes(httpsTransportPackage) {
		for _, url := range urls {
			if strings.HasPrefix(strings.TrimSpace(url.Binary), "https") ||
				strings.HasPrefix(strings.TrimSpace(url.Source), "https") {
				errs = append(errs, msgHTTPSNeedsTransport)
				break
			}
		}
	}

	log.Ctx(ctx).Debug().Int("errors", len(errs)).Msg("semantic rules checked")
	return errs
}

func hasCustomKey(urls []types.MirrorURL) bool {
	for _, url := range urls {
		if strings.TrimSpace(url.Key) != "" || strings.TrimSpace(url.RawKey) != "" {
			return true
		}
	}
	return false
}
