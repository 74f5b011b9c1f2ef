package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"xbuildenv/internal/core"
	"xbuildenv/internal/types"
)

// Validate checks a descriptor file. The error return is reserved for
// invalid requests; every validation failure is reported in the result.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (types.ValidationResult, error) {
	path := strings.TrimSpace(req.DescriptorPath)
	if path == "" {
		return types.ValidationResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("descriptor path is required")
	}
	validator := core.NewSchemaValidator(s.Preprocessor, s.SchemaEngine, s.Descriptors)
	return validator.Validate(ctx, path), nil
}
