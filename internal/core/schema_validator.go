package core

import (
	"context"
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"xbuildenv/internal/ports"
	"xbuildenv/internal/types"
)

// MaxDescriptorSize is the largest descriptor accepted for validation.
const MaxDescriptorSize int64 = 1 << 30

// SchemaValidator runs a descriptor file through preprocessing, the schema
// engine and the semantic rules. Every failure ends up in the returned
// ValidationResult.
type SchemaValidator struct {
	Preprocessor ports.PreprocessorPort
	Engine       ports.SchemaEnginePort
	Descriptors  ports.DescriptorPort
	Semantic     SemanticValidator
}

func NewSchemaValidator(pre ports.PreprocessorPort, engine ports.SchemaEnginePort, descriptors ports.DescriptorPort) SchemaValidator {
	return SchemaValidator{
		Preprocessor: pre,
		Engine:       engine,
		Descriptors:  descriptors,
		Semantic:     NewSemanticValidator(),
	}
}

func (v SchemaValidator) Validate(ctx context.Context, path string) (result types.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = unknownFailure(fmt.Errorf("%v", r))
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return unknownFailure(err)
	}
	if info.Size() > MaxDescriptorSize {
		return types.ValidationFailed(types.ValidationTooLarge, fmt.Sprintf(
			"%s is greater than 1 GiB. Files of this size are not supported.", path))
	}

	expanded, err := v.Preprocessor.Preprocess(ctx, path)
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeFailedPrecondition {
			return types.ValidationFailed(types.ValidationPreprocess, "Fail preprocessor\n"+err.Error())
		}
		return unknownFailure(err)
	}
	defer func() {
		if cerr := expanded.Close(); cerr != nil {
			log.Ctx(ctx).Warn().Err(cerr).Str("path", expanded.Path()).Msg("failed to remove preprocessed descriptor")
		}
	}()

	document, err := os.ReadFile(expanded.Path())
	if err != nil {
		return unknownFailure(err)
	}

	structural, err := v.Engine.Validate(ctx, document)
	if err != nil {
		if errbuilder.CodeOf(err) == errbuilder.CodeInvalidArgument {
			return types.ValidationFailed(types.ValidationMalformed, "XML Parse error\n"+err.Error())
		}
		return unknownFailure(err)
	}
	if len(structural) > 0 {
		log.Ctx(ctx).Debug().Str("path", path).Int("errors", len(structural)).Msg("descriptor violates schema")
		return types.ValidationFailed(types.ValidationStructural, structural...)
	}

	desc, err := v.Descriptors.Decode(document)
	if err != nil {
		return unknownFailure(err)
	}
	if errs := v.Semantic.Validate(ctx, desc); len(errs) > 0 {
		return types.ValidationFailed(types.ValidationContent, errs...)
	}
	log.Ctx(ctx).Debug().Str("path", path).Msg("descriptor validated")
	return types.ValidationPassed()
}

func unknownFailure(err error) types.ValidationResult {
	return types.ValidationFailed(types.ValidationInternal, "Unknown Exception during validation\n"+err.Error())
}
