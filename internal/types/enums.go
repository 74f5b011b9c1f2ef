package types

type Variant string

const (
	VariantNative Variant = "native"
	VariantCross  Variant = "cross"
)

type ValidationKind string

const (
	ValidationOK         ValidationKind = "ok"
	ValidationTooLarge   ValidationKind = "too-large"
	ValidationPreprocess ValidationKind = "preprocess"
	ValidationMalformed  ValidationKind = "malformed"
	ValidationStructural ValidationKind = "structural"
	ValidationContent    ValidationKind = "content"
	ValidationInternal   ValidationKind = "internal"
)
