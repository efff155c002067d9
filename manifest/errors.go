package manifest

import (
	"fmt"

	"github.com/xraph/go-utils/errs"
)

const (
	// CodeInvalidManifest indicates a manifest failed to parse or validate
	CodeInvalidManifest = "INVALID_MANIFEST"

	// CodeUnknownProvider indicates a binding names a provider the catalog lacks
	CodeUnknownProvider = "UNKNOWN_PROVIDER"

	// CodeProviderExists indicates a provider name was added to a catalog twice
	CodeProviderExists = "PROVIDER_EXISTS"
)

// ErrInvalidManifestSentinel is a sentinel error for bad manifests (for error checking).
var ErrInvalidManifestSentinel = errs.NewError(CodeInvalidManifest, "invalid manifest", nil)

// ErrUnknownProviderSentinel is a sentinel error for missing providers (for error checking).
var ErrUnknownProviderSentinel = errs.NewError(CodeUnknownProvider, "unknown provider", nil)

// ErrProviderExistsSentinel is a sentinel error for duplicate providers (for error checking).
var ErrProviderExistsSentinel = errs.NewError(CodeProviderExists, "provider already exists", nil)

// ErrInvalidManifest creates an error for a manifest problem at source
func ErrInvalidManifest(source, reason string, cause error) *errs.Error {
	return errs.NewError(
		CodeInvalidManifest,
		fmt.Sprintf("manifest %s: %s", source, reason),
		cause,
	).WithContext("source", source).(*errs.Error)
}

// ErrInvalidBinding creates an error for one bad binding
func ErrInvalidBinding(section string, index int, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidManifest,
		fmt.Sprintf("%s[%d]: %s", section, index, reason),
		nil,
	).WithContext("section", section).
		WithContext("index", index).(*errs.Error)
}

// ErrUnknownProvider creates an error for a provider missing from the catalog
func ErrUnknownProvider(provider, key string) *errs.Error {
	return errs.NewError(
		CodeUnknownProvider,
		fmt.Sprintf("provider '%s' for key '%s' is not in the catalog", provider, key),
		nil,
	).WithContext("provider", provider).
		WithContext("key", key).(*errs.Error)
}

// ErrProviderExists creates an error for a provider added twice
func ErrProviderExists(name string) *errs.Error {
	return errs.NewError(
		CodeProviderExists,
		fmt.Sprintf("provider '%s' already exists", name),
		nil,
	).WithContext("provider", name).(*errs.Error)
}
