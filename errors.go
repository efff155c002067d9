package vesselx

import (
	"fmt"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeNoKeys indicates a try-registration was given no keys
	CodeNoKeys = "NO_KEYS"

	// CodeInvalidKey indicates a zero Key was supplied
	CodeInvalidKey = "INVALID_KEY"

	// CodeDuplicateKey indicates the same key was listed twice in one registration
	CodeDuplicateKey = "DUPLICATE_KEY"

	// CodeInvalidFactory indicates a factory is nil or not a function
	CodeInvalidFactory = "INVALID_FACTORY"

	// CodeNotAssignable indicates an implementation does not satisfy a key's type
	CodeNotAssignable = "NOT_ASSIGNABLE"

	// CodeNoHierarchy indicates an in-hierarchy registration without a Hierarchy
	CodeNoHierarchy = "NO_HIERARCHY"

	// CodeComponentNotFound indicates a component lookup found nothing
	CodeComponentNotFound = "COMPONENT_NOT_FOUND"

	// CodeScopedMultiKey indicates a scoped binding was given more than one key
	CodeScopedMultiKey = "SCOPED_MULTI_KEY"

	// CodeSharedLifecycle indicates a lifecycle service was bound under more than one key
	CodeSharedLifecycle = "SHARED_LIFECYCLE"

	// CodePartialBinding indicates the container rejected a key after earlier keys were bound
	CodePartialBinding = "PARTIAL_BINDING"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrNoKeys is returned when a registration names no keys.
var ErrNoKeys = errs.NewError(CodeNoKeys, "at least one key is required", nil)

// ErrInvalidKeySentinel is a sentinel error for zero keys (for error checking).
var ErrInvalidKeySentinel = errs.NewError(CodeInvalidKey, "invalid key", nil)

// ErrDuplicateKeySentinel is a sentinel error for repeated keys (for error checking).
var ErrDuplicateKeySentinel = errs.NewError(CodeDuplicateKey, "duplicate key", nil)

// ErrInvalidFactory is returned when a nil or invalid factory is provided.
var ErrInvalidFactory = errs.NewError(CodeInvalidFactory, "factory cannot be nil", nil)

// ErrNotAssignableSentinel is a sentinel error for type mismatches (for error checking).
var ErrNotAssignableSentinel = errs.NewError(CodeNotAssignable, "not assignable", nil)

// ErrNoHierarchy is returned when an in-hierarchy component has nothing to search.
var ErrNoHierarchy = errs.NewError(CodeNoHierarchy, "component hierarchy is nil", nil)

// ErrComponentNotFoundSentinel is a sentinel error for failed lookups (for error checking).
var ErrComponentNotFoundSentinel = errs.NewError(CodeComponentNotFound, "component not found", nil)

// ErrScopedMultiKeySentinel is a sentinel error for scoped multi-key bindings (for error checking).
var ErrScopedMultiKeySentinel = errs.NewError(CodeScopedMultiKey, "scoped multi-key binding", nil)

// ErrSharedLifecycleSentinel is a sentinel error for lifecycle services under several keys (for error checking).
var ErrSharedLifecycleSentinel = errs.NewError(CodeSharedLifecycle, "shared lifecycle", nil)

// ErrPartialBindingSentinel is a sentinel error for partially bound keys (for error checking).
var ErrPartialBindingSentinel = errs.NewError(CodePartialBinding, "partial binding", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrInvalidKey creates an error for a zero key at position index
func ErrInvalidKey(index int) *errs.Error {
	return errs.NewError(
		CodeInvalidKey,
		fmt.Sprintf("key %d is empty", index),
		nil,
	).WithContext("index", index).(*errs.Error)
}

// ErrDuplicateKey creates an error for a key listed more than once
func ErrDuplicateKey(key Key) *errs.Error {
	return errs.NewError(
		CodeDuplicateKey,
		fmt.Sprintf("key '%s' listed more than once", key),
		nil,
	).WithContext("key", key.Name()).(*errs.Error)
}

// ErrInvalidFactoryType creates an error for a factory value that is not a function
func ErrInvalidFactoryType(actual any) *errs.Error {
	return errs.NewError(
		CodeInvalidFactory,
		fmt.Sprintf("factory must be a function, got %T", actual),
		nil,
	).WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}

// ErrNotAssignable creates an error for an implementation that cannot serve key
func ErrNotAssignable(key Key, impl string) *errs.Error {
	return errs.NewError(
		CodeNotAssignable,
		fmt.Sprintf("%s is not assignable to key '%s'", impl, key),
		nil,
	).WithContext("key", key.Name()).
		WithContext("implementation", impl).(*errs.Error)
}

// ErrComponentNotFound creates an error for a component missing under parent
func ErrComponentNotFound(key Key, parent string) *errs.Error {
	return errs.NewError(
		CodeComponentNotFound,
		fmt.Sprintf("component '%s' not found under '%s'", key, parent),
		nil,
	).WithContext("key", key.Name()).
		WithContext("parent", parent).(*errs.Error)
}

// ErrScopedMultiKey creates an error for a scoped binding with extra keys.
// Scoped factories only see the root container, so extra keys could never
// reach the scope's instance.
func ErrScopedMultiKey(keys []Key) *errs.Error {
	return errs.NewError(
		CodeScopedMultiKey,
		fmt.Sprintf("scoped binding '%s' cannot have %d extra keys", keys[0], len(keys)-1),
		nil,
	).WithContext("keys", Keys(keys...)).(*errs.Error)
}

// ErrSharedLifecycle creates an error for a lifecycle service bound under key
// in addition to its primary key.
func ErrSharedLifecycle(key Key, impl string) *errs.Error {
	return errs.NewError(
		CodeSharedLifecycle,
		fmt.Sprintf("%s is started by the container and cannot also be bound as '%s'", impl, key),
		nil,
	).WithContext("key", key.Name()).
		WithContext("implementation", impl).(*errs.Error)
}

// ErrPartialBinding creates an error for a container failure after bound were
// already registered.
func ErrPartialBinding(bound []Key, cause error) *errs.Error {
	return errs.NewError(
		CodePartialBinding,
		fmt.Sprintf("container rejected a key after %d were bound", len(bound)),
		cause,
	).WithContext("bound", Keys(bound...)).(*errs.Error)
}
