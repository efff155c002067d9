package vesselx

import (
	"sort"

	"github.com/xraph/vessel"
)

// EntryPoints returns the sorted names of all registered entry points.
func EntryPoints(c Vessel) []string {
	return sortedNames(c, vessel.ServiceQuery{Group: EntryPointGroup})
}

// Components returns the sorted names of components registered under parent.
func Components(c Vessel, parent string) []string {
	return sortedNames(c, vessel.ServiceQuery{
		Group:    ComponentGroup,
		Metadata: map[string]string{ParentMetadataKey: parent},
	})
}

// Composed returns the sorted names of services a Builder with the given
// composition id registered.
//
// Example:
//
//	b := vesselx.NewBuilder(c)
//	// ... try-register through b ...
//	names := vesselx.Composed(c, b.CompositionID())
func Composed(c Vessel, compositionID string) []string {
	return sortedNames(c, vessel.ServiceQuery{
		Metadata: map[string]string{CompositionMetadataKey: compositionID},
	})
}

func sortedNames(c Vessel, query vessel.ServiceQuery) []string {
	names := vessel.QueryNames(c, query)
	sort.Strings(names)
	return names
}
