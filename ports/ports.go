// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"io"

	"github.com/chunkinator/astroneer/domain/catalog"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// ResourceStore holds resources keyed by name.
type ResourceStore interface {
	// ListResources returns every resource in insertion order.
	ListResources(ctx context.Context) ([]catalog.Resource, error)

	// GetResource retrieves a resource by name.
	GetResource(ctx context.Context, name string) (catalog.Resource, error)

	// CreateResource stores a new resource. Fails with catalog.ErrConflict
	// when the name is taken.
	CreateResource(ctx context.Context, r catalog.Resource) error

	// UpdateResource replaces the resource stored under name with r.
	UpdateResource(ctx context.Context, name string, r catalog.Resource) error

	// DeleteResource removes a resource.
	DeleteResource(ctx context.Context, name string) error

	// AssertResourceState checks presence (mustExist) or absence of a name.
	AssertResourceState(ctx context.Context, name string, mustExist bool) error
}

// ModuleStore holds modules keyed by name.
type ModuleStore interface {
	// ListModules returns every module in insertion order.
	ListModules(ctx context.Context) ([]catalog.Module, error)

	// GetModule retrieves a module by name.
	GetModule(ctx context.Context, name string) (catalog.Module, error)

	// CreateModule stores a new module. Fails with catalog.ErrConflict
	// when the name is taken.
	CreateModule(ctx context.Context, m catalog.Module) error

	// UpdateModule replaces the module stored under name with m.
	UpdateModule(ctx context.Context, name string, m catalog.Module) error

	// DeleteModule removes a module.
	DeleteModule(ctx context.Context, name string) error

	// AssertModuleState checks presence (mustExist) or absence of a name.
	AssertModuleState(ctx context.Context, name string, mustExist bool) error
}

// CatalogStore is the full in-memory dataset.
type CatalogStore interface {
	ResourceStore
	ModuleStore

	// Snapshot copies every collection, planets included.
	Snapshot(ctx context.Context) (catalog.Snapshot, error)

	// Counts returns the number of records per collection name.
	Counts(ctx context.Context) map[string]int
}

// -----------------------------------------------------------------------------
// Hydration Ports
// -----------------------------------------------------------------------------

// SeedSource opens the flat files used to hydrate the catalog at startup.
type SeedSource interface {
	// Open returns the named file. Implementations return an error wrapping
	// fs.ErrNotExist when the file is absent.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Describe identifies the source in logs (a directory or bucket URL).
	Describe() string
}
