// Package memory provides the in-memory catalog store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/chunkinator/astroneer/domain/catalog"
	"github.com/chunkinator/astroneer/ports"
)

// CatalogStore is an in-memory implementation of ports.CatalogStore.
// It lives for the lifetime of the process and is never persisted.
type CatalogStore struct {
	mu        sync.RWMutex
	modules   *collection[catalog.Module]
	resources *collection[catalog.Resource]
	planets   *collection[catalog.Planet]
}

// NewCatalogStore creates an empty catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		modules:   newCollection(func(m catalog.Module) string { return m.Name }),
		resources: newCollection(func(r catalog.Resource) string { return r.Name }),
		planets:   newCollection(func(p catalog.Planet) string { return p.Name }),
	}
}

// -----------------------------------------------------------------------------
// Guards
// -----------------------------------------------------------------------------

// assertState is the shared guard contract: with mustExist a missing name is
// ErrNotFound, without it a present name is ErrConflict.
func assertState(kind, name string, present, mustExist bool) error {
	if mustExist && !present {
		return fmt.Errorf("%s %s doesn't exist: %w", kind, name, catalog.ErrNotFound)
	}
	if !mustExist && present {
		return fmt.Errorf("%s %s already exists: %w", kind, name, catalog.ErrConflict)
	}
	return nil
}

// AssertModuleState checks that a module is present (mustExist) or absent.
func (s *CatalogStore) AssertModuleState(ctx context.Context, name string, mustExist bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return assertState("Module", name, s.modules.has(name), mustExist)
}

// AssertResourceState checks that a resource is present (mustExist) or absent.
func (s *CatalogStore) AssertResourceState(ctx context.Context, name string, mustExist bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return assertState("Resource", name, s.resources.has(name), mustExist)
}

// -----------------------------------------------------------------------------
// Resources
// -----------------------------------------------------------------------------

// ListResources returns all resources in insertion order.
func (s *CatalogStore) ListResources(ctx context.Context) ([]catalog.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resources.all(catalog.Resource.Clone), nil
}

// GetResource retrieves a resource by name.
func (s *CatalogStore) GetResource(ctx context.Context, name string) (catalog.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources.get(name)
	if !ok {
		return catalog.Resource{}, assertState("Resource", name, false, true)
	}
	return r.Clone(), nil
}

// CreateResource stores a new resource.
func (s *CatalogStore) CreateResource(ctx context.Context, r catalog.Resource) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := assertState("Resource", r.Name, s.resources.has(r.Name), false); err != nil {
		return err
	}
	s.resources.add(r.Clone())
	return nil
}

// UpdateResource replaces the resource stored under name. The new record
// may rename it, as long as the new name is not held by another resource.
func (s *CatalogStore) UpdateResource(ctx context.Context, name string, r catalog.Resource) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := assertState("Resource", name, s.resources.has(name), true); err != nil {
		return err
	}
	if r.Name != name {
		if err := assertState("Resource", r.Name, s.resources.has(r.Name), false); err != nil {
			return err
		}
	}
	s.resources.replace(name, r.Clone())
	return nil
}

// DeleteResource removes a resource.
func (s *CatalogStore) DeleteResource(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := assertState("Resource", name, s.resources.has(name), true); err != nil {
		return err
	}
	s.resources.remove(name)
	return nil
}

// -----------------------------------------------------------------------------
// Modules
// -----------------------------------------------------------------------------

// ListModules returns all modules in insertion order.
func (s *CatalogStore) ListModules(ctx context.Context) ([]catalog.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modules.all(catalog.Module.Clone), nil
}

// GetModule retrieves a module by name.
func (s *CatalogStore) GetModule(ctx context.Context, name string) (catalog.Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.modules.get(name)
	if !ok {
		return catalog.Module{}, assertState("Module", name, false, true)
	}
	return m.Clone(), nil
}

// CreateModule stores a new module.
func (s *CatalogStore) CreateModule(ctx context.Context, m catalog.Module) error {
	if err := m.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := assertState("Module", m.Name, s.modules.has(m.Name), false); err != nil {
		return err
	}
	s.modules.add(m.Clone())
	return nil
}

// UpdateModule replaces the module stored under name.
func (s *CatalogStore) UpdateModule(ctx context.Context, name string, m catalog.Module) error {
	if err := m.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := assertState("Module", name, s.modules.has(name), true); err != nil {
		return err
	}
	if m.Name != name {
		if err := assertState("Module", m.Name, s.modules.has(m.Name), false); err != nil {
			return err
		}
	}
	s.modules.replace(name, m.Clone())
	return nil
}

// DeleteModule removes a module.
func (s *CatalogStore) DeleteModule(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := assertState("Module", name, s.modules.has(name), true); err != nil {
		return err
	}
	s.modules.remove(name)
	return nil
}

// -----------------------------------------------------------------------------
// Whole store
// -----------------------------------------------------------------------------

// Snapshot copies every collection.
func (s *CatalogStore) Snapshot(ctx context.Context) (catalog.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return catalog.Snapshot{
		Modules:   s.modules.all(catalog.Module.Clone),
		Resources: s.resources.all(catalog.Resource.Clone),
		Planets:   s.planets.all(func(p catalog.Planet) catalog.Planet { return p }),
	}, nil
}

// Counts returns the number of records in each collection.
func (s *CatalogStore) Counts(ctx context.Context) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]int{
		catalog.CollectionModules:   s.modules.len(),
		catalog.CollectionResources: s.resources.len(),
		catalog.CollectionPlanets:   s.planets.len(),
	}
}

// Clear removes all records (for testing).
func (s *CatalogStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules.clear()
	s.resources.clear()
	s.planets.clear()
}

// Ensure interface compliance.
var _ ports.CatalogStore = (*CatalogStore)(nil)
