package catalog

import (
	"net/http"

	"github.com/chunkinator/astroneer/domain/catalog"
)

// ListModules returns all modules.
//
//	@Summary		List modules
//	@Description	List all modules in insertion order
//	@Tags			Modules
//	@Produce		json
//	@Success		200	{object}	ModuleList	"Modules"
//	@Router			/module/ [get]
func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.store.ListModules(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ModuleList{Modules: modules})
}

// GetModule returns a single module.
//
//	@Summary		Fetch a module
//	@Description	Module name should be in the database
//	@Tags			Modules
//	@Produce		json
//	@Param			name	path		string				true	"The module name"
//	@Success		200		{object}	catalog.Module	"Module"
//	@Failure		404		{object}	ErrorResponse		"Module not found"
//	@Router			/module/{name} [get]
func (h *Handler) GetModule(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	mod, err := h.store.GetModule(r.Context(), name)
	if err != nil {
		h.writeStoreError(w, err, "Module", name)
		return
	}
	writeJSON(w, http.StatusOK, mod)
}

// CreateModule creates a module.
//
//	@Summary		Create a module
//	@Description	resource_cost is comma-separated. Accepts form, multipart or JSON bodies.
//	@Tags			Modules
//	@Accept			x-www-form-urlencoded,mpfd,json
//	@Produce		json
//	@Param			request	body		ModuleInput		true	"Module fields"
//	@Success		201		{object}	catalog.Module	"Created module"
//	@Failure		400		{object}	ErrorResponse		"Module already exists or invalid input"
//	@Router			/module/ [post]
func (h *Handler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var in ModuleInput
	if !h.readInput(w, r, &in) {
		return
	}

	mod := in.Module()
	if err := h.store.CreateModule(r.Context(), mod); err != nil {
		h.writeStoreError(w, err, "Module", mod.Name)
		return
	}

	h.logger.Info().Str("name", mod.Name).Msg("module created")
	h.publishCounts(r, catalog.CollectionModules, "create")
	writeJSON(w, http.StatusCreated, mod)
}

// UpdateModule replaces a module with the supplied fields.
//
//	@Summary		Update a module
//	@Description	Replaces the whole record in place. Fields left out of the body are dropped.
//	@Tags			Modules
//	@Accept			x-www-form-urlencoded,mpfd,json
//	@Produce		json
//	@Param			name	path		string				true	"The module name"
//	@Param			request	body		ModuleInput		true	"Module fields"
//	@Success		200		{object}	catalog.Module	"Updated module"
//	@Failure		400		{object}	ErrorResponse		"Invalid input or new name taken"
//	@Failure		404		{object}	ErrorResponse		"Module not found"
//	@Router			/module/{name} [put]
func (h *Handler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	// Absent name wins over a bad body.
	if err := h.store.AssertModuleState(r.Context(), name, true); err != nil {
		h.writeStoreError(w, err, "Module", name)
		return
	}

	var in ModuleInput
	if !h.readInput(w, r, &in) {
		return
	}

	mod := in.Module()
	if err := h.store.UpdateModule(r.Context(), name, mod); err != nil {
		subject := mod.Name
		if !isConflict(err) {
			subject = name
		}
		h.writeStoreError(w, err, "Module", subject)
		return
	}

	h.logger.Info().Str("name", name).Str("new_name", mod.Name).Msg("module updated")
	h.publishCounts(r, catalog.CollectionModules, "update")
	writeJSON(w, http.StatusOK, mod)
}

// DeleteModule deletes a module.
//
//	@Summary		Delete a module
//	@Tags			Modules
//	@Param			name	path	string	true	"The module name"
//	@Success		204		"Module deleted"
//	@Failure		404		{object}	ErrorResponse	"Module not found"
//	@Router			/module/{name} [delete]
func (h *Handler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	if err := h.store.DeleteModule(r.Context(), name); err != nil {
		h.writeStoreError(w, err, "Module", name)
		return
	}

	h.logger.Info().Str("name", name).Msg("module deleted")
	h.publishCounts(r, catalog.CollectionModules, "delete")
	w.WriteHeader(http.StatusNoContent)
}
