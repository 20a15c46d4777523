package catalog

import (
	"net/http"

	"github.com/chunkinator/astroneer/domain/catalog"
)

// ListResources returns all resources.
//
//	@Summary		List resources
//	@Description	List all resources in insertion order
//	@Tags			Resources
//	@Produce		json
//	@Success		200	{object}	ResourceList	"Resources"
//	@Router			/resource/ [get]
func (h *Handler) ListResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.store.ListResources(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResourceList{Resources: resources})
}

// GetResource returns a single resource.
//
//	@Summary		Fetch a resource
//	@Description	Resource name should be in the database
//	@Tags			Resources
//	@Produce		json
//	@Param			name	path		string				true	"The resource name"
//	@Success		200		{object}	catalog.Resource	"Resource"
//	@Failure		404		{object}	ErrorResponse		"Resource not found"
//	@Router			/resource/{name} [get]
func (h *Handler) GetResource(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	res, err := h.store.GetResource(r.Context(), name)
	if err != nil {
		h.writeStoreError(w, err, "Resource", name)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CreateResource creates a resource.
//
//	@Summary		Create a resource
//	@Description	List fields are comma-separated. Accepts form, multipart or JSON bodies.
//	@Tags			Resources
//	@Accept			x-www-form-urlencoded,mpfd,json
//	@Produce		json
//	@Param			request	body		ResourceInput		true	"Resource fields"
//	@Success		201		{object}	catalog.Resource	"Created resource"
//	@Failure		400		{object}	ErrorResponse		"Resource already exists or invalid input"
//	@Router			/resource/ [post]
func (h *Handler) CreateResource(w http.ResponseWriter, r *http.Request) {
	var in ResourceInput
	if !h.readInput(w, r, &in) {
		return
	}

	res := in.Resource()
	if err := h.store.CreateResource(r.Context(), res); err != nil {
		h.writeStoreError(w, err, "Resource", res.Name)
		return
	}

	h.logger.Info().Str("name", res.Name).Msg("resource created")
	h.publishCounts(r, catalog.CollectionResources, "create")
	writeJSON(w, http.StatusCreated, res)
}

// UpdateResource replaces a resource with the supplied fields.
//
//	@Summary		Update a resource
//	@Description	Replaces the whole record in place. Fields left out of the body are dropped.
//	@Tags			Resources
//	@Accept			x-www-form-urlencoded,mpfd,json
//	@Produce		json
//	@Param			name	path		string				true	"The resource name"
//	@Param			request	body		ResourceInput		true	"Resource fields"
//	@Success		200		{object}	catalog.Resource	"Updated resource"
//	@Failure		400		{object}	ErrorResponse		"Invalid input or new name taken"
//	@Failure		404		{object}	ErrorResponse		"Resource not found"
//	@Router			/resource/{name} [put]
func (h *Handler) UpdateResource(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	// Absent name wins over a bad body.
	if err := h.store.AssertResourceState(r.Context(), name, true); err != nil {
		h.writeStoreError(w, err, "Resource", name)
		return
	}

	var in ResourceInput
	if !h.readInput(w, r, &in) {
		return
	}

	res := in.Resource()
	if err := h.store.UpdateResource(r.Context(), name, res); err != nil {
		subject := res.Name
		if !isConflict(err) {
			subject = name
		}
		h.writeStoreError(w, err, "Resource", subject)
		return
	}

	h.logger.Info().Str("name", name).Str("new_name", res.Name).Msg("resource updated")
	h.publishCounts(r, catalog.CollectionResources, "update")
	writeJSON(w, http.StatusOK, res)
}

// DeleteResource deletes a resource.
//
//	@Summary		Delete a resource
//	@Tags			Resources
//	@Param			name	path	string	true	"The resource name"
//	@Success		204		"Resource deleted"
//	@Failure		404		{object}	ErrorResponse	"Resource not found"
//	@Router			/resource/{name} [delete]
func (h *Handler) DeleteResource(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)

	if err := h.store.DeleteResource(r.Context(), name); err != nil {
		h.writeStoreError(w, err, "Resource", name)
		return
	}

	h.logger.Info().Str("name", name).Msg("resource deleted")
	h.publishCounts(r, catalog.CollectionResources, "delete")
	w.WriteHeader(http.StatusNoContent)
}
