package catalog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/chunkinator/astroneer/adapters/http/catalog"
	"github.com/chunkinator/astroneer/adapters/memory"
	"github.com/chunkinator/astroneer/adapters/metrics"
	domain "github.com/chunkinator/astroneer/domain/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

const base = "/astro/v1"

func setupHandler(t *testing.T) (http.Handler, *memory.CatalogStore) {
	t.Helper()
	store := memory.NewCatalogStore()
	return newRouter(catalog.Deps{Store: store, Logger: zerolog.Nop()}), store
}

func newRouter(deps catalog.Deps) http.Handler {
	r := chi.NewRouter()
	r.Mount(base, catalog.NewHandler(deps).Router())
	return r
}

func doForm(h http.Handler, method, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doJSON(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) catalog.ErrorDetail {
	t.Helper()
	var body catalog.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v (body %q)", err, rec.Body.String())
	}
	return body.Error
}

func TestCreateResource(t *testing.T) {
	h, store := setupHandler(t)

	rec := doForm(h, http.MethodPost, base+"/resource/", url.Values{
		"name":  {"Iron"},
		"found": {"Vesania, Novark"},
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	want := `{"name":"Iron","found":["Vesania","Novark"]}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", ct)
	}

	r, err := store.GetResource(context.Background(), "Iron")
	if err != nil {
		t.Fatalf("GetResource error: %v", err)
	}
	if len(r.Found) != 2 || r.Found[1] != "Novark" {
		t.Errorf("stored Found = %v", r.Found)
	}
}

func TestCreateResource_Duplicate(t *testing.T) {
	h, store := setupHandler(t)

	doForm(h, http.MethodPost, base+"/resource/", url.Values{"name": {"Iron"}, "found": {"Vesania, Novark"}})
	rec := doForm(h, http.MethodPost, base+"/resource/", url.Values{"name": {"Iron"}, "found": {"X"}})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	e := decodeError(t, rec)
	if e.Code != catalog.CodeAlreadyExists {
		t.Errorf("code = %s, want %s", e.Code, catalog.CodeAlreadyExists)
	}
	if e.Message != "Resource Iron already exists" {
		t.Errorf("message = %q", e.Message)
	}

	all, _ := store.ListResources(context.Background())
	if len(all) != 1 {
		t.Fatalf("resources = %d, want 1", len(all))
	}
	if strings.Join(all[0].Found, "|") != "Vesania|Novark" {
		t.Errorf("Found = %v, want original list", all[0].Found)
	}
}

func TestCreateResource_Validation(t *testing.T) {
	h, store := setupHandler(t)

	tests := []struct {
		name      string
		form      url.Values
		wantField string
	}{
		{"missing name", url.Values{"found": {"Sylva"}}, "name"},
		{"missing found", url.Values{"name": {"Iron"}}, "found"},
		{"blank found", url.Values{"name": {"Iron"}, "found": {"  "}}, "found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doForm(h, http.MethodPost, base+"/resource/", tt.form)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			e := decodeError(t, rec)
			if e.Code != catalog.CodeValidationFailed {
				t.Errorf("code = %s, want %s", e.Code, catalog.CodeValidationFailed)
			}
			if _, ok := e.Details[tt.wantField]; !ok {
				t.Errorf("details = %v, want key %s", e.Details, tt.wantField)
			}
		})
	}

	if n := store.Counts(context.Background())["resources"]; n != 0 {
		t.Errorf("resources = %d after rejected creates, want 0", n)
	}
}

func TestCreateResource_BlankName(t *testing.T) {
	h, _ := setupHandler(t)

	rec := doForm(h, http.MethodPost, base+"/resource/", url.Values{"name": {"   "}, "found": {"Sylva"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != catalog.CodeValidationFailed {
		t.Errorf("code = %s, want %s", e.Code, catalog.CodeValidationFailed)
	}
}

func TestCreateResource_JSON(t *testing.T) {
	h, _ := setupHandler(t)

	rec := doJSON(h, http.MethodPost, base+"/resource/",
		`{"name":"Hydrazine","found":["Atrox"],"refined_with":"Ammonium, Hydrogen","rate":null}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var got domain.Resource
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.RefinedWith) != 2 || got.RefinedWith[0] != "Ammonium" || got.RefinedWith[1] != "Hydrogen" {
		t.Errorf("RefinedWith = %v", got.RefinedWith)
	}
	if got.Rate != nil {
		t.Errorf("Rate = %v, want omitted", got.Rate)
	}
}

func TestCreateResource_BadJSON(t *testing.T) {
	h, _ := setupHandler(t)

	rec := doJSON(h, http.MethodPost, base+"/resource/", `{"name":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Code != catalog.CodeInvalidRequest {
		t.Errorf("code = %s, want %s", e.Code, catalog.CodeInvalidRequest)
	}

	rec = doJSON(h, http.MethodPost, base+"/resource/", `{"name":"Iron","found":42}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateResource_Multipart(t *testing.T) {
	h, _ := setupHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("name", "Copper")
	mw.WriteField("found", "Calidor")
	mw.WriteField("crafted_in", "Smelting Furnace")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, base+"/resource/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	want := `{"name":"Copper","found":["Calidor"],"crafted_in":["Smelting Furnace"]}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestListResources(t *testing.T) {
	h, store := setupHandler(t)
	ctx := context.Background()

	// Empty list is an empty array, not null.
	rec := do(h, http.MethodGet, base+"/resource/")
	if got := strings.TrimSpace(rec.Body.String()); got != `{"resources":[]}` {
		t.Errorf("empty list body = %s", got)
	}

	for _, n := range []string{"Iron", "Copper", "Tin"} {
		store.CreateResource(ctx, domain.Resource{Name: n, Found: []string{"Sylva"}})
	}

	for _, path := range []string{base + "/resource/", base + "/resource"} {
		rec = do(h, http.MethodGet, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, rec.Code)
		}
		var body catalog.ResourceList
		json.NewDecoder(rec.Body).Decode(&body)
		if len(body.Resources) != 3 || body.Resources[0].Name != "Iron" || body.Resources[2].Name != "Tin" {
			t.Errorf("GET %s resources = %v", path, body.Resources)
		}
	}
}

func TestGetResource(t *testing.T) {
	h, store := setupHandler(t)
	store.CreateResource(context.Background(), domain.Resource{Name: "Iron Ingot", Found: []string{"Sylva"}})

	rec := do(h, http.MethodGet, base+"/resource/Iron%20Ingot")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	rec = do(h, http.MethodGet, base+"/resource/Gold")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	e := decodeError(t, rec)
	if e.Code != catalog.CodeNotFound || e.Message != "Resource Gold doesn't exist" {
		t.Errorf("error = %+v", e)
	}
}

func TestUpdateResource(t *testing.T) {
	h, store := setupHandler(t)
	ctx := context.Background()
	store.CreateResource(ctx, domain.Resource{Name: "Iron", Found: []string{"Sylva"}, CraftedIn: []string{"Furnace"}})
	store.CreateResource(ctx, domain.Resource{Name: "Copper", Found: []string{"Calidor"}})

	rec := doForm(h, http.MethodPut, base+"/resource/Iron", url.Values{
		"name":  {"Iron"},
		"found": {"Desolo"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	got, err := store.GetResource(ctx, "Iron")
	if err != nil {
		t.Fatalf("GetResource error: %v", err)
	}
	// Whole-record replacement: crafted_in was not supplied, so it is gone.
	if len(got.Found) != 1 || got.Found[0] != "Desolo" || got.CraftedIn != nil {
		t.Errorf("updated resource = %+v", got)
	}

	// Position kept.
	all, _ := store.ListResources(ctx)
	if all[0].Name != "Iron" {
		t.Errorf("first resource = %s, want Iron", all[0].Name)
	}
}

func TestUpdateResource_NotFound(t *testing.T) {
	h, store := setupHandler(t)

	rec := doForm(h, http.MethodPut, base+"/resource/Gold", url.Values{"name": {"Gold"}, "found": {"Sylva"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	// Missing record beats a bad body.
	rec = doForm(h, http.MethodPut, base+"/resource/Gold", url.Values{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if n := store.Counts(context.Background())["resources"]; n != 0 {
		t.Errorf("resources = %d, want 0", n)
	}
}

func TestUpdateResource_RenameConflict(t *testing.T) {
	h, store := setupHandler(t)
	ctx := context.Background()
	store.CreateResource(ctx, domain.Resource{Name: "Iron", Found: []string{"Sylva"}})
	store.CreateResource(ctx, domain.Resource{Name: "Copper", Found: []string{"Calidor"}})

	rec := doForm(h, http.MethodPut, base+"/resource/Iron", url.Values{"name": {"Copper"}, "found": {"X"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	e := decodeError(t, rec)
	if e.Code != catalog.CodeAlreadyExists || e.Message != "Resource Copper already exists" {
		t.Errorf("error = %+v", e)
	}

	rec = doForm(h, http.MethodPut, base+"/resource/Iron", url.Values{"name": {"Steel"}, "found": {"X"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("rename status = %d, want 200", rec.Code)
	}
	if _, err := store.GetResource(ctx, "Iron"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("old name still present: %v", err)
	}
}

func TestDeleteResource(t *testing.T) {
	h, store := setupHandler(t)
	store.CreateResource(context.Background(), domain.Resource{Name: "Iron", Found: []string{"Sylva"}})

	rec := do(h, http.MethodDelete, base+"/resource/Iron")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}

	rec = do(h, http.MethodDelete, base+"/resource/Iron")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestModuleLifecycle(t *testing.T) {
	h, store := setupHandler(t)
	ctx := context.Background()

	rec := doForm(h, http.MethodPost, base+"/module/", url.Values{
		"name":          {"Tether"},
		"resource_cost": {"Compound"},
		"printer":       {"Backpack Printer"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	want := `{"name":"Tether","resource_cost":["Compound"],"printer":"Backpack Printer"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("create body = %s, want %s", got, want)
	}

	rec = doForm(h, http.MethodPost, base+"/module/", url.Values{
		"name":          {"Tether"},
		"resource_cost": {"Resin"},
		"printer":       {"Small Printer"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, want 400", rec.Code)
	}
	if e := decodeError(t, rec); e.Message != "Module Tether already exists" {
		t.Errorf("duplicate message = %q", e.Message)
	}

	rec = doJSON(h, http.MethodPut, base+"/module/Tether",
		`{"name":"Tether","resource_cost":["Compound","Resin"],"printer":"Small Printer"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	m, _ := store.GetModule(ctx, "Tether")
	if m.Printer != "Small Printer" || len(m.ResourceCost) != 2 {
		t.Errorf("updated module = %+v", m)
	}

	rec = do(h, http.MethodGet, base+"/module/Tether")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	rec = do(h, http.MethodGet, base+"/module/")
	var list catalog.ModuleList
	json.NewDecoder(rec.Body).Decode(&list)
	if len(list.Modules) != 1 {
		t.Errorf("modules = %v", list.Modules)
	}

	rec = do(h, http.MethodDelete, base+"/module/Tether")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
}

func TestModule_RequiredFields(t *testing.T) {
	h, _ := setupHandler(t)

	rec := doForm(h, http.MethodPost, base+"/module/", url.Values{"name": {"Tether"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	e := decodeError(t, rec)
	if _, ok := e.Details["printer"]; !ok {
		t.Errorf("details = %v, want printer", e.Details)
	}
	if _, ok := e.Details["resource_cost"]; !ok {
		t.Errorf("details = %v, want resource_cost", e.Details)
	}
}

func TestGetModule_NotFound(t *testing.T) {
	h, _ := setupHandler(t)

	rec := do(h, http.MethodGet, base+"/module/Smelter")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if e := decodeError(t, rec); e.Message != "Module Smelter doesn't exist" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestDump(t *testing.T) {
	h, store := setupHandler(t)
	ctx := context.Background()
	store.CreateModule(ctx, domain.Module{Name: "Iron Ingot", ResourceCost: []string{"Iron"}, Printer: "Small Printer"})

	rec := do(h, http.MethodGet, base+"/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	want := `{"modules":[{"name":"Iron Ingot","resource_cost":["Iron"],"printer":"Small Printer"}],"resources":[],"planets":[]}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestMutationsRecordMetrics(t *testing.T) {
	store := memory.NewCatalogStore()
	m := metrics.NewWithRegistry(prometheus.NewRegistry())
	h := newRouter(catalog.Deps{Store: store, Logger: zerolog.Nop(), Metrics: m})

	doForm(h, http.MethodPost, base+"/resource/", url.Values{"name": {"Iron"}, "found": {"Sylva"}})
	doForm(h, http.MethodPost, base+"/resource/", url.Values{"name": {"Iron"}, "found": {"Sylva"}})
	do(h, http.MethodDelete, base+"/resource/Iron")

	if got := testutil.ToFloat64(m.CatalogMutations.WithLabelValues("resources", "create")); got != 1 {
		t.Errorf("create mutations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CatalogMutations.WithLabelValues("resources", "delete")); got != 1 {
		t.Errorf("delete mutations = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CatalogRecords.WithLabelValues("resources")); got != 0 {
		t.Errorf("resource records = %v, want 0", got)
	}
}

// failingStore returns an unexpected error from every read.
type failingStore struct {
	*memory.CatalogStore
}

func (failingStore) ListResources(context.Context) ([]domain.Resource, error) {
	return nil, errors.New("disk on fire")
}

func TestInternalError_DebugBody(t *testing.T) {
	store := failingStore{memory.NewCatalogStore()}

	h := newRouter(catalog.Deps{Store: store, Logger: zerolog.Nop()})
	rec := do(h, http.MethodGet, base+"/resource/")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if e := decodeError(t, rec); strings.Contains(e.Message, "disk on fire") {
		t.Errorf("non-debug message leaks error: %q", e.Message)
	}

	h = newRouter(catalog.Deps{Store: store, Logger: zerolog.Nop(), Debug: true})
	rec = do(h, http.MethodGet, base+"/resource/")
	if e := decodeError(t, rec); e.Message != "disk on fire" {
		t.Errorf("debug message = %q, want disk on fire", e.Message)
	}
}

func TestSetDebug(t *testing.T) {
	store := failingStore{memory.NewCatalogStore()}
	handler := catalog.NewHandler(catalog.Deps{Store: store, Logger: zerolog.Nop()})
	r := chi.NewRouter()
	r.Mount(base, handler.Router())

	handler.SetDebug(true)
	if e := decodeError(t, do(r, http.MethodGet, base+"/resource/")); e.Message != "disk on fire" {
		t.Errorf("message after SetDebug(true) = %q", e.Message)
	}

	handler.SetDebug(false)
	if e := decodeError(t, do(r, http.MethodGet, base+"/resource/")); e.Message != "Internal server error" {
		t.Errorf("message after SetDebug(false) = %q", e.Message)
	}
}
