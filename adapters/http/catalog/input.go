package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/chunkinator/astroneer/domain/catalog"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds request bodies, matching the multipart memory limit.
const maxBodyBytes = 1 << 20

// listField accepts a JSON array of strings or a comma-separated string.
// A nil listField means the field was not supplied.
type listField []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *listField) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = catalog.ParseList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected a string or a list of strings")
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, strings.TrimSpace(it))
	}
	*l = out
	return nil
}

// ResourceInput is the body accepted by resource create and update.
type ResourceInput struct {
	Name        string    `json:"name" validate:"required" example:"Iron"`
	Found       listField `json:"found" validate:"required,min=1" swaggertype:"string" example:"Vesania, Novark"`
	CraftedIn   listField `json:"crafted_in" swaggertype:"string" example:"Smelting Furnace"`
	RefinedWith listField `json:"refined_with" swaggertype:"string"`
	Rate        listField `json:"rate" swaggertype:"string" example:"Sylva:1.0"`
}

// Resource builds a brand-new record; unsupplied optional fields stay empty.
func (in ResourceInput) Resource() catalog.Resource {
	return catalog.Resource{
		Name:        strings.TrimSpace(in.Name),
		Found:       []string(in.Found),
		CraftedIn:   []string(in.CraftedIn),
		RefinedWith: []string(in.RefinedWith),
		Rate:        []string(in.Rate),
	}
}

func (in *ResourceInput) fromValues(v url.Values) {
	in.Name = v.Get("name")
	in.Found = listValue(v, "found")
	in.CraftedIn = listValue(v, "crafted_in")
	in.RefinedWith = listValue(v, "refined_with")
	in.Rate = listValue(v, "rate")
}

// ModuleInput is the body accepted by module create and update.
type ModuleInput struct {
	Name         string    `json:"name" validate:"required" example:"Tether"`
	ResourceCost listField `json:"resource_cost" validate:"required,min=1" swaggertype:"string" example:"Compound"`
	Printer      string    `json:"printer" validate:"required" example:"Backpack Printer"`
}

// Module builds a brand-new record.
func (in ModuleInput) Module() catalog.Module {
	return catalog.Module{
		Name:         strings.TrimSpace(in.Name),
		ResourceCost: []string(in.ResourceCost),
		Printer:      strings.TrimSpace(in.Printer),
	}
}

func (in *ModuleInput) fromValues(v url.Values) {
	in.Name = v.Get("name")
	in.ResourceCost = listValue(v, "resource_cost")
	in.Printer = v.Get("printer")
}

// listValue parses a form list, returning nil when the key is absent.
func listValue(v url.Values, key string) listField {
	vals, ok := v[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return catalog.ParseList(vals[0])
}

type formInput interface {
	fromValues(url.Values)
}

// decodeInput fills dst from a JSON, urlencoded or multipart body.
// Query parameters are accepted alongside form fields.
func decodeInput(w http.ResponseWriter, r *http.Request, dst formInput) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
		dec := json.NewDecoder(body)
		if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("invalid JSON body: %w", err)
		}
		return nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return fmt.Errorf("invalid multipart body: %w", err)
		}
	default:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("invalid form body: %w", err)
		}
	}

	dst.fromValues(r.Form)
	return nil
}

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput returns field -> failed rule, or nil when the input is valid.
func validateInput(in interface{}) map[string]string {
	err := inputValidator.Struct(in)
	if err == nil {
		return nil
	}

	details := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
		return details
	}
	details["_"] = err.Error()
	return details
}

// readInput decodes and validates a request body, writing the error response
// itself. It reports whether the handler should continue.
func (h *Handler) readInput(w http.ResponseWriter, r *http.Request, dst formInput) bool {
	if err := decodeInput(w, r, dst); err != nil {
		h.logger.Debug().Err(err).Msg("rejecting request body")
		writeError(w, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return false
	}
	if details := validateInput(dst); details != nil {
		writeErrorDetails(w, http.StatusBadRequest, CodeValidationFailed, "Input payload validation failed", details)
		return false
	}
	return true
}
