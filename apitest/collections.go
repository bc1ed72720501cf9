package apitest

import (
	"fmt"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

// CollectionHandler lists a seeded resource, filtering on any query
// parameter other than page that matches a top-level field.
func (s *Server) CollectionHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		query.Del("page")

		s.mu.Lock()
		items := make([]apimodel.Object, 0, len(s.collections[name]))
		for _, item := range s.collections[name] {
			if matches(item, query) {
				items = append(items, item)
			}
		}
		s.mu.Unlock()

		writePage(w, r, items)
	}
}

func matches(item apimodel.Object, query map[string][]string) bool {
	for key, values := range query {
		v, ok := item[key]
		if !ok {
			continue
		}
		if toString(v) != values[0] {
			return false
		}
	}
	return true
}

// references maps, per collection, the keys whose posted id is replaced by
// the referenced object, as nested serializers do.
var references = map[string]map[string]string{
	"services/service-requests": {"service": "services/test-services"},
	"training/enrollments":      {"course": "training/courses"},
	"training/applications":     {"program": "training/summer-training"},
}

// lookup returns the object with the given id in a collection. The caller
// holds s.mu.
func (s *Server) lookup(collection string, id any) (apimodel.Object, bool) {
	want := toString(id)
	for _, item := range s.collections[collection] {
		if toString(item["id"]) == want {
			return item, true
		}
	}
	return nil, false
}

// CreateInCollectionHandler appends the posted object after checking that
// the required keys are present.
func (s *Server) CreateInCollectionHandler(name string, required ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body apimodel.Object
		if !decodeJSON(w, r, &body) {
			return
		}

		errs := validation.Errors{}
		for _, key := range required {
			errs[key] = validation.Validate(body[key], validation.Required.Error("This field is required."))
		}
		if err := errs.Filter(); err != nil {
			writeValidationError(w, err)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for key, collection := range references[name] {
			ref, ok := s.lookup(collection, body[key])
			if !ok {
				errs[key] = validation.NewError("does_not_exist", fmt.Sprintf("Invalid pk %q - object does not exist.", toString(body[key])))
				writeValidationError(w, errs.Filter())
				return
			}
			body[key] = ref
		}

		body["id"] = len(s.collections[name]) + 1
		if _, ok := body["status"]; !ok {
			body["status"] = "pending"
		}
		body["submitted_by"] = currentUser(r).ID
		s.collections[name] = append(s.collections[name], body)

		writeJSON(w, http.StatusCreated, body)
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
