package apitest

import (
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

var settingsImageFields = []string{apimodel.LogoField, apimodel.VisionImageField, apimodel.MissionImageField}

func (s *Server) SettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		settings := s.settings
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, settings)
	}
}

// UpdateSettingsHandler accepts a multipart form carrying any of the image
// fields plus plain text fields.
func (s *Server) UpdateSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 4*apimodel.MaxSettingsImageBytes)
		if err := r.ParseMultipartForm(apimodel.MaxSettingsImageBytes); err != nil {
			writeError(w, http.StatusBadRequest, "Multipart form parse error - "+err.Error())
			return
		}

		errs := validation.Errors{}
		images := map[string]string{}
		for _, field := range settingsImageFields {
			headers := r.MultipartForm.File[field]
			if len(headers) == 0 {
				continue
			}
			fh := headers[0]
			errs[field] = validation.Validate(fh.Filename, validation.By(func(any) error {
				if !apimodel.IsSettingsImage(fh.Filename) {
					return validation.NewError("image_type", "Upload a valid image. Only JPEG and PNG are accepted.")
				}
				if fh.Size > apimodel.MaxSettingsImageBytes {
					return validation.NewError("image_size", "Image file size must be less than 5MB")
				}
				return nil
			}))
			images[field] = fmt.Sprintf("http://%s/media/organization/%s", r.Host, fh.Filename)
		}
		email := r.FormValue("email")
		errs["email"] = validation.Validate(email, is.EmailFormat)
		website := r.FormValue("website")
		errs["website"] = validation.Validate(website, is.URL)
		if err := errs.Filter(); err != nil {
			writeValidationError(w, err)
			return
		}

		s.mu.Lock()
		st := &s.settings
		for field, url := range images {
			switch field {
			case apimodel.LogoField:
				st.Logo = url
			case apimodel.VisionImageField:
				st.VisionImage = url
			case apimodel.MissionImageField:
				st.MissionImage = url
			}
		}
		for field, dst := range map[string]*string{
			"name": &st.Name, "vision": &st.Vision, "mission": &st.Mission, "about": &st.About,
			"email": &st.Email, "phone": &st.Phone, "address": &st.Address, "website": &st.Website,
		} {
			if values, ok := r.MultipartForm.Value[field]; ok {
				*dst = values[0]
			}
		}
		out := s.settings
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		researchers := s.users.list(func(u apimodel.User) bool { return u.Role == apimodel.RoleResearcher })
		approved := 0
		for _, u := range researchers {
			if u.IsApproved {
				approved++
			}
		}

		s.mu.Lock()
		stats := apimodel.Object{
			"departments":  map[string]int{"total": len(s.collections["organization/departments"])},
			"labs":         map[string]int{"total": len(s.collections["organization/labs"])},
			"publications": map[string]int{"total": len(s.publications)},
			"researchers":  map[string]int{"total": len(researchers), "approved": approved},
		}
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, stats)
	}
}
