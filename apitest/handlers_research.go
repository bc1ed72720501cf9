package apitest

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gorilla/mux"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

type publicationInput struct {
	Title           string `json:"title"`
	Abstract        string `json:"abstract"`
	Journal         string `json:"journal"`
	PublicationDate string `json:"publication_date"`
	DOI             string `json:"doi"`
	IsPublic        bool   `json:"is_public"`
}

func (in *publicationInput) Validate() error {
	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&in.Abstract, validation.Required),
		validation.Field(&in.PublicationDate, validation.Date("2006-01-02")),
		validation.Field(&in.DOI, validation.Length(0, 100)),
	)
}

func (s *Server) PublicationsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := strings.ToLower(r.URL.Query().Get("search"))
		status := apimodel.PublicationStatus(r.URL.Query().Get("status"))

		s.mu.Lock()
		ids := make([]int, 0, len(s.publications))
		for id := range s.publications {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		items := make([]apimodel.Publication, 0, len(ids))
		for _, id := range ids {
			p := s.publications[id]
			if search != "" && !strings.Contains(strings.ToLower(p.Title+" "+p.Abstract), search) {
				continue
			}
			if status != "" && p.Status != status {
				continue
			}
			items = append(items, *p)
		}
		s.mu.Unlock()

		writePage(w, r, items)
	}
}

func (s *Server) publicationFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	s.mu.Lock()
	_, ok := s.publications[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "No Publication matches the given query.")
	}
	return id, ok
}

func (s *Server) PublicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.publicationFromPath(w, r)
		if !ok {
			return
		}
		s.mu.Lock()
		p := *s.publications[id]
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) CreatePublicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in publicationInput
		if !decodeJSON(w, r, &in) {
			return
		}
		if err := in.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}

		now := NowTimeFunc().UTC()
		author := currentUser(r)
		p := &apimodel.Publication{
			Title:               in.Title,
			Abstract:            in.Abstract,
			Journal:             in.Journal,
			PublicationDate:     in.PublicationDate,
			DOI:                 in.DOI,
			IsPublic:            in.IsPublic,
			Status:              apimodel.PublicationDraft,
			Authors:             []apimodel.User{*author},
			CorrespondingAuthor: author,
			CreatedAt:           now,
			UpdatedAt:           now,
		}

		s.mu.Lock()
		p.ID = s.nextPubID
		s.nextPubID++
		s.publications[p.ID] = p
		out := *p
		s.mu.Unlock()

		writeJSON(w, http.StatusCreated, out)
	}
}

func (s *Server) UpdatePublicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.publicationFromPath(w, r)
		if !ok {
			return
		}
		var in publicationInput
		if !decodeJSON(w, r, &in) {
			return
		}
		if err := in.Validate(); err != nil {
			writeValidationError(w, err)
			return
		}

		s.mu.Lock()
		p := s.publications[id]
		p.Title = in.Title
		p.Abstract = in.Abstract
		p.Journal = in.Journal
		p.PublicationDate = in.PublicationDate
		p.DOI = in.DOI
		p.IsPublic = in.IsPublic
		p.UpdatedAt = NowTimeFunc().UTC()
		out := *p
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) DeletePublicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.publicationFromPath(w, r)
		if !ok {
			return
		}
		s.mu.Lock()
		delete(s.publications, id)
		s.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
}

// ApprovePublicationHandler applies a review, enforcing the status workflow.
func (s *Server) ApprovePublicationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := s.publicationFromPath(w, r)
		if !ok {
			return
		}
		var review apimodel.PublicationReview
		if !decodeJSON(w, r, &review) {
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		p := s.publications[id]

		err := validation.ValidateStruct(&review,
			validation.Field(&review.Status, validation.Required, validation.By(func(any) error {
				if !p.Status.CanTransition(review.Status) {
					return validation.NewError("transition", "Cannot transition from "+string(p.Status)+" to "+string(review.Status))
				}
				return nil
			})),
			validation.Field(&review.ReviewNotes, validation.Length(0, 2000)),
		)
		if err != nil {
			writeValidationError(w, err)
			return
		}

		p.Status = review.Status
		if review.IsPublic != nil {
			p.IsPublic = *review.IsPublic
		}
		p.UpdatedAt = NowTimeFunc().UTC()
		out := *p

		writeJSON(w, http.StatusOK, apimodel.PublicationReviewResult{
			Message:     "Publication " + string(review.Status),
			Publication: &out,
		})
	}
}
