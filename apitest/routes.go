package apitest

import (
	"net/http"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

var staffRoles = []apimodel.RoleType{apimodel.RoleAdmin, apimodel.RoleModerator}

func (s *Server) initRoutes() {
	api := s.router.PathPrefix(BasePath).Subrouter()

	// Auth
	api.HandleFunc("/auth/login/", chainMiddleware(s.LoginHandler(), s.public()...)).Methods(http.MethodPost)
	api.HandleFunc("/auth/register/", chainMiddleware(s.RegisterHandler(), s.public()...)).Methods(http.MethodPost)
	api.HandleFunc("/auth/token/refresh/", chainMiddleware(s.RefreshHandler(), s.public()...)).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout/", chainMiddleware(s.LogoutHandler(), s.loggingMiddleware, s.requireAuth)).Methods(http.MethodPost)
	api.HandleFunc("/auth/users/me/", chainMiddleware(s.CurrentUserHandler(), s.loggingMiddleware, s.requireAuth)).Methods(http.MethodGet)
	api.HandleFunc("/auth/users/me/", chainMiddleware(s.UpdateProfileHandler(), s.loggingMiddleware, s.requireAuth)).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/auth/users/", chainMiddleware(s.UsersHandler(), s.authenticated(requireRole(staffRoles...))...)).Methods(http.MethodGet)
	api.HandleFunc("/auth/users/pending/", chainMiddleware(s.PendingUsersHandler(), s.authenticated(requireRole(apimodel.RoleAdmin))...)).Methods(http.MethodGet)
	api.HandleFunc("/auth/users/{id:[0-9]+}/approve/", chainMiddleware(s.ApproveUserHandler(), s.authenticated(requireRole(apimodel.RoleAdmin))...)).Methods(http.MethodPatch, http.MethodPut)

	// Research
	api.HandleFunc("/research/publications/", chainMiddleware(s.PublicationsHandler(), s.authenticated()...)).Methods(http.MethodGet)
	api.HandleFunc("/research/publications/", chainMiddleware(s.CreatePublicationHandler(), s.authenticated()...)).Methods(http.MethodPost)
	api.HandleFunc("/research/publications/{id:[0-9]+}/", chainMiddleware(s.PublicationHandler(), s.authenticated()...)).Methods(http.MethodGet)
	api.HandleFunc("/research/publications/{id:[0-9]+}/", chainMiddleware(s.UpdatePublicationHandler(), s.authenticated()...)).Methods(http.MethodPut)
	api.HandleFunc("/research/publications/{id:[0-9]+}/", chainMiddleware(s.DeletePublicationHandler(), s.authenticated()...)).Methods(http.MethodDelete)
	api.HandleFunc("/research/publications/{id:[0-9]+}/approve/", chainMiddleware(s.ApprovePublicationHandler(), s.authenticated(requireRole(staffRoles...))...)).Methods(http.MethodPost)

	// Organization
	api.HandleFunc("/organization/settings/", chainMiddleware(s.SettingsHandler(), s.public()...)).Methods(http.MethodGet)
	api.HandleFunc("/organization/settings/", chainMiddleware(s.UpdateSettingsHandler(), s.authenticated(requireRole(apimodel.RoleAdmin))...)).Methods(http.MethodPut, http.MethodPatch)
	api.HandleFunc("/organization/stats/", chainMiddleware(s.StatsHandler(), s.authenticated()...)).Methods(http.MethodGet)

	// Read-mostly collections
	for _, name := range []string{
		"organization/departments", "organization/labs", "organization/equipment", "organization/staff",
		"content/announcements", "content/posts",
		"training/courses", "training/summer-training", "training/public-services",
		"services/test-services", "services/service-requests", "services/clients",
	} {
		api.HandleFunc("/"+name+"/", chainMiddleware(s.CollectionHandler(name), s.authenticated()...)).Methods(http.MethodGet)
	}
	api.HandleFunc("/content/announcements/", chainMiddleware(s.CreateInCollectionHandler("content/announcements", "title", "content"), s.authenticated(requireRole(staffRoles...))...)).Methods(http.MethodPost)
	api.HandleFunc("/content/posts/", chainMiddleware(s.CreateInCollectionHandler("content/posts", "title", "content"), s.authenticated(requireRole(staffRoles...))...)).Methods(http.MethodPost)
	api.HandleFunc("/services/service-requests/", chainMiddleware(s.CreateInCollectionHandler("services/service-requests", "service", "title"), s.authenticated()...)).Methods(http.MethodPost)
	api.HandleFunc("/training/enrollments/", chainMiddleware(s.CreateInCollectionHandler("training/enrollments", "course"), s.authenticated()...)).Methods(http.MethodPost)
	api.HandleFunc("/training/applications/", chainMiddleware(s.CreateInCollectionHandler("training/applications", "program"), s.authenticated()...)).Methods(http.MethodPost)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found.")
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, `Method "`+r.Method+`" not allowed.`)
	})
}
