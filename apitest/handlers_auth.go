package apitest

import (
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gorilla/mux"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apimodel.LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validation.ValidateStruct(&req,
			validation.Field(&req.Email, validation.Required, is.EmailFormat),
			validation.Field(&req.Password, validation.Required),
		); err != nil {
			writeValidationError(w, err)
			return
		}

		user, ok := s.users.authenticate(req.Email, req.Password)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]any{"non_field_errors": []string{"Invalid credentials"}})
			return
		}

		access, refresh, err := s.issuer.issuePair(user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, apimodel.LoginResponse{Access: access, Refresh: refresh, User: user})
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if status := s.refreshFailure(); status != 0 {
			writeJSON(w, status, map[string]any{"detail": "Token is invalid or expired", "code": "token_not_valid"})
			return
		}

		var req apimodel.RefreshRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validation.ValidateStruct(&req, validation.Field(&req.Refresh, validation.Required)); err != nil {
			writeValidationError(w, err)
			return
		}

		claims, err := s.issuer.verify(req.Refresh, tokenTypeRefresh)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Token is invalid or expired", "code": "token_not_valid"})
			return
		}

		access, err := s.issuer.issue(claims.UserID, tokenTypeAccess, s.accessTTL)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, apimodel.RefreshResponse{Access: access})
	}
}

// LogoutHandler blacklists the refresh token when one is posted.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apimodel.RefreshRequest
		if r.ContentLength > 0 && !decodeJSON(w, r, &req) {
			return
		}
		if req.Refresh != "" {
			if claims, err := s.issuer.verify(req.Refresh, tokenTypeRefresh); err == nil {
				s.issuer.blacklist(claims.JTI)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "Successfully logged out"})
	}
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req apimodel.RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		err := validation.ValidateStruct(&req,
			validation.Field(&req.Email, validation.Required, is.EmailFormat,
				validation.By(func(any) error {
					if s.users.emailTaken(req.Email) {
						return validation.NewError("unique", "user with this email already exists.")
					}
					return nil
				})),
			validation.Field(&req.Username, validation.Required, validation.Length(3, 150)),
			validation.Field(&req.Password, validation.Required, validation.By(validatePasswordStrength)),
			validation.Field(&req.PasswordConfirm, validation.When(req.PasswordConfirm != "", validation.In(req.Password).Error("passwords do not match"))),
		)
		if err != nil {
			writeValidationError(w, err)
			return
		}

		user, err := s.users.add(apimodel.User{
			Email:       req.Email,
			Username:    req.Username,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Institution: req.Institution,
			Department:  req.Department,
			Phone:       req.Phone,
			Role:        apimodel.RoleResearcher,
		}, req.Password)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

func (s *Server) CurrentUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentUser(r))
	}
}

type profileUpdate struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Institution *string `json:"institution"`
	Department  *string `json:"department"`
	Phone       *string `json:"phone"`
}

func (s *Server) UpdateProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req profileUpdate
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := validation.ValidateStruct(&req,
			validation.Field(&req.Phone, validation.NilOrNotEmpty, validation.Length(7, 20), is.Digit.Error("must contain digits only")),
		); err != nil {
			writeValidationError(w, err)
			return
		}

		user, ok := s.users.update(currentUser(r).ID, func(u *apimodel.User) {
			setIfPresent(&u.FirstName, req.FirstName)
			setIfPresent(&u.LastName, req.LastName)
			setIfPresent(&u.Institution, req.Institution)
			setIfPresent(&u.Department, req.Department)
			setIfPresent(&u.Phone, req.Phone)
		})
		if !ok {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func (s *Server) UsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := apimodel.RoleType(r.URL.Query().Get("role"))
		writePage(w, r, s.users.list(func(u apimodel.User) bool {
			return role == "" || u.Role == role
		}))
	}
}

func (s *Server) PendingUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writePage(w, r, s.users.list(func(u apimodel.User) bool { return !u.IsApproved }))
	}
}

func (s *Server) ApproveUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(mux.Vars(r)["id"])

		var req apimodel.UserApproval
		if !decodeJSON(w, r, &req) {
			return
		}

		user, ok := s.users.update(id, func(u *apimodel.User) {
			u.IsApproved = req.IsApproved
		})
		if !ok {
			writeError(w, http.StatusNotFound, "Not found.")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
