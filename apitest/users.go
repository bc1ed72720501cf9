package apitest

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

type userRecord struct {
	user         apimodel.User
	passwordHash string
}

type userStore struct {
	mu     sync.RWMutex
	users  map[int]*userRecord
	nextID int
}

func newUserStore() *userStore {
	return &userStore{users: make(map[int]*userRecord), nextID: 1}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validatePasswordStrength requires eight characters with upper and lower
// case letters and a digit.
func validatePasswordStrength(value any) error {
	password, _ := value.(string)
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}
	if !hasUpper || !hasLower || !hasNumber {
		return errors.New("password must mix upper and lower case letters and numbers")
	}
	return nil
}

func (s *userStore) add(user apimodel.User, password string) (apimodel.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return apimodel.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextID
	s.nextID++
	if user.Username == "" {
		user.Username, _, _ = strings.Cut(user.Email, "@")
	}
	s.users[user.ID] = &userRecord{user: user, passwordHash: hash}
	return user, nil
}

func (s *userStore) byID(id int) (*apimodel.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, false
	}
	user := rec.user
	return &user, true
}

func (s *userStore) emailTaken(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.users {
		if strings.EqualFold(rec.user.Email, email) {
			return true
		}
	}
	return false
}

// authenticate returns the user for valid credentials.
func (s *userStore) authenticate(email, password string) (*apimodel.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.users {
		if strings.EqualFold(rec.user.Email, email) && checkPasswordHash(password, rec.passwordHash) {
			user := rec.user
			return &user, true
		}
	}
	return nil, false
}

func (s *userStore) update(id int, fn func(*apimodel.User)) (*apimodel.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, false
	}
	fn(&rec.user)
	user := rec.user
	return &user, true
}

func (s *userStore) list(filter func(apimodel.User) bool) []apimodel.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]apimodel.User, 0, len(s.users))
	for id := 1; id < s.nextID; id++ {
		if rec, ok := s.users[id]; ok && (filter == nil || filter(rec.user)) {
			out = append(out, rec.user)
		}
	}
	return out
}

// AddUser registers an account directly, bypassing the register endpoint.
func (s *Server) AddUser(email, password string, role apimodel.RoleType, approved bool) (apimodel.User, error) {
	return s.users.add(apimodel.User{Email: email, Role: role, IsApproved: approved}, password)
}
