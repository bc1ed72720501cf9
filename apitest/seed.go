package apitest

import (
	"fmt"

	"github.com/jrsteele09/research-platform-client/apimodel"
)

// Seeded accounts. Passwords satisfy the register endpoint's strength rules.
const (
	AdminEmail       = "admin@research.local"
	AdminPassword    = "Admin1234"
	ResearcherEmail  = "researcher@research.local"
	ResearcherPass   = "Research1234"
	PendingEmail     = "pending@research.local"
	PendingPassword  = "Pending1234"
	SeedPublications = 25
)

func (s *Server) seed() {
	admin := s.mustAddUser(apimodel.User{Email: AdminEmail, FirstName: "Site", LastName: "Admin", Role: apimodel.RoleAdmin, IsApproved: true}, AdminPassword)
	researcher := s.mustAddUser(apimodel.User{Email: ResearcherEmail, FirstName: "Ada", LastName: "Lovelace", Role: apimodel.RoleResearcher, IsApproved: true}, ResearcherPass)
	s.mustAddUser(apimodel.User{Email: PendingEmail, Role: apimodel.RoleResearcher}, PendingPassword)

	s.settings = apimodel.OrganizationSettings{
		Name:    "Scientific Research Center",
		Vision:  "Advancing knowledge through open research.",
		Mission: "Support researchers with labs, training and testing services.",
		Email:   "info@research.local",
	}

	now := NowTimeFunc().UTC()
	for i := 1; i <= SeedPublications; i++ {
		status := apimodel.PublicationPublished
		if i%5 == 0 {
			status = apimodel.PublicationPending
		}
		s.publications[i] = &apimodel.Publication{
			ID:                  i,
			Title:               fmt.Sprintf("Study %02d on thin-film materials", i),
			Abstract:            "Seeded publication.",
			Status:              status,
			IsPublic:            status == apimodel.PublicationPublished,
			Authors:             []apimodel.User{researcher},
			CorrespondingAuthor: &researcher,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
	}
	s.nextPubID = SeedPublications + 1

	s.collections["organization/departments"] = []apimodel.Object{
		{"id": 1, "name": "Physics", "code": "PHY", "head": admin},
		{"id": 2, "name": "Chemistry", "code": "CHM"},
	}
	s.collections["organization/labs"] = []apimodel.Object{
		{"id": 1, "name": "Materials Lab", "code": "MAT", "department": s.collections["organization/departments"][0], "capacity": 8},
		{"id": 2, "name": "Spectroscopy Lab", "code": "SPC", "department": s.collections["organization/departments"][1], "capacity": 4},
	}
	s.collections["organization/equipment"] = []apimodel.Object{{"id": 1, "name": "X-ray diffractometer", "lab": 1}}
	s.collections["organization/staff"] = []apimodel.Object{{"id": 1, "user": admin.ID, "position": "Director"}}
	s.collections["content/announcements"] = []apimodel.Object{
		{"id": 1, "title": "Open day", "content": "Labs open to visitors.", "status": "published", "target_audience": "all", "is_featured": true},
	}
	s.collections["content/posts"] = []apimodel.Object{{"id": 1, "title": "New diffractometer", "status": "published"}}
	s.collections["training/courses"] = []apimodel.Object{
		{"id": 1, "title": "Intro to XRD", "status": "open", "max_participants": 12, "current_participants": 3},
		{"id": 2, "title": "Lab safety", "status": "completed", "max_participants": 30, "current_participants": 30},
	}
	s.collections["training/summer-training"] = []apimodel.Object{{"id": 1, "title": "Summer materials school", "status": "open"}}
	s.collections["training/public-services"] = []apimodel.Object{{"id": 1, "title": "School visits", "status": "active"}}
	s.collections["services/test-services"] = []apimodel.Object{
		{"id": 1, "name": "Powder XRD", "service_code": "XRD-01", "category": "materials", "status": "active", "base_price": 120.0},
		{"id": 2, "name": "FTIR", "service_code": "FTIR-01", "category": "chemistry", "status": "active", "base_price": 80.0},
	}
	s.collections["services/service-requests"] = []apimodel.Object{}
	s.collections["services/clients"] = []apimodel.Object{{"id": 1, "name": "Acme Coatings", "client_type": "industry"}}
}

func (s *Server) mustAddUser(user apimodel.User, password string) apimodel.User {
	added, err := s.users.add(user, password)
	if err != nil {
		panic("apitest: seed user: " + err.Error())
	}
	return added
}
