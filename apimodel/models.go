package apimodel

import "time"

// Object is an untyped JSON object, used for resources the client does not model.
type Object map[string]any

type User struct {
	ID          int      `json:"id"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Role        RoleType `json:"role"`
	IsApproved  bool     `json:"is_approved"`
	Institution string   `json:"institution,omitempty"`
	Department  string   `json:"department,omitempty"`
	Phone       string   `json:"phone,omitempty"`
}

// FullName joins first and last name, falling back to the username.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

type Publication struct {
	ID                  int               `json:"id"`
	Title               string            `json:"title"`
	Abstract            string            `json:"abstract"`
	Authors             []User            `json:"authors,omitempty"`
	CorrespondingAuthor *User             `json:"corresponding_author,omitempty"`
	Journal             string            `json:"journal,omitempty"`
	PublicationDate     string            `json:"publication_date,omitempty"`
	DOI                 string            `json:"doi,omitempty"`
	Status              PublicationStatus `json:"status"`
	IsPublic            bool              `json:"is_public"`
	PDFFile             string            `json:"pdf_file,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

type Department struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Code            string `json:"code"`
	Description     string `json:"description,omitempty"`
	Head            *User  `json:"head,omitempty"`
	EstablishedDate string `json:"established_date,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
	ContactPhone    string `json:"contact_phone,omitempty"`
}

type Lab struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Code        string      `json:"code"`
	Department  *Department `json:"department,omitempty"`
	Supervisor  *User       `json:"supervisor,omitempty"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	Capacity    int         `json:"capacity,omitempty"`
}

type Announcement struct {
	ID             int                `json:"id"`
	Title          string             `json:"title"`
	Content        string             `json:"content"`
	Author         *User              `json:"author,omitempty"`
	Status         AnnouncementStatus `json:"status"`
	TargetAudience Audience           `json:"target_audience"`
	IsFeatured     bool               `json:"is_featured"`
	PublishAt      *time.Time         `json:"publish_at,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

type Course struct {
	ID                  int          `json:"id"`
	Title               string       `json:"title"`
	Description         string       `json:"description"`
	Instructor          *User        `json:"instructor,omitempty"`
	Department          *Department  `json:"department,omitempty"`
	DurationWeeks       int          `json:"duration_weeks"`
	MaxParticipants     int          `json:"max_participants"`
	CurrentParticipants int          `json:"current_participants"`
	StartDate           string       `json:"start_date"`
	EndDate             string       `json:"end_date"`
	Status              CourseStatus `json:"status"`
	Prerequisites       string       `json:"prerequisites,omitempty"`
	Fee                 float64      `json:"fee"`
}

// SeatsLeft is the remaining capacity, never negative.
func (c Course) SeatsLeft() int {
	return max(c.MaxParticipants-c.CurrentParticipants, 0)
}

type TestService struct {
	ID                    int           `json:"id"`
	Name                  string        `json:"name"`
	ServiceCode           string        `json:"service_code"`
	Description           string        `json:"description"`
	Category              string        `json:"category"`
	Department            *Department   `json:"department,omitempty"`
	Lab                   *Lab          `json:"lab,omitempty"`
	BasePrice             float64       `json:"base_price"`
	IsFree                bool          `json:"is_free"`
	EstimatedDuration     string        `json:"estimated_duration,omitempty"`
	Status                ServiceStatus `json:"status"`
	MaxConcurrentRequests int           `json:"max_concurrent_requests"`
	CurrentRequests       int           `json:"current_requests"`
}

type ServiceRequest struct {
	ID                 int           `json:"id"`
	RequestID          string        `json:"request_id"`
	Service            *TestService  `json:"service,omitempty"`
	Client             Object        `json:"client,omitempty"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Status             RequestStatus `json:"status"`
	Priority           Priority      `json:"priority"`
	RequestedDate      string        `json:"requested_date"`
	EstimatedCost      *float64      `json:"estimated_cost,omitempty"`
	FinalCost          *float64      `json:"final_cost,omitempty"`
	AssignedTechnician *User         `json:"assigned_technician,omitempty"`
}
