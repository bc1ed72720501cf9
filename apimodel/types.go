package apimodel

// RoleType is the platform role attached to a user account.
type RoleType string

const (
	// RoleAdmin can manage every resource, approve users and edit organization settings.
	RoleAdmin RoleType = "admin"

	// RoleModerator reviews publications and manages labs and announcements.
	RoleModerator RoleType = "moderator"

	// RoleResearcher authors publications and requests services.
	// New registrations start here and must be approved before most endpoints answer.
	RoleResearcher RoleType = "researcher"
)

// PublicationStatus tracks a publication through review.
type PublicationStatus string

const (
	PublicationDraft       PublicationStatus = "draft"
	PublicationPending     PublicationStatus = "pending"
	PublicationApproved    PublicationStatus = "approved"
	PublicationSubmitted   PublicationStatus = "submitted"
	PublicationUnderReview PublicationStatus = "under_review"
	PublicationPublished   PublicationStatus = "published"
	PublicationRejected    PublicationStatus = "rejected"
)

// AnnouncementStatus controls whether an announcement is visible.
type AnnouncementStatus string

const (
	AnnouncementDraft     AnnouncementStatus = "draft"
	AnnouncementPublished AnnouncementStatus = "published"
	AnnouncementArchived  AnnouncementStatus = "archived"
)

// Audience restricts who sees an announcement.
type Audience string

const (
	AudienceAll         Audience = "all"
	AudienceApproved    Audience = "approved"
	AudienceResearchers Audience = "researchers"
	AudienceModerators  Audience = "moderators"
	AudienceAdmins      Audience = "admins"
)

// CourseStatus is the lifecycle of a training course.
type CourseStatus string

const (
	CourseDraft      CourseStatus = "draft"
	CourseOpen       CourseStatus = "open"
	CourseInProgress CourseStatus = "in_progress"
	CourseCompleted  CourseStatus = "completed"
	CourseCancelled  CourseStatus = "cancelled"
)

// ServiceStatus reports whether a test service accepts requests.
type ServiceStatus string

const (
	ServiceActive      ServiceStatus = "active"
	ServiceInactive    ServiceStatus = "inactive"
	ServiceMaintenance ServiceStatus = "maintenance"
)

// RequestStatus is the workflow state of a service request.
type RequestStatus string

const (
	RequestSubmitted   RequestStatus = "submitted"
	RequestUnderReview RequestStatus = "under_review"
	RequestApproved    RequestStatus = "approved"
	RequestInProgress  RequestStatus = "in_progress"
	RequestCompleted   RequestStatus = "completed"
	RequestRejected    RequestStatus = "rejected"
)

// Priority of a service request.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)
