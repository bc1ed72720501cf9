package apimodel

// PublicationReview is the body of POST /research/publications/{id}/approve/.
type PublicationReview struct {
	Status      PublicationStatus `json:"status"`
	ReviewNotes string            `json:"review_notes,omitempty"`
	IsPublic    *bool             `json:"is_public,omitempty"`
}

// PublicationReviewResult is returned after a review is recorded.
type PublicationReviewResult struct {
	Message     string       `json:"message"`
	Publication *Publication `json:"publication"`
}

// UserApproval is the body of PATCH /auth/users/{id}/approve/.
type UserApproval struct {
	IsApproved bool `json:"is_approved"`
}

// publicationTransitions lists the statuses a reviewer may move a
// publication to from each current status.
var publicationTransitions = map[PublicationStatus][]PublicationStatus{
	PublicationDraft:     {PublicationPending},
	PublicationPending:   {PublicationApproved, PublicationRejected},
	PublicationApproved:  {PublicationPublished, PublicationRejected},
	PublicationRejected:  {PublicationPending},
	PublicationPublished: {PublicationApproved},
}

// CanTransition reports whether a review may move a publication from s to next.
func (s PublicationStatus) CanTransition(next PublicationStatus) bool {
	for _, allowed := range publicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
