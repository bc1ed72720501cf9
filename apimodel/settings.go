package apimodel

import (
	"path"
	"strings"
)

// OrganizationSettings is the public singleton served at /organization/settings/.
// Image fields hold absolute media URLs.
type OrganizationSettings struct {
	Name         string `json:"name"`
	Logo         string `json:"logo,omitempty"`
	Vision       string `json:"vision,omitempty"`
	VisionImage  string `json:"vision_image,omitempty"`
	Mission      string `json:"mission,omitempty"`
	MissionImage string `json:"mission_image,omitempty"`
	About        string `json:"about,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	Website      string `json:"website,omitempty"`
	Facebook     string `json:"facebook,omitempty"`
	Twitter      string `json:"twitter,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
}

// Settings image form fields accepted by a multipart PUT.
const (
	VisionImageField  = "vision_image"
	MissionImageField = "mission_image"
	LogoField         = "logo"
)

// MaxSettingsImageBytes caps each settings image upload.
const MaxSettingsImageBytes = 5 << 20

// IsSettingsImage reports whether filename has an extension the settings
// form accepts (JPEG or PNG).
func IsSettingsImage(filename string) bool {
	switch strings.ToLower(path.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}
