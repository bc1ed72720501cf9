package tokens

import (
	"net/http"

	"golang.org/x/oauth2"
)

// Session is the pair of bearer credentials held by a client.
// Both fields are set or both are empty, except briefly after a failed
// refresh while the session is being cleared.
type Session struct {
	AccessToken  string
	RefreshToken string
}

func (s Session) HasAccessToken() bool {
	return s.AccessToken != ""
}

func (s Session) HasRefreshToken() bool {
	return s.RefreshToken != ""
}

// oauth2Token views the session as an oauth2.Token. Expiry is left zero: the
// platform does not report it and the client never checks it.
func (s Session) oauth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		TokenType:    "Bearer",
	}
}

// SetAuthHeader sets "Authorization: Bearer <access>" on r.
func (s Session) SetAuthHeader(r *http.Request) {
	s.oauth2Token().SetAuthHeader(r)
}
