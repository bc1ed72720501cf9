package tokens

// Keys under which the session is persisted. They match the names the web
// front end uses in localStorage so a shared store stays interchangeable.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Store is the durable key-value store backing a session.
// Get returns errors.ErrNotFound when the key is absent. Remove of an absent
// key is not an error.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
