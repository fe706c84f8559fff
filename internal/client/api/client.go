package api

import "context"

// User is the authenticated user snapshot returned by the login and
// verify endpoints. It lives in memory only and is discarded on logout;
// it must be treated as stale after any token mutation.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
	IsActive    bool   `json:"isActive"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token        string
	SessionToken string
	User         *User
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// RegisterResult is the outcome of a successful registration. Token is
// empty when the account still requires e-mail verification.
type RegisterResult struct {
	Token                string
	User                 *User
	RequiresVerification bool
}

// Location is an opaque map-marker record shown by the admin viewer.
type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Photo describes an uploaded photo.
type Photo struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int64  `json:"size"`
}

// Table is a generic result of the admin database viewer.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Client is the remote Portal API surface used by the application.
// Authenticated calls attach the token set via SetToken as a bearer
// header; the server independently authorizes every call.
type Client interface {
	// SetToken installs the bearer token used by authenticated calls.
	SetToken(token string)

	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Verify(ctx context.Context) (*User, error)
	Logout(ctx context.Context, sessionToken string) error

	ListUsers(ctx context.Context) ([]*User, error)
	SetUserAdmin(ctx context.Context, id int64, admin bool) error
	SetUserActive(ctx context.Context, id int64, active bool) error
	DeleteUser(ctx context.Context, id int64) error

	ListLocations(ctx context.Context) ([]*Location, error)
	DeleteLocation(ctx context.Context, id int64) error

	DeletePhoto(ctx context.Context, id int64) error
	UploadPhoto(ctx context.Context, filename string, data []byte) (*Photo, error)

	TableRows(ctx context.Context, name string) (*Table, error)

	Close() error
}
