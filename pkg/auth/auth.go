// Package auth holds the credentials used to authenticate calls to the service.
package auth

import (
	"net/http"
)

// Credentials used to authenticate against the service.
//
// A token takes precedence over a user and password.
type Credentials struct {
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Token    string `yaml:"token,omitempty"`
}

// IsZero tells if no credential is set
func (c Credentials) IsZero() bool {
	return c.Token == "" && c.User == ""
}

// Apply the credentials to an outgoing request
func (c Credentials) Apply(req *http.Request) {
	switch {
	case c.Token != "":
		req.Header.Set("Authorization", "Bearer "+c.Token)
	case c.User != "":
		req.SetBasicAuth(c.User, c.Password)
	}
}

// Merge returns credentials completed with the values from other, when missing
func (c Credentials) Merge(other Credentials) Credentials {
	if c.Token == "" {
		c.Token = other.Token
	}
	if c.User == "" {
		c.User = other.User
		if c.Password == "" {
			c.Password = other.Password
		}
	}
	return c
}

// Authable knows how to retrieve credentials
type Authable interface {
	Credentials() (Credentials, error)
}
