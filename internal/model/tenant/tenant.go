// Package tenant holds the value that scopes every read and write.
//
// A Context is created at the edge of the system (from a verified token or
// a job descriptor) and passed explicitly down every call; nothing in the
// service keeps a current tenant in shared state.
package tenant

import (
	"errors"
	"strings"
)

var ErrEmptyTenant = errors.New("tenant id must be not empty")

type Context struct {
	ID string
}

func New(id string) (Context, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Context{}, ErrEmptyTenant
	}
	return Context{ID: id}, nil
}

func (c Context) IsZero() bool {
	return c.ID == ""
}

func (c Context) String() string {
	return c.ID
}
