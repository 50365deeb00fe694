package models

import "errors"

type Role string

const (
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleEmployer  Role = "EMPLOYER"
	RoleAdmin     Role = "ADMIN"
)

func ToRole(s string) (Role, error) {
	switch s {
	case string(RoleJobSeeker):
		return RoleJobSeeker, nil
	case string(RoleEmployer):
		return RoleEmployer, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", errors.New("invalid role")
	}
}

// Actor is the authenticated identity attached to every request by the
// identity provider. The session id used for resume matching is not part
// of it: sessions correlate artifacts, they never authorize anything.
type Actor struct {
	ID   int64
	Role Role
}
