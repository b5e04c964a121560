package types

import (
	"strconv"
	"strings"

	ierr "github.com/RealMorph/JSoftware-HubTech-sub013/internal/errors"
)

// Well-known metered resource names. The usage tracker accepts arbitrary
// resource names; these are the ones the default catalog meters.
const (
	ResourceProjects    = "projects"
	ResourceStorage     = "storage"
	ResourceTeamMembers = "teamMembers"
	ResourceAPIRequests = "apiRequests"
)

// LimitUnlimited is the plan feature limit string meaning "no bound".
const LimitUnlimited = "unlimited"

// ResourceLimit is a parsed plan feature limit: either unbounded or a
// non-negative integer ceiling.
type ResourceLimit struct {
	Unlimited bool
	Bound     int64
}

// ParseResourceLimit parses a plan feature limit string. "unlimited"
// (case-insensitive) yields the unbounded sentinel; a string holding an
// integer yields that bound; anything else is a validation error.
func ParseResourceLimit(limit string) (ResourceLimit, error) {
	trimmed := strings.TrimSpace(limit)
	if strings.EqualFold(trimmed, LimitUnlimited) {
		return ResourceLimit{Unlimited: true}, nil
	}

	bound, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return ResourceLimit{}, ierr.WithError(err).
			WithHintf("Resource limit %q is neither %q nor an integer", limit, LimitUnlimited).
			Mark(ierr.ErrValidation)
	}
	if bound < 0 {
		return ResourceLimit{}, ierr.NewError("negative resource limit").
			WithHintf("Resource limit %q must not be negative", limit).
			Mark(ierr.ErrValidation)
	}

	return ResourceLimit{Bound: bound}, nil
}

// Allows reports whether usage plus the requested amount fits inside the
// limit.
func (l ResourceLimit) Allows(currentUsage, requested int64) bool {
	if l.Unlimited {
		return true
	}
	return currentUsage+requested <= l.Bound
}
