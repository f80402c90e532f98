package auth

import "shop-catalog/internal/model"

// Policy decides whether a principal may perform an action.
// It returns nil, model.ErrUnauthenticated or model.ErrForbidden.
type Policy func(p Principal) error

// AllowAny admits every caller, including anonymous ones.
func AllowAny(Principal) error {
	return nil
}

// RequireStaff admits authenticated staff members.
func RequireStaff(p Principal) error {
	if !p.Authenticated {
		return model.ErrUnauthenticated
	}
	if !p.Staff {
		return model.ErrForbidden
	}
	return nil
}

// RequireSuperuser admits authenticated staff members that are also superusers.
func RequireSuperuser(p Principal) error {
	if err := RequireStaff(p); err != nil {
		return err
	}
	if !p.Superuser {
		return model.ErrForbidden
	}
	return nil
}

// Admin category policies. Creating requires a superuser, updating only staff.
var (
	CanReadAdminCategories Policy = RequireStaff
	CanCreateCategory      Policy = RequireSuperuser
	CanUpdateCategory      Policy = RequireStaff
)
