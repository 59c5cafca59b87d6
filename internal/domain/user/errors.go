package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserInactive           = errors.New("user account is inactive")
	ErrUserHasNoCategory      = errors.New("user has no category assigned")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
