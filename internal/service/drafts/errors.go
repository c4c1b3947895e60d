package drafts

import "errors"

var (
	ErrDraftNotFound = errors.New("drafts: draft not found")
	ErrAccessDenied  = errors.New("drafts: draft belongs to another user")
	ErrDraftBusy     = errors.New("drafts: draft is being submitted")
)
