package submit_reservation

import (
	"fmt"
	"strings"
)

const maxAccountReferenceLen = 128

func validateRequest(req *Request) error {
	if req.DraftID == "" {
		return fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	ref := strings.TrimSpace(req.AccountReference)
	if ref == "" {
		return fmt.Errorf("%w: account reference is required", ErrInvalidInput)
	}
	if len(ref) > maxAccountReferenceLen {
		return fmt.Errorf("%w: account reference is too long", ErrInvalidInput)
	}
	return nil
}
