package projects

import (
	"bondly/engine/library"
)

// ValidateApprovalPolicy checks an owner set and approval threshold at
// project creation time. Owners must be distinct and the threshold must
// satisfy 2 <= threshold <= len(owners). The owner set is immutable after
// creation, so this runs exactly once per project.
func ValidateApprovalPolicy(owners []library.Account, threshold int64) error {
	if threshold < 2 {
		return ErrIncorrectApprovalThreshold
	}
	if threshold > int64(len(owners)) {
		return ErrIncorrectApprovalThreshold
	}
	seen := make(map[library.Account]struct{}, len(owners))
	for _, owner := range owners {
		if _, exists := seen[owner]; exists {
			return ErrIncorrectApprovalThreshold
		}
		seen[owner] = struct{}{}
	}
	return nil
}
