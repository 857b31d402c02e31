package testutil

import (
	"github.com/google/uuid"
)

// Stable user IDs for tests that need cross-case determinism, such as
// asserting that one user cannot read another user's assessments.
var (
	TestUserID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestUserID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)
