package testutils

import "time"

// Shared fixture values
const (
	TestUserID   = "user-test-001"
	TestUserName = "Ana Souza"
)

// TestNow is the fixed instant engine tests start from (a Monday morning)
var TestNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
