package types

import "strings"

// Story Status values
//
// The stories table historically accepted free text here, so writers outside
// this service may have stored other spellings. Known values are normalized to
// the canonical form; anything else is kept verbatim as a legacy value.
const (
	StoryPending    = "Pending"
	StoryInProgress = "In Progress"
	StoryCompleted  = "Completed"
	StoryOverdue    = "Overdue"
)

// Story Type values
const (
	TypeStory = "Story"
	TypeBug   = "Bug"
	TypeEpic  = "Epic"
	TypeTask  = "Task"
)

// Story Priority values
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Sprint Status values
const (
	SprintPlanning  = "PLANNING"
	SprintActive    = "ACTIVE"
	SprintCompleted = "COMPLETED"
)

// User Role values
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User Status values
const (
	UserPending  = "PENDING"
	UserActive   = "ACTIVE"
	UserInactive = "INACTIVE"
)

// Job Role values
const (
	JobRoleUI     = "UI"
	JobRoleBE     = "BE"
	JobRoleQA     = "QA"
	JobRoleDevOps = "DevOps"
)

var ValidStoryStatuses = []string{
	StoryPending, StoryInProgress, StoryCompleted, StoryOverdue,
}

var ValidStoryTypes = []string{
	TypeStory, TypeBug, TypeEpic, TypeTask,
}

var ValidSprintStatuses = []string{
	SprintPlanning, SprintActive, SprintCompleted,
}

var ValidJobRoles = []string{
	JobRoleUI, JobRoleBE, JobRoleQA, JobRoleDevOps,
}

var ValidUserStatuses = []string{
	UserPending, UserActive, UserInactive,
}

// NormalizeStoryStatus maps a case-insensitive match of a known status to its
// canonical spelling. Unknown non-empty values pass through unchanged.
func NormalizeStoryStatus(status string) string {
	for _, s := range ValidStoryStatuses {
		if strings.EqualFold(s, status) {
			return s
		}
	}
	return status
}

func IsValidStoryStatus(status string) bool {
	for _, s := range ValidStoryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidStoryType(storyType string) bool {
	for _, t := range ValidStoryTypes {
		if t == storyType {
			return true
		}
	}
	return false
}

func IsValidSprintStatus(status string) bool {
	for _, s := range ValidSprintStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ParseJobRole resolves a case-insensitive job role name. Returns the
// canonical value and whether it matched.
func ParseJobRole(role string) (string, bool) {
	for _, r := range ValidJobRoles {
		if strings.EqualFold(r, role) {
			return r, true
		}
	}
	return "", false
}

func IsValidUserStatus(status string) bool {
	for _, s := range ValidUserStatuses {
		if s == status {
			return true
		}
	}
	return false
}
