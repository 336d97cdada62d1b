package models

import "time"

// ============================================
// Auth DTOs
// ============================================

type LoginRequest struct {
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SetupPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ============================================
// Company DTOs
// ============================================

type CreateCompanyRequest struct {
	Name   string  `json:"name" binding:"required,min=2"`
	Code   string  `json:"code" binding:"required,min=2,max=10"`
	Domain *string `json:"domain,omitempty"`
}

type CompanyResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Code             string    `json:"code"`
	Domain           *string   `json:"domain,omitempty"`
	SubscriptionPlan string    `json:"subscriptionPlan"`
	MaxUsers         int       `json:"maxUsers"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ============================================
// User DTOs
// ============================================

type CreateUserRequest struct {
	Name        string  `json:"name" binding:"required,min=2"`
	Email       string  `json:"email" binding:"required,email"`
	EmployeeID  string  `json:"employeeId" binding:"required"`
	Password    string  `json:"password,omitempty"`
	Designation *string `json:"designation,omitempty"`
	JobRole     *string `json:"jobRole,omitempty"`
	Team        string  `json:"team,omitempty"`
	Role        string  `json:"role,omitempty"`
	CompanyID   string  `json:"companyId,omitempty"`
}

type UpdateUserRequest struct {
	Name        string  `json:"name" binding:"required,min=2"`
	Email       string  `json:"email" binding:"required,email"`
	Designation *string `json:"designation,omitempty"`
	JobRole     *string `json:"jobRole,omitempty"`
	TeamID      *string `json:"teamId,omitempty"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	EmployeeID  string    `json:"employeeId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Designation *string   `json:"designation,omitempty"`
	JobRole     *string   `json:"jobRole,omitempty"`
	TeamID      *string   `json:"teamId,omitempty"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ============================================
// Team DTOs
// ============================================

type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required,min=2"`
	Description *string `json:"description,omitempty"`
	CompanyID   string  `json:"companyId,omitempty"`
}

type UpdateTeamRequest struct {
	Name        string  `json:"name" binding:"required,min=2"`
	Description *string `json:"description,omitempty"`
}

type ReplaceMembersRequest struct {
	Members []string `json:"members"`
}

type TeamResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
}

type MemberResolutionResponse struct {
	Matched   []string `json:"matched"`
	Unmatched []string `json:"unmatched"`
}

// ============================================
// Sprint DTOs
// ============================================

type CreateSprintRequest struct {
	Name        string     `json:"name" binding:"required,min=2"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      string     `json:"status,omitempty"`
	CompanyID   string     `json:"companyId,omitempty"`
}

type UpdateSprintRequest struct {
	Name        string     `json:"name" binding:"required,min=2"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      string     `json:"status,omitempty"`
	Progress    int        `json:"progress"`
}

type SprintResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"companyId"`
	SprintID    string          `json:"sprintId"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	StartDate   *time.Time      `json:"startDate,omitempty"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	Status      string          `json:"status"`
	Progress    int             `json:"progress"`
	Stories     []StoryResponse `json:"stories,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ============================================
// Story DTOs
// ============================================

type CreateStoryRequest struct {
	Title              string     `json:"title" binding:"required"`
	Description        *string    `json:"description,omitempty"`
	Type               string     `json:"type" binding:"required"`
	Priority           *string    `json:"priority,omitempty"`
	Status             string     `json:"status,omitempty"`
	AssigneeID         *string    `json:"assigneeId,omitempty"`
	AssigneeName       *string    `json:"assigneeName,omitempty"`
	StoryPoints        *int       `json:"storyPoints,omitempty"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	AcceptanceCriteria *string    `json:"acceptanceCriteria,omitempty"`
	CompanyID          string     `json:"companyId,omitempty"`
}

type UpdateStoryRequest struct {
	Title              string     `json:"title" binding:"required"`
	Description        *string    `json:"description,omitempty"`
	Priority           *string    `json:"priority,omitempty"`
	Status             string     `json:"status,omitempty"`
	AssigneeID         *string    `json:"assigneeId,omitempty"`
	AssigneeName       *string    `json:"assigneeName,omitempty"`
	StoryPoints        *int       `json:"storyPoints,omitempty"`
	Progress           int        `json:"progress"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	AcceptanceCriteria *string    `json:"acceptanceCriteria,omitempty"`
}

type StoryResponse struct {
	ID                 string     `json:"id"`
	CompanyID          string     `json:"companyId"`
	StoryID            string     `json:"storyId"`
	Title              string     `json:"title"`
	Description        *string    `json:"description,omitempty"`
	Type               string     `json:"type"`
	Priority           *string    `json:"priority,omitempty"`
	Status             string     `json:"status"`
	AssigneeID         *string    `json:"assigneeId,omitempty"`
	AssigneeName       *string    `json:"assigneeName,omitempty"`
	StoryPoints        *int       `json:"storyPoints,omitempty"`
	Progress           int        `json:"progress"`
	Deadline           *time.Time `json:"deadline,omitempty"`
	AcceptanceCriteria *string    `json:"acceptanceCriteria,omitempty"`
	SprintID           *string    `json:"sprintId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
