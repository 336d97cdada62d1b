package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Sudharmabg/taskhive/internal/repository"
)

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// In-memory repository fakes backing the service tests. They mirror the SQL
// implementations' contract: lookups that miss return (nil, nil), creates
// fill in IDs and timestamps, and defaults match the database layer.

type fakeIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *fakeIDGen) next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

var ids = &fakeIDGen{}

// ============================================
// Company
// ============================================

type fakeCompanyRepo struct {
	companies map[string]*repository.Company
	order     []string
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]*repository.Company)}
}

func (r *fakeCompanyRepo) Create(_ context.Context, company *repository.Company) error {
	if company.SubscriptionPlan == "" {
		company.SubscriptionPlan = "FREE"
	}
	if company.MaxUsers == 0 {
		company.MaxUsers = 10
	}
	for _, existing := range r.companies {
		if existing.Name == company.Name || existing.Code == company.Code {
			return uniqueViolation("companies_name_key")
		}
	}
	company.ID = ids.next("co")
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt
	r.companies[company.ID] = company
	r.order = append(r.order, company.ID)
	return nil
}

func (r *fakeCompanyRepo) FindByID(_ context.Context, id string) (*repository.Company, error) {
	return r.companies[id], nil
}

func (r *fakeCompanyRepo) FindByCode(_ context.Context, code string) (*repository.Company, error) {
	for _, co := range r.companies {
		if co.Code == code {
			return co, nil
		}
	}
	return nil, nil
}

func (r *fakeCompanyRepo) FindDefault(_ context.Context) (*repository.Company, error) {
	if len(r.order) == 0 {
		return nil, nil
	}
	return r.companies[r.order[0]], nil
}

func (r *fakeCompanyRepo) FindAll(_ context.Context) ([]*repository.Company, error) {
	out := make([]*repository.Company, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.companies[id])
	}
	return out, nil
}

func (r *fakeCompanyRepo) Count(_ context.Context) (int, error) {
	return len(r.companies), nil
}

// ============================================
// User
// ============================================

type fakeUserRepo struct {
	users map[string]*repository.User
	// findByEmailErr simulates a storage failure during login
	findByEmailErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*repository.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *repository.User) error {
	if user.Role == "" {
		user.Role = "USER"
	}
	if user.Status == "" {
		user.Status = "PENDING"
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return uniqueViolation("users_email_key")
		}
	}
	user.ID = ids.next("u")
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*repository.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*repository.User, error) {
	if r.findByEmailErr != nil {
		return nil, r.findByEmailErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByCompanyID(_ context.Context, companyID string) ([]*repository.User, error) {
	var out []*repository.User
	for _, u := range r.users {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeUserRepo) FindByCompanyAndName(_ context.Context, companyID, name string) (*repository.User, error) {
	for _, u := range r.users {
		if u.CompanyID == companyID && u.Name == name {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByTeamID(_ context.Context, teamID string) ([]*repository.User, error) {
	var out []*repository.User
	for _, u := range r.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeUserRepo) FindAdminByCompanyID(_ context.Context, companyID string) (*repository.User, error) {
	var admin *repository.User
	for _, u := range r.users {
		if u.CompanyID != companyID || u.Role != "ADMIN" {
			continue
		}
		if admin == nil || u.CreatedAt.Before(admin.CreatedAt) {
			admin = u
		}
	}
	return admin, nil
}

func (r *fakeUserRepo) FindByPasswordResetToken(_ context.Context, token string) (*repository.User, error) {
	for _, u := range r.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) CountByCompanyID(_ context.Context, companyID string) (int, error) {
	count := 0
	for _, u := range r.users {
		if u.CompanyID == companyID {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *repository.User) error {
	existing, ok := r.users[user.ID]
	if !ok {
		return fmt.Errorf("user not found: %s", user.ID)
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.Designation = user.Designation
	existing.JobRole = user.JobRole
	existing.TeamID = user.TeamID
	existing.Role = user.Role
	existing.Status = user.Status
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) SetPassword(_ context.Context, id, passwordHash, status string) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found: %s", id)
	}
	u.Password = passwordHash
	u.Status = status
	u.PasswordResetToken = nil
	u.PasswordResetExpires = nil
	return nil
}

func (r *fakeUserRepo) SetPasswordResetToken(_ context.Context, id string, token *string, expires *time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user not found: %s", id)
	}
	u.PasswordResetToken = token
	u.PasswordResetExpires = expires
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

// ============================================
// Team
// ============================================

type fakeTeamRepo struct {
	teams map[string]*repository.Team
	users *fakeUserRepo
}

func newFakeTeamRepo(users *fakeUserRepo) *fakeTeamRepo {
	return &fakeTeamRepo{teams: make(map[string]*repository.Team), users: users}
}

func (r *fakeTeamRepo) Create(_ context.Context, team *repository.Team) error {
	team.ID = ids.next("t")
	team.CreatedAt = time.Now()
	team.UpdatedAt = team.CreatedAt
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) FindByID(_ context.Context, id string) (*repository.Team, error) {
	return r.teams[id], nil
}

func (r *fakeTeamRepo) FindByCompanyID(_ context.Context, companyID string) ([]*repository.Team, error) {
	var out []*repository.Team
	for _, t := range r.teams {
		if t.CompanyID == companyID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTeamRepo) FindByCompanyAndName(_ context.Context, companyID, name string) (*repository.Team, error) {
	for _, t := range r.teams {
		if t.CompanyID == companyID && t.Name == name {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTeamRepo) FindMemberNames(ctx context.Context, teamID string) ([]string, error) {
	members, _ := r.users.FindByTeamID(ctx, teamID)
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}
	return names, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *repository.Team) error {
	existing, ok := r.teams[team.ID]
	if !ok {
		return fmt.Errorf("team not found: %s", team.ID)
	}
	existing.Name = team.Name
	existing.Description = team.Description
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTeamRepo) ReplaceMembers(ctx context.Context, team *repository.Team, names []string) ([]string, []string, error) {
	current, _ := r.users.FindByTeamID(ctx, team.ID)
	for _, u := range current {
		u.TeamID = nil
	}

	var matched, unmatched []string
	for _, name := range names {
		u, _ := r.users.FindByCompanyAndName(ctx, team.CompanyID, name)
		if u == nil {
			unmatched = append(unmatched, name)
			continue
		}
		teamID := team.ID
		u.TeamID = &teamID
		matched = append(matched, name)
	}
	return matched, unmatched, nil
}

func (r *fakeTeamRepo) DeleteWithMembers(ctx context.Context, id string) error {
	members, _ := r.users.FindByTeamID(ctx, id)
	for _, u := range members {
		u.TeamID = nil
	}
	delete(r.teams, id)
	return nil
}

// ============================================
// Sprint
// ============================================

type fakeSprintRepo struct {
	sprints map[string]*repository.Sprint
	stories *fakeStoryRepo
}

func newFakeSprintRepo(stories *fakeStoryRepo) *fakeSprintRepo {
	return &fakeSprintRepo{sprints: make(map[string]*repository.Sprint), stories: stories}
}

func (r *fakeSprintRepo) Create(_ context.Context, sprint *repository.Sprint) error {
	if sprint.Status == "" {
		sprint.Status = "ACTIVE"
	}
	sprint.ID = ids.next("sp")
	sprint.CreatedAt = time.Now()
	sprint.UpdatedAt = sprint.CreatedAt
	r.sprints[sprint.ID] = sprint
	return nil
}

func (r *fakeSprintRepo) FindByID(_ context.Context, id string) (*repository.Sprint, error) {
	return r.sprints[id], nil
}

func (r *fakeSprintRepo) FindBySprintID(_ context.Context, sprintID string) (*repository.Sprint, error) {
	for _, s := range r.sprints {
		if s.SprintID == sprintID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSprintRepo) FindByCompanyID(_ context.Context, companyID string) ([]*repository.Sprint, error) {
	var out []*repository.Sprint
	for _, s := range r.sprints {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SprintID < out[j].SprintID })
	return out, nil
}

func (r *fakeSprintRepo) FindByCompanyAndStatus(_ context.Context, companyID, status string) (*repository.Sprint, error) {
	for _, s := range r.sprints {
		if s.CompanyID == companyID && s.Status == status {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSprintRepo) Update(_ context.Context, sprint *repository.Sprint) error {
	existing, ok := r.sprints[sprint.ID]
	if !ok {
		return fmt.Errorf("sprint not found: %s", sprint.ID)
	}
	*existing = *sprint
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeSprintRepo) DeleteWithStories(ctx context.Context, id string) error {
	members, _ := r.stories.FindBySprintID(ctx, id)
	for _, s := range members {
		s.SprintID = nil
	}
	delete(r.sprints, id)
	return nil
}

// ============================================
// Story
// ============================================

type fakeStoryRepo struct {
	stories map[string]*repository.Story
	// failStatusFor simulates a broken row during a sweep
	failStatusFor map[string]bool
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{
		stories:       make(map[string]*repository.Story),
		failStatusFor: make(map[string]bool),
	}
}

func (r *fakeStoryRepo) Create(_ context.Context, story *repository.Story) error {
	if story.Status == "" {
		story.Status = "Pending"
	}
	story.ID = ids.next("st")
	story.CreatedAt = time.Now()
	story.UpdatedAt = story.CreatedAt
	r.stories[story.ID] = story
	return nil
}

func (r *fakeStoryRepo) FindByID(_ context.Context, id string) (*repository.Story, error) {
	return r.stories[id], nil
}

func (r *fakeStoryRepo) FindByStoryID(_ context.Context, storyID string) (*repository.Story, error) {
	for _, s := range r.stories {
		if s.StoryID == storyID {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeStoryRepo) FindByCompanyID(_ context.Context, companyID string) ([]*repository.Story, error) {
	var out []*repository.Story
	for _, s := range r.stories {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StoryID < out[j].StoryID })
	return out, nil
}

func (r *fakeStoryRepo) FindByCompanyAndType(_ context.Context, companyID, storyType string) ([]*repository.Story, error) {
	var out []*repository.Story
	for _, s := range r.stories {
		if s.CompanyID == companyID && s.Type == storyType {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStoryRepo) FindBySprintID(_ context.Context, sprintID string) ([]*repository.Story, error) {
	var out []*repository.Story
	for _, s := range r.stories {
		if s.SprintID != nil && *s.SprintID == sprintID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStoryRepo) FindAvailable(_ context.Context, companyID string) ([]*repository.Story, error) {
	var out []*repository.Story
	for _, s := range r.stories {
		if s.CompanyID == companyID && s.SprintID == nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeStoryRepo) FindOverdueCandidates(_ context.Context, before time.Time, limit int) ([]*repository.Story, error) {
	var out []*repository.Story
	for _, s := range r.stories {
		if s.Deadline == nil {
			continue
		}
		if s.Status == "Completed" || s.Status == "Overdue" {
			continue
		}
		if s.Deadline.Before(before) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline.Before(*out[j].Deadline) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeStoryRepo) Update(_ context.Context, story *repository.Story) error {
	existing, ok := r.stories[story.ID]
	if !ok {
		return fmt.Errorf("story not found: %s", story.ID)
	}
	*existing = *story
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeStoryRepo) SetSprint(_ context.Context, id string, sprintID *string) error {
	s, ok := r.stories[id]
	if !ok {
		return fmt.Errorf("story not found: %s", id)
	}
	s.SprintID = sprintID
	return nil
}

func (r *fakeStoryRepo) UpdateStatus(_ context.Context, id, status string) error {
	s, ok := r.stories[id]
	if !ok {
		return fmt.Errorf("story not found: %s", id)
	}
	if r.failStatusFor[id] {
		return fmt.Errorf("simulated write failure for %s", id)
	}
	s.Status = status
	return nil
}

func (r *fakeStoryRepo) Delete(_ context.Context, id string) error {
	delete(r.stories, id)
	return nil
}

// ============================================
// Sequence
// ============================================

type fakeSequenceRepo struct {
	mu     sync.Mutex
	values map[string]int64
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{values: make(map[string]int64)}
}

func (r *fakeSequenceRepo) Next(_ context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[name]++
	return r.values[name], nil
}
