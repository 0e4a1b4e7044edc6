package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/noah-isme/academy-api/internal/models"
	"github.com/noah-isme/academy-api/internal/repository"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
)

// memoryCache stores JSON payloads and honours TTLs against a settable clock.
type memoryCache struct {
	mu      sync.Mutex
	now     time.Time
	entries map[string]memoryEntry
	getErr  error
	setErr  error
	sets    int
	ttls    map[string]time.Duration
}

type memoryEntry struct {
	payload []byte
	expires time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		now:     time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
		entries: map[string]memoryEntry{},
		ttls:    map[string]time.Duration{},
	}
}

func (c *memoryCache) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return c.getErr
	}
	entry, ok := c.entries[key]
	if !ok || !c.now.Before(entry.expires) {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(entry.payload, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = memoryEntry{payload: payload, expires: c.now.Add(ttl)}
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.entries, key)
		}
	}
	return nil
}

// fakeCourseRepo is an in-memory course store.
type fakeCourseRepo struct {
	courses  []models.Course
	nextID   int64
	findErr  error
	findAlls int
}

func (r *fakeCourseRepo) add(name string, start, end time.Time) models.Course {
	r.nextID++
	course := models.Course{ID: r.nextID, Name: name, Description: name + " description", StartDate: start, EndDate: end}
	r.courses = append(r.courses, course)
	return course
}

func (r *fakeCourseRepo) FindAll(ctx context.Context) ([]models.Course, error) {
	r.findAlls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	return append([]models.Course(nil), r.courses...), nil
}

func (r *fakeCourseRepo) FindActive(ctx context.Context, at time.Time) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.courses {
		if !c.EndDate.Before(at) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Course, error) {
	var out []models.Course
	for _, c := range r.courses {
		if !c.StartDate.Before(from) && !c.EndDate.After(to) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	for _, c := range r.courses {
		if c.ID == id {
			course := c
			return &course, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.nextID++
	course.ID = r.nextID
	r.courses = append(r.courses, *course)
	return nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, id int64, update models.CourseUpdate) (int64, error) {
	for i := range r.courses {
		if r.courses[i].ID != id {
			continue
		}
		c := &r.courses[i]
		if update.Name != nil {
			c.Name = *update.Name
		}
		if update.Description != nil {
			c.Description = *update.Description
		}
		if update.Cover != nil {
			c.Cover = update.Cover
		}
		if update.StartDate != nil {
			c.StartDate = *update.StartDate
		}
		if update.EndDate != nil {
			c.EndDate = *update.EndDate
		}
		return 1, nil
	}
	return 0, nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id int64) (int64, error) {
	for i := range r.courses {
		if r.courses[i].ID == id {
			r.courses = append(r.courses[:i], r.courses[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakeEnrollmentRepo enforces the (user, course) uniqueness like the real table.
type fakeEnrollmentRepo struct {
	mu          sync.Mutex
	enrollments []models.Enrollment
	nextID      int64
	listErr     error
	knownUsers  map[int64]bool
}

func (r *fakeEnrollmentRepo) FindAll(ctx context.Context) ([]models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Enrollment(nil), r.enrollments...), nil
}

func (r *fakeEnrollmentRepo) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.enrollments {
		if e.ID == id {
			enrollment := e
			return &enrollment, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeEnrollmentRepo) filter(keep func(models.Enrollment) bool) []models.Enrollment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Enrollment{}
	for _, e := range r.enrollments {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (r *fakeEnrollmentRepo) ListByUser(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.filter(func(e models.Enrollment) bool { return e.UserID == userID }), nil
}

func (r *fakeEnrollmentRepo) ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	return r.filter(func(e models.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (r *fakeEnrollmentRepo) ListByStatus(ctx context.Context, status models.EnrollmentStatus) ([]models.Enrollment, error) {
	return r.filter(func(e models.Enrollment) bool { return e.Status == status }), nil
}

func (r *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.knownUsers != nil && !r.knownUsers[enrollment.UserID] {
		return fmt.Errorf("create enrollment: %w", repository.ErrForeignKeyViolation)
	}
	for _, e := range r.enrollments {
		if e.UserID == enrollment.UserID && e.CourseID == enrollment.CourseID {
			return fmt.Errorf("create enrollment: %w", repository.ErrUniqueViolation)
		}
	}
	r.nextID++
	enrollment.ID = r.nextID
	r.enrollments = append(r.enrollments, *enrollment)
	return nil
}

func (r *fakeEnrollmentRepo) Update(ctx context.Context, id int64, update models.EnrollmentUpdate) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.enrollments {
		if r.enrollments[i].ID != id {
			continue
		}
		e := &r.enrollments[i]
		if update.EnrollDate != nil {
			e.EnrollDate = *update.EnrollDate
		}
		if update.ClearConclusionDate {
			e.ConclusionDate = nil
		} else if update.ConclusionDate != nil {
			t := *update.ConclusionDate
			e.ConclusionDate = &t
		}
		if update.UserID != nil {
			e.UserID = *update.UserID
		}
		if update.CourseID != nil {
			e.CourseID = *update.CourseID
		}
		if update.Status != nil {
			e.Status = *update.Status
		}
		return 1, nil
	}
	return 0, nil
}

func (r *fakeEnrollmentRepo) Delete(ctx context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.enrollments {
		if r.enrollments[i].ID == id {
			r.enrollments = append(r.enrollments[:i], r.enrollments[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// fakeUserRepo is an in-memory user store with unique login and email.
type fakeUserRepo struct {
	users   []models.User
	nextID  int64
	findErr error
	finds   int
}

func (r *fakeUserRepo) FindAll(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	out := []models.User{}
	for _, u := range r.users {
		if filter.Type == nil || u.Type == *filter.Type {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	r.finds++
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Login == login })
}

func (r *fakeUserRepo) find(match func(models.User) bool) (*models.User, error) {
	for _, u := range r.users {
		if match(u) {
			user := u
			return &user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Login == user.Login || u.Email == user.Email {
			return fmt.Errorf("create user: %w", repository.ErrUniqueViolation)
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id int64, update models.UserUpdate) (int64, error) {
	for i := range r.users {
		if r.users[i].ID != id {
			continue
		}
		u := &r.users[i]
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.Email != nil {
			u.Email = *update.Email
		}
		if update.Login != nil {
			u.Login = *update.Login
		}
		if update.PasswordHash != nil {
			u.PasswordHash = *update.PasswordHash
		}
		if update.Type != nil {
			u.Type = *update.Type
		}
		return 1, nil
	}
	return 0, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) (int64, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

var errStoreDown = errors.New("connection refused")
