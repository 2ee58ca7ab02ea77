package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn       func(context.Context, *models.Post) error
	getByIDFn      func(context.Context, uint) (*models.Post, error)
	updateFn       func(context.Context, *models.Post) error
	deleteFn       func(context.Context, uint) error
	countFeedFn    func(context.Context, repository.FeedFilter) (int64, error)
	listFeedFn     func(context.Context, repository.FeedFilter, int, int) ([]*models.Post, error)
	countAdminFn   func(context.Context, repository.AdminPostFilter) (int64, error)
	listAdminFn    func(context.Context, repository.AdminPostFilter, int, int) ([]*models.Post, error)
	setPublishedFn func(context.Context, uint, bool) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) CountFeed(ctx context.Context, f repository.FeedFilter) (int64, error) {
	return s.countFeedFn(ctx, f)
}
func (s *postRepoStub) ListFeed(ctx context.Context, f repository.FeedFilter, limit, offset int) ([]*models.Post, error) {
	return s.listFeedFn(ctx, f, limit, offset)
}
func (s *postRepoStub) CountAdmin(ctx context.Context, f repository.AdminPostFilter) (int64, error) {
	return s.countAdminFn(ctx, f)
}
func (s *postRepoStub) ListAdmin(ctx context.Context, f repository.AdminPostFilter, limit, offset int) ([]*models.Post, error) {
	return s.listAdminFn(ctx, f, limit, offset)
}
func (s *postRepoStub) SetPublished(ctx context.Context, id uint, published bool) error {
	return s.setPublishedFn(ctx, id, published)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:       func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:      func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		updateFn:       func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		countFeedFn:    func(_ context.Context, _ repository.FeedFilter) (int64, error) { return 0, nil },
		listFeedFn:     func(_ context.Context, _ repository.FeedFilter, _, _ int) ([]*models.Post, error) { return nil, nil },
		countAdminFn:   func(_ context.Context, _ repository.AdminPostFilter) (int64, error) { return 0, nil },
		listAdminFn:    func(_ context.Context, _ repository.AdminPostFilter, _, _ int) ([]*models.Post, error) { return nil, nil },
		setPublishedFn: func(_ context.Context, _ uint, _ bool) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn       func(context.Context, *models.Comment) error
	getByIDFn      func(context.Context, uint) (*models.Comment, error)
	listForPostFn  func(context.Context, uint, uint) ([]*models.Comment, error)
	updateFn       func(context.Context, *models.Comment) error
	deleteFn       func(context.Context, uint) error
	countAdminFn   func(context.Context, repository.AdminCommentFilter) (int64, error)
	listAdminFn    func(context.Context, repository.AdminCommentFilter, int, int) ([]*models.Comment, error)
	setPublishedFn func(context.Context, uint, bool) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListForPost(ctx context.Context, postID, viewerID uint) ([]*models.Comment, error) {
	return s.listForPostFn(ctx, postID, viewerID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) CountAdmin(ctx context.Context, f repository.AdminCommentFilter) (int64, error) {
	return s.countAdminFn(ctx, f)
}
func (s *commentRepoStub) ListAdmin(ctx context.Context, f repository.AdminCommentFilter, limit, offset int) ([]*models.Comment, error) {
	return s.listAdminFn(ctx, f, limit, offset)
}
func (s *commentRepoStub) SetPublished(ctx context.Context, id uint, published bool) error {
	return s.setPublishedFn(ctx, id, published)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:       func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:      func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listForPostFn:  func(_ context.Context, _, _ uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:       func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn:       func(_ context.Context, _ uint) error { return nil },
		countAdminFn:   func(_ context.Context, _ repository.AdminCommentFilter) (int64, error) { return 0, nil },
		listAdminFn:    func(_ context.Context, _ repository.AdminCommentFilter, _, _ int) ([]*models.Comment, error) { return nil, nil },
		setPublishedFn: func(_ context.Context, _ uint, _ bool) error { return nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	getByIDFn   func(context.Context, uint) (*models.Category, error)
	getBySlugFn func(context.Context, string) (*models.Category, error)
	slugTakenFn func(context.Context, string, uint) (bool, error)
	listFn      func(context.Context) ([]*models.Category, error)
	createFn    func(context.Context, *models.Category) error
	updateFn    func(context.Context, *models.Category) error
	deleteFn    func(context.Context, uint) error
}

func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) GetPublishedBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return s.slugTakenFn(ctx, slug, excludeID)
}
func (s *categoryRepoStub) List(ctx context.Context) ([]*models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) Update(ctx context.Context, category *models.Category) error {
	return s.updateFn(ctx, category)
}
func (s *categoryRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id, IsPublished: true}, nil
		},
		getBySlugFn: func(_ context.Context, slug string) (*models.Category, error) {
			return &models.Category{ID: 1, Slug: slug, IsPublished: true}, nil
		},
		slugTakenFn: func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		listFn:      func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		createFn:    func(_ context.Context, _ *models.Category) error { return nil },
		updateFn:    func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:    func(_ context.Context, _ uint) error { return nil },
	}
}

// locationRepoStub is a stub for repository.LocationRepository.
type locationRepoStub struct {
	getByIDFn func(context.Context, uint) (*models.Location, error)
	listFn    func(context.Context) ([]*models.Location, error)
	createFn  func(context.Context, *models.Location) error
	updateFn  func(context.Context, *models.Location) error
	deleteFn  func(context.Context, uint) error
}

func (s *locationRepoStub) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	return s.getByIDFn(ctx, id)
}
func (s *locationRepoStub) List(ctx context.Context) ([]*models.Location, error) {
	return s.listFn(ctx)
}
func (s *locationRepoStub) Create(ctx context.Context, location *models.Location) error {
	return s.createFn(ctx, location)
}
func (s *locationRepoStub) Update(ctx context.Context, location *models.Location) error {
	return s.updateFn(ctx, location)
}
func (s *locationRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopLocationRepo() *locationRepoStub {
	return &locationRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Location, error) { return &models.Location{ID: id}, nil },
		listFn:    func(_ context.Context) ([]*models.Location, error) { return nil, nil },
		createFn:  func(_ context.Context, _ *models.Location) error { return nil },
		updateFn:  func(_ context.Context, _ *models.Location) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	usernameTakenFn func(context.Context, string, uint) (bool, error)
	emailTakenFn    func(context.Context, string, uint) (bool, error)
	createFn        func(context.Context, *models.User) error
	updateProfileFn func(context.Context, *models.User) error
	setAdminFn      func(context.Context, uint, bool) error
	listAdminsFn    func(context.Context) ([]*models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return s.usernameTakenFn(ctx, username, excludeID)
}
func (s *userRepoStub) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return s.emailTakenFn(ctx, email, excludeID)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) UpdateProfile(ctx context.Context, user *models.User) error {
	return s.updateProfileFn(ctx, user)
}
func (s *userRepoStub) SetAdmin(ctx context.Context, id uint, admin bool) error {
	return s.setAdminFn(ctx, id, admin)
}
func (s *userRepoStub) ListAdmins(ctx context.Context) ([]*models.User, error) {
	return s.listAdminsFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, name string) (*models.User, error) { return nil, models.NewNotFoundError("User", name) },
		getByEmailFn:    func(_ context.Context, email string) (*models.User, error) { return nil, models.NewNotFoundError("User", email) },
		usernameTakenFn: func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		emailTakenFn:    func(_ context.Context, _ string, _ uint) (bool, error) { return false, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateProfileFn: func(_ context.Context, _ *models.User) error { return nil },
		setAdminFn:      func(_ context.Context, _ uint, _ bool) error { return nil },
		listAdminsFn:    func(_ context.Context) ([]*models.User, error) { return nil, nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) *models.AppError {
	t.Helper()
	return assertAppErrorCode(t, err, models.CodeValidation)
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeNotFound)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func assertAppErrorCode(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func boolPtr(b bool) *bool { return &b }

func uintPtr(u uint) *uint { return &u }
