package service

import (
	"context"
	"strings"

	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/validation"
)

// AdminService backs the staff-only management surface.
type AdminService struct {
	userRepo     repository.UserRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
	}
}

func (s *AdminService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *AdminService) CreateCategory(ctx context.Context, form validation.CategoryForm) (*models.Category, error) {
	category := &models.Category{}
	if err := s.applyCategoryForm(ctx, category, form); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *AdminService) UpdateCategory(ctx context.Context, id uint, form validation.CategoryForm) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyCategoryForm(ctx, category, form); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *AdminService) DeleteCategory(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *AdminService) applyCategoryForm(ctx context.Context, category *models.Category, form validation.CategoryForm) error {
	form.Slug = strings.TrimSpace(form.Slug)
	fields := validation.Struct(&form)
	if fields == nil {
		fields = map[string]string{}
	}
	if _, bad := fields["slug"]; !bad {
		taken, err := s.categoryRepo.SlugTaken(ctx, form.Slug, category.ID)
		if err != nil {
			return err
		}
		if taken {
			fields["slug"] = "Category with this slug already exists."
		}
	}
	if len(fields) > 0 {
		return models.NewFieldValidationError(fields)
	}

	category.Title = form.Title
	category.Description = form.Description
	category.Slug = form.Slug
	category.IsPublished = true
	if form.IsPublished != nil {
		category.IsPublished = *form.IsPublished
	}
	return nil
}

func (s *AdminService) ListLocations(ctx context.Context) ([]*models.Location, error) {
	return s.locationRepo.List(ctx)
}

func (s *AdminService) CreateLocation(ctx context.Context, form validation.LocationForm) (*models.Location, error) {
	location := &models.Location{}
	if err := applyLocationForm(location, form); err != nil {
		return nil, err
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *AdminService) UpdateLocation(ctx context.Context, id uint, form validation.LocationForm) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyLocationForm(location, form); err != nil {
		return nil, err
	}
	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *AdminService) DeleteLocation(ctx context.Context, id uint) error {
	return s.locationRepo.Delete(ctx, id)
}

func applyLocationForm(location *models.Location, form validation.LocationForm) error {
	if fields := validation.Struct(&form); fields != nil {
		return models.NewFieldValidationError(fields)
	}
	location.Name = form.Name
	location.IsPublished = true
	if form.IsPublished != nil {
		location.IsPublished = *form.IsPublished
	}
	return nil
}

// ListPosts pages through every post regardless of visibility.
func (s *AdminService) ListPosts(ctx context.Context, filter repository.AdminPostFilter, page int) (models.Page[*models.Post], error) {
	total, err := s.postRepo.CountAdmin(ctx, filter)
	if err != nil {
		return models.Page[*models.Post]{}, err
	}
	page = models.ClampPage(page, total)
	var posts []*models.Post
	if total > 0 {
		posts, err = s.postRepo.ListAdmin(ctx, filter, models.PageSize, (page-1)*models.PageSize)
		if err != nil {
			return models.Page[*models.Post]{}, err
		}
	}
	return models.NewPage(posts, page, total), nil
}

func (s *AdminService) ListComments(ctx context.Context, filter repository.AdminCommentFilter, page int) (models.Page[*models.Comment], error) {
	total, err := s.commentRepo.CountAdmin(ctx, filter)
	if err != nil {
		return models.Page[*models.Comment]{}, err
	}
	page = models.ClampPage(page, total)
	var comments []*models.Comment
	if total > 0 {
		comments, err = s.commentRepo.ListAdmin(ctx, filter, models.PageSize, (page-1)*models.PageSize)
		if err != nil {
			return models.Page[*models.Comment]{}, err
		}
	}
	return models.NewPage(comments, page, total), nil
}

func (s *AdminService) ModeratePost(ctx context.Context, id uint, form validation.ModerationForm) error {
	if fields := validation.Struct(&form); fields != nil {
		return models.NewFieldValidationError(fields)
	}
	return s.postRepo.SetPublished(ctx, id, *form.IsPublished)
}

func (s *AdminService) ModerateComment(ctx context.Context, id uint, form validation.ModerationForm) error {
	if fields := validation.Struct(&form); fields != nil {
		return models.NewFieldValidationError(fields)
	}
	return s.commentRepo.SetPublished(ctx, id, *form.IsPublished)
}

// SetAdmin grants or revokes staff access for username.
func (s *AdminService) SetAdmin(ctx context.Context, username string, isAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetAdmin(ctx, user.ID, isAdmin); err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin
	return user, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListAdmins(ctx)
}
