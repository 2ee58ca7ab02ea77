package service

import (
	"context"
	"strings"

	"blogicum/internal/models"
	"blogicum/internal/observability"
	"blogicum/internal/repository"
	"blogicum/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	now      Clock
}

type UpdateProfileInput struct {
	UserID uint
	Form   validation.ProfileForm
}

// Profile is a user's public card together with one page of their feed.
type Profile struct {
	User    models.User               `json:"user"`
	IsOwner bool                      `json:"is_owner"`
	Posts   models.Page[*models.Post] `json:"posts"`
}

func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, now Clock) *UserService {
	return &UserService{
		userRepo: userRepo,
		postRepo: postRepo,
		now:      clockOrDefault(now),
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ProfileFeed shows every post to the profile owner and only the publicly
// visible ones to everybody else.
func (s *UserService) ProfileFeed(ctx context.Context, username string, viewerID uint, page int) (_ *Profile, err error) {
	ctx, span := observability.StartSpan(ctx, "UserService", "ProfileFeed")
	defer func() { observability.EndSpan(span, err) }()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	isOwner := viewerID != 0 && viewerID == user.ID
	filter := repository.FeedFilter{AuthorID: user.ID}
	if !isOwner {
		filter.Public = true
		filter.Now = s.now()
	}

	posts, err := loadFeedPage(ctx, s.postRepo, filter, page)
	if err != nil {
		return nil, err
	}

	card := *user
	if !isOwner {
		card = user.PublicProfile()
	}
	return &Profile{User: card, IsOwner: isOwner, Posts: posts}, nil
}

// UpdateProfile edits the requester's own identity record.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	in.Form.Username = strings.TrimSpace(in.Form.Username)
	in.Form.Email = strings.TrimSpace(in.Form.Email)
	fields := validation.Struct(&in.Form)
	if fields == nil {
		fields = map[string]string{}
	}
	if err := s.checkUnique(ctx, fields, in.Form.Username, in.Form.Email, user.ID); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	user.Username = in.Form.Username
	user.FirstName = in.Form.FirstName
	user.LastName = in.Form.LastName
	user.Email = in.Form.Email
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates an identity with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, form validation.SignupForm) (*models.User, error) {
	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	fields := validation.Struct(&form)
	if fields == nil {
		fields = map[string]string{}
	}
	if err := s.checkUnique(ctx, fields, form.Username, form.Email, 0); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, models.NewFieldValidationError(fields)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials. Unknown users and wrong passwords get the
// same error.
func (s *UserService) Authenticate(ctx context.Context, form validation.LoginForm) (*models.User, error) {
	if fields := validation.Struct(&form); fields != nil {
		return nil, models.NewFieldValidationError(fields)
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(form.Username))
	if err != nil {
		if isNotFound(err) {
			return nil, models.NewUnauthorizedError("Invalid credentials")
		}
		return nil, err
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); cmpErr != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

func (s *UserService) checkUnique(ctx context.Context, fields map[string]string, username, email string, excludeID uint) error {
	if _, bad := fields["username"]; !bad && username != "" {
		taken, err := s.userRepo.UsernameTaken(ctx, username, excludeID)
		if err != nil {
			return err
		}
		if taken {
			fields["username"] = "A user with that username already exists."
		}
	}
	if _, bad := fields["email"]; !bad && email != "" {
		taken, err := s.userRepo.EmailTaken(ctx, email, excludeID)
		if err != nil {
			return err
		}
		if taken {
			fields["email"] = "A user with that email already exists."
		}
	}
	return nil
}
