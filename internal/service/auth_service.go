package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"blogspace/internal/dto"
	"blogspace/internal/errs"
	"blogspace/internal/models"
	"blogspace/internal/repository"
)

var emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

const passwordHint = "Password should be 6 to 20 characters long with a numeric, 1 lowercase and 1 uppercase letter"

// validPassword enforces 6-20 chars with at least one digit, one lowercase
// and one uppercase letter. Spelled out because Go's regexp has no
// lookaheads.
func validPassword(s string) bool {
	if len(s) < 6 || len(s) > 20 {
		return false
	}
	var digit, lower, upper bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	return digit && lower && upper
}

type AuthService struct {
	users     repository.UserRepository
	verifier  TokenVerifier
	jwtSecret []byte
}

func NewAuthService(users repository.UserRepository, verifier TokenVerifier, jwtSecret []byte) *AuthService {
	return &AuthService{users: users, verifier: verifier, jwtSecret: jwtSecret}
}

func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (dto.AuthResponse, error) {
	if len([]rune(req.Fullname)) < 3 {
		return dto.AuthResponse{}, errs.Validation("Fullname must be atleast 3 letters long")
	}
	if req.Email == "" {
		return dto.AuthResponse{}, errs.Validation("Enter Email")
	}
	if !emailRegex.MatchString(req.Email) {
		return dto.AuthResponse{}, errs.Validation("Email is invalid")
	}
	if !validPassword(req.Password) {
		return dto.AuthResponse{}, errs.Validation(passwordHint)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	username, err := s.generateUsername(ctx, req.Email)
	if err != nil {
		return dto.AuthResponse{}, err
	}

	user := &models.User{
		PersonalInfo: models.PersonalInfo{
			Fullname: req.Fullname,
			Email:    req.Email,
			Password: string(hash),
			Username: username,
		},
		Blogs:    []bson.ObjectID{},
		JoinedAt: time.Now().UTC(),
	}
	id, err := s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, errs.ErrDuplicateKey) {
			return dto.AuthResponse{}, errors.New("Email already exists")
		}
		return dto.AuthResponse{}, err
	}
	user.ID = id
	return s.formatAuthResponse(user)
}

func (s *AuthService) Signin(ctx context.Context, req dto.SigninRequest) (dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return dto.AuthResponse{}, errs.Authentication("Email not found")
		}
		return dto.AuthResponse{}, err
	}
	if user.GoogleAuth {
		return dto.AuthResponse{}, errs.Authentication("Account was created using google, Try logging in with google")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PersonalInfo.Password), []byte(req.Password)) != nil {
		return dto.AuthResponse{}, errs.Authentication("Incorrect password")
	}
	return s.formatAuthResponse(user)
}

func (s *AuthService) GoogleAuth(ctx context.Context, accessToken string) (dto.AuthResponse, error) {
	g, err := s.verifier.Verify(ctx, accessToken)
	if err != nil {
		return dto.AuthResponse{}, errors.New("Failed to authenticate you with google. Try with some other google account")
	}
	picture := strings.Replace(g.Picture, "s96-c", "s384-c", 1)

	user, err := s.users.FindByEmail(ctx, g.Email)
	switch {
	case err == nil:
		if !user.GoogleAuth {
			return dto.AuthResponse{}, errs.Authentication(
				"This email was signed up without google. Please log in with password to access the account")
		}
	case errors.Is(err, errs.ErrNotFound):
		username, uerr := s.generateUsername(ctx, g.Email)
		if uerr != nil {
			return dto.AuthResponse{}, uerr
		}
		user = &models.User{
			PersonalInfo: models.PersonalInfo{
				Fullname:   g.Name,
				Email:      g.Email,
				Username:   username,
				ProfileImg: picture,
			},
			GoogleAuth: true,
			Blogs:      []bson.ObjectID{},
			JoinedAt:   time.Now().UTC(),
		}
		id, ierr := s.users.Insert(ctx, user)
		if ierr != nil {
			return dto.AuthResponse{}, ierr
		}
		user.ID = id
	default:
		return dto.AuthResponse{}, err
	}
	return s.formatAuthResponse(user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID bson.ObjectID, req dto.ChangePasswordRequest) error {
	if !validPassword(req.CurrentPassword) || !validPassword(req.NewPassword) {
		return errs.Validation(passwordHint)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.GoogleAuth {
		return errs.Validation("You can't change account's password because you logged in through google")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PersonalInfo.Password), []byte(req.CurrentPassword)) != nil {
		return errs.Authentication("Incorrect current password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 10)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *AuthService) SearchUsers(ctx context.Context, query string) ([]models.AuthorPreview, error) {
	return s.users.SearchByUsername(ctx, query, 50)
}

func (s *AuthService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// generateUsername derives a username from the email local-part; a 5-char
// random suffix is appended only when the plain name is taken.
func (s *AuthService) generateUsername(ctx context.Context, email string) (string, error) {
	username := strings.Split(email, "@")[0]
	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return "", err
	}
	if taken {
		suffix, err := gonanoid.New(5)
		if err != nil {
			return "", err
		}
		username += suffix
	}
	return username, nil
}

func (s *AuthService) formatAuthResponse(user *models.User) (dto.AuthResponse, error) {
	claims := jwt.MapClaims{"id": user.ID.Hex()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return dto.AuthResponse{}, err
	}
	return dto.AuthResponse{
		AccessToken: token,
		ProfileImg:  user.PersonalInfo.ProfileImg,
		Username:    user.PersonalInfo.Username,
		Fullname:    user.PersonalInfo.Fullname,
	}, nil
}
