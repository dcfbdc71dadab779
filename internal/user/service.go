package user

import (
	"crypto/rand"
	"log"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// DefaultRole is assigned when a sign-up request carries no roles.
const DefaultRole = "ADMIN"

// ServiceInterface lets other packages (order handler, tests) depend on the
// user service without importing the concrete type.
type ServiceInterface interface {
	List(params ListParams) ([]User, error)
	Count(params ListParams) (int, error)
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	GetByPhoneNumber(phone string) (User, error)
	Register(user User) (User, error)
	Authenticate(email, password string) (User, error)
	Update(id int, user User) (User, error)
	Delete(id int) error
	ChangePassword(id int, oldPassword, newPassword string) error
	ResetPassword(email string) error
}

// PasswordMailer delivers a freshly generated password to the user. Actual
// delivery is an external collaborator; the default implementation logs.
type PasswordMailer interface {
	SendNewPassword(email, password string) error
}

// LogMailer writes the generated password to the process log instead of
// sending mail. Useful for development and tests.
type LogMailer struct{}

func (LogMailer) SendNewPassword(email, password string) error {
	log.Printf("new password for %s: %s", email, password)
	return nil
}

type Service struct {
	repo   Repository
	mailer PasswordMailer
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, mailer PasswordMailer) *Service {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &Service{repo: repo, mailer: mailer}
}

func (s *Service) List(params ListParams) ([]User, error) {
	return s.repo.List(params)
}

func (s *Service) Count(params ListParams) (int, error) {
	return s.repo.Count(params)
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByEmail(email string) (User, error) {
	return s.repo.GetByEmail(email)
}

func (s *Service) GetByPhoneNumber(phone string) (User, error) {
	return s.repo.GetByPhoneNumber(phone)
}

func (s *Service) Register(user User) (User, error) {
	if _, err := s.repo.GetByEmail(user.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}
	if user.Phone != "" {
		if _, err := s.repo.GetByPhoneNumber(user.Phone); err == nil {
			return User{}, ErrPhoneExists
		} else if err != ErrNotFound {
			return User{}, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	user.Password = string(hashed)
	if len(user.Roles) == 0 {
		user.Roles = []string{DefaultRole}
	}
	return s.repo.Create(user)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) Update(id int, user User) (User, error) {
	return s.repo.Update(id, user)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}

// ChangePassword verifies the current password before storing the new one.
func (s *Service) ChangePassword(id int, oldPassword, newPassword string) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(id, string(hashed))
}

// ResetPassword replaces the user's password with a generated one and hands
// it to the mailer. The plain-text password never leaves this method
// otherwise.
func (s *Service) ResetPassword(email string) error {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return err
	}

	password, err := generateNewPassword()
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(user.ID, string(hashed)); err != nil {
		return err
	}

	return s.mailer.SendNewPassword(email, password)
}

const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateNewPassword() (string, error) {
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			return "", err
		}
		code[i] = passwordCharset[n.Int64()]
	}
	return string(code), nil
}
