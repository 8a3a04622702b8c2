package user

import "golang.org/x/crypto/bcrypt"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new account. The original system stored passwords in
// plaintext; they are bcrypt-hashed here instead, which leaves the login
// contract unchanged for callers.
func (s *Service) Register(username, email, password string) (User, error) {
	if _, err := s.repo.GetByUsername(username); err == nil {
		return User{}, ErrUsernameExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	if _, err := s.repo.GetByEmail(email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return s.repo.Create(User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	})
}

func (s *Service) Authenticate(username, password string) (User, error) {
	u, err := s.repo.GetByUsername(username)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}
