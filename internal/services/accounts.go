package services

import (
	"log"
	"sort"
	"strings"
	"time"

	"smartrubbish/internal/apperrors"
	"smartrubbish/internal/config"
	"smartrubbish/internal/models"
	"smartrubbish/internal/storage"
	"smartrubbish/internal/utils"
)

const adminIDPrefix = "admin_"

type AccountService struct {
	store  *storage.Adapter
	admins []config.Admin
	now    func() time.Time
}

func NewAccountService(store *storage.Adapter, admins []config.Admin) *AccountService {
	return &AccountService{store: store, admins: admins, now: time.Now}
}

func (s *AccountService) Register(email, password, name string) (*models.User, error) {
	if !utils.IsValidEmail(email) {
		return nil, apperrors.New(apperrors.CodeInvalidEmail, "Please enter a valid email address")
	}
	if !utils.IsValidPassword(password) {
		return nil, apperrors.New(apperrors.CodeInvalidPassword, "Password must be at least 6 characters")
	}
	if !utils.IsValidName(name) {
		return nil, apperrors.New(apperrors.CodeInvalidName, "Name must be between 2 and 100 characters")
	}

	email = utils.NormalizeEmail(email)
	name = utils.Sanitize(name)

	users, ok, err := storage.LoadCollection[models.StoredUser](s.store, storage.Users)
	if !ok {
		return nil, apperrors.New(apperrors.CodeStorage, "Unable to access storage")
	}
	if err != nil {
		log.Printf("[Storage Error %s]: Registration failed", apperrors.CodeRegister)
		return nil, apperrors.New(apperrors.CodeRegister, "An unexpected error occurred during registration")
	}

	for _, u := range users {
		if u.Email == email {
			return nil, apperrors.New(apperrors.CodeUserExists, "An account with this email already exists")
		}
	}

	now := s.now().UTC()
	newUser := models.StoredUser{
		User: models.User{
			ID:        utils.NewID("user"),
			Email:     email,
			Name:      name,
			Role:      models.RoleMember,
			EcoPoints: 0,
			Credits:   0,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Password: password,
	}
	users = append(users, newUser)

	if !storage.SaveCollection(s.store, storage.Users, users) {
		return nil, apperrors.New(apperrors.CodeSave, "Failed to save user data")
	}

	u := newUser.Public()
	return &u, nil
}

// Login does not distinguish an unknown email from a wrong password.
func (s *AccountService) Login(email, password string) (*models.User, error) {
	if !utils.IsValidEmail(email) {
		return nil, apperrors.New(apperrors.CodeInvalidCredentials, "Invalid email or password")
	}
	email = utils.NormalizeEmail(email)

	users, ok, err := storage.LoadCollection[models.StoredUser](s.store, storage.Users)
	if !ok {
		return nil, apperrors.New(apperrors.CodeStorage, "Unable to access storage")
	}
	if err != nil {
		log.Printf("[Storage Error %s]: Login failed", apperrors.CodeLogin)
		return nil, apperrors.New(apperrors.CodeLogin, "An unexpected error occurred during login")
	}

	for _, u := range users {
		if u.Email == email && u.Password == password {
			pub := u.Public()
			pub.Credits = models.CreditsFor(pub.EcoPoints)
			return &pub, nil
		}
	}
	return nil, apperrors.New(apperrors.CodeInvalidCredentials, "Invalid email or password")
}

// LoginAdmin checks the configured administrator table only.
func (s *AccountService) LoginAdmin(email, password string) (*models.User, error) {
	email = utils.NormalizeEmail(email)
	for _, a := range s.admins {
		if a.Email == email && a.Password == password {
			return s.adminUser(a), nil
		}
	}
	return nil, apperrors.New(apperrors.CodeInvalidCredentials, "Invalid admin credentials")
}

// LookupAdmin resolves an "admin_<email>" id against the administrator table.
func (s *AccountService) LookupAdmin(id string) (*models.User, bool) {
	email, found := strings.CutPrefix(id, adminIDPrefix)
	if !found {
		return nil, false
	}
	for _, a := range s.admins {
		if a.Email == email {
			return s.adminUser(a), true
		}
	}
	return nil, false
}

// AdminEmails lists the configured administrators.
func (s *AccountService) AdminEmails() []string {
	emails := make([]string, 0, len(s.admins))
	for _, a := range s.admins {
		emails = append(emails, a.Email)
	}
	return emails
}

func (s *AccountService) adminUser(a config.Admin) *models.User {
	now := s.now().UTC()
	return &models.User{
		ID:        adminIDPrefix + a.Email,
		Email:     a.Email,
		Name:      a.Name,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Lookup returns the member with credits recomputed from eco-points.
func (s *AccountService) Lookup(userID string) (*models.User, bool) {
	users, ok, err := storage.LoadCollection[models.StoredUser](s.store, storage.Users)
	if !ok || err != nil {
		return nil, false
	}
	for _, u := range users {
		if u.ID == userID {
			pub := u.Public()
			pub.Credits = models.CreditsFor(pub.EcoPoints)
			return &pub, true
		}
	}
	return nil, false
}

// SyncCredits recomputes and persists a member's credits, refreshing the
// session copy when it belongs to the same member. An unknown id returns nil, nil.
func (s *AccountService) SyncCredits(userID string, session Session) (*models.User, error) {
	users, ok, err := storage.LoadCollection[models.StoredUser](s.store, storage.Users)
	if !ok || err != nil {
		return nil, apperrors.New(apperrors.CodeStorage, "Unable to access storage")
	}

	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	users[idx].Credits = models.CreditsFor(users[idx].EcoPoints)
	users[idx].UpdatedAt = s.now().UTC()
	if !storage.SaveCollection(s.store, storage.Users, users) {
		return nil, apperrors.New(apperrors.CodeSave, "Failed to save user data")
	}

	pub := users[idx].Public()
	if session != nil {
		if current := session.CurrentUser(); current != nil && current.ID == userID {
			session.SetCurrentUser(&pub)
		}
	}
	return &pub, nil
}

// ListAll returns every member without passwords. Unreadable storage yields an empty list.
func (s *AccountService) ListAll() []models.User {
	users, ok, err := storage.LoadCollection[models.StoredUser](s.store, storage.Users)
	if !ok || err != nil {
		return []models.User{}
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

// AwardPoints credits a member and appends a point log entry. A missing
// member is not an error: the award is skipped and nil is returned.
func (s *AccountService) AwardPoints(userID string, amount int, action, reportID string) (*PointAward, error) {
	users, ok, err := storage.LoadCollection[models.StoredUser](s.store, storage.Users)
	if !ok || err != nil {
		return nil, apperrors.New(apperrors.CodeStorage, "Unable to access storage")
	}

	idx := -1
	for i := range users {
		if users[i].ID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, nil
	}

	now := s.now().UTC()
	applyPoints(&users[idx], amount, now)
	if !storage.SaveCollection(s.store, storage.Users, users) {
		return nil, apperrors.New(apperrors.CodeSave, "Failed to save user data")
	}

	award := &PointAward{
		UserID:    userID,
		Amount:    amount,
		EcoPoints: users[idx].EcoPoints,
		Credits:   users[idx].Credits,
	}

	entry := models.PointLog{
		ID:        utils.NewID("pointlog"),
		UserID:    userID,
		Amount:    amount,
		Action:    action,
		ReportID:  reportID,
		CreatedAt: now,
	}
	logs, ok, err := storage.LoadCollection[models.PointLog](s.store, storage.PointLogs)
	if ok && err == nil && storage.SaveCollection(s.store, storage.PointLogs, append(logs, entry)) {
		award.Log = &entry
	} else {
		log.Printf("[Points] could not record %s for %s", action, userID)
	}
	return award, nil
}

// ListPointLogs returns a member's point history, newest first.
func (s *AccountService) ListPointLogs(userID string) []models.PointLog {
	logs, ok, err := storage.LoadCollection[models.PointLog](s.store, storage.PointLogs)
	if !ok || err != nil {
		return []models.PointLog{}
	}
	out := make([]models.PointLog, 0)
	for _, l := range logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
