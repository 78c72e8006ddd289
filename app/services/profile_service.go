package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/repositories"
	"github.com/aferchichi/stockshop/pkg/auth"
	"github.com/aferchichi/stockshop/pkg/logger"
	"github.com/aferchichi/stockshop/pkg/storage"
	"github.com/aferchichi/stockshop/pkg/upload"
)

// ErrWrongPassword reports a password change where the current password
// check failed.
var ErrWrongPassword = errors.New("services: current password does not match")

// ProfileService manages the signed-in client's account: contact details,
// avatar, password, and order history.
type ProfileService struct {
	clients *repositories.ClientRepository
	orders  *repositories.OrderRepository
}

func NewProfileService() *ProfileService {
	return &ProfileService{
		clients: repositories.NewClientRepository(),
		orders:  repositories.NewOrderRepository(),
	}
}

// Get loads the client record for the profile page.
func (s *ProfileService) Get(clientID uint) (models.Client, error) {
	return s.clients.FindByID(clientID)
}

// ProfileInput is the contact details form.
type ProfileInput struct {
	Name    string `form:"name"    validate:"required,max=100"`
	Surname string `form:"surname" validate:"required,max=100"`
	Phone   string `form:"phone"   validate:"nullable,digits=10"`
}

// UpdateContact saves the editable contact fields. Email is not editable
// from the profile page.
func (s *ProfileService) UpdateContact(clientID uint, input ProfileInput) (models.Client, error) {
	client, err := s.clients.FindByID(clientID)
	if err != nil {
		return models.Client{}, fmt.Errorf("services: profile lookup: %w", err)
	}

	client.Name = input.Name
	client.Surname = input.Surname
	client.Phone = input.Phone
	if err := s.clients.Update(&client); err != nil {
		return models.Client{}, fmt.Errorf("services: profile update: %w", err)
	}
	return client, nil
}

// SaveImage validates and stores a new profile image, then points the client
// record at it. A rejected or failed upload leaves the current image in
// place and changes nothing else.
func (s *ProfileService) SaveImage(clientID uint, file multipart.File, header *multipart.FileHeader) (models.Client, error) {
	client, err := s.clients.FindByID(clientID)
	if err != nil {
		return models.Client{}, fmt.Errorf("services: profile lookup: %w", err)
	}

	img, err := upload.ValidateImage(file, header)
	if err != nil {
		return models.Client{}, err
	}

	location := path.Join("profiles", img.Filename)
	if err := storage.Put(location, img.Data); err != nil {
		return models.Client{}, fmt.Errorf("services: store image: %w", err)
	}

	old := client.Image
	client.Image = location
	if err := s.clients.Update(&client); err != nil {
		return models.Client{}, fmt.Errorf("services: profile update: %w", err)
	}

	if old != "" && old != location {
		if err := storage.Delete(old); err != nil {
			logger.Warn("profile: remove old image", "path", old, "error", err)
		}
	}
	return client, nil
}

// PasswordInput is the change-password form.
type PasswordInput struct {
	Current              string `form:"current_password"      validate:"required"`
	Password             string `form:"password"              validate:"required,min=6,confirmed"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation"`
}

// ChangePassword verifies the current password before setting the new one.
func (s *ProfileService) ChangePassword(clientID uint, input PasswordInput) error {
	client, err := s.clients.FindByID(clientID)
	if err != nil {
		return fmt.Errorf("services: profile lookup: %w", err)
	}

	if !auth.CheckPassword(client.Password, input.Current) {
		logger.SecurityLog().Warn("password change rejected", "client_id", clientID)
		return ErrWrongPassword
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("services: hash password: %w", err)
	}
	client.Password = hash
	if err := s.clients.Update(&client); err != nil {
		return fmt.Errorf("services: password update: %w", err)
	}

	logger.SecurityLog().Info("password changed", "client_id", clientID)
	return nil
}

// Orders lists the client's order history, newest first.
func (s *ProfileService) Orders(clientID uint) ([]models.Order, error) {
	return s.orders.ForClient(clientID)
}

// OrderDetail loads one order, scoped to the owning client so clients
// cannot read each other's orders.
func (s *ProfileService) OrderDetail(clientID, orderID uint) (models.Order, error) {
	return s.orders.FindForClient(orderID, clientID)
}
