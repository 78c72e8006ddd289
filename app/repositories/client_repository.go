package repositories

import (
	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/pkg/orm"
)

// ClientRepository handles database operations for Client.
type ClientRepository struct{}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{}
}

// FindByEmail looks up a client by email address.
func (r *ClientRepository) FindByEmail(email string) (models.Client, error) {
	var client models.Client
	err := orm.DB().Model(&models.Client{}).Where("email = ?", email).First(&client)
	return client, err
}

// FindByID looks up a client by primary key.
func (r *ClientRepository) FindByID(id uint) (models.Client, error) {
	var client models.Client
	err := orm.DB().Model(&models.Client{}).Where("id = ?", id).First(&client)
	return client, err
}

// EmailTaken reports whether any client already uses the email.
func (r *ClientRepository) EmailTaken(email string) (bool, error) {
	n, err := orm.DB().Model(&models.Client{}).Where("email = ?", email).Count()
	return n > 0, err
}

// Create persists a new client record.
func (r *ClientRepository) Create(client *models.Client) error {
	return orm.DB().Create(client)
}

// Update persists changes to an existing client.
func (r *ClientRepository) Update(client *models.Client) error {
	return orm.DB().Save(client)
}
