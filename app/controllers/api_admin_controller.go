package controllers

import (
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/aferchichi/stockshop/app/models"
	"github.com/aferchichi/stockshop/app/repositories"
	"github.com/aferchichi/stockshop/pkg/auth"
	"github.com/aferchichi/stockshop/pkg/bind"
	"github.com/aferchichi/stockshop/pkg/middleware"
	"github.com/aferchichi/stockshop/pkg/response"
)

// APIAdminController manages admin accounts. Routes using it sit behind the
// superadmin role.
type APIAdminController struct {
	admins *repositories.AdminRepository
}

func NewAPIAdminController() *APIAdminController {
	return &APIAdminController{admins: repositories.NewAdminRepository()}
}

type adminInput struct {
	Name       string `json:"name"       validate:"required,max=100"`
	Surname    string `json:"surname"    validate:"required,max=100"`
	Email      string `json:"email"      validate:"required,email"`
	Password   string `json:"password"   validate:"required,min=8"`
	Phone      string `json:"phone"      validate:"nullable,digits=10"`
	Superadmin bool   `json:"superadmin"`
}

// Index lists admins, paginated.
func (c *APIAdminController) Index(w http.ResponseWriter, r *http.Request) {
	admins, pagination, err := c.admins.All(formInt(r, "page", 1), formInt(r, "limit", 20))
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not list admins")
		return
	}
	response.Paginated(w, admins, pagination)
}

// Create registers a new admin account.
func (c *APIAdminController) Create(w http.ResponseWriter, r *http.Request) {
	var input adminInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not create admin")
		return
	}

	admin := models.Admin{
		Person: models.Person{
			Name:     input.Name,
			Surname:  input.Surname,
			Email:    input.Email,
			Password: hash,
			Phone:    input.Phone,
		},
		Superadmin: input.Superadmin,
	}
	if err := c.admins.Create(&admin); err != nil {
		response.Conflict(w, "email already in use")
		return
	}
	response.Created(w, admin)
}

// Update edits an admin's details. The password is replaced only when a new
// one is supplied.
func (c *APIAdminController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}

	var input struct {
		Name       string `json:"name"     validate:"required,max=100"`
		Surname    string `json:"surname"  validate:"required,max=100"`
		Password   string `json:"password" validate:"nullable,min=8"`
		Phone      string `json:"phone"    validate:"nullable,digits=10"`
		Superadmin bool   `json:"superadmin"`
	}
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	admin, err := c.admins.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "could not load admin")
		return
	}

	admin.Name = input.Name
	admin.Surname = input.Surname
	admin.Phone = input.Phone
	admin.Superadmin = input.Superadmin
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "could not update admin")
			return
		}
		admin.Password = hash
	}

	if err := c.admins.Update(&admin); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not update admin")
		return
	}
	response.Success(w, admin)
}

// Delete removes an admin account. Deleting your own account is refused.
func (c *APIAdminController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := paramUint(r, "id")
	if !ok {
		response.NotFound(w)
		return
	}
	if callerID, ok := middleware.UserIDFromCtx(r); ok && callerID == id {
		response.Conflict(w, "cannot delete your own account")
		return
	}
	if err := c.admins.Delete(id); err != nil {
		response.Error(w, http.StatusInternalServerError, "could not delete admin")
		return
	}
	response.Success(w, map[string]uint{"deleted": id})
}
