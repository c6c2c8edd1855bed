package requests

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreatePortalUser struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required,max=120"`
	Role       string `json:"role" validate:"required,portal_role"`
	ClinicName string `json:"clinic_name" validate:"required_if=Role clinic_user,max=200"`
}
