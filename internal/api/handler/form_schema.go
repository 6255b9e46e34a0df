package handler

// Form payloads bound from application/x-www-form-urlencoded and
// multipart/form-data bodies.

type registerForm struct {
	Name     string `form:"name" label:"Name" validate:"required,max=100"`
	Handle   string `form:"handle" label:"Username" validate:"required,max=50"`
	Password string `form:"password" label:"Password" validate:"required"`
}

type loginForm struct {
	Handle   string `form:"handle" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type profileForm struct {
	Name   string `form:"name" label:"Name" validate:"required,max=100"`
	Handle string `form:"handle" label:"Username" validate:"required,max=50"`
}

type listingForm struct {
	Name        string `form:"name" label:"Name" validate:"required,max=100"`
	Description string `form:"description" label:"Description" validate:"required"`
	BirthDate   string `form:"birth_date" label:"Birth date" validate:"omitempty,datetime=2006-01-02"`
}

// idForm carries the hidden id field of the listing and request buttons.
type idForm struct {
	ID string `form:"id" validate:"required"`
}

// staffForm is either the gate submission (secret only) or the staff
// registration (secret plus account fields).
type staffForm struct {
	Secret   string `form:"secret"`
	Name     string `form:"name"`
	Handle   string `form:"handle"`
	Password string `form:"password"`
}

func (f staffForm) hasAccountFields() bool {
	return f.Name != "" || f.Handle != "" || f.Password != ""
}
