package entities

type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleGestor Role = "Gestor"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEditor || r == RoleGestor
}

// User identifica um membro da equipe pelo email. Não existe credencial.
type User struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  Role   `json:"role" yaml:"role"`
}
