package domain

import "time"

// User é uma conta de funcionário ou administrador da loja.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Nunca sai no JSON
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRole governa as permissões e a duração da sessão.
type UserRole string

const (
	RoleAdmin       UserRole = "ADMIN"
	RoleFuncionario UserRole = "FUNCIONARIO"
)

// Principal é o usuário autenticado da requisição, repassado explicitamente aos serviços.
type Principal struct {
	UserID int64    `json:"id"`
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
}

// IsAdmin informa se o usuário pode editar e excluir produtos e lotes.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// LoginRequest é o payload de POST /v1/auth/login.
type LoginRequest struct {
	Name     string `json:"name" validate:"required" example:"ca.ltda"`
	Password string `json:"password" validate:"required" example:"loja@2380"`
}

// LoginResponse carrega o token e os dados da sessão.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      Principal `json:"user"`
}

// SeedAccount é uma conta criada pela rotina de seed.
type SeedAccount struct {
	Name     string
	Password string
	Role     UserRole
}
