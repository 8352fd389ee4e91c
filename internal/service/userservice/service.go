package userservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	apperror "github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/validator"
)

const msgCredenciaisInvalidas = "Credenciais inválidas."

// UserRepository é a persistência de contas que o serviço usa.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByName(ctx context.Context, name string) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(user domain.User) (string, time.Time, error)
}

// UserService autentica funcionários e cria as contas iniciais da loja.
type UserService struct {
	UserRepo UserRepository
	TokenSvc TokenService
	logger   logger.Logger
	cost     int
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc TokenService, log logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		logger:   log,
		cost:     bcrypt.DefaultCost,
	}
}

// Login autentica o usuário pelo nome e senha e emite o JWT da sessão.
// Usuário inexistente e senha errada dão a mesma resposta.
func (s *UserService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return domain.LoginResponse{}, apperror.NewUnauthorizedError("Nome e senha são obrigatórios.")
	}

	user, err := s.UserRepo.FindByName(ctx, strings.TrimSpace(req.Name))
	if err != nil {
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return domain.LoginResponse{}, apperror.NewUnauthorizedError(msgCredenciaisInvalidas)
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Tentativa de login com senha incorreta.", map[string]interface{}{"user": user.Name})
		return domain.LoginResponse{}, apperror.NewUnauthorizedError(msgCredenciaisInvalidas)
	}

	tokenString, expiresAt, err := s.TokenSvc.GenerateToken(user)
	if err != nil {
		return domain.LoginResponse{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("Login efetuado.", map[string]interface{}{"user": user.Name, "role": string(user.Role)})
	return domain.LoginResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		User:      domain.Principal{UserID: user.ID, Name: user.Name, Role: user.Role},
	}, nil
}

// Seed cria as contas que ainda não existem. Contas existentes ficam intactas,
// então rodar duas vezes não muda nada. Devolve quantas contas foram criadas.
func (s *UserService) Seed(ctx context.Context, contas []domain.SeedAccount) (int, error) {
	criadas := 0
	for _, c := range contas {
		_, err := s.UserRepo.FindByName(ctx, c.Name)
		if err == nil {
			s.logger.Debug("Conta já existe, mantida.", map[string]interface{}{"user": c.Name})
			continue
		}
		var notFoundErr *apperror.NotFoundError
		if !errors.As(err, &notFoundErr) {
			return criadas, err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), s.cost)
		if err != nil {
			return criadas, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
		}

		_, err = s.UserRepo.Save(ctx, domain.User{Name: c.Name, PasswordHash: string(hash), Role: c.Role})
		if err != nil {
			// Outra execução do seed criou a conta no meio do caminho.
			var conflictErr *apperror.ConflictError
			if errors.As(err, &conflictErr) {
				continue
			}
			return criadas, err
		}
		criadas++
		s.logger.Info("Conta criada pelo seed.", map[string]interface{}{"user": c.Name, "role": string(c.Role)})
	}
	return criadas, nil
}

// ContasPadrao são as contas da loja: o administrador e as duas funcionárias.
func ContasPadrao(senhaAdmin, senhaDiana, senhaDeise string) []domain.SeedAccount {
	return []domain.SeedAccount{
		{Name: "ca.ltda", Password: senhaAdmin, Role: domain.RoleAdmin},
		{Name: "Diana", Password: senhaDiana, Role: domain.RoleFuncionario},
		{Name: "Deise", Password: senhaDeise, Role: domain.RoleFuncionario},
	}
}
