package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/pos-backoffice/internal/application/dto"
	"github.com/tu-usuario/pos-backoffice/internal/domain"
	"github.com/tu-usuario/pos-backoffice/internal/domain/entity"
	"github.com/tu-usuario/pos-backoffice/internal/domain/repository"
	"github.com/tu-usuario/pos-backoffice/pkg/config"
	"github.com/tu-usuario/pos-backoffice/pkg/jwt"
)

// UseCase registro y autenticación de usuarios.
type UseCase struct {
	repo   repository.UsuarioRepository
	jwtCfg config.JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.UsuarioRepository, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{repo: repo, jwtCfg: jwtCfg}
}

// Register crea un usuario con la contraseña hasheada. Rol vacío = vendedor.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UsuarioResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, domain.ErrEntradaInvalida
	}
	rol := in.Rol
	if rol == "" {
		rol = entity.RolVendedor
	}
	if rol != entity.RolAdmin && rol != entity.RolVendedor {
		return nil, domain.ErrEntradaInvalida
	}

	existente, err := uc.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrEmailYaRegistrado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Nombre:       in.Nombre,
		Rol:          rol,
		SucursalID:   in.SucursalID,
		Estado:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Login valida credenciales y emite el token con la sucursal de trabajo.
// Credenciales malas y usuario inexistente devuelven el mismo error.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrEntradaInvalida
	}

	usuario, err := uc.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if usuario == nil || usuario.Estado != "active" {
		return nil, domain.ErrNoAutorizado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrNoAutorizado
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.SucursalID, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *toUsuarioResponse(usuario),
	}, nil
}

// Perfil devuelve el usuario autenticado.
func (uc *UseCase) Perfil(ctx context.Context, userID string) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNoExiste
	}
	return toUsuarioResponse(usuario), nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:         u.ID,
		Email:      u.Email,
		Nombre:     u.Nombre,
		Rol:        u.Rol,
		SucursalID: u.SucursalID,
		Estado:     u.Estado,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
