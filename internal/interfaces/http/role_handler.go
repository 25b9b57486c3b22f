package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// RoleHandler maneja creación y asignación de roles.
type RoleHandler struct {
	uc  *usecase.RoleUseCase
	log *logger.Logger
}

// NewRoleHandler construye el handler de roles.
func NewRoleHandler(uc *usecase.RoleUseCase, log *logger.Logger) *RoleHandler {
	return &RoleHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear rol
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateRoleRequest  true  "role_name y permisos por modelo"
// @Success      200   {object}  dto.RoleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /roles/create [post]
func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRoleRequest
	if err := parseBody(c, &in); err != nil {
		return respondBodyError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// CreateAdmin godoc
// @Summary      Crear el rol Administrator (solo la primera vez)
// @Tags         roles
// @Produce      json
// @Success      200   {object}  dto.RoleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /roles/create-admin [get]
func (h *RoleHandler) CreateAdmin(c *fiber.Ctx) error {
	out, err := h.uc.CreateAdmin(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("role_id", out.ID).Msg("rol Administrator creado")
	return c.JSON(out)
}

// Assign godoc
// @Summary      Asignar un rol a un usuario
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AssignRoleRequest  true  "user_id, role_id"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /roles/assign [post]
func (h *RoleHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRoleRequest
	if err := parseBody(c, &in); err != nil {
		return respondBodyError(c, h.log, err)
	}
	if err := h.uc.Assign(c.UserContext(), in); err != nil {
		return respondError(c, h.log, err)
	}
	h.log.Info().Str("user_id", in.UserID).Str("role_id", in.RoleID).Str("by", GetUserID(c)).Msg("rol asignado")
	return c.JSON(dto.MessageResponse{Message: "rol asignado", ID: in.RoleID})
}
