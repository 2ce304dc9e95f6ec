package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-workspace/internal/middleware/auth"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/dto"
	"github.com/wekeepgrowing/semo-workspace/internal/usecase/interfaces"
	apperrors "github.com/wekeepgrowing/semo-workspace/pkg/errors"
)

// WorkspaceHandler 워크스페이스와 멤버 API 핸들러
type WorkspaceHandler struct {
	workspaceUC     interfaces.WorkspaceUseCase
	workspaceUserUC interfaces.WorkspaceUserUseCase
	logger          *zap.Logger
}

// NewWorkspaceHandler 핸들러 생성
func NewWorkspaceHandler(
	workspaceUC interfaces.WorkspaceUseCase,
	workspaceUserUC interfaces.WorkspaceUserUseCase,
	logger *zap.Logger,
) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceUC:     workspaceUC,
		workspaceUserUC: workspaceUserUC,
		logger:          logger,
	}
}

// RegisterRoutes 인증이 적용된 그룹에 라우트 등록
func (h *WorkspaceHandler) RegisterRoutes(g *echo.Group) {
	workspaces := g.Group("/workspaces")
	workspaces.GET("", h.ListWorkspaces)
	workspaces.POST("", h.CreateWorkspace)
	workspaces.GET("/:id", h.GetWorkspace)
	workspaces.PUT("/:id", h.UpdateWorkspace)
	workspaces.DELETE("/:id", h.DeleteWorkspace)
	workspaces.GET("/:id/users", h.ListWorkspaceUsers)
	workspaces.POST("/:id/invitations", h.InviteUser)
}

// requestContext 인증 사용자와 요청 ID가 담긴 컨텍스트
func requestContext(c echo.Context) (context.Context, *auth.AuthUser, error) {
	user, err := auth.RequireAuth(c)
	if err != nil {
		return nil, nil, err
	}
	ctx := c.Request().Context()
	if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
		ctx = usecase.WithRequestID(ctx, rid)
	}
	return ctx, user, nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid request body", err)
	}
	return c.Validate(req)
}

// ListWorkspaces GET /workspaces
func (h *WorkspaceHandler) ListWorkspaces(c echo.Context) error {
	ctx, user, err := requestContext(c)
	if err != nil {
		return err
	}

	workspaces, err := h.workspaceUC.ListWorkspaces(ctx, user.UserID)
	if err != nil {
		return toAppError(err)
	}

	resp := make([]WorkspaceResponse, 0, len(workspaces))
	for _, w := range workspaces {
		resp = append(resp, toWorkspaceResponse(w))
	}
	return c.JSON(http.StatusOK, resp)
}

// CreateWorkspace POST /workspaces
func (h *WorkspaceHandler) CreateWorkspace(c echo.Context) error {
	ctx, user, err := requestContext(c)
	if err != nil {
		return err
	}

	var req WorkspaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	workspace, err := h.workspaceUC.CreateWorkspace(ctx, dto.CreateWorkspaceParams{
		UserID:      user.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return toAppError(err)
	}
	return c.JSON(http.StatusCreated, toWorkspaceResponse(workspace))
}

// GetWorkspace GET /workspaces/:id
func (h *WorkspaceHandler) GetWorkspace(c echo.Context) error {
	ctx, user, err := requestContext(c)
	if err != nil {
		return err
	}

	workspace, err := h.workspaceUC.GetWorkspace(ctx, user.UserID, c.Param("id"))
	if err != nil {
		return toAppError(err)
	}
	return c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

// UpdateWorkspace PUT /workspaces/:id
func (h *WorkspaceHandler) UpdateWorkspace(c echo.Context) error {
	ctx, user, err := requestContext(c)
	if err != nil {
		return err
	}

	var req WorkspaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	workspace, err := h.workspaceUC.UpdateWorkspace(ctx, dto.UpdateWorkspaceParams{
		UserID:      user.UserID,
		WorkspaceID: c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return toAppError(err)
	}
	return c.JSON(http.StatusOK, toWorkspaceResponse(workspace))
}

// DeleteWorkspace DELETE /workspaces/:id
func (h *WorkspaceHandler) DeleteWorkspace(c echo.Context) error {
	ctx, user, err := requestContext(c)
	if err != nil {
		return err
	}

	if err := h.workspaceUC.DeleteWorkspace(ctx, user.UserID, c.Param("id")); err != nil {
		return toAppError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListWorkspaceUsers GET /workspaces/:id/users
func (h *WorkspaceHandler) ListWorkspaceUsers(c echo.Context) error {
	ctx, user, err := requestContext(c)
	if err != nil {
		return err
	}

	members, err := h.workspaceUserUC.ListWorkspaceUsers(ctx, user.UserID, c.Param("id"))
	if err != nil {
		return toAppError(err)
	}

	resp := make([]WorkspaceUserResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toWorkspaceUserResponse(m))
	}
	return c.JSON(http.StatusOK, resp)
}

// InviteUser POST /workspaces/:id/invitations
func (h *WorkspaceHandler) InviteUser(c echo.Context) error {
	ctx, user, err := requestContext(c)
	if err != nil {
		return err
	}

	var req InvitationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	member, err := h.workspaceUserUC.InviteUser(ctx, dto.InviteUserParams{
		InviterID:   user.UserID,
		WorkspaceID: c.Param("id"),
		Email:       req.Email,
		Role:        req.Role,
	})
	if err != nil {
		return toAppError(err)
	}
	return c.JSON(http.StatusCreated, toWorkspaceUserResponse(member))
}
