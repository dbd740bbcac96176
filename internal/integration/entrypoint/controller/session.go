package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketwatch/backend/internal/application/usecase/identity"
	domainerror "github.com/pocketwatch/backend/internal/domain/error"
	"github.com/pocketwatch/backend/internal/integration/entrypoint/dto"
)

// SessionController handles session endpoints.
type SessionController struct {
	getUseCase     *identity.GetSessionUseCase
	signInUseCase  *identity.SignInUseCase
	signOutUseCase *identity.SignOutUseCase
}

// NewSessionController creates a new session controller instance.
func NewSessionController(
	getUseCase *identity.GetSessionUseCase,
	signInUseCase *identity.SignInUseCase,
	signOutUseCase *identity.SignOutUseCase,
) *SessionController {
	return &SessionController{
		getUseCase:     getUseCase,
		signInUseCase:  signInUseCase,
		signOutUseCase: signOutUseCase,
	}
}

// Get handles GET /session requests.
func (c *SessionController) Get(ctx *gin.Context) {
	view, err := c.getUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to read session",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SessionResponse{
		SignedIn: view.SignedIn,
		Email:    view.Email,
	})
}

// SignIn handles POST /session requests.
func (c *SessionController) SignIn(ctx *gin.Context) {
	var req dto.SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.signInUseCase.Execute(ctx.Request.Context(), identity.SignInInput{Token: req.Token})
	if err != nil {
		c.handleSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SessionResponse{
		SignedIn: true,
		Email:    output.Identity.Email,
	})
}

// SignOut handles DELETE /session requests.
func (c *SessionController) SignOut(ctx *gin.Context) {
	if err := c.signOutUseCase.Execute(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to end session",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.SessionResponse{SignedIn: false})
}

// handleSessionError maps session errors to HTTP responses.
func (c *SessionController) handleSessionError(ctx *gin.Context, err error) {
	var sessionErr *domainerror.SessionError
	if errors.As(err, &sessionErr) {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: sessionErr.Message,
			Code:  string(sessionErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
