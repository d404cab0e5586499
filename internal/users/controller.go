package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/apperrors"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/pagination"
	"github.com/JelsonRodrigues/SmartNX-Backend-Test/internal/wire"
)

type Controller struct {
	svc *Service
}

func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

type registerDTO struct {
	Username    string  `json:"username" binding:"required,min=6,max=64"`
	Password    string  `json:"password" binding:"required,min=12,max=128"`
	DisplayName *string `json:"displayName" binding:"omitempty,min=1,max=128"`
}

type patchProfileDTO struct {
	DisplayName *string `json:"displayName" binding:"omitempty,min=1,max=128"`
	Password    *string `json:"password" binding:"omitempty,min=12,max=128"`
	Username    *string `json:"username" binding:"omitempty,min=6,max=64"`
}

type userResponse struct {
	ID          uuid.UUID `json:"id"`
	UserName    string    `json:"userName"`
	DisplayName string    `json:"displayName,omitempty"`
	CreatedAt   string    `json:"createdAt"`
	LastEdited  string    `json:"lastEdited,omitempty"`
}

func toResponse(u *User) userResponse {
	return userResponse{
		ID:          u.ID,
		UserName:    u.UserName,
		DisplayName: u.DisplayName,
		CreatedAt:   wire.FormatTime(u.CreatedAt),
		LastEdited:  wire.FormatTime(u.LastEdited),
	}
}

// actorID reads the authenticated user id placed by the auth middleware.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func (ct *Controller) Register(c *gin.Context) {
	var body registerDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	in := RegisterInput{UserName: body.Username, Password: body.Password}
	if body.DisplayName != nil {
		in.DisplayName = *body.DisplayName
	}

	u, err := ct.svc.Register(c.Request.Context(), in)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(u))
}

func (ct *Controller) Me(c *gin.Context) {
	id, ok := actorID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	u, err := ct.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(u))
}

func (ct *Controller) UpdateMe(c *gin.Context) {
	id, ok := actorID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	var body patchProfileDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	u, err := ct.svc.UpdateProfile(c.Request.Context(), id, ProfilePatch{
		DisplayName: body.DisplayName,
		Password:    body.Password,
		UserName:    body.Username,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(u))
}

func (ct *Controller) DeleteMe(c *gin.Context) {
	id, ok := actorID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	if err := ct.svc.Deactivate(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (ct *Controller) List(c *gin.Context) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	pg, items, err := ct.svc.List(c.Request.Context(), params)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	resp := make([]userResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}
	c.JSON(http.StatusOK, gin.H{"pagination": pg, "items": resp})
}

func (ct *Controller) GetByUserName(c *gin.Context) {
	name := c.Param("username")
	if len(name) < 6 || len(name) > 64 {
		apperrors.Respond(c, apperrors.NewValidationError("username", "must be between 6 and 64 characters long"))
		return
	}

	u, err := ct.svc.GetByUserName(c.Request.Context(), name)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(u))
}

func (ct *Controller) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("userId", "must be a valid UUID"))
		return
	}

	u, err := ct.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(u))
}
