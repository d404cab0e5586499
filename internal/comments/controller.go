package comments

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

type commentBodyDTO struct {
	Content string `json:"content" binding:"required,min=1,max=255"`
}

type authorResponse struct {
	UserName    string `json:"userName"`
	DisplayName string `json:"displayName,omitempty"`
}

type commentResponse struct {
	ID         uuid.UUID       `json:"id"`
	Content    string          `json:"content"`
	PostID     uuid.UUID       `json:"postId"`
	AuthorID   uuid.UUID       `json:"userId"`
	CreatedAt  string          `json:"createdAt"`
	LastEdited string          `json:"lastEdited,omitempty"`
	Author     *authorResponse `json:"author,omitempty"`
}

func toResponse(cm *Comment, withAuthor bool) commentResponse {
	resp := commentResponse{
		ID:         cm.ID,
		Content:    cm.Content,
		PostID:     cm.PostID,
		AuthorID:   cm.AuthorID,
		CreatedAt:  wire.FormatTime(cm.CreatedAt),
		LastEdited: wire.FormatTime(cm.LastEdited),
	}
	if withAuthor {
		resp.Author = &authorResponse{
			UserName:    cm.Author.UserName,
			DisplayName: cm.Author.DisplayName,
		}
	}
	return resp
}

func actorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func (ct *Controller) Create(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("postId", "must be a valid UUID"))
		return
	}

	var body commentBodyDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	cm, err := ct.svc.Create(c.Request.Context(), actor, postID, body.Content)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(cm, false))
}

func (ct *Controller) ListForPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("postId", "must be a valid UUID"))
		return
	}

	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	pg, items, err := ct.svc.ListForPost(c.Request.Context(), postID, params)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	resp := make([]commentResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i], true))
	}
	c.JSON(http.StatusOK, gin.H{"pagination": pg, "items": resp})
}

func (ct *Controller) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("commentId", "must be a valid UUID"))
		return
	}

	cm, err := ct.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(cm, true))
}

func (ct *Controller) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	id, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("commentId", "must be a valid UUID"))
		return
	}

	var body commentBodyDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	cm, err := ct.svc.Update(c.Request.Context(), id, actor, body.Content)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(cm, false))
}

func (ct *Controller) Delete(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	id, err := uuid.Parse(c.Param("commentId"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("commentId", "must be a valid UUID"))
		return
	}

	if err := ct.svc.SoftDelete(c.Request.Context(), id, actor); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusOK)
}
