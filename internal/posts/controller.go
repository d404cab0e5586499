package posts

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

type createPostDTO struct {
	Title   string `json:"title" binding:"required,min=1,max=64"`
	Content string `json:"content" binding:"required,min=1,max=255"`
}

type patchPostDTO struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=64"`
	Content *string `json:"content" binding:"omitempty,min=1,max=255"`
}

type listPostsQuery struct {
	AuthorID string `form:"userId" binding:"omitempty,uuid4"`
	pagination.Params
}

type authorResponse struct {
	UserName    string `json:"userName"`
	DisplayName string `json:"displayName,omitempty"`
}

type postResponse struct {
	ID         uuid.UUID       `json:"id"`
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	CreatedAt  string          `json:"createdAt"`
	LastEdited string          `json:"lastEdited,omitempty"`
	Author     *authorResponse `json:"author,omitempty"`
}

func toResponse(p *Post, withAuthor bool) postResponse {
	resp := postResponse{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		CreatedAt:  wire.FormatTime(p.CreatedAt),
		LastEdited: wire.FormatTime(p.LastEdited),
	}
	if withAuthor {
		resp.Author = &authorResponse{
			UserName:    p.Author.UserName,
			DisplayName: p.Author.DisplayName,
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

	var body createPostDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	p, err := ct.svc.Create(c.Request.Context(), actor, CreateInput{
		Title:   body.Title,
		Content: body.Content,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(p, false))
}

func (ct *Controller) List(c *gin.Context) {
	var q listPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	var authorID *uuid.UUID
	if q.AuthorID != "" {
		id, err := uuid.Parse(q.AuthorID)
		if err != nil {
			apperrors.Respond(c, apperrors.NewValidationError("userId", "must be a valid UUID"))
			return
		}
		authorID = &id
	}

	pg, items, err := ct.svc.List(c.Request.Context(), authorID, q.Params)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	resp := make([]postResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i], true))
	}
	c.JSON(http.StatusOK, gin.H{"pagination": pg, "items": resp})
}

func (ct *Controller) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("postId", "must be a valid UUID"))
		return
	}

	p, err := ct.svc.Get(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(p, true))
}

func (ct *Controller) Update(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("id", "must be a valid UUID"))
		return
	}

	var body patchPostDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.Respond(c, apperrors.FromBinding(err))
		return
	}

	p, err := ct.svc.Update(c.Request.Context(), id, actor, Patch{
		Title:   body.Title,
		Content: body.Content,
	})
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(p, false))
}

func (ct *Controller) Delete(c *gin.Context) {
	actor, ok := actorID(c)
	if !ok {
		apperrors.Respond(c, apperrors.ErrUnauthenticated)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperrors.Respond(c, apperrors.NewValidationError("id", "must be a valid UUID"))
		return
	}

	if err := ct.svc.SoftDelete(c.Request.Context(), id, actor); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.Status(http.StatusOK)
}
