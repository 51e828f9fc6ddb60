package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindcare/internal/middleware"
	"mindcare/internal/service"
)

type ForumHandler struct {
	forumService *service.ForumService
}

type createPostRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	IsAnonymous bool     `json:"isAnonymous"`
	Tags        []string `json:"tags"`
}

type replyRequest struct {
	Text string `json:"text"`
}

func NewForumHandler(forumService *service.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

func (h *ForumHandler) List(c *gin.Context) {
	posts, apiErr := h.forumService.List(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *ForumHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	post, apiErr := h.forumService.Create(c.Request.Context(), service.CreatePostInput{
		AuthorID:    middleware.UserID(c),
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		IsAnonymous: req.IsAnonymous,
		Tags:        req.Tags,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *ForumHandler) Like(c *gin.Context) {
	post, apiErr := h.forumService.ToggleLike(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *ForumHandler) Reply(c *gin.Context) {
	var req replyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	post, apiErr := h.forumService.Reply(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Text)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *ForumHandler) Delete(c *gin.Context) {
	apiErr := h.forumService.Delete(c.Request.Context(), middleware.UserID(c), middleware.Role(c), c.Param("id"))
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
