package server

import (
	"readable/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPostComments handles GET /posts/:id/comments
// @Summary List comments of a post
// @Tags comments
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} models.Comment
// @Router /posts/{id}/comments [get]
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListComments(c.UserContext(), paramCopy(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /comments
// @Summary Create a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param request body service.CreateCommentInput true "New comment"
// @Success 200 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req service.CreateCommentInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// GetComment handles GET /comments/:id
// @Summary Get a comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [get]
func (s *Server) GetComment(c *fiber.Ctx) error {
	comment, err := s.commentService.GetComment(c.UserContext(), paramCopy(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// UpdateComment handles PUT /comments/:id
// @Summary Edit a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param request body service.UpdateCommentInput true "New body"
// @Success 200 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [put]
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	var req service.UpdateCommentInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), paramCopy(c, "id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// VoteComment handles POST /comments/:id
// @Summary Vote on a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param id path string true "Comment ID"
// @Param request body service.VoteInput true "upVote or downVote"
// @Success 200 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [post]
func (s *Server) VoteComment(c *fiber.Ctx) error {
	var req service.VoteInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	comment, err := s.commentService.VoteComment(c.UserContext(), paramCopy(c, "id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /comments/:id
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Param id path string true "Comment ID"
// @Success 200 {object} models.Comment
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	comment, err := s.commentService.DeleteComment(c.UserContext(), paramCopy(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(comment)
}

// GetAllComments handles GET /admin/comments
// @Summary List every comment
// @Description Includes deleted and orphaned comments. Requires the admin_listing flag.
// @Tags admin
// @Produce json
// @Success 200 {object} object{comments=[]models.Comment}
// @Router /admin/comments [get]
func (s *Server) GetAllComments(c *fiber.Ctx) error {
	comments, err := s.commentService.ListAllComments(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}
