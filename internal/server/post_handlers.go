package server

import (
	"readable/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} object{categories=[]models.Category}
// @Router /categories [get]
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.categoryService.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// GetPosts handles GET /posts
// @Summary List posts
// @Description Visible posts across all categories, oldest first.
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext(), "")
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// GetCategoryPosts handles GET /:category/posts
// @Summary List posts in a category
// @Tags posts
// @Produce json
// @Param category path string true "Category path"
// @Success 200 {array} models.Post
// @Router /{category}/posts [get]
func (s *Server) GetCategoryPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext(), paramCopy(c, "category"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /posts
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body service.CreatePostInput true "New post"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req service.CreatePostInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.CreatePost(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetPost handles GET /posts/:id
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), paramCopy(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /posts/:id
// @Summary Edit a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body service.UpdatePostInput true "Title and body"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	var req service.UpdatePostInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.UpdatePost(c.UserContext(), paramCopy(c, "id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// VotePost handles POST /posts/:id
// @Summary Vote on a post
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body service.VoteInput true "upVote or downVote"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [post]
func (s *Server) VotePost(c *fiber.Ctx) error {
	var req service.VoteInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	post, err := s.postService.VotePost(c.UserContext(), paramCopy(c, "id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /posts/:id
// @Summary Delete a post
// @Description Soft-deletes the post and hides all of its comments.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	post, err := s.postService.DeletePost(c.UserContext(), paramCopy(c, "id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetAllPosts handles GET /admin/posts
// @Summary List every post
// @Description Includes deleted posts. Requires the admin_listing flag.
// @Tags admin
// @Produce json
// @Success 200 {object} object{posts=[]models.Post}
// @Router /admin/posts [get]
func (s *Server) GetAllPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListAllPosts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}
