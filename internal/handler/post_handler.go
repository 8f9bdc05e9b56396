package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"microboard/internal/repository"
	"microboard/internal/service"
	"microboard/internal/session"
	"microboard/internal/view"
)

type PostRequest struct {
	Content string `validate:"required"`
}

const (
	signInToPostMessage = "You must sign in to post."
	signInToEditMessage = "You must sign in to edit posts."
	notOwnerMessage     = "You can only edit your own posts."
)

// Index shows the feed. Anonymous visitors are sent to registration.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if session.UserFromContext(r.Context()) == nil {
		redirect(w, r, "/users/new")
		return
	}

	posts, err := h.PostService.Feed(r.Context())
	if err != nil {
		h.ServerError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "index", view.Data{Posts: posts})
}

func (h *Handlers) NewPost(w http.ResponseWriter, r *http.Request) {
	if session.UserFromContext(r.Context()) == nil {
		h.redirectWithFlash(w, r, "/users/new", session.FlashError, signInToPostMessage, nil)
		return
	}

	h.render(w, r, http.StatusOK, "posts/new", view.Data{})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	user := session.UserFromContext(r.Context())
	if user == nil {
		h.redirectWithFlash(w, r, "/users/new", session.FlashError, signInToPostMessage, nil)
		return
	}

	req := PostRequest{Content: strings.TrimSpace(r.PostFormValue("content"))}
	if err := h.Validate.Struct(req); err != nil {
		h.redirectWithFlash(w, r, "/posts/new", session.FlashError, validationMessage(err), nil)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), repository.CreatePostRequest{
		UserID:  user.ID,
		Content: req.Content,
	})
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create post")
		h.redirectWithFlash(w, r, "/posts/new", session.FlashError, "Failed to create post.", nil)
		return
	}

	zerolog.Ctx(r.Context()).Info().Int64("post_id", post.ID).Int64("user_id", user.ID).Msg("Post created")
	h.redirectWithFlash(w, r, "/", session.FlashNotice, "Post created.", nil)
}

func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request) {
	user := session.UserFromContext(r.Context())
	if user == nil {
		h.redirectWithFlash(w, r, "/users/new", session.FlashError, signInToEditMessage, nil)
		return
	}

	postID, ok := postIDFromPath(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	post, err := h.PostService.GetForEdit(r.Context(), postID, user.ID)
	if err != nil {
		if isNotOwner(err) {
			h.redirectWithFlash(w, r, "/", session.FlashError, notOwnerMessage, nil)
			return
		}
		h.ServerError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "posts/edit", view.Data{Post: post})
}

// UpdatePost changes only the content; ownership is checked again against
// the stored post.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user := session.UserFromContext(r.Context())
	if user == nil {
		h.redirectWithFlash(w, r, "/users/new", session.FlashError, signInToEditMessage, nil)
		return
	}

	postID, ok := postIDFromPath(r)
	if !ok {
		h.NotFound(w, r)
		return
	}
	editPath := fmt.Sprintf("/posts/%d/edit", postID)

	req := PostRequest{Content: strings.TrimSpace(r.PostFormValue("content"))}
	if err := h.Validate.Struct(req); err != nil {
		h.redirectWithFlash(w, r, editPath, session.FlashError, validationMessage(err), nil)
		return
	}

	err := h.PostService.UpdatePost(r.Context(), repository.UpdatePostRequest{
		PostID:  postID,
		UserID:  user.ID,
		Content: req.Content,
	})
	if err != nil {
		if isNotOwner(err) {
			h.redirectWithFlash(w, r, "/", session.FlashError, notOwnerMessage, nil)
			return
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Int64("post_id", postID).Msg("Failed to update post")
		h.redirectWithFlash(w, r, editPath, session.FlashError, "Failed to update post.", nil)
		return
	}

	h.redirectWithFlash(w, r, "/", session.FlashNotice, "Post updated.", nil)
}

func postIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// isNotOwner reports errors shown to the visitor as "not your post"; a
// missing post is not distinguished from someone else's.
func isNotOwner(err error) bool {
	return errors.Is(err, service.ErrForbidden) || errors.Is(err, repository.ErrNotFound)
}
