package soundfolio

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// handleSaveProfile replaces the singleton profile from the submitted form
// fields.
func (a *App) handleSaveProfile(c echo.Context) error {
	p := Profile{
		FullName:   strings.TrimSpace(c.FormValue("fullName")),
		Occupation: strings.TrimSpace(c.FormValue("occupation")),
		Phone:      c.FormValue("phone"),
		Address:    c.FormValue("address"),
		State:      c.FormValue("state"),
		Country:    c.FormValue("country"),
	}
	if err := a.Store.SaveProfile(p); err != nil {
		var ve ValidationError
		if errors.As(err, &ve) {
			return err
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Error saving profile").SetInternal(err)
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]string{"message": "Profile saved successfully!"})
}

func (a *App) handleGetProfile(c echo.Context) error {
	profile, err := a.Cache.GetProfile()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching profile").SetInternal(err)
	}
	return c.JSON(http.StatusOK, profile)
}

// handlePublishPost validates the submission, stores any uploaded files,
// and appends the post row. A blob failure aborts before the row insert so
// a post never references files that were not stored; the converse (files
// stored for a row that failed) is tolerated as orphans.
func (a *App) handlePublishPost(c echo.Context) error {
	heading := strings.TrimSpace(c.FormValue("heading"))
	if heading == "" {
		return ValidationError{Message: "Post heading is required!"}
	}

	post := Post{Heading: heading}
	if links := c.FormValue("links"); links != "" {
		post.Links = &links
	}

	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form submission").SetInternal(err)
	}
	if form != nil {
		if files := form.File["audio"]; len(files) > 0 {
			ref, err := a.Blobs.Save(files[0])
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Error saving post").SetInternal(err)
			}
			post.Audio = &ref
		}
		refs, err := a.Blobs.SaveAll(form.File["sources"])
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Error saving post").SetInternal(err)
		}
		post.Sources = JoinRefs(refs)
	}

	if _, err := a.Store.CreatePost(post); err != nil {
		var ve ValidationError
		if errors.As(err, &ve) {
			return err
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Error saving post").SetInternal(err)
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]string{"message": "Post published successfully!"})
}

func (a *App) handleListPosts(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error fetching posts").SetInternal(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// handleDeletePost removes a post row. Referenced uploads stay on disk;
// deleting a row never cascades into the blob store.
func (a *App) handleDeletePost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return ValidationError{Message: "Invalid post id"}
	}
	if err := a.Store.DeletePost(id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete post").SetInternal(err)
	}
	a.Cache.Invalidate()
	return c.JSON(http.StatusOK, map[string]string{"message": "Post deleted successfully!"})
}
