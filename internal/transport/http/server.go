package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"prime_estate/internal/domain/models"
	"prime_estate/internal/lib/logger/sl"
	projectsvc "prime_estate/internal/services/project_service"
	tokensvc "prime_estate/internal/services/token_service"
	usersvc "prime_estate/internal/services/user_service"
	"prime_estate/internal/storage"
	"prime_estate/internal/transport/http/dto"
	"prime_estate/internal/transport/http/dto/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ProjectService interface {
	CreateProject(ctx context.Context, input dto.CreateProjectInput) (models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, input dto.UpdateProjectInput) (models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) (models.Project, []string, error)
	ListProjects(ctx context.Context, filter models.ProjectFilter, page, limit int) (dto.ProjectPage, error)
	GetProjectByID(ctx context.Context, id uuid.UUID) (models.Project, error)
}

type GalleryService interface {
	ListGallery(ctx context.Context) ([]models.GalleryEntry, error)
}

type UserService interface {
	RegisterNewUser(ctx context.Context, input dto.UserRegisterInput) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
}

type TokenService interface {
	GenerateTokens(ctx context.Context, user models.User) (*models.TokenPair, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

type Routers struct {
	log            *slog.Logger
	ProjectService ProjectService
	GalleryService GalleryService
	UserService    UserService
	TokenService   TokenService
}

func NewRouter(
	log *slog.Logger,
	projectService ProjectService,
	galleryService GalleryService,
	userService UserService,
	tokenService TokenService,
) *Routers {
	return &Routers{
		log:            log,
		ProjectService: projectService,
		GalleryService: galleryService,
		UserService:    userService,
		TokenService:   tokenService,
	}
}

const sessionCookieName = "token"

// CreateProject godoc
// @Summary Create a project listing
// @Description Multipart form: localized text fields plus one or more image files under "images".
// @Tags projects
// @Accept mpfd
// @Produce json
// @Success 201 {object} response.Response{data=models.Project}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/projects [post]
func (r *Routers) CreateProject(c echo.Context) error {
	const op = "http.routers.CreateProject"

	log := r.log.With(slog.String("op", op))

	input, closers, err := bindCreateProject(c)
	defer closeAll(closers)
	if err != nil {
		log.Warn("bad create payload", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
	}

	project, err := r.ProjectService.CreateProject(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNoImages), errors.Is(err, projectsvc.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, response.Fail(unwrapMsg(err)))
		default:
			log.Error("create project failed", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.Fail("failed to create project"))
		}
	}

	return c.JSON(http.StatusCreated, response.Success(project))
}

// GetAllProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Param page query int false "page (default 1)"
// @Param limit query int false "page size (default 10)"
// @Param status query string false "status filter"
// @Param type query string false "type filter"
// @Success 200 {object} response.ProjectListResponse
// @Router /api/projects [get]
func (r *Routers) GetAllProjects(c echo.Context) error {
	const op = "http.routers.GetAllProjects"

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := models.ProjectFilter{
		Status: c.QueryParam("status"),
		Type:   c.QueryParam("type"),
	}

	result, err := r.ProjectService.ListProjects(c.Request().Context(), filter, page, limit)
	if err != nil {
		r.log.Error("list projects failed", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.FailError("failed to list projects"))
	}

	items := result.Items
	if items == nil {
		items = []models.Project{}
	}

	return c.JSON(http.StatusOK, response.ProjectListResponse{
		Success:     true,
		Count:       len(items),
		Total:       result.Total,
		TotalPages:  result.TotalPages,
		CurrentPage: result.CurrentPage,
		Filters:     response.ListFilters{Status: filter.Status, Type: filter.Type},
		Data:        items,
	})
}

// GetProjectByID godoc
// @Summary Get one project
// @Tags projects
// @Produce json
// @Param id path string true "project id"
// @Success 200 {object} response.Response{data=models.Project}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/projects/{id} [get]
func (r *Routers) GetProjectByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, response.Fail("project not found"))
	}

	project, err := r.ProjectService.GetProjectByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, response.Fail("project not found"))
		}

		r.log.Error("get project failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.FailError("failed to get project"))
	}

	return c.JSON(http.StatusOK, response.Success(project))
}

// UpdateProject godoc
// @Summary Update a project listing
// @Description Multipart form: changed fields, removedImages[] URLs to drop, new files under "images".
// @Tags projects
// @Accept mpfd
// @Produce json
// @Param id path string true "project id"
// @Success 200 {object} response.Response{data=models.Project}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/projects/{id} [put]
func (r *Routers) UpdateProject(c echo.Context) error {
	const op = "http.routers.UpdateProject"

	log := r.log.With(slog.String("op", op))

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, response.Fail("project not found"))
	}

	input, closers, err := bindUpdateProject(c)
	defer closeAll(closers)
	if err != nil {
		log.Warn("bad update payload", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
	}

	project, err := r.ProjectService.UpdateProject(c.Request().Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrProjectNotFound):
			return c.JSON(http.StatusNotFound, response.Fail("project not found"))
		case errors.Is(err, storage.ErrNoImages):
			return c.JSON(http.StatusBadRequest, response.Fail(unwrapMsg(err)))
		default:
			log.Error("update project failed", sl.Err(err))
			return c.JSON(http.StatusBadRequest, response.Fail("failed to update project"))
		}
	}

	return c.JSON(http.StatusOK, response.Success(project))
}

// DeleteProject godoc
// @Summary Delete a project listing
// @Tags projects
// @Produce json
// @Param id path string true "project id"
// @Success 200 {object} response.Response{data=models.Project}
// @Failure 404 {object} response.ErrorResponse
// @Router /api/projects/{id} [delete]
func (r *Routers) DeleteProject(c echo.Context) error {
	const op = "http.routers.DeleteProject"

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, response.Fail("project not found"))
	}

	project, warnings, err := r.ProjectService.DeleteProject(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, response.Fail("project not found"))
		}

		r.log.Error("delete project failed", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.FailError("failed to delete project"))
	}

	if len(warnings) > 0 {
		return c.JSON(http.StatusOK, response.SuccessMessage(
			"project deleted; some images could not be removed from storage", project))
	}

	return c.JSON(http.StatusOK, response.Success(project))
}

// GetGallery godoc
// @Summary List all gallery entries
// @Tags gallery
// @Produce json
// @Success 200 {object} response.Response{data=[]models.GalleryEntry}
// @Router /api/gallery [get]
func (r *Routers) GetGallery(c echo.Context) error {
	entries, err := r.GalleryService.ListGallery(c.Request().Context())
	if err != nil {
		r.log.Error("list gallery failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.FailError("failed to list gallery"))
	}

	if entries == nil {
		entries = []models.GalleryEntry{}
	}

	return c.JSON(http.StatusOK, response.Success(entries))
}

// Signup godoc
// @Summary Register an admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.UserRegisterInput true "registration data"
// @Success 201 {object} response.Response{data=dto.UserResponse}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/auth/signup [post]
func (r *Routers) Signup(c echo.Context) error {
	const op = "http.routers.Signup"

	log := r.log.With(slog.String("op", op))

	var req dto.UserRegisterInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Fail("invalid request"))
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
	}

	user, err := r.UserService.RegisterNewUser(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, response.Fail("Email already exists"))
		}

		log.Error("signup failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.FailError("internal server error"))
	}

	pair, err := r.TokenService.GenerateTokens(c.Request().Context(), user)
	if err != nil {
		log.Error("token generation failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.FailError("internal server error"))
	}

	r.setSessionCookie(c, pair.AccessToken)

	return c.JSON(http.StatusCreated, response.SuccessMessage("User signed up successfully", dto.UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}))
}

// Signin godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.UserLoginInput true "credentials"
// @Success 200 {object} response.Response{data=dto.UserResponse}
// @Failure 400 {object} response.ErrorResponse
// @Router /api/auth/signin [post]
func (r *Routers) Signin(c echo.Context) error {
	const op = "http.routers.Signin"

	log := r.log.With(slog.String("op", op))

	var req dto.UserLoginInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Fail("invalid request"))
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
	}

	user, err := r.UserService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usersvc.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, response.Fail("Invalid credentials"))
		}

		log.Error("signin failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.FailError("internal server error"))
	}

	pair, err := r.TokenService.GenerateTokens(c.Request().Context(), user)
	if err != nil {
		log.Error("token generation failed", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.FailError("internal server error"))
	}

	r.setSessionCookie(c, pair.AccessToken)

	return c.JSON(http.StatusOK, response.SuccessMessage("User signed in successfully", dto.UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}))
}

// Refresh godoc
// @Summary Rotate a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshInput true "refresh token"
// @Success 200 {object} response.Response{data=models.TokenPair}
// @Failure 401 {object} response.ErrorResponse
// @Router /api/auth/refresh [post]
func (r *Routers) Refresh(c echo.Context) error {
	const op = "http.routers.Refresh"

	var req dto.RefreshInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Fail("invalid request"))
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
	}

	pair, err := r.TokenService.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		r.log.Warn("refresh rejected", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusUnauthorized, response.FailError("invalid refresh token"))
	}

	r.setSessionCookie(c, pair.AccessToken)

	return c.JSON(http.StatusOK, response.Success(pair))
}

func (r *Routers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Routers) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokensvc.AccessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// --- multipart binding ---

func bindCreateProject(c echo.Context) (dto.CreateProjectInput, []multipart.File, error) {
	var input dto.CreateProjectInput

	title, err := parseLocalizedText(c.FormValue("title"))
	if err != nil {
		return input, nil, err
	}
	if title != nil {
		input.Title = *title
	}

	description, err := parseLocalizedText(c.FormValue("description"))
	if err != nil {
		return input, nil, err
	}
	if description != nil {
		input.Description = *description
	}

	status, err := parseLocalizedText(c.FormValue("status"))
	if err != nil {
		return input, nil, err
	}
	if status != nil {
		input.Status = *status
	}

	location, err := parseLocalizedText(c.FormValue("location"))
	if err != nil {
		return input, nil, err
	}
	if location != nil {
		input.Location = *location
	}

	input.Type = c.FormValue("type")

	features, err := parseLocalizedList(c.FormValue("features"))
	if err != nil {
		return input, nil, err
	}
	if features != nil {
		input.Features = *features
	}

	input.CompletionDate, err = parseDate(c.FormValue("completionDate"))
	if err != nil {
		return input, nil, err
	}

	files, closers, err := formFiles(c, "images")
	if err != nil {
		return input, closers, err
	}
	input.Files = files

	return input, closers, nil
}

func bindUpdateProject(c echo.Context) (dto.UpdateProjectInput, []multipart.File, error) {
	var input dto.UpdateProjectInput
	var err error

	if input.Title, err = parseLocalizedText(c.FormValue("title")); err != nil {
		return input, nil, err
	}
	if input.Description, err = parseLocalizedText(c.FormValue("description")); err != nil {
		return input, nil, err
	}
	if input.Status, err = parseLocalizedText(c.FormValue("status")); err != nil {
		return input, nil, err
	}
	if input.Location, err = parseLocalizedText(c.FormValue("location")); err != nil {
		return input, nil, err
	}
	if v := c.FormValue("type"); v != "" {
		input.Type = &v
	}
	if input.Features, err = parseLocalizedList(c.FormValue("features")); err != nil {
		return input, nil, err
	}
	if input.CompletionDate, err = parseDate(c.FormValue("completionDate")); err != nil {
		return input, nil, err
	}

	input.RemovedImages = formValues(c, "removedImages")

	files, closers, err := formFiles(c, "images")
	if err != nil {
		return input, closers, err
	}
	input.Files = files

	return input, closers, nil
}

// parseLocalizedText accepts either a plain string or a JSON {en, ar} object.
func parseLocalizedText(raw string) (*models.LocalizedText, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var t models.LocalizedText
	if strings.HasPrefix(raw, "{") || strings.HasPrefix(raw, "\"") {
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, err
		}
		return &t, nil
	}

	t.Plain = raw

	return &t, nil
}

func parseLocalizedList(raw string) (*models.LocalizedList, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var l models.LocalizedList
	if err := json.Unmarshal([]byte(raw), &l); err != nil {
		return nil, err
	}

	return &l, nil
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}

	return nil, errors.New("completionDate must be RFC3339 or YYYY-MM-DD")
}

// formValues reads repeated form values; a single JSON array is also accepted.
func formValues(c echo.Context, field string) []string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	values := form.Value[field]
	if len(values) == 0 {
		values = form.Value[field+"[]"]
	}

	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var list []string
		if err := json.Unmarshal([]byte(values[0]), &list); err == nil {
			return list
		}
	}

	return values
}

func formFiles(c echo.Context, field string) ([]storage.FileUpload, []multipart.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	headers := form.File[field]
	if len(headers) == 0 {
		headers = form.File[field+"[]"]
	}

	var (
		files   []storage.FileUpload
		closers []multipart.File
	)

	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return nil, closers, err
		}

		closers = append(closers, src)
		files = append(files, storage.FileUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     src,
		})
	}

	return files, closers, nil
}

func closeAll(closers []multipart.File) {
	for _, c := range closers {
		_ = c.Close()
	}
}

// unwrapMsg strips the op-chain prefix so clients see the root cause only.
func unwrapMsg(err error) string {
	root := err
	for errors.Unwrap(root) != nil {
		root = errors.Unwrap(root)
	}

	return root.Error()
}
