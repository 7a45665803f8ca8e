package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/ev-charging-admin/internal/config"
    "github.com/iliyamo/ev-charging-admin/internal/model"
    "github.com/iliyamo/ev-charging-admin/internal/policy"
    "github.com/iliyamo/ev-charging-admin/internal/repository"
    "github.com/iliyamo/ev-charging-admin/internal/utils"
)

// UserHandler exposes user management. Reads are open to any
// authenticated role; every mutation is gated on the authorization
// policy, which restricts user management to SuperAdmin.
type UserHandler struct {
    Cfg    config.Config
    Users  *repository.UserRepo
    Tokens *repository.TokenRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *UserHandler {
    if u == nil || t == nil {
        panic("nil repository passed to NewUserHandler")
    }
    return &UserHandler{Cfg: cfg, Users: u, Tokens: t}
}

// userResp is the public shape of a user; the password hash never
// leaves the repository layer.
type userResp struct {
    ID        uint64    `json:"id"`
    Email     string    `json:"email"`
    FirstName string    `json:"firstName"`
    LastName  string    `json:"lastName"`
    Role      string    `json:"role"`
    IsActive  bool      `json:"isActive"`
    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResp(u model.User) userResp {
    return userResp{
        ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName,
        Role: u.Role, IsActive: u.IsActive, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
    }
}

type upsertUserReq struct {
    Email     string `json:"email"`
    Password  string `json:"password"`
    FirstName string `json:"firstName"`
    LastName  string `json:"lastName"`
    Role      string `json:"role"`
    IsActive  *bool  `json:"isActive"`
}

type changePasswordReq struct {
    CurrentPassword string `json:"currentPassword"`
    NewPassword     string `json:"newPassword"`
}

// List handles GET /v1/users.
func (h *UserHandler) List(c echo.Context) error {
    users, err := h.Users.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    out := make([]userResp, 0, len(users))
    for _, u := range users {
        out = append(out, toUserResp(u))
    }
    return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
    }
    u, err := h.Users.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    return c.JSON(http.StatusOK, toUserResp(u))
}

// Create handles POST /v1/users. Only SuperAdmin may create users.
func (h *UserHandler) Create(c echo.Context) error {
    if !policy.Allows(getRole(c), policy.ActionUserManage, false) {
        return c.JSON(http.StatusForbidden, echo.Map{"message": "Only SuperAdmin can create users"})
    }
    var req upsertUserReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    if req.Email == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "email/password required"})
    }
    role := normalizeRole(req.Role)

    ctx := c.Request().Context()
    uid, err := h.Users.Create(ctx, req.Email, req.Password, req.FirstName, req.LastName, role, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return c.JSON(http.StatusConflict, echo.Map{"message": "email already exists"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    u, err := h.Users.GetByID(ctx, uid)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "load user failed"})
    }
    return c.JSON(http.StatusCreated, toUserResp(u))
}

// Update handles PUT /v1/users/:id. Only SuperAdmin may update users.
func (h *UserHandler) Update(c echo.Context) error {
    if !policy.Allows(getRole(c), policy.ActionUserManage, false) {
        return c.JSON(http.StatusForbidden, echo.Map{"message": "Only SuperAdmin can update users"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
    }
    var req upsertUserReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }

    ctx := c.Request().Context()
    u, err := h.Users.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    if req.Email != "" {
        u.Email = req.Email
    }
    if req.FirstName != "" {
        u.FirstName = req.FirstName
    }
    if req.LastName != "" {
        u.LastName = req.LastName
    }
    if req.Role != "" {
        u.Role = normalizeRole(req.Role)
    }
    if req.IsActive != nil {
        u.IsActive = *req.IsActive
    }
    if err := h.Users.Update(ctx, u); err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return c.JSON(http.StatusConflict, echo.Map{"message": "email already exists"})
        }
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    u, err = h.Users.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"message": "load user failed"})
    }
    return c.JSON(http.StatusOK, toUserResp(u))
}

// Delete handles DELETE /v1/users/:id. Only SuperAdmin may delete
// users; the user's refresh tokens are revoked alongside.
func (h *UserHandler) Delete(c echo.Context) error {
    if !policy.Allows(getRole(c), policy.ActionUserManage, false) {
        return c.JSON(http.StatusForbidden, echo.Map{"message": "Only SuperAdmin can delete users"})
    }
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
    }
    ctx := c.Request().Context()
    _ = h.Tokens.RevokeAllForUser(ctx, id)
    if err := h.Users.Delete(ctx, id); err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

// ChangePassword handles PATCH /v1/users/:id/password. The current
// password must verify, which restricts the operation to the account
// owner in practice.
func (h *UserHandler) ChangePassword(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid user id"})
    }
    var req changePasswordReq
    if err := c.Bind(&req); err != nil || req.NewPassword == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "currentPassword/newPassword required"})
    }

    ctx := c.Request().Context()
    u, err := h.Users.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "current password is incorrect"})
    }
    if err := h.Users.UpdatePassword(ctx, id, req.NewPassword, h.Cfg.BcryptCost); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "Password changed successfully"})
}
