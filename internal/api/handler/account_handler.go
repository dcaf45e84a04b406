package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/view"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

const (
	accountHome = "/account/"

	recentActivityLimit = 5

	credentialsNotice    = "Please check your credentials and try again."
	registerFailedNotice = "Sorry, the registration failed."
	registerErrorNotice  = "Sorry, there was an error processing the registration."
	updateFailedNotice   = "Sorry, the account update failed."
	passwordFailedNotice = "Sorry, the password change failed."
	notOwnAccountNotice  = "You are not authorized to update this account."
	accountMissingNotice = "Account not found."
)

// AccountHandler serves the /account pages.
type AccountHandler struct {
	accounts  ports.AccountService
	reviews   ports.ReviewService
	activity  ports.ActivityRecorder
	history   ports.ActivityHistory
	validator *FormValidator
	cookie    middleware.TokenCookie
	log       zerolog.Logger
}

func NewAccountHandler(
	accounts ports.AccountService,
	reviews ports.ReviewService,
	activity ports.ActivityRecorder,
	history ports.ActivityHistory,
	validator *FormValidator,
	cookie middleware.TokenCookie,
	log zerolog.Logger,
) *AccountHandler {
	return &AccountHandler{
		accounts:  accounts,
		reviews:   reviews,
		activity:  activity,
		history:   history,
		validator: validator,
		cookie:    cookie,
		log:       log,
	}
}

// --- Validation chains ---

func (h *AccountHandler) RegisterRules() echo.MiddlewareFunc {
	return Validate[registerForm](h.validator, "register", h.registerInvalid)
}

func (h *AccountHandler) LoginRules() echo.MiddlewareFunc {
	return Validate[loginForm](h.validator, "login", h.loginInvalid)
}

func (h *AccountHandler) UpdateRules() echo.MiddlewareFunc {
	return Validate[updateAccountForm](h.validator, "update_account", h.updateInvalid)
}

func (h *AccountHandler) PasswordRules() echo.MiddlewareFunc {
	return Validate[changePasswordForm](h.validator, "change_password", h.passwordInvalid)
}

// --- Views ---

// LoginView handles GET /account/login.
func (h *AccountHandler) LoginView(c echo.Context) error {
	return h.renderLogin(c, http.StatusOK, "", nil)
}

// RegisterView handles GET /account/register.
func (h *AccountHandler) RegisterView(c echo.Context) error {
	return h.renderRegister(c, http.StatusOK, nil, nil)
}

// Management handles GET /account/.
func (h *AccountHandler) Management(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	reviews, err := h.reviews.ForAccount(ctx, claims.AccountID)
	if err != nil {
		return fmt.Errorf("list account reviews: %w", err)
	}

	// The audit trail is optional; the page renders without it.
	recent, err := h.history.Recent(ctx, claims.AccountID, recentActivityLimit)
	if err != nil {
		h.log.Warn().Err(err).Uint("account_id", claims.AccountID).Msg("load recent activity")
		recent = nil
	}

	return c.Render(http.StatusOK, "account/management", &view.Page{
		Title: "Account Management",
		Data:  managementData{Reviews: reviews, Activity: recent},
	})
}

type managementData struct {
	Reviews  []domain.ReviewDetail
	Activity []domain.Activity
}

// UpdateView handles GET /account/update/:account_id. Only the logged-in
// account may open its own form.
func (h *AccountHandler) UpdateView(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, ok := pathID(c, "account_id")
	if !ok || id != claims.AccountID {
		middleware.AddNotice(c, notOwnAccountNotice)
		return c.Redirect(http.StatusSeeOther, accountHome)
	}

	account, err := h.accounts.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			middleware.AddNotice(c, accountMissingNotice)
			return c.Redirect(http.StatusSeeOther, accountHome)
		}
		return fmt.Errorf("load account: %w", err)
	}

	return h.renderUpdate(c, http.StatusOK, &updateAccountForm{
		ID:        account.ID,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
	}, nil)
}

// --- Actions ---

// Register handles POST /account/register.
func (h *AccountHandler) Register(c echo.Context) error {
	f := formFrom[*registerForm](c)
	role, _ := domain.ParseRole(f.Type)

	account, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Password:  f.Password,
		Type:      role,
	})
	f.Password = ""
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error", string(role)).Inc()
		switch {
		case errors.Is(err, domain.ErrEmailExists):
			return h.renderRegister(c, http.StatusBadRequest, f, domain.ValidationErrors{
				{Field: "account_email", Message: emailExistsMessage},
			})
		case errors.Is(err, domain.ErrPasswordHash):
			h.log.Error().Err(err).Msg("registration hash failed")
			middleware.AddNotice(c, registerErrorNotice)
			return h.renderRegister(c, http.StatusInternalServerError, f, nil)
		default:
			h.log.Error().Err(err).Msg("registration failed")
			middleware.AddNotice(c, registerFailedNotice)
			return h.renderRegister(c, http.StatusNotImplemented, f, nil)
		}
	}

	metrics.RegistrationsTotal.WithLabelValues("success", string(account.Type)).Inc()
	h.activity.Record(activityFor(c, domain.ActivityRegister, account.ID, account.Email))

	middleware.AddNotice(c, fmt.Sprintf(
		"Congratulations, %s! You're registered as a %s. Please log in.", account.FirstName, account.Type))
	return h.renderLogin(c, http.StatusCreated, account.Email, nil)
}

// Login handles POST /account/login. Every failure shows the same notice.
func (h *AccountHandler) Login(c echo.Context) error {
	f := formFrom[*loginForm](c)

	result, err := h.accounts.Login(c.Request().Context(), f.Email, f.Password)
	if err != nil {
		outcome := "invalid"
		switch {
		case errors.Is(err, domain.ErrTooManyAttempts):
			outcome = "throttled"
		case !errors.Is(err, domain.ErrInvalidCredentials):
			outcome = "error"
			h.log.Error().Err(err).Msg("login failed")
		}
		metrics.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
		h.activity.Record(activityFor(c, domain.ActivityLoginFailed, 0, f.Email))

		middleware.AddNotice(c, credentialsNotice)
		return h.renderLogin(c, http.StatusBadRequest, f.Email, nil)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.activity.Record(activityFor(c, domain.ActivityLogin, result.Account.ID, result.Account.Email))

	h.cookie.Set(c, result.Token)
	middleware.AddNotice(c, "You have successfully logged in.")
	return c.Redirect(http.StatusSeeOther, accountHome)
}

// UpdateAccount handles POST /account/update-account. The token is
// re-issued so the cookie never carries the old name or email.
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	f := formFrom[*updateAccountForm](c)
	if f.ID != claims.AccountID {
		middleware.AddNotice(c, notOwnAccountNotice)
		return c.Redirect(http.StatusSeeOther, accountHome)
	}

	result, err := h.accounts.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		ID:        f.ID,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return h.renderUpdate(c, http.StatusBadRequest, f, domain.ValidationErrors{
				{Field: "account_email", Message: emailExistsMessage},
			})
		}
		h.log.Error().Err(err).Uint("account_id", f.ID).Msg("account update failed")
		middleware.AddNotice(c, updateFailedNotice)
		return h.renderUpdate(c, http.StatusNotImplemented, f, nil)
	}

	updated := domain.ClaimsFor(result.Account)
	h.cookie.Set(c, result.Token)
	middleware.SetIdentity(c, &updated)
	h.activity.Record(activityFor(c, domain.ActivityProfileUpdate, updated.AccountID, updated.Email))

	middleware.AddNotice(c, fmt.Sprintf("Account information for %s updated successfully.", updated.FirstName))
	return c.Redirect(http.StatusSeeOther, accountHome)
}

// ChangePassword handles POST /account/change-password. The session token
// is kept since its claims are unchanged.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	f := formFrom[*changePasswordForm](c)
	if f.ID != claims.AccountID {
		middleware.AddNotice(c, notOwnAccountNotice)
		return c.Redirect(http.StatusSeeOther, accountHome)
	}

	if err := h.accounts.ChangePassword(c.Request().Context(), f.ID, f.Password); err != nil {
		h.log.Error().Err(err).Uint("account_id", f.ID).Msg("password change failed")
		middleware.AddNotice(c, passwordFailedNotice)
		return c.Redirect(http.StatusSeeOther, updatePath(f.ID))
	}

	h.activity.Record(activityFor(c, domain.ActivityPasswordChange, claims.AccountID, claims.Email))
	middleware.AddNotice(c, "Password updated successfully.")
	return c.Redirect(http.StatusSeeOther, accountHome)
}

// Logout handles GET /account/logout. It succeeds with or without a session.
func (h *AccountHandler) Logout(c echo.Context) error {
	if claims, ok := middleware.Identity(c); ok {
		h.activity.Record(activityFor(c, domain.ActivityLogout, claims.AccountID, claims.Email))
	}
	h.cookie.Clear(c)
	middleware.AddNotice(c, "You have successfully logged out.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// --- Validation failures ---

func (h *AccountHandler) registerInvalid(c echo.Context, f *registerForm, errs domain.ValidationErrors) error {
	f.Password = ""
	return h.renderRegister(c, http.StatusBadRequest, f, errs)
}

func (h *AccountHandler) loginInvalid(c echo.Context, f *loginForm, errs domain.ValidationErrors) error {
	return h.renderLogin(c, http.StatusBadRequest, f.Email, errs)
}

func (h *AccountHandler) updateInvalid(c echo.Context, f *updateAccountForm, errs domain.ValidationErrors) error {
	return h.renderUpdate(c, http.StatusBadRequest, f, errs)
}

// passwordInvalid turns each failure into a notice and sends the caller
// back to the update page; the password is never re-rendered.
func (h *AccountHandler) passwordInvalid(c echo.Context, f *changePasswordForm, errs domain.ValidationErrors) error {
	for _, msg := range errs.Messages() {
		middleware.AddNotice(c, msg)
	}
	if f.ID == 0 {
		return c.Redirect(http.StatusSeeOther, accountHome)
	}
	return c.Redirect(http.StatusSeeOther, updatePath(f.ID))
}

// --- Rendering ---

func (h *AccountHandler) renderLogin(c echo.Context, code int, email string, errs domain.ValidationErrors) error {
	return c.Render(code, "account/login", &view.Page{
		Title:  "Login",
		Errors: errs,
		Form:   &loginForm{Email: email},
	})
}

func (h *AccountHandler) renderRegister(c echo.Context, code int, f *registerForm, errs domain.ValidationErrors) error {
	page := &view.Page{Title: "Register", Errors: errs, Data: domain.Roles}
	if f != nil {
		page.Form = f
	}
	return c.Render(code, "account/register", page)
}

func (h *AccountHandler) renderUpdate(c echo.Context, code int, f *updateAccountForm, errs domain.ValidationErrors) error {
	return c.Render(code, "account/update", &view.Page{
		Title:  "Edit Account",
		Errors: errs,
		Form:   f,
	})
}

func updatePath(id uint) string {
	return fmt.Sprintf("/account/update/%d", id)
}
