package httpx

import (
	"net/http"

	"github.com/homelib/homelib-api/internal/domain/model"
)

// setSessionCookie stores the access token in the browser session cookie.
// MaxAge mirrors the token lifetime so the cookie and token expire together.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   SessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the browser session cookie.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// credentialsFromForm builds Credentials from a posted login/register form.
func credentialsFromForm(r *http.Request) model.Credentials {
	return model.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
}

// LoginForm renders the login page. Signed-in users go straight to their books.
func (h *UIHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetIdentityFromContext(r.Context()); ok {
		http.Redirect(w, r, "/books", http.StatusSeeOther)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Sign In", CurrentPage: PageLogin}).Build()
	h.renderPage(w, http.StatusOK, "login", data)
}

// LoginSubmit processes the login form. Success sets the session cookie and
// redirects to the books list; failure re-renders the form with an error.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	creds := credentialsFromForm(r)

	token, err := h.Auth.Login(r.Context(), creds)
	if err != nil {
		fieldErrors, general := formErrorParts(err)
		data := NewTemplateData(r, PageMeta{Title: "Sign In", CurrentPage: PageLogin}).
			WithFieldErrors(fieldErrors).
			WithError(general).
			With("Username", creds.Username).
			Build()
		h.renderPage(w, formErrorStatus(err), "login", data)
		return
	}

	setSessionCookie(w, token.AccessToken)
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// RegisterForm renders the registration page.
func (h *UIHandlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetIdentityFromContext(r.Context()); ok {
		http.Redirect(w, r, "/books", http.StatusSeeOther)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Create Account", CurrentPage: PageRegister}).Build()
	h.renderPage(w, http.StatusOK, "register", data)
}

// RegisterSubmit processes the registration form. A new account is signed in
// immediately via the session cookie.
func (h *UIHandlers) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	creds := credentialsFromForm(r)

	token, err := h.Auth.Register(r.Context(), creds)
	if err != nil {
		fieldErrors, general := formErrorParts(err)
		data := NewTemplateData(r, PageMeta{Title: "Create Account", CurrentPage: PageRegister}).
			WithFieldErrors(fieldErrors).
			WithError(general).
			With("Username", creds.Username).
			Build()
		h.renderPage(w, formErrorStatus(err), "register", data)
		return
	}

	setSessionCookie(w, token.AccessToken)
	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// Logout clears the session cookie. Tokens are stateless so there is nothing
// to revoke server-side.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
