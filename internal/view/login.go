package view

import "github.com/a-h/templ"

type loginData struct {
	Email string
	Error string
}

var loginTmpl = page(loginHTML)

// Login renders the employee login form. A non-empty errMsg is shown above it.
func Login(email, errMsg string) templ.Component {
	return component(loginTmpl, "layout", layoutData{
		Title: "Connexion",
		Data:  loginData{Email: email, Error: errMsg},
	})
}

const loginHTML = `{{define "content"}}
<div class="login-page">
  <h2>Employé</h2>
  {{if .Error}}<div class="alert alert-danger" role="alert" data-testid="login-error">{{.Error}}</div>{{end}}
  <form data-testid="form-employee" method="post" action="/login">
    <label for="employee-email-input">Votre email</label>
    <input type="email" name="email" data-testid="employee-email-input" value="{{.Email}}" placeholder="johndoe@email.com" required>
    <label for="employee-password-input">Mot de passe</label>
    <input type="password" name="password" data-testid="employee-password-input" placeholder="******" required>
    <button type="submit" class="btn btn-primary" data-testid="employee-login-button">Se connecter</button>
  </form>
</div>
{{end}}`
