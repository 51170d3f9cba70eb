package handlers

import (
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
)

// The UI is two small server-rendered pages: a login form and the tool
// launcher with both upload forms. Everything interesting happens in the
// report downloads.

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Cost Reports - Login</title></head>
<body>
  <h1>Cost Reports</h1>
  {{if .Error}}<p style="color:red">{{.Error}}</p>{{end}}
  <form method="post" action="/login">
    <label>Username <input type="text" name="username"></label><br>
    <label>Password <input type="password" name="password"></label><br>
    <button type="submit">Log in</button>
  </form>
</body>
</html>`))

var homeTmpl = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head><title>Cost Reports</title></head>
<body>
  <h1>Cost Reports</h1>
  <p><a href="/logout">Log out</a></p>

  <h2>Cost Summary Report</h2>
  <form method="post" action="/tool1" enctype="multipart/form-data">
    <label>Spreadsheet <input type="file" name="excel_file" accept=".xlsx,.xls"></label><br>
    <label>As of date <input type="date" name="as_of_date"></label><br>
    <label>Format
      <select name="format">
        <option value="pdf">PDF</option>
        <option value="excel">Excel</option>
      </select>
    </label><br>
    <button type="submit">Generate</button>
  </form>

  <h2>Cost Details Report</h2>
  <form method="post" action="/tool2" enctype="multipart/form-data">
    <label>Spreadsheet <input type="file" name="excel_file" accept=".xlsx,.xls"></label><br>
    <label>From <input type="date" name="date_from"></label>
    <label>Till <input type="date" name="date_till"></label><br>
    <label>Cost code <input type="text" name="cost_code"></label><br>
    <button type="submit">Generate</button>
  </form>
</body>
</html>`))

func writeLoginPage(w http.ResponseWriter, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginTmpl.Execute(w, struct{ Error string }{errMsg}); err != nil {
		logrus.WithError(err).Error("render login page")
	}
}

// HandleHome serves the tool launcher.
func HandleHome() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := homeTmpl.Execute(w, nil); err != nil {
			logrus.WithError(err).Error("render home page")
		}
	}
}
