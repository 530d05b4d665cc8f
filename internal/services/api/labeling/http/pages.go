package http

import (
	"bytes"
	"embed"
	"html/template"
	stdhttp "net/http"
	"strconv"

	"labelit/internal/modkit/httpkit"
	perr "labelit/internal/platform/errors"
	"labelit/internal/platform/logger"
	"labelit/internal/platform/net/http/bind"
	"labelit/internal/services/api/labeling/domain"
	svc "labelit/internal/services/api/labeling/service"
)

// Title is the page title
const Title = "Easy labelling"

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.New("labelit").Funcs(template.FuncMap{
	"rows": func(lines []string) int { return max(len(lines), 4) },
}).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Title string
	Error string
	View  domain.SessionView
}

// RegisterPages mounts the annotator pages on the given router
func RegisterPages(r httpkit.Router, s svc.Service) {
	p := &pages{svc: s}

	r.Get("/", p.index)
	r.Post("/submit", p.submit)
	r.Post("/done", p.done)
	r.Get("/export/"+svc.CSVName, p.export(svc.CSVName))
	r.Get("/export/"+svc.DBName, p.export(svc.DBName))
}

type pages struct{ svc svc.Service }

func (p *pages) index(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	v, err := p.svc.Session(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.render(w, r, stdhttp.StatusOK, v, "")
}

func (p *pages) submit(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := submitForm(r)
	if err != nil {
		p.renderCurrent(w, r, err)
		return
	}
	if v, err := p.svc.Submit(r.Context(), in); err != nil {
		p.render(w, r, perr.HTTPStatus(err), v, perr.WireFrom(err).Message)
		return
	}
	stdhttp.Redirect(w, r, "/", stdhttp.StatusSeeOther)
}

func (p *pages) done(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if v, err := p.svc.Done(r.Context()); err != nil {
		p.render(w, r, perr.HTTPStatus(err), v, perr.WireFrom(err).Message)
		return
	}
	stdhttp.Redirect(w, r, "/", stdhttp.StatusSeeOther)
}

func (p *pages) export(name string) func(stdhttp.ResponseWriter, *stdhttp.Request) {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		a, err := p.svc.Artifact(r.Context(), name)
		if err != nil {
			p.fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", a.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+a.Name+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
		w.WriteHeader(stdhttp.StatusOK)
		_, _ = w.Write(a.Data)
	}
}

// submitForm reads item and the repeated label fields
func submitForm(r *stdhttp.Request) (domain.SubmitInput, error) {
	if err := r.ParseForm(); err != nil {
		return domain.SubmitInput{}, perr.WithField(perr.InvalidArgf("malformed form: %v", err), "form")
	}
	item, err := strconv.Atoi(r.PostForm.Get("item"))
	if err != nil {
		return domain.SubmitInput{}, perr.WithField(perr.InvalidArgf("item must be an integer"), "item")
	}
	in := domain.SubmitInput{Item: item, Labels: r.PostForm["label"]}
	if err := bind.Validate(in); err != nil {
		return domain.SubmitInput{}, err
	}
	return in, nil
}

// renderCurrent shows the current page with err on top
func (p *pages) renderCurrent(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	v, verr := p.svc.Session(r.Context())
	if verr != nil {
		p.fail(w, r, verr)
		return
	}
	p.render(w, r, perr.HTTPStatus(err), v, perr.WireFrom(err).Message)
}

func (p *pages) render(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, v domain.SessionView, msg string) {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, "page", pageData{Title: Title, Error: msg, View: v}); err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("render page")
		stdhttp.Error(w, "render failed", stdhttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// fail writes a plain error page with the mapped status
func (p *pages) fail(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	if status >= 500 {
		logger.C(r.Context()).Error().Err(err).Msg("page failed")
	}
	stdhttp.Error(w, perr.WireFrom(err).Message, status)
}
