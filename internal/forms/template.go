// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forms holds the form objects behind the HTML forms. A form
// collects submitted values, validates them and hands the result to a
// Destination; problems are reported through the form's Errors.
package forms

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"templar/internal/models"
	"templar/internal/slug"
)

// Validation limits for template fields.
const (
	maxNameLen          = 200
	maxDescriptionLen   = 1_000
	maxDocumentationLen = 100_000
)

// fieldPrefix is the name of the form in submitted parameters:
// template_form[name], template_form[repo], ...
const fieldPrefix = "template_form"

// Destination persists a validated template.
type Destination interface {
	SaveTemplate(ctx context.Context, t *models.Template, user *models.User) (*models.Template, error)
}

// TemplateForm is the form object for creating a template.
type TemplateForm struct {
	Name          string
	Description   string
	Keywords      string
	Type          string
	Documentation string
	Icon          string
	Repo          string
	FileName      string
	AppID         string

	// Context for rendering; not submitted.
	User  *models.User
	Types []models.Type
	App   *models.App

	Errors []string

	saved *models.Template
}

// NewTemplateForm builds the blank form shown on the "new template" page.
// When app is given the form is pre-filled from it.
func NewTemplateForm(types []models.Type, user *models.User, app *models.App) *TemplateForm {
	f := &TemplateForm{Types: types, User: user, App: app}
	if app != nil {
		f.AppID = strconv.Itoa(app.ID)
		f.Name = app.Name
		f.Documentation = app.Documentation
	}
	return f
}

// TemplateFormFromValues builds the form from submitted parameters.
// Missing fields are left empty.
func TemplateFormFromValues(values url.Values) *TemplateForm {
	get := func(field string) string {
		return strings.TrimSpace(values.Get(FieldName(field)))
	}
	return &TemplateForm{
		Name:          get("name"),
		Description:   get("description"),
		Keywords:      get("keywords"),
		Type:          get("type"),
		Documentation: get("documentation"),
		Icon:          get("icon"),
		Repo:          get("repo"),
		FileName:      get("file_name"),
		AppID:         get("app_id"),
	}
}

// FieldName returns the submitted parameter name for field.
func FieldName(field string) string {
	return fieldPrefix + "[" + field + "]"
}

// Validate checks the form and fills Errors. It also defaults FileName
// from Name. It reports whether the form is valid.
func (f *TemplateForm) Validate() bool {
	f.Errors = nil

	if f.Name == "" {
		f.addError("Name is required.")
	} else if utf8.RuneCountInString(f.Name) > maxNameLen {
		f.addError("Name is too long (max 200 characters).")
	}

	if f.Repo == "" {
		f.addError("Repository is required.")
	} else if !validRepo(f.Repo) {
		f.addError("Repository must be in the form owner/name.")
	}

	if f.AppID == "" {
		f.addError("Application is required.")
	}

	if utf8.RuneCountInString(f.Description) > maxDescriptionLen {
		f.addError("Description is too long (max 1,000 characters).")
	}
	if utf8.RuneCountInString(f.Documentation) > maxDocumentationLen {
		f.addError("Documentation is too long (max 100,000 characters).")
	}

	if f.FileName == "" && f.Name != "" {
		f.FileName = slug.FileName(f.Name, models.TemplateFileExt)
	}
	if f.FileName != "" && !strings.HasSuffix(f.FileName, models.TemplateFileExt) {
		f.addError("File name must end in " + models.TemplateFileExt + ".")
	}
	if strings.Contains(f.FileName, "..") || strings.HasPrefix(f.FileName, "/") {
		f.addError("File name must be a relative path.")
	}

	return len(f.Errors) == 0
}

// Template builds the record described by the form, including the YAML
// document that gets published.
func (f *TemplateForm) Template() (*models.Template, error) {
	doc := models.TemplateFile{
		Name:          f.Name,
		Description:   f.Description,
		Keywords:      f.Keywords,
		Type:          f.Type,
		Icon:          f.Icon,
		Documentation: f.Documentation,
		Images:        []models.TemplateImage{},
	}
	if f.App != nil {
		doc.Images = models.ImagesFromServices(f.App.Services)
	}

	src, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode template file: %w", err)
	}

	return &models.Template{
		Name:          f.Name,
		Description:   f.Description,
		Keywords:      f.Keywords,
		Type:          f.Type,
		Documentation: f.Documentation,
		Icon:          f.Icon,
		Repo:          f.Repo,
		FileName:      f.FileName,
		AppID:         f.AppID,
		Source:        string(src),
	}, nil
}

// Save validates the form and passes the template to dst. Any failure is
// recorded in Errors and Save returns false.
func (f *TemplateForm) Save(ctx context.Context, dst Destination, user *models.User) bool {
	if !f.Validate() {
		return false
	}

	t, err := f.Template()
	if err != nil {
		slog.Error("build template", "error", err)
		f.addError("Template could not be built.")
		return false
	}

	saved, err := dst.SaveTemplate(ctx, t, user)
	if err != nil {
		slog.Warn("save template", "name", f.Name, "repo", f.Repo, "error", err)
		f.addError(saveErrorMessage(err))
		return false
	}

	f.saved = saved
	return true
}

// Saved returns the template stored by the last successful Save.
func (f *TemplateForm) Saved() *models.Template {
	return f.saved
}

func (f *TemplateForm) addError(msg string) {
	f.Errors = append(f.Errors, msg)
}

// validRepo reports whether s looks like "owner/name".
func validRepo(s string) bool {
	owner, name, ok := strings.Cut(s, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return false
	}
	return !strings.ContainsAny(s, " \t")
}
