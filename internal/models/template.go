// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// TemplateFileExt is the extension of published template files.
const TemplateFileExt = ".pmx"

// Template is a saved application template. Source holds the YAML document
// that was published to the template's repository.
type Template struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Keywords      string    `json:"keywords"`
	Type          string    `json:"type"`
	Documentation string    `json:"documentation"`
	Icon          string    `json:"icon"`
	Repo          string    `json:"repo"`
	FileName      string    `json:"file_name"`
	AppID         string    `json:"app_id"`
	Source        string    `json:"source"`
	CreatedAt     time.Time `json:"created_at"`
}

// KeywordList splits the comma-separated keywords, dropping blanks.
func (t *Template) KeywordList() []string {
	var out []string
	for _, k := range strings.Split(t.Keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// TemplateFile is the YAML document published for a template.
type TemplateFile struct {
	Name          string          `yaml:"name"`
	Description   string          `yaml:"description,omitempty"`
	Keywords      string          `yaml:"keywords,omitempty"`
	Type          string          `yaml:"type,omitempty"`
	Icon          string          `yaml:"icon,omitempty"`
	Documentation string          `yaml:"documentation,omitempty"`
	Images        []TemplateImage `yaml:"images"`
}

// TemplateImage describes one service image inside a TemplateFile.
type TemplateImage struct {
	Name        string   `yaml:"name"`
	Source      string   `yaml:"source"`
	Command     string   `yaml:"command,omitempty"`
	Ports       []Port   `yaml:"ports,omitempty"`
	Environment []EnvVar `yaml:"environment,omitempty"`
}

// ImagesFromServices converts an app's services into template images.
func ImagesFromServices(services []Service) []TemplateImage {
	images := make([]TemplateImage, 0, len(services))
	for _, s := range services {
		images = append(images, TemplateImage{
			Name:        s.Name,
			Source:      s.Source,
			Command:     s.Command,
			Ports:       s.Ports,
			Environment: s.Environment,
		})
	}
	return images
}
