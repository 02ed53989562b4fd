// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// App is an application record owned by the resource API. Templates are
// built from an app's services, and the template's documentation is written
// back to the app.
type App struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Documentation string    `json:"documentation"`
	Services      []Service `json:"services,omitempty"`
}

// Service is a single container in an app.
type Service struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"` // image reference, e.g. "wordpress:latest"
	Command     string   `json:"command,omitempty"`
	Ports       []Port   `json:"ports,omitempty"`
	Environment []EnvVar `json:"environment,omitempty"`
}

// Port maps a host port to a container port.
type Port struct {
	HostPort      string `json:"host_port,omitempty" yaml:"host_port,omitempty"`
	ContainerPort string `json:"container_port" yaml:"container_port"`
	Protocol      string `json:"proto,omitempty" yaml:"proto,omitempty"`
}

// EnvVar is an environment variable passed to a service.
type EnvVar struct {
	Variable string `json:"variable" yaml:"variable"`
	Value    string `json:"value" yaml:"value"`
}
