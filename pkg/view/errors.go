package view

import "errors"

// Sentinel errors for the view package.
var (
	// ErrTemplateNotFound is returned when the template file does not exist.
	ErrTemplateNotFound = errors.New("view: template not found")

	// ErrTemplateParse is returned when a template file cannot be parsed.
	ErrTemplateParse = errors.New("view: template parse failed")

	// ErrRender is returned when executing a parsed template fails.
	ErrRender = errors.New("view: render failed")
)
