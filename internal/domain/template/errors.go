package template

import "errors"

var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrCriterionNotFound = errors.New("criterion not found")

	// Last-item refusals: a deployment keeps at least one template and a
	// template keeps at least one criterion.
	ErrLastTemplate  = errors.New("cannot delete the last remaining template")
	ErrLastCriterion = errors.New("cannot delete the last criterion of a template")
)
