// Package loader reads template definitions from JSON or YAML files and
// ships the built-in Thai contractor templates.
package loader
