package config

import "strings"

// applyDefaults normalizes whitespace around task fields.
func applyDefaults(cat *Catalog) {
	for i := range cat.Tasks {
		cat.Tasks[i].Command = strings.TrimSpace(cat.Tasks[i].Command)
		cat.Tasks[i].Description = strings.TrimSpace(cat.Tasks[i].Description)
	}
}
