package config

import "github.com/incredibit/unc/internal/model"

// Catalog is the decoded task catalog.
type Catalog struct {
	Tasks []model.Task `yaml:"tasks"`
}
