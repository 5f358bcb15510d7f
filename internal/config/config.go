package config

import "fstree/internal/domain"

type Config struct {
	Theme    string          `json:"theme"`
	SortMode domain.SortMode `json:"sortMode"`
	LogLevel string          `json:"logLevel"`
	Color    bool            `json:"color"`
}

type fileConfig struct {
	Theme    *string `json:"theme"`
	SortMode *string `json:"sortMode"`
	LogLevel *string `json:"logLevel"`
	Color    *bool   `json:"color"`
}
