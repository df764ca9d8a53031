package store

import "embed"

//go:embed sql/*
var schemaFS embed.FS

func schema(name string) (string, error) {
	b, err := schemaFS.ReadFile("sql/" + name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
