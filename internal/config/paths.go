package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".agendai"

// Paths holds resolved filesystem paths for Agendai data.
type Paths struct {
	Base   string // ~/.agendai
	Config string // ~/.agendai/config.yaml
	Data   string // ~/.agendai/data
	Agenda string // ~/.agendai/data/agenda.json
	DB     string // ~/.agendai/data/agendai.db
}

// ResolvePaths computes all standard paths from the home directory.
// If AGENDAI_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("AGENDAI_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
		Data:   filepath.Join(base, "data"),
		Agenda: filepath.Join(base, "data", "agenda.json"),
		DB:     filepath.Join(base, "data", "agendai.db"),
	}, nil
}

// EnsureDirs creates the standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.Base, p.Data} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}
