package rosterfile

import (
	"fmt"
	"io"
	"os"
	"wrestling-coach/internal/domain"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const Stdout = "-"

// File is a team or entrant pool as written by hand.
type File struct {
	Name      string             `yaml:"name"`
	Wrestlers []*domain.Wrestler `yaml:"wrestlers"`
}

func Read(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	for i, w := range f.Wrestlers {
		if w == nil {
			return nil, fmt.Errorf("wrestler %d is empty", i)
		}
		if w.Name == "" {
			return nil, fmt.Errorf("wrestler %d has no name", i)
		}
		if w.WeightClass == 0 && w.Weight == 0 {
			return nil, fmt.Errorf("wrestler %q has neither weight nor weight_class", w.Name)
		}
		if w.WeightClass != 0 && w.WeightClass.Index() < 0 {
			return nil, fmt.Errorf("wrestler %q: %d is not a weight class", w.Name, w.WeightClass)
		}
		if w.ID == "" {
			w.ID = uuid.NewString()
		}
		w.Normalize()
	}
	return &f, nil
}

func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Team builds a dual team. An unnamed file takes fallback as its name.
func (f *File) Team(fallback string) *domain.Team {
	name := f.Name
	if name == "" {
		name = fallback
	}
	return domain.NewTeam(name, f.Wrestlers)
}

func Encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding to YAML failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding to YAML failed on close: %w", err)
	}
	return nil
}

// Write encodes v to path, or to stdout when path is "-" or empty.
func Write(path string, v any) error {
	if path == "" || path == Stdout {
		return Encode(os.Stdout, v)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
