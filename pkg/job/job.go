package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/adaptor/pkg/domain"
)

// Operation kinds accepted in job files.
const (
	KindPost          = "post"
	KindCreate        = "create"
	KindCreatePatient = "createPatient"
)

// Job is a parsed job file.
type Job struct {
	Name  string
	Steps []Step
}

// Step is one operation of a job. Exactly one of the kind-specific fields
// is set, matching Kind. Arguments have already had their placeholders
// converted to resolvers.
type Step struct {
	Kind          string
	Post          *PostArgs
	Create        *CreateArgs
	CreatePatient *CreatePatientArgs
}

// PostArgs are the arguments of a post step.
type PostArgs struct {
	URL     any `mapstructure:"url"`
	Body    any `mapstructure:"body"`
	Headers any `mapstructure:"headers"`
}

// CreateArgs are the arguments of a create step.
type CreateArgs struct {
	Path   any `mapstructure:"path"`
	Params any `mapstructure:"params"`
}

// CreatePatientArgs are the arguments of a createPatient step.
type CreatePatientArgs struct {
	Params any `mapstructure:"params"`
}

type file struct {
	Name       string           `mapstructure:"name"`
	Operations []map[string]any `mapstructure:"operations"`
}

// Load reads a job file. The format follows the extension: .json is JSON,
// anything else is YAML.
func Load(path string) (*Job, error) {
	raw, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	job, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", path, err)
	}
	if job.Name == "" {
		job.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return job, nil
}

// Parse builds a Job from a decoded document.
func Parse(doc map[string]any) (*Job, error) {
	var f file
	if err := mapstructure.Decode(doc, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	if len(f.Operations) == 0 {
		return nil, fmt.Errorf("%w: no operations", ErrInvalidJob)
	}

	job := &Job{Name: f.Name, Steps: make([]Step, 0, len(f.Operations))}
	for i, entry := range f.Operations {
		step, err := parseStep(entry)
		if err != nil {
			return nil, &StepError{Index: i, Err: err}
		}
		job.Steps = append(job.Steps, step)
	}
	return job, nil
}

func parseStep(entry map[string]any) (Step, error) {
	if len(entry) != 1 {
		return Step{}, fmt.Errorf("%w: want exactly one operation, got %d keys", ErrInvalidJob, len(entry))
	}

	var kind string
	var args any
	for k, v := range entry {
		kind, args = k, v
	}
	if args == nil {
		args = map[string]any{}
	}
	args, err := convertPlaceholders(args)
	if err != nil {
		return Step{}, err
	}

	step := Step{Kind: kind}
	switch kind {
	case KindPost:
		step.Post = &PostArgs{}
		err = decodeArgs(args, step.Post)
		if err == nil && step.Post.URL == nil {
			err = fmt.Errorf("%w: post requires url", ErrInvalidJob)
		}
	case KindCreate:
		step.Create = &CreateArgs{}
		err = decodeArgs(args, step.Create)
		if err == nil && step.Create.Path == nil {
			err = fmt.Errorf("%w: create requires path", ErrInvalidJob)
		}
	case KindCreatePatient:
		step.CreatePatient = &CreatePatientArgs{}
		err = decodeArgs(args, step.CreatePatient)
	default:
		return Step{}, fmt.Errorf("%w: %q", ErrUnknownOperation, kind)
	}
	if err != nil {
		return Step{}, err
	}
	return step, nil
}

func decodeArgs(args any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJob, err)
	}
	return nil
}

// LoadState reads an initial state file (YAML or JSON by extension).
func LoadState(path string) (*domain.State, error) {
	raw, err := readDocument(path)
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON so unknown keys land in Extras.
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("state %s: %w", path, err)
	}
	state := &domain.State{}
	if err := json.Unmarshal(b, state); err != nil {
		return nil, fmt.Errorf("state %s: %w", path, err)
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("state %s: %w", path, err)
	}
	return state, nil
}

func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}
