package job

import (
	"fmt"

	"github.com/aretw0/adaptor"
	"github.com/aretw0/adaptor/pkg/domain"
)

// Build turns the job's steps into operations bound to a. A nil a uses
// adaptor.Default().
func Build(job *Job, a *adaptor.Adaptor) ([]domain.Operation, error) {
	if job == nil {
		return nil, fmt.Errorf("%w: nil job", ErrInvalidJob)
	}
	if a == nil {
		a = adaptor.Default()
	}

	ops := make([]domain.Operation, 0, len(job.Steps))
	for i, step := range job.Steps {
		var op domain.Operation
		switch {
		case step.Kind == KindPost && step.Post != nil:
			op = a.Post(adaptor.PostParams{
				URL:     step.Post.URL,
				Body:    step.Post.Body,
				Headers: step.Post.Headers,
			})
		case step.Kind == KindCreate && step.Create != nil:
			op = a.Create(step.Create.Path, step.Create.Params, nil)
		case step.Kind == KindCreatePatient && step.CreatePatient != nil:
			op = a.CreatePatient(step.CreatePatient.Params, nil)
		default:
			return nil, &StepError{Index: i, Err: fmt.Errorf("%w: %q", ErrUnknownOperation, step.Kind)}
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Operation builds the job into a single operation run by adaptor.Execute.
func Operation(job *Job, a *adaptor.Adaptor) (domain.Operation, error) {
	ops, err := Build(job, a)
	if err != nil {
		return nil, err
	}
	return adaptor.Execute(ops...), nil
}
