package propagate

import (
	"github.com/LeJawa/dev-tools/internal/model"
)

// Chooser picks one of the picker options. ok is false when the user
// dismissed the picker.
type Chooser func(options []string) (choice string, ok bool, err error)

// Request describes one copy-to-dependents run.
type Request struct {
	// Workspace is the package root holding package.json and the files.
	Workspace string

	// Config is the loaded copy-config.
	Config model.CopyConfig

	// Choose selects the targets. It receives AllOption followed by the
	// target labels.
	Choose Chooser

	// OnCopy, when set, is called after each file is copied.
	OnCopy func(Copy)
}

// Report summarises a run.
type Report struct {
	Prefix    string   `json:"prefix"`
	Targets   []Target `json:"targets"`
	Copies    []Copy   `json:"copies"`
	Cancelled bool     `json:"cancelled"`
}

// CopyToDependents runs the propagation flow: read the manifest, list the
// targets, let the caller choose, expand the globs, plan and copy.
//
// A dismissed picker ends the run without error and with Cancelled set.
func CopyToDependents(req Request) (Report, error) {
	manifest, err := ReadManifest(req.Workspace)
	if err != nil {
		return Report{}, err
	}
	report := Report{Prefix: DependencyPrefix(manifest)}

	targets, err := ResolveTargets(req.Workspace, req.Config.Dependents)
	if err != nil {
		return report, err
	}

	choice, ok, err := req.Choose(Options(targets))
	if err != nil {
		return report, err
	}
	if !ok {
		report.Cancelled = true
		return report, nil
	}

	report.Targets, err = SelectTargets(targets, choice)
	if err != nil {
		return report, err
	}

	files, err := ExpandFiles(req.Workspace, req.Config.FilesToCopy)
	if err != nil {
		return report, err
	}

	plan, err := BuildPlan(req.Workspace, report.Prefix, report.Targets, files)
	if err != nil {
		return report, err
	}

	err = plan.Execute(func(c Copy) {
		report.Copies = append(report.Copies, c)
		if req.OnCopy != nil {
			req.OnCopy(c)
		}
	})
	return report, err
}

// CopyFromDependencies is the reverse direction. It is declared so the
// command exists but is not implemented.
func CopyFromDependencies() error {
	return model.NewCLIError(model.ExitGeneralError, "undefined command")
}
