package model

type StepKind string

const (
	StepRename StepKind = "RENAME"
	StepSkip   StepKind = "SKIP"
	StepFolder StepKind = "FOLDER"
)

// Step is the decision taken for one listed entry. Path is the entry's
// lowercase Dropbox path; Target is only set for renames.
type Step struct {
	Kind   StepKind
	Name   string
	Path   string
	Target string
}

// Plan holds one step per listed entry, in listing order.
type Plan struct {
	Folder string
	Steps  []Step
}

func (p Plan) Renames() []Step {
	var out []Step
	for _, s := range p.Steps {
		if s.Kind == StepRename {
			out = append(out, s)
		}
	}

	return out
}

type RenameReport struct {
	Renamed int `json:"renamed"`
	Skipped int `json:"skipped"`
	Folders int `json:"folders"`
}

func (r RenameReport) Add(o RenameReport) RenameReport {
	return RenameReport{
		Renamed: r.Renamed + o.Renamed,
		Skipped: r.Skipped + o.Skipped,
		Folders: r.Folders + o.Folders,
	}
}
