package renamer

import (
	"dropdate/internal/model"
	"fmt"
	"strings"
	"time"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
)

const dateLayout = "2006_01_02"

// IsConventional reports whether name already looks date-prefixed. It only
// checks for a leading "20" and a minimum length, so "2048_game.zip" counts
// as renamed.
func IsConventional(name string) bool {
	return strings.HasPrefix(name, "20") && len(name) >= 13
}

// TargetName returns "{date}_{name}", or the first "{date}_{n}_{name}" with
// n >= 1 that is not in taken.
func TargetName(name string, modified time.Time, taken map[string]struct{}) string {
	date := modified.UTC().Format(dateLayout)

	candidate := fmt.Sprintf("%s_%s", date, name)
	for n := 1; ; n++ {
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d_%s", date, n, name)
	}
}

// BuildPlan decides what to do with every entry of one listing. Collisions
// are checked against the file names of the listing only; targets chosen
// earlier in the same plan are not added to the set.
func BuildPlan(folder string, entries []files.IsMetadata) model.Plan {
	taken := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if f, ok := entry.(*files.FileMetadata); ok {
			taken[f.Name] = struct{}{}
		}
	}

	plan := model.Plan{Folder: folder}
	for _, entry := range entries {
		switch e := entry.(type) {
		case *files.FileMetadata:
			if IsConventional(e.Name) {
				plan.Steps = append(plan.Steps, model.Step{
					Kind: model.StepSkip,
					Name: e.Name,
					Path: e.PathLower,
				})
				continue
			}

			plan.Steps = append(plan.Steps, model.Step{
				Kind:   model.StepRename,
				Name:   e.Name,
				Path:   e.PathLower,
				Target: TargetName(e.Name, e.ClientModified, taken),
			})

		case *files.FolderMetadata:
			plan.Steps = append(plan.Steps, model.Step{
				Kind: model.StepFolder,
				Name: e.Name,
				Path: e.PathLower,
			})
		}
	}

	return plan
}
