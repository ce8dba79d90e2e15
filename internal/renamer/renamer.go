package renamer

import (
	"dropdate/internal/logger"
	"dropdate/internal/metrics"
	"dropdate/internal/model"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"go.uber.org/zap"
)

type Renamer struct {
	folderPath string
}

func New(folderPath string) *Renamer {
	return &Renamer{folderPath: normalizePath(folderPath)}
}

// Run lists the folder once and applies the resulting plan. The first
// failing Dropbox call ends the pass; moves already made are kept.
func (r *Renamer) Run(client files.Client) (model.RenameReport, error) {
	var report model.RenameReport

	logger.Log.Info("listing dropbox folder",
		zap.String("folder", r.folderPath))

	resp, err := client.ListFolder(files.NewListFolderArg(listPath(r.folderPath)))
	if err != nil {
		return report, fmt.Errorf("failed to list folder %s: %w", r.folderPath, err)
	}

	plan := BuildPlan(r.folderPath, resp.Entries)
	logger.Log.Info("rename plan ready",
		zap.String("folder", plan.Folder),
		zap.Int("entries", len(plan.Steps)),
		zap.Int("renames", len(plan.Renames())))

	for _, step := range plan.Steps {
		switch step.Kind {
		case model.StepRename:
			if err := r.move(client, step); err != nil {
				return report, err
			}

			report.Renamed++
			metrics.RecordRenamed()
			logger.Log.Info("renamed file",
				zap.String("from", step.Name),
				zap.String("to", step.Target))

		case model.StepSkip:
			report.Skipped++
			metrics.RecordSkipped()
			logger.Log.Info("skipped renaming file (already renamed)",
				zap.String("name", step.Name))

		case model.StepFolder:
			report.Folders++
			logger.Log.Info("folder found",
				zap.String("name", step.Name))
		}
	}

	return report, nil
}

func (r *Renamer) move(client files.Client, step model.Step) error {
	arg := files.NewRelocationArg(step.Path, joinPath(r.folderPath, step.Target))
	arg.Autorename = false

	if _, err := client.MoveV2(arg); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", step.Name, step.Target, err)
	}

	return nil
}

func normalizePath(p string) string {
	return "/" + strings.Trim(filepath.ToSlash(p), "/")
}

// The Dropbox API addresses the root folder as "", not "/".
func listPath(folder string) string {
	if folder == "/" {
		return ""
	}

	return folder
}

func joinPath(folder, name string) string {
	return strings.TrimSuffix(folder, "/") + "/" + name
}
