package renamer

import (
	"dropdate/internal/logger"
	"dropdate/internal/model"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dropbox/dropbox-sdk-go-unofficial/v6/dropbox/files"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClient struct {
	files.Client

	entries []files.IsMetadata
	listErr error
	moveErr map[string]error

	listed []string
	moves  []*files.RelocationArg
}

func (f *fakeClient) ListFolder(arg *files.ListFolderArg) (*files.ListFolderResult, error) {
	f.listed = append(f.listed, arg.Path)
	if f.listErr != nil {
		return nil, f.listErr
	}

	return &files.ListFolderResult{Entries: f.entries}, nil
}

func (f *fakeClient) MoveV2(arg *files.RelocationArg) (*files.RelocationResult, error) {
	f.moves = append(f.moves, arg)
	if err, ok := f.moveErr[arg.FromPath]; ok {
		return nil, err
	}

	return &files.RelocationResult{}, nil
}

var may1 = time.Date(2023, 5, 1, 10, 30, 0, 0, time.UTC)

func fileEntry(name string, modified time.Time) *files.FileMetadata {
	f := &files.FileMetadata{ClientModified: modified}
	f.Name = name
	f.PathLower = "/inbox/" + strings.ToLower(name)
	return f
}

func folderEntry(name string) *files.FolderMetadata {
	f := &files.FolderMetadata{}
	f.Name = name
	f.PathLower = "/inbox/" + strings.ToLower(name)
	return f
}

func TestIsConventional(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"2023_05_01_report.txt", true},
		{"20230501.jpeg", true},
		{"2048_game.zip", true},
		{"2023_05_01.a", false},
		{"20.txt", false},
		{"report.txt", false},
		{"my_2023_05_01_report.txt", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConventional(tt.name))
		})
	}
}

func TestTargetName(t *testing.T) {
	t.Run("no collision", func(t *testing.T) {
		assert.Equal(t, "2023_05_01_report.txt", TargetName("report.txt", may1, nil))
	})

	t.Run("collision increments from one", func(t *testing.T) {
		taken := map[string]struct{}{"2023_05_01_report.txt": {}}
		assert.Equal(t, "2023_05_01_1_report.txt", TargetName("report.txt", may1, taken))
	})

	t.Run("probes until free", func(t *testing.T) {
		taken := map[string]struct{}{
			"2023_05_01_report.txt":   {},
			"2023_05_01_1_report.txt": {},
			"2023_05_01_2_report.txt": {},
		}
		assert.Equal(t, "2023_05_01_3_report.txt", TargetName("report.txt", may1, taken))
	})

	t.Run("formats in UTC", func(t *testing.T) {
		tz := time.FixedZone("UTC+9", 9*60*60)
		modified := time.Date(2023, 5, 2, 5, 0, 0, 0, tz)
		assert.Equal(t, "2023_05_01_a.txt", TargetName("a.txt", modified, nil))
	})
}

func TestBuildPlan(t *testing.T) {
	entries := []files.IsMetadata{
		fileEntry("report.txt", may1),
		fileEntry("2023_05_01_report.txt", may1),
		folderEntry("photos"),
		fileEntry("20.txt", may1),
		folderEntry("2023_05_01_notes.md"),
		fileEntry("notes.md", may1),
	}

	plan := BuildPlan("/inbox", entries)
	require.Len(t, plan.Steps, len(entries))

	want := []model.Step{
		{Kind: model.StepRename, Name: "report.txt", Path: "/inbox/report.txt", Target: "2023_05_01_1_report.txt"},
		{Kind: model.StepSkip, Name: "2023_05_01_report.txt", Path: "/inbox/2023_05_01_report.txt"},
		{Kind: model.StepFolder, Name: "photos", Path: "/inbox/photos"},
		{Kind: model.StepRename, Name: "20.txt", Path: "/inbox/20.txt", Target: "2023_05_01_20.txt"},
		{Kind: model.StepFolder, Name: "2023_05_01_notes.md", Path: "/inbox/2023_05_01_notes.md"},
		// folder names are not part of the collision set
		{Kind: model.StepRename, Name: "notes.md", Path: "/inbox/notes.md", Target: "2023_05_01_notes.md"},
	}
	assert.Equal(t, want, plan.Steps)
	assert.Len(t, plan.Renames(), 3)
	assert.Equal(t, "/inbox", plan.Folder)
}

func TestBuildPlanChecksListingOnly(t *testing.T) {
	entries := []files.IsMetadata{
		fileEntry("2023_05_01_report.txt", may1),
		fileEntry("report.txt", may1),
		fileEntry("1_report.txt", may1),
	}

	renames := BuildPlan("/inbox", entries).Renames()
	require.Len(t, renames, 2)

	// a target chosen earlier in the pass does not block a later one
	assert.Equal(t, "2023_05_01_1_report.txt", renames[0].Target)
	assert.Equal(t, "2023_05_01_1_report.txt", renames[1].Target)
}

func TestRunLogsPlan(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	client := &fakeClient{entries: []files.IsMetadata{
		fileEntry("a.txt", may1),
		fileEntry("2023_05_01_b.txt", may1),
		folderEntry("docs"),
	}}

	_, err := New("/inbox").Run(client)
	require.NoError(t, err)

	entries := logs.FilterMessage("rename plan ready").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/inbox", fields["folder"])
	assert.EqualValues(t, 3, fields["entries"])
	assert.EqualValues(t, 1, fields["renames"])
}

func TestRunRenamesFiles(t *testing.T) {
	client := &fakeClient{entries: []files.IsMetadata{
		fileEntry("report.txt", may1),
		fileEntry("2023_05_01_report.txt", may1),
		folderEntry("archive"),
		fileEntry("IMG_0001.JPG", time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)),
	}}

	report, err := New("inbox/").Run(client)
	require.NoError(t, err)

	assert.Equal(t, []string{"/inbox"}, client.listed)
	assert.Equal(t, model.RenameReport{Renamed: 2, Skipped: 1, Folders: 1}, report)

	require.Len(t, client.moves, 2)
	assert.Equal(t, "/inbox/report.txt", client.moves[0].FromPath)
	assert.Equal(t, "/inbox/2023_05_01_1_report.txt", client.moves[0].ToPath)
	assert.False(t, client.moves[0].Autorename)
	assert.Equal(t, "/inbox/img_0001.jpg", client.moves[1].FromPath)
	assert.Equal(t, "/inbox/2024_12_31_IMG_0001.JPG", client.moves[1].ToPath)
}

func TestRunNeverMovesFolders(t *testing.T) {
	client := &fakeClient{entries: []files.IsMetadata{
		folderEntry("report"),
		folderEntry("2023"),
	}}

	report, err := New("/inbox").Run(client)
	require.NoError(t, err)
	assert.Empty(t, client.moves)
	assert.Equal(t, 2, report.Folders)
}

func TestRunListError(t *testing.T) {
	client := &fakeClient{listErr: errors.New("path/not_found/")}

	_, err := New("/inbox").Run(client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path/not_found/")
	assert.Empty(t, client.moves)
}

func TestRunMoveErrorAbortsPass(t *testing.T) {
	moveErr := errors.New("to/conflict/file/")
	client := &fakeClient{
		entries: []files.IsMetadata{
			fileEntry("a.txt", may1),
			fileEntry("b.txt", may1),
			fileEntry("c.txt", may1),
		},
		moveErr: map[string]error{"/inbox/b.txt": moveErr},
	}

	report, err := New("/inbox").Run(client)
	require.ErrorIs(t, err, moveErr)
	assert.Equal(t, 1, report.Renamed)
	assert.Len(t, client.moves, 2)
}

func TestRunRootFolder(t *testing.T) {
	client := &fakeClient{entries: []files.IsMetadata{fileEntry("a.txt", may1)}}

	_, err := New("/").Run(client)
	require.NoError(t, err)

	assert.Equal(t, []string{""}, client.listed)
	require.Len(t, client.moves, 1)
	assert.Equal(t, "/2023_05_01_a.txt", client.moves[0].ToPath)
}
