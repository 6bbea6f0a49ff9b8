package engine

import (
	"context"
	"os"

	"dirscope/internal/logging"
	"dirscope/internal/shared/types"
)

// Provider implements directory scanning, aggregation and mutation as
// the "fs" service.
type Provider struct {
	ops   *EngineOps
	scan  *ScanOps
	dups  *DuplicateOps
	times *TimeOps
	files *FileOps
}

// Options configures a Provider. The zero value is usable: logging is
// disabled, worker count is automatic and the platform trash is used.
type Options struct {
	Log       *logging.Logger
	Workers   int
	BackupDir string
	Extra     []string // additional protected paths
	Trash     TrashProvider
	Skip      SkipFunc
}

// NewProvider creates a filesystem engine provider
func NewProvider(opts Options) *Provider {
	log := opts.Log
	if log == nil {
		log = logging.NewNop()
	}
	trash := opts.Trash
	if trash == nil {
		trash = NewTrash()
	}
	backupDir := opts.BackupDir
	if backupDir == "" {
		backupDir = "~/.file_backup"
	}

	protected := append([]string{}, defaultProtected...)
	if home, err := os.UserHomeDir(); err == nil {
		protected = append(protected, home)
	}
	protected = append(protected, opts.Extra...)

	ops := &EngineOps{
		Log:       log.Named("engine"),
		Workers:   opts.Workers,
		BackupDir: backupDir,
		Protected: protected,
		Trash:     trash,
		Skip:      opts.Skip,
	}
	return &Provider{
		ops:   ops,
		scan:  &ScanOps{ops},
		dups:  &DuplicateOps{ops},
		times: &TimeOps{ops},
		files: &FileOps{ops},
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.scan.GetTools()...)
	tools = append(tools, p.dups.GetTools()...)
	tools = append(tools, p.times.GetTools()...)
	tools = append(tools, p.files.GetTools()...)

	return types.Service{
		ID:          "fs",
		Name:        "Directory Engine",
		Description: "Directory scanning, aggregation, duplicate detection, time queries and safe mutation",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"scan", "categorize", "aggregate",
			"duplicates", "timeline",
			"rename", "move", "delete", "trash",
		},
		Tools: tools,
	}
}

// Execute runs a tool by ID
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	if params == nil {
		params = map[string]interface{}{}
	}

	switch toolID {
	case "fs.scan.count":
		return p.scan.Count(ctx, params)
	case "fs.scan.list":
		return p.scan.List(ctx, params)
	case "fs.scan.categorize":
		return p.scan.Categorize(ctx, params)
	case "fs.scan.size":
		return p.scan.Size(ctx, params)
	case "fs.scan.large":
		return p.scan.Large(ctx, params)
	case "fs.scan.empty":
		return p.scan.Empty(ctx, params)
	case "fs.scan.duplicates":
		return p.dups.Find(ctx, params)
	case "fs.time.recent":
		return p.times.Recent(ctx, params)
	case "fs.time.range":
		return p.times.Range(ctx, params)
	case "fs.time.timeline":
		return p.times.Timeline(ctx, params)
	case "fs.file.rename":
		return p.files.Rename(ctx, params)
	case "fs.file.move":
		return p.files.Move(ctx, params)
	case "fs.file.info":
		return p.files.Info(ctx, params)
	case "fs.file.delete":
		return p.files.Delete(ctx, params)
	case "fs.file.trash":
		return p.files.SafeDelete(ctx, params)
	default:
		return Failf(types.ErrInvalidArgument, "", "unknown tool: %s", toolID)
	}
}
