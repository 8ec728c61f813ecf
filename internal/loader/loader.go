package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/fjglira/GoE2E-StepResolver/internal/actiongroup"
	"github.com/fjglira/GoE2E-StepResolver/internal/config"
	"github.com/fjglira/GoE2E-StepResolver/internal/data"
	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
	"github.com/fjglira/GoE2E-StepResolver/internal/page"
	"github.com/fjglira/GoE2E-StepResolver/internal/parser"
	"github.com/fjglira/GoE2E-StepResolver/internal/scanner"
)

// Loader turns configured description files into a resolvable Project.
type Loader interface {
	Load(ctx context.Context, cfg *config.Config) (*Project, error)
}

// DefaultLoader implements Loader by wiring the scanner and parsers together.
type DefaultLoader struct {
	scanner  scanner.Scanner
	registry parser.ParserRegistry
	log      *logrus.Logger
}

// NewLoader creates a new DefaultLoader with all dependencies.
func NewLoader(s scanner.Scanner, r parser.ParserRegistry, log *logrus.Logger) *DefaultLoader {
	return &DefaultLoader{
		scanner:  s,
		registry: r,
		log:      log,
	}
}

// Load runs scan → parse → build. The entity repository is built eagerly so
// that a project without entities fails here rather than at first lookup.
func (l *DefaultLoader) Load(ctx context.Context, cfg *config.Config) (*Project, error) {
	// Step 1: Scan for description files
	files, failed := scanner.ScanAll(l.scanner, cfg.Input.Directories, cfg.Input.Include, cfg.Input.Exclude)
	for dir, err := range failed {
		l.log.Warnf("Failed to scan directory %s: %v", dir, err)
	}
	l.log.Infof("Found %d description file(s)", len(files))

	// Step 2: Parse files concurrently, keeping file order for the merge
	descs, err := l.parseAll(ctx, files, cfg.Loader.Parallelism)
	if err != nil {
		return nil, err
	}
	l.log.Infof("Parsed %d entit(ies), %d operation(s), %d page(s), %d section(s), %d action group(s)",
		len(descs.Entities), len(descs.Operations), len(descs.Pages), len(descs.Sections), len(descs.ActionGroups))

	// Step 3: Build repositories and action groups
	return NewProject(descs, cfg.Environment.File, l.log)
}

func (l *DefaultLoader) parseAll(ctx context.Context, files []string, parallelism int) (*domain.Descriptions, error) {
	results := make([]*domain.Descriptions, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, filePath := range files {
		i, filePath := i, filePath
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := l.parseFile(filePath)
			if err != nil {
				return err
			}
			results[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &domain.Descriptions{}
	for _, d := range results {
		merged.Merge(d)
	}
	return merged, nil
}

func (l *DefaultLoader) parseFile(filePath string) (*domain.Descriptions, error) {
	ext := filepath.Ext(filePath)
	p, err := l.registry.ParserFor(ext)
	if err != nil {
		l.log.Warnf("No parser for %s, skipping %s", ext, filePath)
		return nil, nil
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, domain.NewErrorWithSuggestion("parse", filePath, 0,
			"failed to read file",
			"check that the file exists and has read permissions",
			err)
	}

	l.log.Debugf("Processing: %s", filePath)
	d, err := p.Parse(filePath, content)
	if err != nil {
		return nil, err
	}
	if d.Empty() {
		l.log.Debugf("No descriptions found in %s", filePath)
	}
	return d, nil
}

// Project holds the repositories and action groups built from descriptions.
type Project struct {
	Entities   *data.Repository
	Operations *data.OperationRepository
	Pages      *page.PageRepository
	Sections   *page.SectionRepository
	Resolver   *actiongroup.Resolver

	groups map[string]*actiongroup.ActionGroupObject
}

// NewProject builds repositories and action groups from descs. Action group
// names must be unique across all files.
func NewProject(descs *domain.Descriptions, envFile string, log *logrus.Logger) (*Project, error) {
	entities := data.NewRepositoryFromRecords(descs.Entities, envFile)
	if err := entities.Init(); err != nil {
		return nil, err
	}
	if n := countDuplicates(descs.Entities, func(e domain.EntityRecord) string { return e.Name }); n > 0 {
		log.Debugf("%d entity definition(s) overridden by later files", n)
	}

	operations := data.NewOperationRepository(descs.Operations)
	if err := operations.Init(); err != nil {
		return nil, err
	}
	if n := countDuplicates(descs.Operations, func(o domain.OperationRecord) string { return o.Operation + o.DataType }); n > 0 {
		log.Debugf("%d operation definition(s) overridden by later files", n)
	}

	sections := page.NewSectionRepository(descs.Sections)
	p := &Project{
		Entities:   entities,
		Operations: operations,
		Pages:      page.NewPageRepository(descs.Pages),
		Sections:   sections,
		Resolver:   actiongroup.NewResolver(entities, sections),
		groups:     make(map[string]*actiongroup.ActionGroupObject, len(descs.ActionGroups)),
	}

	sources := make(map[string]string, len(descs.ActionGroups))
	for _, rec := range descs.ActionGroups {
		if prev, ok := sources[rec.Name]; ok {
			return nil, domain.NewErrorWithSuggestion("build", rec.Source, 0,
				fmt.Sprintf("action group %q is already defined in %s", rec.Name, prev),
				"rename one of the action groups", nil)
		}
		sources[rec.Name] = rec.Source

		g, err := actiongroup.FromRecord(rec, actiongroup.WithResolver(p.Resolver))
		if err != nil {
			return nil, domain.NewError("build", rec.Source, 0, "invalid action group", err)
		}
		p.groups[rec.Name] = g
	}

	return p, nil
}

// ActionGroup returns the named action group.
func (p *Project) ActionGroup(name string) (*actiongroup.ActionGroupObject, bool) {
	g, ok := p.groups[name]
	return g, ok
}

// ActionGroupNames returns the sorted action group names.
func (p *Project) ActionGroupNames() []string {
	names := make([]string, 0, len(p.groups))
	for name := range p.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves the named action group.
func (p *Project) Resolve(group string, args map[string]string, mergeKeyPrefix string) (*actiongroup.StepList, error) {
	g, ok := p.ActionGroup(group)
	if !ok {
		return nil, domain.NewError("resolve", "", 0, fmt.Sprintf("action group %q not found", group), nil)
	}
	steps, err := g.ResolveSteps(args, mergeKeyPrefix)
	if err != nil {
		return nil, domain.NewError("resolve", "", 0, fmt.Sprintf("failed to resolve action group %q", group), err)
	}
	return steps, nil
}

func countDuplicates[T any](items []T, key func(T) string) int {
	seen := make(map[string]bool, len(items))
	n := 0
	for _, it := range items {
		k := key(it)
		if seen[k] {
			n++
		}
		seen[k] = true
	}
	return n
}
