// Command patternsmith maintains and exports leather pattern documents:
// load a document, sweep dangling references, renumber stitch runs,
// write the cut/stitch drawing, and keep a template catalog.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"patternsmith/internal/catalog"
	"patternsmith/internal/config"
	"patternsmith/internal/dims"
	"patternsmith/internal/export"
	"patternsmith/internal/model"
	"patternsmith/internal/stitch"
)

type options struct {
	docPath       string
	outPath       string
	exportPath    string
	configPath    string
	catalogPath   string
	saveTemplate  string
	templateNote  string
	loadTemplate  string
	listTemplates bool
	margin        string
}

func main() {
	var opts options
	flag.StringVar(&opts.docPath, "doc", "", "pattern document JSON to load")
	flag.StringVar(&opts.outPath, "out", "", "write the document back after maintenance")
	flag.StringVar(&opts.exportPath, "export", "", "write the cut/stitch drawing SVG")
	flag.StringVar(&opts.configPath, "config", "", "engine settings YAML")
	flag.StringVar(&opts.catalogPath, "catalog", "", "template catalog database")
	flag.StringVar(&opts.saveTemplate, "save-template", "", "store the loaded document under this name")
	flag.StringVar(&opts.templateNote, "note", "", "note attached by -save-template")
	flag.StringVar(&opts.loadTemplate, "load-template", "", "load the document from this template instead of -doc")
	flag.BoolVar(&opts.listTemplates, "list-templates", false, "list catalog templates")
	flag.StringVar(&opts.margin, "margin", "", `export margin, a dimension expression like "12" or "0.5in"`)
	verbose := flag.Bool("v", false, "debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `patternsmith - leather pattern maintenance and export

Usage:
  patternsmith -doc pattern.json [-export drawing.svg] [-out pattern.json]
  patternsmith -catalog shop.db -doc pattern.json -save-template belt
  patternsmith -catalog shop.db -load-template belt -export belt.svg
  patternsmith -catalog shop.db -list-templates

Options:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if err := run(context.Background(), opts, log); err != nil {
		log.Error("patternsmith failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log *slog.Logger) error {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.margin != "" {
		mm, err := dims.EvalMm(opts.margin)
		if err != nil {
			return fmt.Errorf("bad -margin: %w", err)
		}
		settings.Export.MarginMm = mm
		log.Debug("export margin overridden", "mm", mm)
	}

	var store *catalog.SQLiteStore
	if opts.catalogPath != "" {
		store, err = catalog.OpenSQLite(ctx, opts.catalogPath, log)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	if opts.listTemplates {
		if store == nil {
			return errors.New("-list-templates needs -catalog")
		}
		if err := listTemplates(ctx, store); err != nil {
			return err
		}
	}

	doc, err := loadDocument(ctx, opts, store)
	if err != nil {
		return err
	}
	if doc == nil {
		if !opts.listTemplates {
			flag.Usage()
		}
		return nil
	}

	report := model.Sweep(doc)
	if report.Total() > 0 {
		log.Warn("document needed cleanup",
			"shapes", report.Shapes, "holes", report.Holes, "seams", report.Seams,
			"foldLines", report.FoldLines, "constraints", report.Constraints,
			"clearedRefs", report.ClearedRefs)
	} else {
		log.Info("document consistent",
			"name", doc.Name, "shapes", len(doc.Shapes), "holes", len(doc.Holes))
	}
	doc.Holes = stitch.NormalizeSequences(doc.Holes)

	if opts.saveTemplate != "" {
		if store == nil {
			return errors.New("-save-template needs -catalog")
		}
		tpl := catalog.Template{Name: opts.saveTemplate, Note: opts.templateNote, Document: doc}
		if err := store.Put(ctx, tpl); err != nil {
			return err
		}
		log.Info("template saved", "name", opts.saveTemplate)
	}

	if opts.exportPath != "" {
		renderer := export.NewRenderer(export.Options{
			MarginMm:      settings.Export.MarginMm,
			HoleRadiusMm:  settings.Export.HoleRadiusMm,
			SlitLengthMm:  settings.Export.SlitLengthMm,
			OffsetSamples: settings.OffsetSamples,
		}, log)
		out, err := renderer.Render(doc)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.exportPath, out, 0o644); err != nil {
			return fmt.Errorf("writing drawing: %w", err)
		}
		log.Info("drawing written", "path", opts.exportPath, "bytes", len(out))
	}

	if opts.outPath != "" {
		if err := saveDocument(opts.outPath, doc); err != nil {
			return err
		}
		log.Info("document written", "path", opts.outPath)
	}
	return nil
}

// loadDocument resolves the working document from -load-template or
// -doc. A nil document with a nil error means neither was given.
func loadDocument(ctx context.Context, opts options, store *catalog.SQLiteStore) (*model.Document, error) {
	if opts.loadTemplate != "" {
		if store == nil {
			return nil, errors.New("-load-template needs -catalog")
		}
		tpl, err := store.Get(ctx, opts.loadTemplate)
		if err != nil {
			return nil, err
		}
		return tpl.Document, nil
	}
	if opts.docPath == "" {
		return nil, nil
	}

	f, err := os.Open(opts.docPath)
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}
	defer f.Close()
	return model.Load(f)
}

func saveDocument(path string, doc *model.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating document file: %w", err)
	}
	if err := model.Save(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func listTemplates(ctx context.Context, store catalog.Store) error {
	templates, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		fmt.Println("catalog is empty")
		return nil
	}
	for _, tpl := range templates {
		line := fmt.Sprintf("%s\t%s", tpl.Name, tpl.SavedAt.Format("2006-01-02 15:04"))
		if tpl.Note != "" {
			line += "\t" + tpl.Note
		}
		fmt.Println(line)
	}
	return nil
}
