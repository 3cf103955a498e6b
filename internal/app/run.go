package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/idfgo/internal/ctxlog"
	"github.com/vk/idfgo/internal/model"
	"github.com/vk/idfgo/internal/publish"
	"github.com/vk/idfgo/internal/store"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	m, err := a.buildModel(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("Model ready.", "version", m.Version(), "objects", m.Len(), "types", len(m.Types()))

	if a.cfg.Flatten {
		opts := store.FlattenOptions{Construction: a.cfg.Construction}
		if err := m.FlattenToSingleStorey(ctx, opts); err != nil {
			return fmt.Errorf("failed to flatten model: %w", err)
		}
	}

	if err := a.query(m); err != nil {
		return err
	}

	if p := a.settings.Publish; p != nil {
		pub := publish.New(publish.Options{
			URL:       p.URL,
			Namespace: p.Namespace,
			Event:     p.Event,
			Timeout:   p.Timeout,

			InsecureSkipVerify: p.InsecureSkipVerify,
		})
		if err := pub.Publish(ctx, m.Version(), m.Objects()); err != nil {
			return fmt.Errorf("failed to publish model: %w", err)
		}
	}

	if a.cfg.Interactive {
		if err := a.Interactive(ctx, m); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// BuildModel builds the model described by the configuration without
// running any of the follow-up steps.
func (a *App) BuildModel(ctx context.Context) (*model.Model, error) {
	return a.buildModel(ctxlog.WithLogger(ctx, a.logger))
}

func (a *App) buildModel(ctx context.Context) (*model.Model, error) {
	opts := a.modelOptions()

	// A whole file carries its own version.
	if a.cfg.IDFPath != "" && !a.cfg.Geometry && len(a.cfg.Types) == 0 && !a.cfg.ForceRequired {
		m, err := model.NewFromFile(ctx, a.cfg.IDFPath, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load model: %w", err)
		}
		return m, nil
	}

	version := a.settings.DefaultVersion
	if version == "" {
		version = model.DefaultVersion
	}
	m, err := model.New(ctx, version, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	if a.cfg.IDFPath == "" {
		return m, nil
	}

	ingest := store.IngestOptions{Types: a.cfg.Types, ForceRequired: a.cfg.ForceRequired}
	if a.cfg.Geometry {
		_, err = m.ImportGeometry(ctx, a.cfg.IDFPath, ingest)
	} else {
		_, err = m.IngestFile(ctx, a.cfg.IDFPath, ingest)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", a.cfg.IDFPath, err)
	}
	return m, nil
}

func (a *App) modelOptions() []model.Option {
	var opts []model.Option
	if a.settings.SchemaDir != "" {
		opts = append(opts, model.WithSchemaDir(a.settings.SchemaDir))
	}
	if len(a.settings.Seeds) > 0 {
		seeds := make([]model.Seed, 0, len(a.settings.Seeds))
		for _, s := range a.settings.Seeds {
			seeds = append(seeds, model.Seed{Type: s.Type, Fields: s.Fields})
		}
		opts = append(opts, model.WithSeeds(seeds...))
	}
	return opts
}

// query prints the answers to the schema questions asked on the command line.
func (a *App) query(m *model.Model) error {
	if a.cfg.Describe != "" {
		text, err := m.Describe(a.cfg.Describe)
		if err != nil {
			return err
		}
		fmt.Fprint(a.outW, text)
	}
	if a.cfg.HelpType != "" {
		text, err := m.Help(a.cfg.HelpType)
		if err != nil {
			return err
		}
		fmt.Fprint(a.outW, text)
	}
	if a.cfg.Find != "" {
		matches := m.Find(a.cfg.Find)
		if len(matches) == 0 {
			a.logger.Warn("No schema types match.", "query", a.cfg.Find)
		}
		if len(matches) > 0 {
			fmt.Fprintln(a.outW, strings.Join(matches, "\n"))
		}
	}
	return nil
}
