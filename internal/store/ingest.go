package store

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/vk/idfgo/internal/ctxlog"
	"github.com/vk/idfgo/internal/idd"
	"github.com/vk/idfgo/internal/idf"
	"github.com/vk/idfgo/internal/object"
)

// IngestOptions select which records of instance text are imported.
type IngestOptions struct {
	// Types restricts the import to the listed types. Empty imports every
	// record.
	Types []string
	// ForceRequired also imports records of schema-required types that
	// Types does not list.
	ForceRequired bool
}

func (o IngestOptions) filter() map[string]struct{} {
	if len(o.Types) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(o.Types))
	for _, t := range o.Types {
		set[typeKey(t)] = struct{}{}
	}
	return set
}

// Ingest imports the records of the instance text r. source names the text
// in errors. Version records are skipped. Either every selected record is
// stored or, on the first failure, none is. It returns the number of
// objects stored.
func (s *Store) Ingest(ctx context.Context, r io.Reader, source string, opts IngestOptions) (int, error) {
	logger := ctxlog.FromContext(ctx).With("source", source)
	filter := opts.filter()
	snap := s.snapshot()

	added, skipped := 0, 0
	sc := idf.NewScanner(r)
	for sc.Scan() {
		rec := sc.Record()
		if strings.EqualFold(rec.Type, idf.VersionType) {
			continue
		}

		def, err := s.selected(rec.Type, filter, opts.ForceRequired)
		if err != nil {
			s.restore(snap)
			return 0, &IngestionError{Source: source, Line: rec.Line, Type: rec.Type, Err: err}
		}
		if def == nil {
			skipped++
			continue
		}

		obj, err := object.FromValues(def, rec.Values)
		if err == nil {
			err = s.insert(obj)
		}
		if err != nil {
			s.restore(snap)
			return 0, &IngestionError{Source: source, Line: rec.Line, Type: def.Name, Err: err}
		}
		added++
	}
	if err := sc.Err(); err != nil {
		s.restore(snap)
		return 0, &IngestionError{Source: source, Err: err}
	}

	logger.Debug("Ingested instance records.", "added", added, "skipped", skipped)
	return added, nil
}

// selected resolves the definition of a record type and returns nil when
// the options exclude it. Types outside the filter are skipped without
// consulting the schema, unless ForceRequired asks for required ones.
func (s *Store) selected(typeName string, filter map[string]struct{}, forceRequired bool) (*idd.ObjectDefinition, error) {
	if filter == nil {
		return s.reg.Definition(typeName)
	}
	if _, ok := filter[typeKey(typeName)]; ok {
		return s.reg.Definition(typeName)
	}
	if forceRequired {
		if def, ok := s.reg.Lookup(typeName); ok && def.Required {
			return def, nil
		}
	}
	return nil, nil
}

// IngestFile is Ingest reading the instance file at path.
func (s *Store) IngestFile(ctx context.Context, path string, opts IngestOptions) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, &IngestionError{Source: path, Err: ErrFileNotFound}
		}
		return 0, &IngestionError{Source: path, Err: err}
	}
	defer f.Close()

	return s.Ingest(ctx, f, path, opts)
}
