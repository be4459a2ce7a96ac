package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/minutia-lab/minutia/pkg/domain/interfaces"
	"github.com/minutia-lab/minutia/pkg/repository/memory"
	"github.com/minutia-lab/minutia/pkg/repository/sqlite"
	"github.com/minutia-lab/minutia/pkg/utils/logging"
)

// Index holds configuration for the chunk index backend
type Index struct {
	backend    string
	dataDir    string
	collection string
}

// Flags returns CLI flags for index backend configuration
func (x *Index) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "index-backend",
			Usage:       "Chunk index backend [sqlite|memory]",
			Value:       "sqlite",
			Sources:     cli.EnvVars("MINUTIA_INDEX_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "index-dir",
			Usage:       "Directory for the persistent chunk index",
			Value:       "./minutia_db",
			Sources:     cli.EnvVars("MINUTIA_INDEX_DIR"),
			Destination: &x.dataDir,
		},
		&cli.StringFlag{
			Name:        "index-collection",
			Usage:       "Collection name inside the chunk index",
			Value:       "meetings",
			Sources:     cli.EnvVars("MINUTIA_INDEX_COLLECTION"),
			Destination: &x.collection,
		},
	}
}

// LogAttrs returns log attributes for the index configuration
func (x *Index) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("backend", x.backend),
		slog.String("dir", x.dataDir),
		slog.String("collection", x.collection),
	}
}

// Configure opens the chunk index backend. The caller must Close it.
func (x *Index) Configure() (interfaces.ChunkIndex, error) {
	switch x.backend {
	case "memory":
		return memory.New(), nil
	case "sqlite":
		store, err := sqlite.New(x.dataDir, x.collection)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open sqlite index",
				goerr.V("dir", x.dataDir), goerr.V("collection", x.collection))
		}
		logging.Default().Debug("sqlite chunk index opened", "path", store.Path())
		return store, nil
	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "unknown index backend", goerr.V("backend", x.backend))
	}
}
