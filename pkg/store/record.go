package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/CTAG07/namegen/pkg/cluster"
	"github.com/CTAG07/namegen/pkg/markov"
	"github.com/CTAG07/namegen/pkg/textgen"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Engine names recorded with every model.
const (
	EngineMarkov  = "markov"
	EngineCluster = "cluster"
)

// ErrUnsupportedModel is returned when asked to persist a generator the
// store cannot snapshot.
var ErrUnsupportedModel = errors.New("unsupported model type")

// Info is the metadata kept for a stored model.
type Info struct {
	ID            int64     `json:"-"`
	UUID          uuid.UUID `json:"uuid"`
	Name          string    `json:"name"`
	Engine        string    `json:"engine"`
	DatasetLength int       `json:"dataset_length"`
	CreatedAt     time.Time `json:"created_at"`
}

// Record is a stored model: its metadata and the snapshot of exactly one
// engine.
type Record struct {
	Info
	Markov  *markov.Snapshot  `json:"markov,omitempty"`
	Cluster *cluster.Snapshot `json:"cluster,omitempty"`
}

// NewRecord snapshots m under name. m must be a *markov.Generator or a
// *cluster.Generator.
func NewRecord(name string, m textgen.Model) (*Record, error) {
	r := &Record{Info: Info{
		UUID:      uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}}

	var err error
	switch g := m.(type) {
	case *markov.Generator:
		r.Engine = EngineMarkov
		r.DatasetLength = g.DatasetLength()
		r.Markov, err = g.Snapshot()
	case *cluster.Generator:
		r.Engine = EngineCluster
		r.DatasetLength = g.DatasetLength()
		r.Cluster, err = g.Snapshot()
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedModel, m)
	}
	if err != nil {
		return nil, fmt.Errorf("could not snapshot model '%s': %w", name, err)
	}
	return r, nil
}

// Generator rebuilds a live generator from the record.
func (r *Record) Generator() (textgen.Model, error) {
	switch r.Engine {
	case EngineMarkov:
		if r.Markov == nil {
			return nil, fmt.Errorf("record '%s' has no markov snapshot", r.Name)
		}
		g := markov.New()
		if err := g.Restore(r.Markov); err != nil {
			return nil, fmt.Errorf("could not restore model '%s': %w", r.Name, err)
		}
		return g, nil
	case EngineCluster:
		if r.Cluster == nil {
			return nil, fmt.Errorf("record '%s' has no cluster snapshot", r.Name)
		}
		g := cluster.New()
		if err := g.Restore(r.Cluster); err != nil {
			return nil, fmt.Errorf("could not restore model '%s': %w", r.Name, err)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("%w: engine '%s'", ErrUnsupportedModel, r.Engine)
	}
}

func (r *Record) encodePayload() ([]byte, error) {
	switch r.Engine {
	case EngineMarkov:
		return msgpack.Marshal(r.Markov)
	case EngineCluster:
		return msgpack.Marshal(r.Cluster)
	default:
		return nil, fmt.Errorf("%w: engine '%s'", ErrUnsupportedModel, r.Engine)
	}
}

func (r *Record) decodePayload(payload []byte) error {
	switch r.Engine {
	case EngineMarkov:
		r.Markov = new(markov.Snapshot)
		return msgpack.Unmarshal(payload, r.Markov)
	case EngineCluster:
		r.Cluster = new(cluster.Snapshot)
		return msgpack.Unmarshal(payload, r.Cluster)
	default:
		return fmt.Errorf("%w: engine '%s'", ErrUnsupportedModel, r.Engine)
	}
}
