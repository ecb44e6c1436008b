package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/roach88/evreg/internal/ev"
)

// maxLineBytes bounds a single source row.
const maxLineBytes = 1 << 20

// Store is an immutable, in-memory snapshot of the registration registry.
//
// Store is safe for concurrent reads; nothing mutates it after Load returns.
type Store struct {
	groups   *OrderedMultiMap[string, ev.Vehicle]
	source   string
	snapshot string
}

// Option configures a load.
type Option func(*options)

type options struct {
	logger *slog.Logger
	source string
}

// WithLogger sets the logger used while loading. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithSource names the input in log lines and parse errors.
func WithSource(name string) Option {
	return func(o *options) {
		o.source = name
	}
}

// Open loads the registry file at path.
func Open(path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registrations: %w", err)
	}
	defer f.Close()

	return Load(f, append([]Option{WithSource(path)}, opts...)...)
}

// Load reads every row of r, skipping the header, and groups registrations by
// vehicle ID in file order. The first malformed row aborts the load.
func Load(r io.Reader, opts ...Option) (*Store, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	groups := NewOrderedMultiMap[string, ev.Vehicle]()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			continue // header
		}

		v, err := ParseRow(scanner.Text())
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Source = o.source
				pe.Line = line
			}
			o.logger.Debug("rejected registration row",
				"source", o.source,
				"line", line,
				"error", err,
			)
			return nil, err
		}

		groups.Append(v.ID, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read registrations: %w", err)
	}

	s := &Store{
		groups:   groups,
		source:   o.source,
		snapshot: uuid.Must(uuid.NewV7()).String(),
	}

	o.logger.Info("registrations loaded",
		"snapshot", s.snapshot,
		"source", s.source,
		"vehicles", groups.Len(),
		"registrations", groups.Size(),
	)

	return s, nil
}

// Vehicles returns the current record of every vehicle, one per ID, in
// first-seen ID order.
func (s *Store) Vehicles() []ev.Vehicle {
	vehicles := make([]ev.Vehicle, 0, s.groups.Len())
	s.groups.Each(func(_ string, seq []ev.Vehicle) bool {
		vehicles = append(vehicles, seq[0])
		return true
	})
	return vehicles
}

// Registrations returns every registration group in first-seen ID order.
// Each group is ordered newest first. The result is a copy.
func (s *Store) Registrations() [][]ev.Vehicle {
	groups := make([][]ev.Vehicle, 0, s.groups.Len())
	s.groups.Each(func(_ string, seq []ev.Vehicle) bool {
		groups = append(groups, append([]ev.Vehicle(nil), seq...))
		return true
	})
	return groups
}

// VehicleCount returns the number of registrations recorded for id, or 0 if
// the ID is unknown.
func (s *Store) VehicleCount(id string) int {
	return s.groups.Count(id)
}

// History returns a copy of the registration group for id, newest first.
// Returns nil if the ID is unknown.
func (s *Store) History(id string) []ev.Vehicle {
	seq, ok := s.groups.Get(id)
	if !ok {
		return nil
	}
	return append([]ev.Vehicle(nil), seq...)
}

// Current returns the current record for id.
func (s *Store) Current(id string) (ev.Vehicle, bool) {
	seq, ok := s.groups.Get(id)
	if !ok {
		return ev.Vehicle{}, false
	}
	return seq[0], true
}

// Len returns the number of distinct vehicles.
func (s *Store) Len() int {
	return s.groups.Len()
}

// RowCount returns the total number of registrations loaded.
func (s *Store) RowCount() int {
	return s.groups.Size()
}

// Source returns the input name given at load time, if any.
func (s *Store) Source() string {
	return s.source
}

// SnapshotID returns the UUIDv7 assigned to this load.
func (s *Store) SnapshotID() string {
	return s.snapshot
}
