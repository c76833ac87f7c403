// Package database is the registration surface corpus adapters plug into:
// a Database groups protocols by task, and a Registry resolves them by
// "Database.Task.Protocol" name.
package database

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownProtocol is returned when a lookup names nothing registered.
var ErrUnknownProtocol = errors.New("unknown protocol")

// Preprocessor derives an extra value from a file. The database never
// interprets preprocessors; it only attaches them to yielded files.
type Preprocessor func(file *ProtocolFile) (any, error)

// Preprocessors maps keys to preprocessors.
type Preprocessors map[string]Preprocessor

// Keys returns the sorted keys.
func (p Preprocessors) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Database is the base every corpus embeds.
type Database struct {
	name          string
	preprocessors Preprocessors
	tasks         map[string]map[string]ProtocolFactory
}

// NewDatabase returns an empty database named name.
func NewDatabase(name string, preprocessors Preprocessors) *Database {
	return &Database{
		name:          name,
		preprocessors: preprocessors,
		tasks:         map[string]map[string]ProtocolFactory{},
	}
}

// Name returns the database name.
func (d *Database) Name() string {
	return d.name
}

// Preprocessors returns the preprocessors given at construction.
func (d *Database) Preprocessors() Preprocessors {
	return d.preprocessors
}

// RegisterProtocol makes factory available as task/name.
func (d *Database) RegisterProtocol(task, name string, factory ProtocolFactory) {
	if d.tasks[task] == nil {
		d.tasks[task] = map[string]ProtocolFactory{}
	}
	d.tasks[task][name] = factory
}

// Tasks returns the sorted task names.
func (d *Database) Tasks() []string {
	out := make([]string, 0, len(d.tasks))
	for t := range d.tasks {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Protocols returns the sorted protocol names registered under task.
func (d *Database) Protocols(task string) []string {
	out := make([]string, 0, len(d.tasks[task]))
	for p := range d.tasks[task] {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Protocol instantiates task/name.
func (d *Database) Protocol(task, name string) (*Protocol, error) {
	factory, ok := d.tasks[task][name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s.%s", ErrUnknownProtocol, d.name, task, name)
	}
	return &Protocol{
		Name:          strings.Join([]string{d.name, task, name}, "."),
		impl:          factory(),
		preprocessors: d.preprocessors,
	}, nil
}

// Registry resolves protocols across databases.
type Registry struct {
	databases map[string]*Database
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{databases: map[string]*Database{}}
}

// Add registers db under its name, replacing any previous one.
func (r *Registry) Add(db *Database) {
	r.databases[db.Name()] = db
}

// Database returns the database called name.
func (r *Registry) Database(name string) (*Database, error) {
	db, ok := r.databases[name]
	if !ok {
		return nil, fmt.Errorf("%w: database %q", ErrUnknownProtocol, name)
	}
	return db, nil
}

// Get resolves "Database.Task.Protocol".
func (r *Registry) Get(fullName string) (*Protocol, error) {
	parts := strings.Split(fullName, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q is not Database.Task.Protocol", ErrUnknownProtocol, fullName)
	}
	db, err := r.Database(parts[0])
	if err != nil {
		return nil, err
	}
	return db.Protocol(parts[1], parts[2])
}

// Names lists every registered protocol as "Database.Task.Protocol", sorted.
func (r *Registry) Names() []string {
	out := []string{}
	for name, db := range r.databases {
		for _, task := range db.Tasks() {
			for _, p := range db.Protocols(task) {
				out = append(out, name+"."+task+"."+p)
			}
		}
	}
	sort.Strings(out)
	return out
}
