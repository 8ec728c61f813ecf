package data

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

// ErrNoEntities is returned when the description sources define no entities.
var ErrNoEntities = errors.New("no entities could be parsed from description files")

// Lookup finds entities by name.
type Lookup interface {
	GetObject(name string) (*EntityDataObject, bool)
}

// Source supplies the parsed entity records a Repository is built from.
type Source func() ([]domain.EntityRecord, error)

// Repository is a build-once cache of entities. It is built on first access
// and is read-only afterwards.
type Repository struct {
	source  Source
	envFile string

	once    sync.Once
	objects map[string]*EntityDataObject
	err     error
}

// NewRepository creates a Repository that builds from source on first use.
// envFile may be empty to skip environment loading.
func NewRepository(source Source, envFile string) *Repository {
	return &Repository{source: source, envFile: envFile}
}

// NewRepositoryFromRecords creates a Repository over already-parsed records.
func NewRepositoryFromRecords(records []domain.EntityRecord, envFile string) *Repository {
	return NewRepository(func() ([]domain.EntityRecord, error) {
		return records, nil
	}, envFile)
}

// Init builds the repository if it has not been built yet and returns the
// build error, if any. Concurrent callers wait for a single build.
func (r *Repository) Init() error {
	r.once.Do(func() {
		r.objects, r.err = r.build()
	})
	return r.err
}

// GetObject returns the entity with the given name.
func (r *Repository) GetObject(name string) (*EntityDataObject, bool) {
	if r.Init() != nil {
		return nil, false
	}
	obj, ok := r.objects[name]
	return obj, ok
}

// GetAllObjects returns a copy of the name to entity mapping.
func (r *Repository) GetAllObjects() map[string]*EntityDataObject {
	if r.Init() != nil {
		return nil
	}
	out := make(map[string]*EntityDataObject, len(r.objects))
	for k, v := range r.objects {
		out[k] = v
	}
	return out
}

func (r *Repository) build() (map[string]*EntityDataObject, error) {
	records, err := r.source()
	if err != nil {
		return nil, domain.NewError("build", "", 0, "failed to read entity records", err)
	}
	if len(records) == 0 {
		return nil, domain.NewErrorWithSuggestion("build", "", 0, ErrNoEntities.Error(),
			"declare at least one entity under 'entities:' in a description file", ErrNoEntities)
	}

	objects := make(map[string]*EntityDataObject, len(records)+1)

	if r.envFile != "" {
		env, err := ReadEnvFile(r.envFile)
		if err != nil {
			return nil, domain.NewError("build", r.envFile, 0, "failed to read environment file", err)
		}
		if env != nil {
			objects[EnvObjectName] = NewEnvObject(env)
		}
	}

	for _, rec := range records {
		obj, err := fromRecord(rec)
		if err != nil {
			return nil, domain.NewError("build", rec.Source, 0, err.Error(), nil)
		}
		objects[obj.Name()] = obj
	}

	return objects, nil
}

func fromRecord(rec domain.EntityRecord) (*EntityDataObject, error) {
	if rec.Name == "" {
		return nil, fmt.Errorf("entity of type %q has no name", rec.Type)
	}

	fields := make(map[string]Value, len(rec.Data)+len(rec.Arrays))
	for _, d := range rec.Data {
		fields[strings.ToLower(d.Key)] = Scalar(d.Value)
	}

	linked := make(map[string]string, len(rec.RequiredEntities))
	for _, re := range rec.RequiredEntities {
		linked[re.Value] = re.Type
	}

	for _, a := range rec.Arrays {
		fields[strings.ToLower(a.Key)] = List(a.Items...)
	}

	return NewEntityDataObject(rec.Name, rec.Type, fields, linked), nil
}
