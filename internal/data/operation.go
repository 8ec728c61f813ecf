package data

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

const (
	// DefaultContentType is used when an operation declares no content type.
	DefaultContentType = "application/x-www-form-urlencoded"

	contentTypeHeader = "Content-Type"
)

// OperationField is one request body field of an operation.
type OperationField struct {
	Key      string
	Type     string
	Required bool
}

// OperationDefinitionObject describes the request that performs one operation
// on entities of a data type. It is never modified after construction.
type OperationDefinitionObject struct {
	name         string
	operation    string
	dataType     string
	method       string
	uri          string
	auth         string
	contentType  string
	headers      []string
	query        []domain.KeyValue
	fields       []OperationField
	successRegex string
	returnRegex  string

	urlOnce sync.Once
	url     string
}

// NewOperationDefinitionObject builds an operation from its record. Leading
// and trailing slashes of the URL are trimmed and the content type is added
// as the last header.
func NewOperationDefinitionObject(rec domain.OperationRecord) *OperationDefinitionObject {
	o := &OperationDefinitionObject{
		name:         rec.Name,
		operation:    rec.Operation,
		dataType:     rec.DataType,
		method:       rec.Method,
		uri:          strings.Trim(rec.URL, "/"),
		auth:         rec.Auth,
		contentType:  rec.ContentType,
		query:        append([]domain.KeyValue(nil), rec.Query...),
		successRegex: rec.SuccessRegex,
		returnRegex:  rec.ReturnRegex,
	}
	if o.contentType == "" {
		o.contentType = DefaultContentType
	}

	o.headers = make([]string, 0, len(rec.Headers)+1)
	for _, h := range rec.Headers {
		o.headers = append(o.headers, h.Key+": "+h.Value)
	}
	o.headers = append(o.headers, contentTypeHeader+": "+o.contentType)

	o.fields = make([]OperationField, len(rec.Fields))
	for i, f := range rec.Fields {
		o.fields[i] = OperationField{Key: f.Key, Type: f.Type, Required: f.Required}
	}
	return o
}

func (o *OperationDefinitionObject) Name() string { return o.name }

func (o *OperationDefinitionObject) Operation() string { return o.operation }

func (o *OperationDefinitionObject) DataType() string { return o.dataType }

func (o *OperationDefinitionObject) Method() string { return o.method }

func (o *OperationDefinitionObject) Auth() string { return o.auth }

func (o *OperationDefinitionObject) ContentType() string { return o.contentType }

func (o *OperationDefinitionObject) SuccessRegex() string { return o.successRegex }

func (o *OperationDefinitionObject) ReturnRegex() string { return o.returnRegex }

// Key returns the repository key: operation followed by data type.
func (o *OperationDefinitionObject) Key() string {
	return operationKey(o.operation, o.dataType)
}

// URL returns the trimmed URL with query parameters appended in declaration
// order, joined with '?' first and '&' afterwards.
func (o *OperationDefinitionObject) URL() string {
	o.urlOnce.Do(func() {
		var b strings.Builder
		b.WriteString(o.uri)
		hasQuery := strings.Contains(o.uri, "?")
		for _, p := range o.query {
			if hasQuery {
				b.WriteByte('&')
			} else {
				b.WriteByte('?')
				hasQuery = true
			}
			b.WriteString(p.Key + "=" + p.Value)
		}
		o.url = b.String()
	})
	return o.url
}

// Headers returns "Name: value" request headers, ending with Content-Type.
func (o *OperationDefinitionObject) Headers() []string {
	return append([]string(nil), o.headers...)
}

// Fields returns the request body fields in declaration order.
func (o *OperationDefinitionObject) Fields() []OperationField {
	return append([]OperationField(nil), o.fields...)
}

func operationKey(operation, dataType string) string {
	return operation + dataType
}

// OperationRepository is a build-once cache of operation definitions keyed by
// operation and data type. A later definition of the same key wins.
type OperationRepository struct {
	records []domain.OperationRecord

	once       sync.Once
	operations map[string]*OperationDefinitionObject
	err        error
}

// NewOperationRepository creates an OperationRepository built lazily from records.
func NewOperationRepository(records []domain.OperationRecord) *OperationRepository {
	return &OperationRepository{records: records}
}

// Init builds the repository if it has not been built yet and returns the
// build error, if any.
func (r *OperationRepository) Init() error {
	r.once.Do(func() {
		r.operations, r.err = r.build()
	})
	return r.err
}

func (r *OperationRepository) build() (map[string]*OperationDefinitionObject, error) {
	ops := make(map[string]*OperationDefinitionObject, len(r.records))
	for _, rec := range r.records {
		if rec.Operation == "" || rec.DataType == "" {
			return nil, domain.NewError("build", rec.Source, 0,
				fmt.Sprintf("operation %q must declare both operation and dataType", rec.Name), nil)
		}
		o := NewOperationDefinitionObject(rec)
		ops[o.Key()] = o
	}
	return ops, nil
}

// GetOperationDefinition returns the definition of operation for dataType.
func (r *OperationRepository) GetOperationDefinition(operation, dataType string) (*OperationDefinitionObject, bool) {
	if r.Init() != nil {
		return nil, false
	}
	o, ok := r.operations[operationKey(operation, dataType)]
	return o, ok
}

// GetAllObjects returns a copy of the key to operation mapping.
func (r *OperationRepository) GetAllObjects() map[string]*OperationDefinitionObject {
	if r.Init() != nil {
		return nil
	}
	out := make(map[string]*OperationDefinitionObject, len(r.operations))
	for k, v := range r.operations {
		out[k] = v
	}
	return out
}
