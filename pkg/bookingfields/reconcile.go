package bookingfields

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

// Reconciler merges catalog system fields into persisted booking fields.
// A Reconciler holds no mutable state and may be shared between goroutines.
type Reconciler struct {
	catalog *Catalog
	logger  *zap.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithCatalog replaces the default catalog.
func WithCatalog(c *Catalog) Option {
	return func(r *Reconciler) {
		if c != nil {
			r.catalog = c
		}
	}
}

// WithLogger sets the logger used for debug output and anomaly warnings.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewReconciler returns a Reconciler using the default catalog and a no-op
// logger unless overridden.
func NewReconciler(opts ...Option) *Reconciler {
	r := &Reconciler{
		catalog: defaultCatalog,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the catalog the reconciler merges from.
func (r *Reconciler) Catalog() *Catalog {
	return r.catalog
}

var defaultReconciler = NewReconciler()

// Reconcile reconciles persisted against the default catalog.
func Reconcile(persisted []types.Field) (CompleteFieldList, error) {
	return defaultReconciler.Reconcile(persisted)
}

// Reconcile returns the authoritative field list for a booking form:
// missing before fields in catalog order, then the persisted fields with
// catalog attributes layered under each matching system field, then missing
// after fields in catalog order. persisted is not modified.
//
// Only the first persisted field with a given identifier is layered; later
// duplicates pass through unchanged and are reported as anomalies. An error
// always wraps ErrConfigurationDefect.
func (r *Reconciler) Reconcile(persisted []types.Field) (CompleteFieldList, error) {
	firstAt := make(map[Identifier]int, len(persisted))
	for i, f := range persisted {
		id := Normalize(f.Name)
		if _, ok := firstAt[id]; !ok {
			firstAt[id] = i
		}
	}

	layered := make(map[int]types.Field)
	prepend := r.missing(r.catalog.BeforeFields(), persisted, firstAt, layered)
	appendix := r.missing(r.catalog.AfterFields(), persisted, firstAt, layered)

	middle := make([]types.Field, len(persisted))
	for i, f := range persisted {
		if m, ok := layered[i]; ok {
			middle[i] = m
			continue
		}
		middle[i] = f.Clone()
	}

	fields := make([]types.Field, 0, len(prepend)+len(middle)+len(appendix))
	fields = append(fields, prepend...)
	fields = append(fields, middle...)
	fields = append(fields, appendix...)

	list, err := r.catalog.Validate(fields)
	if err != nil {
		r.logger.Error("reconciled booking fields are incomplete", zap.Error(err))
		return CompleteFieldList{}, err
	}
	if err := r.checkNoDuplicatesIntroduced(persisted, fields); err != nil {
		r.logger.Error("reconciliation duplicated a system field", zap.Error(err))
		return CompleteFieldList{}, err
	}

	for _, a := range list.anomalies {
		r.logger.Warn("duplicate booking field passed through",
			zap.String("identifier", string(a.Identifier)),
			zap.String("name", a.Name),
			zap.Int("position", a.Position))
	}
	r.logger.Debug("reconciled booking fields",
		zap.Int("persisted", len(persisted)),
		zap.Int("layered", len(layered)),
		zap.Int("prepended", len(prepend)),
		zap.Int("appended", len(appendix)))

	return list, nil
}

// missing layers each catalog field present in persisted into layered, keyed
// by the persisted position, and returns the catalog fields that are absent.
func (r *Reconciler) missing(catalog, persisted []types.Field, firstAt map[Identifier]int, layered map[int]types.Field) []types.Field {
	var absent []types.Field
	for _, f := range catalog {
		i, ok := firstAt[Normalize(f.Name)]
		if !ok {
			absent = append(absent, f)
			continue
		}
		layered[i] = layer(f, persisted[i])
	}
	return absent
}

// checkNoDuplicatesIntroduced verifies that each system field occurs exactly
// once in the output, or as often as the caller supplied it.
func (r *Reconciler) checkNoDuplicatesIntroduced(persisted, fields []types.Field) error {
	in := countIdentifiers(persisted)
	out := countIdentifiers(fields)
	for _, name := range r.catalog.Names() {
		id := Normalize(name)
		want := max(in[id], 1)
		if out[id] != want {
			return &DuplicateSystemFieldError{Field: name, Count: out[id], Want: want}
		}
	}
	return nil
}
