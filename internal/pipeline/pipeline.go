// Package pipeline sequences embedded-metadata inspection, agency
// resolution, registry fetches, text mining, and validation into one
// best-effort extraction. The caller always gets a record back; every
// source failure degrades to an empty contribution instead of an error.
package pipeline

import (
	"context"
	"time"

	"github.com/lnielsen-cern/docmeta/internal/meta"
	"github.com/lnielsen-cern/docmeta/internal/miner"
	"github.com/lnielsen-cern/docmeta/internal/registry"
	"github.com/lnielsen-cern/docmeta/internal/validate"
	"github.com/lnielsen-cern/docmeta/internal/xmp"
)

// DocumentSource converts a document to plain text. The boolean is
// false when the document is unreadable.
type DocumentSource interface {
	Text(path string) (string, bool)
}

// EmbeddedSource reads the document's embedded metadata container.
type EmbeddedSource interface {
	Read(path string) (xmp.Properties, bool)
}

// Lookup is the registry surface the pipeline consumes. Implemented by
// *registry.Client; tests inject fakes.
type Lookup interface {
	ResolveAgency(ctx context.Context, doi string) (registry.Agency, error)
	Work(ctx context.Context, doi string) (*registry.Work, error)
	DataCite(ctx context.Context, doi string) (*registry.DataCiteMeta, error)
}

// XMPSource is the production EmbeddedSource, reading packets from
// files on disk.
type XMPSource struct{}

// Read implements EmbeddedSource.
func (XMPSource) Read(path string) (xmp.Properties, bool) { return xmp.ReadFile(path) }

// Config tunes one Pipeline. The zero value gives the defaults.
type Config struct {
	// Threshold is the validation acceptance cutoff. Out-of-range
	// values fall back to validate.DefaultThreshold.
	Threshold float64
	// TextWindow is how many leading characters of the document are
	// scored against. Zero means validate.DefaultWindow.
	TextWindow int
	// UseEmbedded merges validated embedded metadata into the result.
	UseEmbedded bool
	// Workers sets the candidate prefetch concurrency. Values below 2
	// keep the candidate loop strictly sequential.
	Workers int
	// CallTimeout bounds each registry call. A timed-out call counts
	// as a transport failure for that candidate, nothing more.
	CallTimeout time.Duration
}

// Source tags where the adopted record came from.
type Source string

const (
	// SourceEmbedded means the record was fetched under an identifier
	// found in the document's embedded metadata.
	SourceEmbedded Source = "embedded"
	// SourceMined means the record was fetched under a text-mined
	// identifier and passed validation.
	SourceMined Source = "mined"
	// SourceNone means no source yielded an accepted record.
	SourceNone Source = "none"
)

// Result is the outcome of one extraction. Record may be empty; that
// is a valid outcome, not a failure.
type Result struct {
	Record     meta.Record      `json:"record"`
	DOI        string           `json:"doi,omitempty"`
	Source     Source           `json:"source"`
	Candidates []string         `json:"candidates,omitempty"`
	Validation *validate.Result `json:"validation,omitempty"`
}

// Pipeline is the extraction state machine. Safe for concurrent use;
// each Extract call keeps all per-attempt state on its own stack.
type Pipeline struct {
	docs     DocumentSource
	embedded EmbeddedSource
	lookup   Lookup
	scorer   *validate.Scorer
	cfg      Config
}

// New assembles a Pipeline from its collaborators.
func New(docs DocumentSource, embedded EmbeddedSource, lookup Lookup, cfg Config) *Pipeline {
	return &Pipeline{
		docs:     docs,
		embedded: embedded,
		lookup:   lookup,
		scorer:   validate.New(cfg.Threshold, cfg.TextWindow),
		cfg:      cfg,
	}
}

// Extract runs the full pipeline for one document.
//
// An identifier embedded in the document settles the question of which
// work this is: the registry either confirms it or nothing does, and
// text mining never runs. Only identifier-free documents fall through
// to mining, where every candidate must earn adoption by validating
// against the document's own text.
func (p *Pipeline) Extract(ctx context.Context, path string) Result {
	result := Result{Source: SourceNone}

	props, embedded := p.embedded.Read(path)
	if embedded {
		props.Scrub()
	}

	text := &textLoader{docs: p.docs, path: path}

	embeddedDOI := ""
	if embedded && props.HasDOI() {
		embeddedDOI = miner.Canonical(props.DOI())
	}

	switch {
	case embeddedDOI != "":
		rec, _ := p.fetchByAgency(ctx, embeddedDOI)
		if !rec.IsEmpty() {
			result.Record = rec
			result.DOI = embeddedDOI
			result.Source = SourceEmbedded
		}

	default:
		if body, ok := text.get(); ok {
			result.Candidates = miner.Mine(body)
			p.adoptFirstValidated(ctx, body, &result)
		}
	}

	if p.cfg.UseEmbedded && embedded && !props.Empty() {
		p.mergeEmbedded(text, props, &result)
	}

	return result
}

// fetchByAgency resolves the registrar of a DOI and fetches from the
// matching provider. Unknown registrars and every lookup failure come
// back as an empty record.
func (p *Pipeline) fetchByAgency(ctx context.Context, doi string) (meta.Record, registry.Agency) {
	callCtx, cancel := p.callContext(ctx)
	agency, err := p.lookup.ResolveAgency(callCtx, doi)
	cancel()

	if err != nil {
		return meta.Record{}, registry.AgencyUnknown
	}

	callCtx, cancel = p.callContext(ctx)
	defer cancel()

	switch agency {
	case registry.AgencyCrossref:
		work, err := p.lookup.Work(callCtx, doi)
		return degrade(meta.FromCrossref(work), err), agency

	case registry.AgencyDataCite:
		dcMeta, err := p.lookup.DataCite(callCtx, doi)
		return degrade(meta.FromDataCite(dcMeta, doi), err), agency
	}

	return meta.Record{}, registry.AgencyUnknown
}

// adoptFirstValidated walks the mined candidates in order and adopts
// the first whose registry record validates against the document text.
// Candidate fetches may run concurrently, but adoption order is always
// mining order.
func (p *Pipeline) adoptFirstValidated(ctx context.Context, text string, result *Result) {
	if len(result.Candidates) == 0 {
		return
	}

	// Adoption cancels whatever prefetches are still pending.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fetched := p.fetchCandidates(ctx, result.Candidates)

	for i, doi := range result.Candidates {
		var rec meta.Record

		select {
		case <-ctx.Done():
			return
		case rec = <-fetched[i]:
		}

		if rec.IsEmpty() {
			continue
		}

		validation := p.scorer.Score(text, rec)
		if !validation.Accepted {
			continue
		}

		result.Record = rec
		result.DOI = doi
		result.Source = SourceMined
		result.Validation = &validation

		return
	}
}

// mergeEmbedded re-validates the embedded metadata against the document
// text and fills the gaps the registry record left. A rejected or
// unreadable-text validation contributes nothing.
func (p *Pipeline) mergeEmbedded(text *textLoader, props xmp.Properties, result *Result) {
	embeddedRec := meta.FromEmbedded(props)

	body, ok := text.get()
	if !ok {
		return
	}

	validation := p.scorer.Score(body, embeddedRec)
	if !validation.Accepted {
		return
	}

	result.Record = meta.Merge(result.Record, embeddedRec)

	if result.Source == SourceNone {
		result.Source = SourceEmbedded
		result.DOI = result.Record.DOI
		result.Validation = &validation
	}
}

func (p *Pipeline) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.cfg.CallTimeout > 0 {
		return context.WithTimeout(ctx, p.cfg.CallTimeout)
	}

	return context.WithCancel(ctx)
}

// degrade is the failure policy for registry lookups: every error kind,
// transport, parse, or not-found, maps to the empty record. Partial
// source unavailability is steady state here, not an exception.
func degrade(rec meta.Record, err error) meta.Record {
	if err != nil {
		return meta.Record{}
	}

	return rec
}

// textLoader extracts the document text at most once per attempt, no
// matter which states end up needing it.
type textLoader struct {
	docs   DocumentSource
	path   string
	loaded bool
	text   string
	ok     bool
}

func (l *textLoader) get() (string, bool) {
	if !l.loaded {
		l.text, l.ok = l.docs.Text(l.path)
		l.loaded = true
	}

	return l.text, l.ok
}
